// Package config loads gtimer's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/gtimer/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing, blank or out of range, use
//     the default for that field
//
// # TOML Format
//
//	pixels_per_minute = 6       # drag distance per minute
//	step_minutes = 1            # snapping granularity
//	max_minutes = 600           # longest countdown
//	row_pixels = 30             # drag distance one terminal row stands for
//	tick_seconds = 1            # refresh cadence, 1..5
//	live_activity = true        # write the activity status file
//	activity_path = "~/.local/state/gtimer/activity.yaml"
//	log_path = "~/.local/state/gtimer/gtimer.log"
//	sound = true                # chime when the countdown ends
//	sound_file = ""             # .wav or .ogg to play instead of the chime
//	volume = 0                  # chime volume, -10..3 (0 is unchanged)
//	notification_title = "Time's up"
//	notification_body = "Countdown finished"
//	clock_format = "auto"       # "auto", "24h" or "12h"
//
// Tilde expansion is performed for all paths.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, and TOML parse errors ("parse config: ..."). A missing file
// is not an error.
package config
