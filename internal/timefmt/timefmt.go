package timefmt

import (
	"log"
	"strings"

	"github.com/jeandeaual/go-locale"
)

// Clock label layouts.
const (
	Layout24 = "15:04"
	Layout12 = "3:04PM"
)

// Regions that write times on a 12-hour clock.
var twelveHourRegions = map[string]bool{
	"US": true, "CA": true, "AU": true, "NZ": true, "PH": true,
	"IN": true, "PK": true, "BD": true, "EG": true, "SA": true,
}

// Layout returns the label layout for a clock_format value. Anything other
// than "24h" or "12h" detects from the system locale.
func Layout(mode string) string {
	switch mode {
	case "24h":
		return Layout24
	case "12h":
		return Layout12
	default:
		return Detect()
	}
}

// Detect picks a layout from the first system locale, defaulting to 24h.
func Detect() string {
	locales, err := locale.GetLocales()
	if err != nil || len(locales) == 0 {
		log.Printf("timefmt: no system locale (%v), using 24h", err)
		return Layout24
	}
	layout := ForLocale(locales[0])
	log.Printf("timefmt: locale %s, layout %s", locales[0], layout)
	return layout
}

// ForLocale maps a tag such as "en-US" or "en_GB.UTF-8" to a layout.
func ForLocale(tag string) string {
	tag, _, _ = strings.Cut(tag, ".")
	parts := strings.FieldsFunc(tag, func(r rune) bool { return r == '-' || r == '_' })
	if len(parts) < 2 {
		return Layout24
	}
	for _, p := range parts[1:] {
		if len(p) == 2 && twelveHourRegions[strings.ToUpper(p)] {
			return Layout12
		}
	}
	return Layout24
}

// WithSeconds extends a layout from ForLocale with seconds.
func WithSeconds(layout string) string {
	if layout == Layout12 {
		return "3:04:05PM"
	}
	return "15:04:05"
}
