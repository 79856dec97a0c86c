package notify

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

// ErrAudioUnavailable is returned by Chime.Play when no audio device could
// be opened.
var ErrAudioUnavailable = errors.New("audio output unavailable")

// ErrUnsupportedSound is returned by LoadSound for files that are neither
// WAV nor Ogg Vorbis.
var ErrUnsupportedSound = errors.New("unsupported sound file")

const (
	chimeSampleRate = beep.SampleRate(44100)
	resampleQuality = 4

	// Volumes at or below silentVolume mute the chime.
	silentVolume = -10
)

var chimeFormat = beep.Format{SampleRate: chimeSampleRate, NumChannels: 2, Precision: 2}

// Chime plays a buffered alert sound through the default audio device. The
// speaker is opened on first use.
//
// Volume is in doublings: 0 plays as recorded, -1 at half amplitude, 1 at
// double.
type Chime struct {
	once    sync.Once
	initErr error

	mu     sync.Mutex
	buffer *beep.Buffer
	volume float64
}

// NewChime returns the built-in two-note chime with its samples rendered.
// Opening the speaker is deferred to the first Play.
func NewChime(volume float64) *Chime {
	buffer := beep.NewBuffer(chimeFormat)
	buffer.Append(beep.Seq(
		tone(chimeSampleRate, 880, 180*time.Millisecond),
		beep.Silence(chimeSampleRate.N(60*time.Millisecond)),
		tone(chimeSampleRate, 1320, 260*time.Millisecond),
	))
	return &Chime{buffer: buffer, volume: volume}
}

// LoadSound decodes a .wav or .ogg file into memory, resampled to the
// speaker rate.
func LoadSound(path string, volume float64) (*Chime, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".wav" && ext != ".ogg" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSound, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	if ext == ".wav" {
		streamer, format, err = wav.Decode(f)
	} else {
		streamer, format, err = vorbis.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != chimeSampleRate {
		src = beep.Resample(resampleQuality, format.SampleRate, chimeSampleRate, streamer)
	}
	buffer := beep.NewBuffer(chimeFormat)
	buffer.Append(src)
	if buffer.Len() == 0 {
		return nil, fmt.Errorf("decode %s: no samples", filepath.Base(path))
	}
	return &Chime{buffer: buffer, volume: volume}, nil
}

// Play starts the chime and returns without waiting for it to finish.
func (c *Chime) Play() error {
	c.once.Do(func() {
		c.initErr = speaker.Init(chimeSampleRate, chimeSampleRate.N(100*time.Millisecond))
	})
	if c.initErr != nil {
		return fmt.Errorf("%w: %v", ErrAudioUnavailable, c.initErr)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	speaker.Play(&effects.Volume{
		Streamer: c.buffer.Streamer(0, c.buffer.Len()),
		Base:     2,
		Volume:   c.volume,
		Silent:   c.volume <= silentVolume,
	})
	return nil
}

// tone is a sine at freq with a linear fade out, so the note ends without a
// click.
func tone(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	total := sr.N(d)
	pos := 0
	step := 2 * math.Pi * freq / float64(sr)
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			gain := 0.4 * (1 - float64(pos)/float64(total))
			v := gain * math.Sin(step*float64(pos))
			samples[i][0] = v
			samples[i][1] = v
			pos++
			n++
		}
		return n, true
	})
}
