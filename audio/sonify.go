package audio

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/textfall/parameter"
)

// Track is a rendered mixdown; it satisfies beep.StreamSeeker
type Track struct {
	samples [][2]float64
	pos     int
	rate    beep.SampleRate
}

func (t *Track) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= len(t.samples) {
		return 0, false
	}
	n = copy(samples, t.samples[t.pos:])
	t.pos += n
	return n, true
}

func (t *Track) Err() error { return nil }

func (t *Track) Len() int { return len(t.samples) }

func (t *Track) Position() int { return t.pos }

func (t *Track) Seek(p int) error {
	if p < 0 || p > len(t.samples) {
		return fmt.Errorf("audio: seek %d outside [0, %d]", p, len(t.samples))
	}
	t.pos = p
	return nil
}

// Format returns the stereo 16-bit format the track is encoded with
func (t *Track) Format() beep.Format {
	return beep.Format{SampleRate: t.rate, NumChannels: 2, Precision: 2}
}

// Peak returns the largest absolute sample
func (t *Track) Peak() float64 {
	var peak float64
	for _, s := range t.samples {
		peak = max(peak, math.Abs(s[0]), math.Abs(s[1]))
	}
	return peak
}

// Select orders events by time and keeps the loudest MaxPerStep of each timestamp
func Select(events []Event, maxPerStep int) []Event {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Time != sorted[j].Time {
			return sorted[i].Time < sorted[j].Time
		}
		return sorted[i].Speed > sorted[j].Speed
	})

	out := sorted[:0]
	run := 0
	for i, ev := range sorted {
		if i > 0 && ev.Time == sorted[i-1].Time {
			run++
		} else {
			run = 0
		}
		if run < maxPerStep {
			out = append(out, ev)
		}
	}
	return out
}

// Sonify mixes one click per selected event into a track spanning [start, end]
// seconds of the event timeline, plus the tail of the last click
func Sonify(events []Event, start, end float64, cfg *Config) (*Track, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !(end >= start) || math.IsInf(end-start, 0) {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrEmptyTimeline, start, end)
	}

	rate := beep.SampleRate(cfg.SampleRate)
	click := rate.N(parameter.ImpactClickDuration)
	total := int(math.Round((end-start)*float64(cfg.SampleRate))) + click
	track := &Track{samples: make([][2]float64, total), rate: rate}

	scratch := make([][2]float64, click)
	for _, ev := range Select(events, cfg.MaxPerStep) {
		if ev.Time < start || ev.Time > end {
			continue
		}
		off := int(math.Round((ev.Time - start) * float64(cfg.SampleRate)))
		n := drain(CreateImpactSound(ev, cfg), scratch)
		for i := 0; i < n && off+i < total; i++ {
			track.samples[off+i][0] += scratch[i][0]
			track.samples[off+i][1] += scratch[i][1]
		}
	}

	for i := range track.samples {
		track.samples[i][0] = min(max(track.samples[i][0], -1), 1)
		track.samples[i][1] = min(max(track.samples[i][1], -1), 1)
	}
	return track, nil
}

// drain streams s into buf until it ends or buf is full
func drain(s beep.Streamer, buf [][2]float64) int {
	filled := 0
	for filled < len(buf) {
		n, ok := s.Stream(buf[filled:])
		filled += n
		if !ok || n == 0 {
			break
		}
	}
	return filled
}

// WriteWAV encodes the track from its start as 16-bit stereo WAV
func WriteWAV(w io.WriteSeeker, t *Track) error {
	if err := t.Seek(0); err != nil {
		return err
	}
	if err := wav.Encode(w, t, t.Format()); err != nil {
		return fmt.Errorf("audio: encode wav: %w", err)
	}
	return nil
}
