package render

// Playback is a frame cursor over a subsampled trajectory
// Positions index rendered frames; Frame maps back to trajectory indices
type Playback struct {
	frames    int
	subsample int
	pos       int
	paused    bool
	loop      bool
}

// NewPlayback creates a cursor over frames trajectory entries, showing every subsample-th
func NewPlayback(frames, subsample int, loop bool) *Playback {
	return &Playback{
		frames:    max(frames, 0),
		subsample: max(subsample, 1),
		loop:      loop,
	}
}

// FrameIndices lists the trajectory indices a subsampled playback visits
func FrameIndices(frames, subsample int) []int {
	subsample = max(subsample, 1)
	if frames <= 0 {
		return nil
	}
	out := make([]int, 0, (frames+subsample-1)/subsample)
	for i := 0; i < frames; i += subsample {
		out = append(out, i)
	}
	return out
}

// Len returns the number of rendered frames
func (p *Playback) Len() int {
	return (p.frames + p.subsample - 1) / p.subsample
}

// Frame returns the trajectory index under the cursor
func (p *Playback) Frame() int {
	return p.pos * p.subsample
}

// Position returns the rendered frame number under the cursor
func (p *Playback) Position() int { return p.pos }

// Done reports whether a non-looping cursor has shown its last frame
func (p *Playback) Done() bool {
	return !p.loop && p.pos >= p.Len()-1
}

// Advance moves one frame forward unless paused; returns false once a non-looping cursor is done
func (p *Playback) Advance() bool {
	if p.Len() == 0 {
		return false
	}
	if p.paused {
		return true
	}
	if p.pos < p.Len()-1 {
		p.pos++
		return true
	}
	if p.loop {
		p.pos = 0
		return true
	}
	return false
}

// Step moves by delta rendered frames regardless of pause, clamped (or wrapped when looping)
func (p *Playback) Step(delta int) {
	n := p.Len()
	if n == 0 {
		return
	}
	pos := p.pos + delta
	if p.loop {
		pos = ((pos % n) + n) % n
	} else {
		pos = min(max(pos, 0), n-1)
	}
	p.pos = pos
}

// Seek moves the cursor to the rendered frame showing trajectory index frame, clamped
func (p *Playback) Seek(frame int) {
	if p.Len() == 0 {
		return
	}
	p.pos = min(max(frame, 0)/p.subsample, p.Len()-1)
}

// TogglePause flips the paused state and returns the new state
func (p *Playback) TogglePause() bool {
	p.paused = !p.paused
	return p.paused
}

// Paused reports whether Advance is suspended
func (p *Playback) Paused() bool { return p.paused }

// Restart rewinds to the first frame and resumes
func (p *Playback) Restart() {
	p.pos = 0
	p.paused = false
}
