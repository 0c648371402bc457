package render

import (
	"reflect"
	"testing"
)

func TestFrameIndices(t *testing.T) {
	tests := []struct {
		frames, sub int
		want        []int
	}{
		{0, 3, nil},
		{1, 10, []int{0}},
		{7, 3, []int{0, 3, 6}},
		{6, 3, []int{0, 3}},
		{3, 0, []int{0, 1, 2}},
	}
	for _, tt := range tests {
		if got := FrameIndices(tt.frames, tt.sub); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("FrameIndices(%d, %d) = %v, want %v", tt.frames, tt.sub, got, tt.want)
		}
	}
}

func TestPlaybackAdvance(t *testing.T) {
	p := NewPlayback(7, 3, false)
	if p.Len() != 3 {
		t.Fatalf("Expected 3 rendered frames, got %d", p.Len())
	}
	var seen []int
	for {
		seen = append(seen, p.Frame())
		if !p.Advance() {
			break
		}
	}
	if !reflect.DeepEqual(seen, []int{0, 3, 6}) {
		t.Errorf("Visited %v", seen)
	}
	if !p.Done() {
		t.Error("Expected non-looping playback to be done")
	}
}

func TestPlaybackPauseAndStep(t *testing.T) {
	p := NewPlayback(10, 1, false)
	p.TogglePause()
	p.Advance()
	if p.Position() != 0 {
		t.Errorf("Paused Advance moved to %d", p.Position())
	}
	p.Step(3)
	if p.Position() != 3 {
		t.Errorf("Step(3) moved to %d", p.Position())
	}
	p.Step(-10)
	if p.Position() != 0 {
		t.Errorf("Expected clamp at 0, got %d", p.Position())
	}
	p.Step(50)
	if p.Position() != 9 {
		t.Errorf("Expected clamp at 9, got %d", p.Position())
	}
	p.Restart()
	if p.Paused() || p.Position() != 0 {
		t.Error("Restart should rewind and resume")
	}
}

func TestPlaybackLoop(t *testing.T) {
	p := NewPlayback(4, 2, true)
	p.Advance()
	if !p.Advance() || p.Position() != 0 {
		t.Errorf("Expected wrap to 0, at %d", p.Position())
	}
	p.Step(-1)
	if p.Position() != 1 {
		t.Errorf("Expected backward wrap to 1, got %d", p.Position())
	}
	if p.Done() {
		t.Error("Looping playback is never done")
	}
}

func TestPlaybackSeek(t *testing.T) {
	p := NewPlayback(100, 10, false)
	p.Seek(57)
	if p.Position() != 5 || p.Frame() != 50 {
		t.Errorf("Expected position 5 (frame 50), got %d (%d)", p.Position(), p.Frame())
	}
	p.Seek(1000)
	if p.Position() != 9 {
		t.Errorf("Expected seek past the end to clamp to 9, got %d", p.Position())
	}
	p.Seek(-3)
	if p.Position() != 0 {
		t.Errorf("Expected negative seek to clamp to 0, got %d", p.Position())
	}
}
