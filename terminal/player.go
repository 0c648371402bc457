package terminal

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/textfall/parameter"
	"github.com/lixenwraith/textfall/render"
)

// upperHalf shows the top pixel as foreground and the bottom pixel as background
const upperHalf = '▀'

// Player plays a stitched scene on a tcell screen, two pixels per cell
type Player struct {
	screen     tcell.Screen
	scene      *render.Scene
	colormap   *render.Colormap
	playback   *render.Playback
	background render.RGB
	wall       render.RGB
	interval   time.Duration
	stride     int

	width, height int
	pixels        []render.RGB
}

// NewPlayer prepares playback; the caller owns screen Init and Fini
func NewPlayer(screen tcell.Screen, s *render.Scene, loop bool) (*Player, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Trajectory.Len() == 0 {
		return nil, fmt.Errorf("%w: nothing to play", render.ErrInvalidScene)
	}

	// Terminals cannot keep up with high frame rates; skip frames to stay under the cap
	delay := s.FrameDelay()
	minInterval := 1.0 / parameter.TerminalMaxFPS
	stride := max(1, int(math.Ceil(minInterval/delay-1e-9)))

	p := &Player{
		screen:     screen,
		scene:      s,
		colormap:   render.Gnuplot2(),
		playback:   render.NewPlayback(s.Trajectory.Len(), s.Subsample*stride, loop),
		background: render.RGBYellow,
		wall:       render.RGBBlack,
		interval:   time.Duration(delay * float64(stride) * float64(time.Second)),
		stride:     stride,
	}
	p.width, p.height = screen.Size()
	return p, nil
}

// Playback exposes the frame cursor
func (p *Player) Playback() *render.Playback { return p.playback }

// Interval returns the wall-clock time between drawn frames
func (p *Player) Interval() time.Duration { return p.interval }

// Run draws until the user quits, ctx ends, or a non-looping playback finishes
func (p *Player) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	p.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-eventChan:
			if !p.handleInput(ev) {
				return nil
			}
			p.Draw()

		case <-ticker.C:
			if !p.playback.Advance() {
				return nil
			}
			p.Draw()
		}
	}
}

func (p *Player) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			p.playback.Step(-1)
		case tcell.KeyRight:
			p.playback.Step(1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				p.playback.TogglePause()
			case 'r':
				p.playback.Restart()
			case '0':
				// Jump to the shared initial condition between the two runs
				if z := p.scene.Trajectory.ZeroIndex(); z >= 0 {
					p.playback.Seek(z)
				}
			}
		}

	case *tcell.EventResize:
		p.width, p.height = p.screen.Size()
		p.screen.Sync()
	}
	return true
}

// Draw renders the current frame and a status line
func (p *Player) Draw() {
	p.screen.Clear()
	rows := p.height - 1
	if p.width <= 0 || rows <= 0 {
		p.screen.Show()
		return
	}

	pw, ph := p.width, rows*2
	if len(p.pixels) != pw*ph {
		p.pixels = make([]render.RGB, pw*ph)
	}
	for i := range p.pixels {
		p.pixels[i] = p.background
	}

	s := p.scene
	scale := math.Min(float64(pw)/s.Width, float64(ph)/s.Height)
	ox := (float64(pw) - s.Width*scale) / 2
	oy := (float64(ph) - s.Height*scale) / 2
	toPixel := func(x, y float64) (float64, float64) {
		return ox + x*scale, oy + (s.Height-y)*scale
	}
	plot := func(x, y int, c render.RGB) {
		if x >= 0 && x < pw && y >= 0 && y < ph {
			p.pixels[y*pw+x] = c
		}
	}
	// blend mixes c over the pixel by coverage so body edges are smoothed
	blend := func(x, y int, c render.RGB, coverage float64) {
		if x >= 0 && x < pw && y >= 0 && y < ph {
			p.pixels[y*pw+x] = p.pixels[y*pw+x].Blend(c, coverage)
		}
	}

	for _, w := range s.Walls {
		// Clip tall side walls to just above the arena before stepping along them
		ay, by := math.Min(w.A.Y, s.Height*2), math.Min(w.B.Y, s.Height*2)
		x0, y0 := toPixel(w.A.X, ay)
		x1, y1 := toPixel(w.B.X, by)
		steps := int(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))) + 1
		for i := 0; i <= steps; i++ {
			f := float64(i) / float64(steps)
			plot(int(x0+(x1-x0)*f), int(y0+(y1-y0)*f), p.wall)
		}
	}

	frame := s.Trajectory.Frames[p.playback.Frame()]
	for _, smp := range frame {
		cx, cy := toPixel(smp.Pos.X, smp.Pos.Y)
		r := math.Max(s.Radii[smp.ID]*scale, 0.5)
		col := p.colormap.At(s.Colors[smp.ID])
		for y := int(cy - r - 1); y <= int(cy+r+1); y++ {
			for x := int(cx - r - 1); x <= int(cx+r+1); x++ {
				dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
				blend(x, y, col, r+0.5-math.Hypot(dx, dy))
			}
		}
	}

	for row := 0; row < rows; row++ {
		for x := 0; x < pw; x++ {
			top := p.pixels[(2*row)*pw+x]
			bottom := p.pixels[(2*row+1)*pw+x]
			style := tcell.StyleDefault.Foreground(toColor(top)).Background(toColor(bottom))
			p.screen.SetContent(x, row, upperHalf, nil, style)
		}
	}

	p.drawStatus(rows)
	p.screen.Show()
}

func (p *Player) drawStatus(row int) {
	idx := p.playback.Frame()
	line := fmt.Sprintf(" t=%+.3fs  %d/%d", p.scene.Trajectory.Times[idx], p.playback.Position()+1, p.playback.Len())
	if p.playback.Paused() {
		line += "  [paused]"
	}
	line += "  space:pause  ←/→:step  0:t=0  r:restart  q:quit"

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	x := 0
	for _, ch := range line {
		if x >= p.width {
			break
		}
		p.screen.SetContent(x, row, ch, nil, style)
		x++
	}
}

func toColor(c render.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
