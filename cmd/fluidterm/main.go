// Command fluidterm runs the fluid box in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/fluidbox/config"
	"github.com/pthm-cable/fluidbox/renderer"
	"github.com/pthm-cable/fluidbox/sim"
)

// viewer draws one simulation onto a tcell screen.
type viewer struct {
	screen  tcell.Screen
	sim     *sim.Simulation
	palette renderer.VelocityPalette
	counts  []int
	paused  bool
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	fps := flag.Int("fps", 30, "Frames per second")
	logPath := flag.String("log", "", "Write logs to this file (terminal output is taken by the viewer)")
	flag.Parse()

	if err := run(*configPath, *seed, *fps, *logPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, seed int64, fps int, logPath string) error {
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return fmt.Errorf("creating log file: %w", err)
		}
		defer f.Close()
		slog.SetDefault(slog.New(slog.NewJSONHandler(f, nil)))
	} else {
		slog.SetDefault(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s, err := sim.New(cfg, sim.Options{Seed: seed})
	if err != nil {
		return fmt.Errorf("creating simulation: %w", err)
	}
	defer s.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	v := &viewer{
		screen:  screen,
		sim:     s,
		palette: renderer.NewVelocityPalette(s.MaxInitialSpeed()),
	}
	return v.loop(max(fps, 1))
}

func (v *viewer) loop(fps int) error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	frame := time.Second / time.Duration(fps)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-events:
			if !v.handleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			if !v.paused {
				v.sim.Step(dt)
			}
			v.draw()
		}
	}
}

// handleEvent returns false when the viewer should quit.
func (v *viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.sim.Respawn()
			case 'p':
				v.paused = !v.paused
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	if w < 3 || h < 4 {
		v.screen.Show()
		return
	}

	// Box interior excludes the border and the status line.
	p := v.sim.Params()
	g := grid{w: w - 2, h: h - 3, half: p.HalfExtents}
	v.drawBorder(w, h-1)

	ps := v.sim.Particles()
	v.counts = g.occupancy(ps, v.counts)
	speed := make([]float32, len(v.counts))
	for i := range ps {
		x, y := g.cell(ps[i].Position)
		idx := y*g.w + x
		speed[idx] = max(speed[idx], ps[i].Velocity.Length())
	}
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			n := v.counts[y*g.w+x]
			if n == 0 {
				continue
			}
			c := v.palette.ForSpeed(speed[y*g.w+x])
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			v.screen.SetContent(x+1, y+1, glyph(n), nil, style)
		}
	}

	stats := v.sim.LastStats()
	status := fmt.Sprintf(" t=%.1fs  KE=%.5f  damping=%.2f  n=%d  [space] respawn [p] pause [q] quit",
		v.sim.Elapsed(), stats.AverageKE, stats.Damping, len(ps))
	if v.paused {
		status += "  PAUSED"
	}
	v.drawText(0, h-1, status, tcell.StyleDefault)
	v.screen.Show()
}

func (v *viewer) drawBorder(w, h int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for x := 1; x < w-1; x++ {
		v.screen.SetContent(x, 0, '─', nil, style)
		v.screen.SetContent(x, h-1, '─', nil, style)
	}
	for y := 1; y < h-1; y++ {
		v.screen.SetContent(0, y, '│', nil, style)
		v.screen.SetContent(w-1, y, '│', nil, style)
	}
	v.screen.SetContent(0, 0, '┌', nil, style)
	v.screen.SetContent(w-1, 0, '┐', nil, style)
	v.screen.SetContent(0, h-1, '└', nil, style)
	v.screen.SetContent(w-1, h-1, '┘', nil, style)
}

func (v *viewer) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
