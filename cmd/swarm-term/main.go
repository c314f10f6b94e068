package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orbital-swarm/audio"
	"github.com/lixenwraith/orbital-swarm/config"
	"github.com/lixenwraith/orbital-swarm/engine"
	"github.com/lixenwraith/orbital-swarm/feed"
	"github.com/lixenwraith/orbital-swarm/render"
	"github.com/lixenwraith/orbital-swarm/status"
	"github.com/lixenwraith/orbital-swarm/swarm"
	"github.com/lixenwraith/orbital-swarm/vmath"
)

const (
	framePeriod = 16 * time.Millisecond // ~60 FPS
	hudRows     = 2

	autoOrbitRate = 0.15 // radians per second
	orbitStep     = 0.08
	zoomStep      = 1.1
)

type options struct {
	seed    int64
	dropout float64
	replay  string
	speed   float64
	loop    bool
	listen  bool
	hum     bool
}

type viewer struct {
	screen tcell.Screen
	width  int
	height int

	cfg      config.Config
	reg      *status.Registry
	session  *engine.Session
	source   feed.Source
	listener *feed.Listener
	sound    *audio.Manager

	pop    swarm.Population
	pos    []vmath.Vec3
	camera *render.Camera
	cells  []render.RGB

	autoOrbit bool
	showHUD   bool
}

func newViewer(cfg config.Config, opts options) (*viewer, error) {
	reg := status.NewRegistry()
	mailbox := feed.NewMailbox()

	var source feed.Source
	var listener *feed.Listener
	switch {
	case opts.replay != "":
		samples, err := feed.LoadTrace(opts.replay)
		if err != nil {
			return nil, err
		}
		source = feed.NewReplaySource(mailbox, samples, opts.speed, opts.loop)
	case opts.listen:
		listener = feed.NewListener(cfg.Feed.Listen, mailbox, reg)
	default:
		source = feed.NewSyntheticHand(mailbox, opts.seed, 0, opts.dropout)
	}

	palette, err := cfg.Swarm.PaletteColors()
	if err != nil {
		return nil, err
	}
	pop := swarm.Generate(cfg.Swarm.Count, cfg.Swarm.Seed, palette)

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	v := &viewer{
		screen:    screen,
		cfg:       cfg,
		reg:       reg,
		session:   engine.NewSession(engine.NewSystemClock(), mailbox, cfg.Session.TickRate, reg),
		source:    source,
		listener:  listener,
		pop:       pop,
		pos:       make([]vmath.Vec3, len(pop)),
		camera:    render.NewCamera(),
		autoOrbit: true,
		showHUD:   true,
	}
	v.width, v.height = screen.Size()
	v.cells = make([]render.RGB, v.width*v.height)

	if opts.hum {
		v.sound = audio.NewManager()
		if err := v.sound.Initialize(); err != nil {
			// The field runs fine without sound
			log.Printf("Audio initialization failed: %v", err)
			v.sound = nil
		}
	}

	return v, nil
}

func (v *viewer) run() error {
	if v.listener != nil {
		if err := v.listener.Start(); err != nil {
			return err
		}
	}
	if v.source != nil {
		if err := v.source.Start(); err != nil {
			return err
		}
	}
	v.session.Start()

	if v.sound != nil {
		v.sound.StartHum(v.session.Expansion)
	}

	ticker := time.NewTicker(framePeriod)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- v.screen.PollEvent()
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return nil
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if dt > 0.1 {
				dt = 0.1
			}

			if v.autoOrbit {
				v.camera.Orbit(autoOrbitRate*dt, 0)
			}
			v.draw()
		}
	}
}

func (v *viewer) cleanup() {
	v.session.Stop()
	if v.source != nil {
		v.source.Stop()
	}
	if v.listener != nil {
		v.listener.Stop()
	}
	if v.sound != nil {
		v.sound.Cleanup()
	}
	v.screen.Fini()
}

func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			v.autoOrbit = !v.autoOrbit
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'h':
			v.showHUD = !v.showHUD
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'm':
			if v.sound != nil {
				v.sound.ToggleHum()
			}
		case ev.Key() == tcell.KeyLeft:
			v.camera.Orbit(-orbitStep, 0)
		case ev.Key() == tcell.KeyRight:
			v.camera.Orbit(orbitStep, 0)
		case ev.Key() == tcell.KeyUp:
			v.camera.Orbit(0, orbitStep)
		case ev.Key() == tcell.KeyDown:
			v.camera.Orbit(0, -orbitStep)
		case ev.Key() == tcell.KeyRune && (ev.Rune() == '+' || ev.Rune() == '='):
			v.camera.Zoom(1 / zoomStep)
		case ev.Key() == tcell.KeyRune && ev.Rune() == '-':
			v.camera.Zoom(zoomStep)
		}

	case *tcell.EventResize:
		v.width, v.height = v.screen.Size()
		v.cells = make([]render.RGB, v.width*v.height)
		v.screen.Sync()
	}

	return true
}

func (v *viewer) draw() {
	snap := v.session.Snapshot()

	swarm.EvalPositions(v.pos, v.pop, snap.Elapsed.Seconds(), snap.Expansion, v.cfg.Swarm.Workers)

	for i := range v.cells {
		v.cells[i] = render.RGB{}
	}

	viewH := v.height - hudRows
	if viewH < 1 {
		viewH = v.height
	}
	scale := float64(viewH) / 2.0
	farEdge := v.camera.Distance * 1.5

	for i := range v.pop {
		ndcX, ndcY, depth, ok := v.camera.Project(v.pos[i])
		if !ok {
			continue
		}

		// Terminal cells are about twice as tall as wide
		sx := int(float64(v.width)/2 + ndcX*scale*2)
		sy := int(float64(viewH)/2 - ndcY*scale)
		if sx < 0 || sx >= v.width || sy < 0 || sy >= viewH {
			continue
		}

		vis := swarm.Visual(&v.pop[i], snap.Expansion)

		// Depth falloff keeps the far side of the field from washing out
		fade := 1 - vmath.Clamp01((depth-v.camera.Distance*0.5)/farEdge)*0.6

		c := v.pop[i].Color.Scale(vis.Intensity * fade)
		if vis.Flash > 0 {
			c = render.LerpRGB(c, render.RGBWhite, vis.Flash*0.8)
		}

		idx := sy*v.width + sx
		v.cells[idx] = v.cells[idx].Add(c)

		// Large bright particles bleed into their horizontal neighbors
		if vis.Size >= 1.2 {
			spill := c.Scale(0.35)
			if sx > 0 {
				v.cells[idx-1] = v.cells[idx-1].Add(spill)
			}
			if sx < v.width-1 {
				v.cells[idx+1] = v.cells[idx+1].Add(spill)
			}
		}
	}

	v.flushCells(viewH)
	v.drawHUD(snap, viewH)
	v.screen.Show()
}

func (v *viewer) flushCells(viewH int) {
	for y := 0; y < viewH; y++ {
		for x := 0; x < v.width; x++ {
			c := v.cells[y*v.width+x]
			if c == (render.RGB{}) {
				v.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
				continue
			}
			color := tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
			v.screen.SetContent(x, y, '█', nil, tcell.StyleDefault.Foreground(color))
		}
	}
}

func (v *viewer) drawHUD(snap engine.Snapshot, viewH int) {
	statusY := v.height - 2
	controlY := v.height - 1
	if statusY < 0 || controlY <= viewH-1 {
		return
	}

	if !v.showHUD {
		blank := strings.Repeat(" ", v.width)
		v.writeString(0, statusY, blank, tcell.StyleDefault)
		v.writeString(0, controlY, blank, tcell.StyleDefault)
		return
	}

	bright := tcell.StyleDefault.Foreground(tcell.NewRGBColor(220, 220, 230))
	dim := tcell.StyleDefault.Foreground(tcell.NewRGBColor(110, 110, 120))

	const meterWidth = 24
	filled := int(snap.Expansion*meterWidth + 0.5)
	meter := "[" + strings.Repeat("█", filled) + strings.Repeat("·", meterWidth-filled) + "]"

	stats := fmt.Sprintf(" %s %.2f  t=%5.1fs  tick=%d  frames=%d holds=%d decays=%d",
		meter, snap.Expansion, snap.Elapsed.Seconds(), snap.Tick,
		v.reg.Ints.Get("session.frames").Load(),
		v.reg.Ints.Get("session.holds").Load(),
		v.reg.Ints.Get("session.decays").Load())
	if v.listener != nil {
		stats += fmt.Sprintf("  feed: conns=%d errs=%d",
			v.reg.Ints.Get("feed.connections").Load(),
			v.reg.Ints.Get("feed.errors").Load())
	}

	v.writeString(0, statusY, pad(stats, v.width), bright)
	v.writeString(0, controlY, pad(" q:quit  space:auto-orbit  arrows:orbit  +/-:zoom  m:hum  h:hud", v.width), dim)
}

func (v *viewer) writeString(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= v.width {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func pad(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func main() {
	configPath := flag.String("config", "", "config file (default "+config.DefaultPath+" when present)")
	synth := flag.Bool("synth", false, "drive the field from the built-in synthetic hand (default source)")
	seed := flag.Int64("seed", 42, "synthetic hand seed")
	dropout := flag.Float64("dropout", 0.1, "synthetic hand dropout fraction [0,1]")
	replay := flag.String("replay", "", "drive the field from a recorded trace file")
	speed := flag.Float64("speed", 1, "replay speed factor")
	loop := flag.Bool("loop", true, "restart the replay when it ends")
	listen := flag.Bool("listen", false, "accept a landmark producer on the configured feed address")
	hum := flag.Bool("hum", false, "enable the expansion-tracking hum")
	flag.Parse()

	sources := 0
	for _, on := range []bool{*synth, *replay != "", *listen} {
		if on {
			sources++
		}
	}
	if sources > 1 {
		fmt.Fprintln(os.Stderr, "pick one of -synth, -replay, -listen")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	v, err := newViewer(cfg, options{
		seed:    *seed,
		dropout: *dropout,
		replay:  *replay,
		speed:   *speed,
		loop:    *loop,
		listen:  *listen,
		hum:     *hum || cfg.Audio.Enabled,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer v.cleanup()

	if err := v.run(); err != nil {
		v.cleanup()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
