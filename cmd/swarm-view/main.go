package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

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
	windowWidth  = 1024
	windowHeight = 768

	autoOrbitRate = 0.15 // radians per second
	orbitRate     = 1.2
	zoomRate      = 1.4

	// Projected sprite radius per unit of visual size at unit depth
	spriteScale = 40.0

	barMargin = 20
	barHeight = 12
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

type sprite struct {
	x, y, r float32
	depth   float64
	col     color.RGBA
}

type game struct {
	cfg      config.Config
	reg      *status.Registry
	session  *engine.Session
	source   feed.Source
	listener *feed.Listener
	sound    *audio.Manager

	pop    swarm.Population
	pos    []vmath.Vec3
	camera *render.Camera

	sprites   []sprite
	autoOrbit bool
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.autoOrbit = !g.autoOrbit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && g.sound != nil {
		g.sound.ToggleHum()
	}

	dt := 1.0 / float64(ebiten.TPS())
	if g.autoOrbit {
		g.camera.Orbit(autoOrbitRate*dt, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camera.Orbit(-orbitRate*dt, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camera.Orbit(orbitRate*dt, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camera.Orbit(0, orbitRate*dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camera.Orbit(0, -orbitRate*dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyEqual) {
		g.camera.Zoom(1 / (1 + (zoomRate-1)*dt))
	}
	if ebiten.IsKeyPressed(ebiten.KeyMinus) {
		g.camera.Zoom(1 + (zoomRate-1)*dt)
	}

	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	snap := g.session.Snapshot()

	swarm.EvalPositions(g.pos, g.pop, snap.Elapsed.Seconds(), snap.Expansion, g.cfg.Swarm.Workers)

	scale := float64(windowHeight) / 2

	g.sprites = g.sprites[:0]
	for i := range g.pop {
		ndcX, ndcY, depth, ok := g.camera.Project(g.pos[i])
		if !ok {
			continue
		}

		x := float32(float64(windowWidth)/2 + ndcX*scale)
		y := float32(float64(windowHeight)/2 - ndcY*scale)
		if x < 0 || x >= windowWidth || y < 0 || y >= windowHeight {
			continue
		}

		vis := swarm.Visual(&g.pop[i], snap.Expansion)

		c := g.pop[i].Color.Scale(vis.Intensity)
		if vis.Flash > 0 {
			c = render.LerpRGB(c, render.RGBWhite, vis.Flash*0.8)
		}

		r := float32(vis.Size * g.camera.Focal / depth * spriteScale)
		if r < 0.5 {
			r = 0.5
		}

		g.sprites = append(g.sprites, sprite{
			x: x, y: y, r: r,
			depth: depth,
			col:   color.RGBA{R: c.R, G: c.G, B: c.B, A: 255},
		})
	}

	// Painter's algorithm: far to near
	sort.Slice(g.sprites, func(i, j int) bool {
		return g.sprites[i].depth > g.sprites[j].depth
	})

	for _, s := range g.sprites {
		vector.DrawFilledCircle(screen, s.x, s.y, s.r, s.col, false)
	}

	g.drawExpansionBar(screen, snap.Expansion)

	status := fmt.Sprintf("e=%.2f  t=%.1fs  tick=%d  frames=%d holds=%d decays=%d | space:orbit arrows:look +/-:zoom m:hum q:quit",
		snap.Expansion, snap.Elapsed.Seconds(), snap.Tick,
		g.reg.Ints.Get("session.frames").Load(),
		g.reg.Ints.Get("session.holds").Load(),
		g.reg.Ints.Get("session.decays").Load())
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func (g *game) drawExpansionBar(screen *ebiten.Image, expansion float64) {
	barY := float32(windowHeight - barMargin - barHeight)
	barW := float32(windowWidth - 2*barMargin)

	vector.DrawFilledRect(screen, barMargin, barY, barW, barHeight,
		color.RGBA{R: 20, G: 25, B: 35, A: 200}, false)

	fillW := float32(expansion) * (barW - 4)
	if fillW > 0 {
		fill := render.LerpRGB(render.RGB{R: 80, G: 160, B: 255}, render.RGB{R: 255, G: 120, B: 60}, expansion)
		vector.DrawFilledRect(screen, barMargin+2, barY+2, fillW, barHeight-4,
			color.RGBA{R: fill.R, G: fill.G, B: fill.B, A: 255}, false)
	}

	vector.StrokeRect(screen, barMargin, barY, barW, barHeight, 1,
		color.RGBA{R: 60, G: 70, B: 90, A: 255}, false)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, windowHeight
}

func (g *game) cleanup() {
	g.session.Stop()
	if g.source != nil {
		g.source.Stop()
	}
	if g.listener != nil {
		g.listener.Stop()
	}
	if g.sound != nil {
		g.sound.Cleanup()
	}
}

func newGame(cfg config.Config, opts options) (*game, error) {
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

	g := &game{
		cfg:       cfg,
		reg:       reg,
		session:   engine.NewSession(engine.NewSystemClock(), mailbox, cfg.Session.TickRate, reg),
		source:    source,
		listener:  listener,
		pop:       pop,
		pos:       make([]vmath.Vec3, len(pop)),
		sprites:   make([]sprite, 0, len(pop)),
		camera:    render.NewCamera(),
		autoOrbit: true,
	}

	if opts.hum {
		g.sound = audio.NewManager()
		if err := g.sound.Initialize(); err != nil {
			// The field runs fine without sound
			log.Printf("Audio initialization failed: %v", err)
			g.sound = nil
		}
	}

	return g, nil
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

	g, err := newGame(cfg, options{
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
	defer g.cleanup()

	// os.Exit skips deferred cleanup, run it by hand on the error paths
	if g.listener != nil {
		if err := g.listener.Start(); err != nil {
			g.cleanup()
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}
	if g.source != nil {
		if err := g.source.Start(); err != nil {
			g.cleanup()
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}
	g.session.Start()
	if g.sound != nil {
		g.sound.StartHum(g.session.Expansion)
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("orbital swarm")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		g.cleanup()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
