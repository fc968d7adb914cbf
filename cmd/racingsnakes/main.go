package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/audio"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/game"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/remote"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/render"
	ebitenrender "github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/render/ebiten"
	ggrender "github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/render/gg"
	tcellrender "github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/render/tcell"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/settings"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/world/arena"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/world/levels"
)

const (
	inboxSize = 16
	// Time between the crash and the backend closing, so the crash sound
	// and the remote broadcast get through.
	gameOverDelay = 2 * time.Second
)

func main() {
	configPath := flag.String("config", "settings.json", "Settings file")
	levelName := flag.String("level", "", "Level to play (default: open arena from settings)")
	levelsDir := flag.String("levels", "levels", "Directory of level files")
	backend := flag.String("backend", "window", "Renderer: window, terminal or snapshot")
	out := flag.String("out", "frame.png", "Snapshot output file")
	frames := flag.Int("frames", 30, "Frames to simulate before the snapshot")
	remoteAddr := flag.String("remote", "", "Serve remote control on this address (e.g. :8080)")
	withAudio := flag.Bool("audio", true, "Play sound")
	debug := flag.Bool("debug", false, "Show TPS and FPS in the window")
	flag.Parse()

	cfg, err := settings.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	level, err := loadLevel(cfg, *levelsDir, *levelName)
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}
	log.Printf("Loaded level: %s (%.0fx%.0f, %d walls)", level.Name, level.Width, level.Height, len(level.Walls))

	var sounds game.Sounds
	if *withAudio && *backend != "snapshot" {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			log.Printf("Warning: audio disabled: %v", err)
		} else {
			defer sm.Cleanup()
			sounds = sm
		}
	}

	g, err := game.New(cfg, level, sounds)
	if err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}
	loop := game.NewLoop(g, inboxSize)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// relay carries the game over to remote clients; nil without a server.
	var relay chan game.Message
	if *remoteAddr != "" {
		server := remote.NewServer(loop, level.Name)
		relay = make(chan game.Message, 1)
		go server.Forward(ctx, relay)
		go func() {
			if err := server.ListenAndServe(ctx, *remoteAddr); err != nil {
				log.Printf("Remote control stopped: %v", err)
			}
		}()
	}

	log.Printf("Starting %s backend...", *backend)
	switch *backend {
	case "window":
		go watchGameOver(ctx, loop, relay)
		err = runWindow(loop, cfg, level.Name, *debug)
	case "terminal":
		go watchGameOver(ctx, loop, relay)
		err = runTerminal(ctx, loop, cfg)
	case "snapshot":
		err = runSnapshot(loop, cfg, *frames, *out)
	default:
		log.Fatalf("Unknown backend %q", *backend)
	}
	if err != nil && !errors.Is(err, game.ErrShutdown) {
		log.Fatal(err)
	}

	stats := g.MathStats()
	log.Printf("Done after %d frames (math cache: %d hits, %d misses)", g.FrameCount, stats.Hits, stats.Misses)
}

func loadLevel(cfg *settings.Config, dir, name string) (*arena.Level, error) {
	if name == "" {
		return arena.DefaultLevel(cfg.Arena), nil
	}

	log.Println("Scanning levels directory...")
	entries, err := levels.Scan(dir)
	if err != nil {
		return nil, err
	}
	entry, ok := levels.Find(entries, name)
	if !ok {
		return nil, fmt.Errorf("no level named %q in %s", name, dir)
	}
	return arena.LoadLevel(entry.Path)
}

// watchGameOver hands the loop's game over to relay, if any, and then
// shuts the loop down.
func watchGameOver(ctx context.Context, loop *game.Loop, relay chan<- game.Message) {
	select {
	case <-ctx.Done():
		return
	case m := <-loop.Outbox():
		log.Println("Game over")
		if relay != nil {
			relay <- m
		}
	}

	select {
	case <-ctx.Done():
	case <-time.After(gameOverDelay):
		loop.Send(game.Shutdown{})
	}
}

func runWindow(loop *game.Loop, cfg *settings.Config, title string, debug bool) error {
	engine := ebitenrender.NewEngine(debug)
	engine.SetWindowSize(cfg.Display.CanvasWidth, cfg.Display.CanvasHeight)
	engine.SetWindowTitle("Racing Snakes - " + title)
	engine.SetWindowResizable(true)
	engine.SetTPS(cfg.Display.FrameRate)

	return engine.RunGame(game.NewManager(loop, ebitenrender.NewInputManager()))
}

func runTerminal(ctx context.Context, loop *game.Loop, cfg *settings.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	surface := tcellrender.NewSurface(screen, cfg.Display.CanvasWidth, cfg.Display.CanvasHeight)
	go surface.Listen(func(key render.Key) {
		if m, ok := game.KeyMessage(key); ok {
			loop.Send(m)
		}
	})

	return loop.Run(ctx, surface)
}

func runSnapshot(loop *game.Loop, cfg *settings.Config, frames int, path string) error {
	surface, err := ggrender.NewSurface(cfg.Display.CanvasWidth, cfg.Display.CanvasHeight)
	if err != nil {
		return err
	}
	defer surface.Close()

	for i := 0; i < frames; i++ {
		if err := loop.Tick(surface); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	if err := surface.SavePNG(path); err != nil {
		return err
	}
	log.Printf("Wrote %s after %d frames", path, frames)
	return nil
}
