package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/render"
)

// ErrShutdown is returned by Update once a Shutdown message is handled.
var ErrShutdown = errors.New("render loop shut down")

// Loop owns a Game and everything it touches. Other goroutines only talk to
// it through Send; the loop drains its inbox once per frame.
type Loop struct {
	game   *Game
	inbox  chan Message
	outbox chan Message
	sent   bool
}

// NewLoop wraps g with an inbox holding up to buffer pending messages.
func NewLoop(g *Game, buffer int) *Loop {
	if buffer < 1 {
		buffer = 1
	}
	return &Loop{
		game:   g,
		inbox:  make(chan Message, buffer),
		outbox: make(chan Message, 1),
	}
}

// Game returns the driven game. Only safe to use from the loop's goroutine.
func (l *Loop) Game() *Game {
	return l.game
}

// Send queues m without blocking. It reports false if the inbox is full.
func (l *Loop) Send(m Message) bool {
	select {
	case l.inbox <- m:
		return true
	default:
		return false
	}
}

// Outbox delivers the one GameOver message per game.
func (l *Loop) Outbox() <-chan Message {
	return l.outbox
}

// Update drains the inbox, advances the player and computes the frame.
func (l *Loop) Update() error {
	if err := l.drain(); err != nil {
		return err
	}

	if l.game.Step() && !l.sent {
		l.sent = true
		select {
		case l.outbox <- GameOver{Endpoint: GameOverEndpoint}:
		default:
		}
	}

	return l.game.Compute()
}

func (l *Loop) drain() error {
	for {
		select {
		case m := <-l.inbox:
			if err := l.handle(m); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (l *Loop) handle(m Message) error {
	switch msg := m.(type) {
	case Init:
		if err := l.game.Setup(msg.Settings); err != nil {
			return fmt.Errorf("failed to apply settings: %w", err)
		}
		l.sent = false
		// Nobody read the last game's result; it no longer applies.
		select {
		case <-l.outbox:
		default:
		}
	case Turn:
		l.game.Turn(msg.Direction)
	case Shutdown:
		return ErrShutdown
	}
	return nil
}

// presenter is implemented by surfaces that buffer a frame until shown.
type presenter interface {
	Show()
}

// Draw paints the computed frame.
func (l *Loop) Draw(screen render.Surface) error {
	if err := l.game.Paint(screen); err != nil {
		return err
	}
	if p, ok := screen.(presenter); ok {
		p.Show()
	}
	return nil
}

// Tick runs one full frame.
func (l *Loop) Tick(screen render.Surface) error {
	if err := l.Update(); err != nil {
		return err
	}
	return l.Draw(screen)
}

// Run ticks at the configured frame rate until ctx is done or a Shutdown
// message arrives, both of which return nil. Any other error stops the loop
// and is returned.
func (l *Loop) Run(ctx context.Context, screen render.Surface) error {
	interval := time.Second / time.Duration(l.game.Settings.Display.FrameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("Render loop started at %d fps", l.game.Settings.Display.FrameRate)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := l.Tick(screen)
			if errors.Is(err, ErrShutdown) {
				log.Printf("Render loop stopped after %d frames", l.game.FrameCount)
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}
