// Package remote lets websocket clients steer the player and tells them
// when the game is over.
package remote

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/coder/websocket"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/game"
)

const shutdownTimeout = 5 * time.Second

// Sender is the render loop's inbox.
type Sender interface {
	Send(game.Message) bool
}

// Server serves the control stream on /stream and the game-over page.
type Server struct {
	hub  *Hub
	loop Sender
	mux  *http.ServeMux
}

// NewServer creates a server forwarding client turns to loop. level names
// the arena on the game-over page.
func NewServer(loop Sender, level string) *Server {
	s := &Server{hub: NewHub(), loop: loop, mux: http.NewServeMux()}
	s.mux.HandleFunc("/stream", s.handleStream)
	s.mux.Handle(game.GameOverEndpoint, templ.Handler(gameOverPage(level)))
	return s
}

// Hub returns the connected clients.
func (s *Server) Hub() *Hub { return s.hub }

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		return
	}
	s.hub.Add(conn)
	log.Printf("Remote client connected from %s", r.RemoteAddr)

	go func(c *websocket.Conn) {
		defer s.hub.Remove(c)
		defer c.Close(websocket.StatusNormalClosure, "")
		for {
			_, data, err := c.Read(context.Background())
			if err != nil {
				return
			}
			msg, err := game.DecodeMessage(data)
			if err != nil {
				log.Printf("Remote: %v", err)
				continue
			}
			// Clients may only steer.
			turn, ok := msg.(game.Turn)
			if !ok {
				continue
			}
			if !s.loop.Send(turn) {
				log.Printf("Remote: inbox full, dropped %s turn", turn.Direction)
			}
		}
	}(conn)
}

// Forward broadcasts every message from outbox until ctx is done or outbox
// is closed.
func (s *Server) Forward(ctx context.Context, outbox <-chan game.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-outbox:
			if !ok {
				return
			}
			s.Broadcast(m)
		}
	}
}

// Broadcast sends m to every connected client.
func (s *Server) Broadcast(m game.Message) {
	data, err := game.EncodeMessage(m)
	if err != nil {
		log.Printf("Remote: failed to encode message: %v", err)
		return
	}
	s.hub.Broadcast(data)
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.mux}

	errc := make(chan error, 1)
	go func() {
		log.Printf("Remote control listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
