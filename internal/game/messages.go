package game

import (
	"encoding/json"
	"fmt"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/settings"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/world/player"
)

// GameOverEndpoint is where clients are sent when the player crashes.
const GameOverEndpoint = "/gameover"

// Message is one value passed between the input side and the render loop.
type Message interface {
	messageType() string
}

// Init restarts the game with new settings.
type Init struct {
	Settings *settings.Config
}

// Turn asks the player to turn.
type Turn struct {
	Direction player.Direction
}

// GameOver is sent once by the render loop when the player crashes.
type GameOver struct {
	Endpoint string
}

// Shutdown stops the render loop.
type Shutdown struct{}

func (Init) messageType() string     { return "init" }
func (Turn) messageType() string     { return "turn" }
func (GameOver) messageType() string { return "gameover" }
func (Shutdown) messageType() string { return "shutdown" }

// envelope is the JSON wire form of a Message
type envelope struct {
	Type      string           `json:"type"`
	Direction string           `json:"direction,omitempty"`
	Endpoint  string           `json:"endpoint,omitempty"`
	Settings  *settings.Config `json:"settings,omitempty"`
}

// EncodeMessage returns the JSON wire form of m.
func EncodeMessage(m Message) ([]byte, error) {
	env := envelope{Type: m.messageType()}
	switch msg := m.(type) {
	case Init:
		env.Settings = msg.Settings
	case Turn:
		env.Direction = msg.Direction.String()
	case GameOver:
		env.Endpoint = msg.Endpoint
	}
	return json.Marshal(env)
}

// DecodeMessage parses the JSON wire form of a Message.
func DecodeMessage(data []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}

	switch env.Type {
	case "init":
		if env.Settings == nil {
			return nil, fmt.Errorf("init message without settings")
		}
		return Init{Settings: env.Settings}, nil
	case "turn":
		d, err := player.ParseDirection(env.Direction)
		if err != nil {
			return nil, fmt.Errorf("invalid turn message: %w", err)
		}
		return Turn{Direction: d}, nil
	case "gameover":
		return GameOver{Endpoint: env.Endpoint}, nil
	case "shutdown":
		return Shutdown{}, nil
	}
	return nil, fmt.Errorf("unknown message type %q", env.Type)
}
