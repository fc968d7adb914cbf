package game

import (
	"testing"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/settings"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/world/player"
)

func TestDecodeTurn(t *testing.T) {
	m, err := DecodeMessage([]byte(`{"type":"turn","direction":"left"}`))
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}
	if turn, ok := m.(Turn); !ok || turn.Direction != player.Left {
		t.Fatalf("message = %#v, want Turn{Left}", m)
	}
}

func TestEncodeGameOver(t *testing.T) {
	data, err := EncodeMessage(GameOver{Endpoint: GameOverEndpoint})
	if err != nil {
		t.Fatalf("EncodeMessage: %v", err)
	}
	if want := `{"type":"gameover","endpoint":"/gameover"}`; string(data) != want {
		t.Errorf("encoded = %s, want %s", data, want)
	}
}

func TestInitCarriesSettings(t *testing.T) {
	cfg := settings.DefaultConfig()
	cfg.Display.Resolution = 200
	data, err := EncodeMessage(Init{Settings: cfg})
	if err != nil {
		t.Fatalf("EncodeMessage: %v", err)
	}
	m, err := DecodeMessage(data)
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}
	msg, ok := m.(Init)
	if !ok || msg.Settings.Display.Resolution != 200 {
		t.Fatalf("message = %#v", m)
	}
}

func TestDecodeRejectsBadMessages(t *testing.T) {
	for _, data := range []string{
		`{"type":"turn","direction":"up"}`,
		`{"type":"jump"}`,
		`{"type":"init"}`,
		`not json`,
	} {
		if _, err := DecodeMessage([]byte(data)); err == nil {
			t.Errorf("DecodeMessage(%s) succeeded", data)
		}
	}
}
