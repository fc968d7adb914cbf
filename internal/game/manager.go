package game

import (
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/render"
	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/world/player"
)

// KeyMessage maps a key press to the message it sends.
func KeyMessage(key render.Key) (Message, bool) {
	switch key {
	case render.KeyLeft, render.KeyA:
		return Turn{Direction: player.Left}, true
	case render.KeyRight, render.KeyD:
		return Turn{Direction: player.Right}, true
	case render.KeyEscape:
		return Shutdown{}, true
	}
	return nil, false
}

var watchedKeys = []render.Key{render.KeyLeft, render.KeyA, render.KeyRight, render.KeyD, render.KeyEscape}

// Manager adapts a Loop to render.Game for engines that call Update and
// Draw themselves.
type Manager struct {
	Loop     *Loop
	InputMgr render.InputManager

	drawErr error
	fresh   bool // a computed frame is waiting to be painted
}

// NewManager creates a new game manager.
func NewManager(loop *Loop, input render.InputManager) *Manager {
	return &Manager{Loop: loop, InputMgr: input}
}

// Update polls keys into the loop's inbox and advances one frame. A paint
// failure from the previous Draw is reported here.
func (m *Manager) Update() error {
	if m.drawErr != nil {
		return m.drawErr
	}

	for _, key := range watchedKeys {
		if !m.InputMgr.IsKeyJustPressed(key) {
			continue
		}
		if msg, ok := KeyMessage(key); ok {
			m.Loop.Send(msg)
		}
	}

	if err := m.Loop.Update(); err != nil {
		return err
	}
	m.fresh = true
	return nil
}

// Draw paints the frame computed by the last Update. Extra Draw calls
// between two Updates keep the previous frame on screen.
func (m *Manager) Draw(screen render.Surface) {
	if !m.fresh {
		return
	}
	m.fresh = false
	if err := m.Loop.Draw(screen); err != nil {
		m.drawErr = err
	}
}

// Layout returns the game's logical screen size.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	return m.Loop.Game().Layout(outsideWidth, outsideHeight)
}
