package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestHeldKeys(t *testing.T) {
	in := New()
	in.handle(Event{Type: EventKeyDown, Key: sdl.SCANCODE_W})
	in.handle(Event{Type: EventKeyDown, Key: sdl.SCANCODE_D})

	if !in.IsKeyDown(sdl.SCANCODE_W) || !in.IsKeyPressed(sdl.SCANCODE_W) {
		t.Error("W should be held and pressed this frame")
	}

	in.beginFrame()
	if in.IsKeyPressed(sdl.SCANCODE_W) {
		t.Error("press should not carry over to the next frame")
	}
	if !in.IsKeyDown(sdl.SCANCODE_W) {
		t.Error("held state should carry over to the next frame")
	}

	in.handle(Event{Type: EventKeyUp, Key: sdl.SCANCODE_W})
	if in.IsKeyDown(sdl.SCANCODE_W) {
		t.Error("W should be released")
	}
}

func TestKeyRepeatIsNotAPress(t *testing.T) {
	in := New()
	in.handle(Event{Type: EventKeyDown, Key: sdl.SCANCODE_SPACE, Repeat: true})
	if in.IsKeyPressed(sdl.SCANCODE_SPACE) {
		t.Error("repeat should not count as a press")
	}
}

func TestAxis(t *testing.T) {
	tests := []struct {
		name string
		keys []sdl.Scancode
		want float32
	}{
		{"none", nil, 0},
		{"forward", []sdl.Scancode{sdl.SCANCODE_W}, 1},
		{"back", []sdl.Scancode{sdl.SCANCODE_S}, -1},
		{"both cancel", []sdl.Scancode{sdl.SCANCODE_W, sdl.SCANCODE_S}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := New()
			for _, k := range tt.keys {
				in.handle(Event{Type: EventKeyDown, Key: k})
			}
			if got := in.Axis(sdl.SCANCODE_S, sdl.SCANCODE_W); got != tt.want {
				t.Errorf("Axis = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMouseAccumulation(t *testing.T) {
	in := New()
	in.handle(Event{Type: EventMouseMove, DeltaX: 3, DeltaY: -1})
	in.handle(Event{Type: EventMouseMove, DeltaX: 2, DeltaY: -4})
	in.handle(Event{Type: EventMouseWheel, Wheel: 1})
	in.handle(Event{Type: EventMouseDown, Button: sdl.BUTTON_RIGHT})

	if dx, dy := in.MouseDelta(); dx != 5 || dy != -5 {
		t.Errorf("MouseDelta = %d, %d", dx, dy)
	}
	if in.Wheel() != 1 || !in.IsButtonDown(sdl.BUTTON_RIGHT) {
		t.Errorf("wheel %d, right button %v", in.Wheel(), in.IsButtonDown(sdl.BUTTON_RIGHT))
	}

	in.beginFrame()
	if dx, dy := in.MouseDelta(); dx != 0 || dy != 0 || in.Wheel() != 0 {
		t.Error("per-frame motion should reset")
	}
	if !in.IsButtonDown(sdl.BUTTON_RIGHT) {
		t.Error("held button should carry over")
	}
}

func TestQuitEvent(t *testing.T) {
	in := New()
	in.handle(Event{Type: EventQuit})
	if !in.quit || len(in.Events()) != 1 {
		t.Error("quit event not recorded")
	}
}
