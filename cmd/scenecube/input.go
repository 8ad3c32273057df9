package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

var movementKeys = map[glfw.Key]control{
	glfw.KeyUp:       controlForward,
	glfw.KeyDown:     controlBackward,
	glfw.KeyRight:    controlRight,
	glfw.KeyLeft:     controlLeft,
	glfw.KeyPageUp:   controlUp,
	glfw.KeyPageDown: controlDown,
}

var toggleKeys = map[glfw.Key]toggle{
	glfw.KeyF1: toggleAmbient,
	glfw.KeyF2: toggleDirectional,
	glfw.KeyF3: togglePoint,
	glfw.KeyF4: toggleFOVDown,
	glfw.KeyF5: toggleFOVUp,
	glfw.KeyF6: toggleOverlay,
	glfw.KeyP:  togglePrintCamera,
}

// input translates glfw callbacks into demo actions.
type input struct {
	demo     *demo
	dragging bool
	cursor   [2]float64
	tracking bool
}

func newInput(d *demo) *input {
	return &input{demo: d}
}

func (in *input) onKey(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
		return
	}
	if c, ok := movementKeys[key]; ok {
		switch action {
		case glfw.Press:
			in.demo.control(c, true)
		case glfw.Release:
			in.demo.control(c, false)
		}
		return
	}
	if t, ok := toggleKeys[key]; ok && action == glfw.Press {
		in.demo.toggle(t)
	}
}

func (in *input) onMouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	switch button {
	case glfw.MouseButtonLeft:
		in.dragging = action == glfw.Press
		in.tracking = false
	case glfw.MouseButtonRight:
		if action == glfw.Press {
			in.demo.markLine()
		}
	case glfw.MouseButtonMiddle:
		if action == glfw.Press {
			in.demo.clearLine()
		}
	}
}

func (in *input) onCursorPos(_ *glfw.Window, x, y float64) {
	prev := in.cursor
	in.cursor = [2]float64{x, y}
	if !in.dragging {
		return
	}
	// the first event of a drag only establishes the reference point
	if !in.tracking {
		in.tracking = true
		return
	}
	in.demo.mouseMove(float32(x-prev[0]), float32(y-prev[1]))
}
