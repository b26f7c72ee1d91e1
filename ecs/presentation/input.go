// Package presentation holds the systems that tie the simulation to ebiten:
// keyboard and gamepad input, the 3D renderer, the HUD and sound cues.
package presentation

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
)

type InputSystem struct {
	stickX float64
	stickY float64
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func anyJustPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func anyJustReleased(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustReleased(k) {
			return true
		}
	}
	return false
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	const stickDeadzone = 0.5

	in := component.Input{
		LeftPressed:        anyJustPressed(ebiten.KeyA, ebiten.KeyArrowLeft),
		RightPressed:       anyJustPressed(ebiten.KeyD, ebiten.KeyArrowRight),
		UpPressed:          anyJustPressed(ebiten.KeyW, ebiten.KeySpace, ebiten.KeyArrowUp),
		DownPressed:        anyJustPressed(ebiten.KeyS, ebiten.KeyArrowDown),
		HorizontalReleased: anyJustReleased(ebiten.KeyA, ebiten.KeyD, ebiten.KeyArrowLeft, ebiten.KeyArrowRight),
		StartPressed:       anyJustPressed(ebiten.KeyEnter, ebiten.KeyNumpadEnter),
		RestartPressed:     anyJustPressed(ebiten.KeyR),
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		pressed := func(b ebiten.StandardGamepadButton) bool {
			return inpututil.IsStandardGamepadButtonJustPressed(id, b)
		}
		in.LeftPressed = in.LeftPressed || pressed(ebiten.StandardGamepadButtonLeftLeft)
		in.RightPressed = in.RightPressed || pressed(ebiten.StandardGamepadButtonLeftRight)
		in.UpPressed = in.UpPressed || pressed(ebiten.StandardGamepadButtonLeftTop) || pressed(ebiten.StandardGamepadButtonRightBottom)
		in.DownPressed = in.DownPressed || pressed(ebiten.StandardGamepadButtonLeftBottom)
		in.StartPressed = in.StartPressed || pressed(ebiten.StandardGamepadButtonCenterRight)
		in.RestartPressed = in.RestartPressed || pressed(ebiten.StandardGamepadButtonCenterLeft)
		in.HorizontalReleased = in.HorizontalReleased ||
			inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonLeftLeft) ||
			inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonLeftRight)

		// the stick counts as a press when it crosses the deadzone
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		in.LeftPressed = in.LeftPressed || (x < -stickDeadzone && i.stickX >= -stickDeadzone)
		in.RightPressed = in.RightPressed || (x > stickDeadzone && i.stickX <= stickDeadzone)
		in.UpPressed = in.UpPressed || (y < -stickDeadzone && i.stickY >= -stickDeadzone)
		in.DownPressed = in.DownPressed || (y > stickDeadzone && i.stickY <= stickDeadzone)
		in.HorizontalReleased = in.HorizontalReleased || (math.Abs(x) <= stickDeadzone && math.Abs(i.stickX) > stickDeadzone)
		i.stickX, i.stickY = x, y
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		input.Merge(in)
	})
}
