package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/funnsam/termray/pkg/core"
	"github.com/funnsam/termray/pkg/renderer"
)

// Action is what a key press asks the viewer to do
type Action int

const (
	ActionNone Action = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionMoveForward
	ActionMoveBack
	ActionYawDown
	ActionYawUp
	ActionPitchRight
	ActionPitchLeft
	ActionFocusFarther
	ActionFocusNearer
	ActionApertureWider
	ActionApertureNarrower
	ActionFocusOnTarget
	ActionStill
	ActionQuit
)

var actionNames = map[Action]string{
	ActionNone:             "none",
	ActionMoveLeft:         "move left",
	ActionMoveRight:        "move right",
	ActionMoveUp:           "move up",
	ActionMoveDown:         "move down",
	ActionMoveForward:      "move forward",
	ActionMoveBack:         "move back",
	ActionYawDown:          "yaw down",
	ActionYawUp:            "yaw up",
	ActionPitchRight:       "pitch right",
	ActionPitchLeft:        "pitch left",
	ActionFocusFarther:     "focus farther",
	ActionFocusNearer:      "focus nearer",
	ActionApertureWider:    "aperture wider",
	ActionApertureNarrower: "aperture narrower",
	ActionFocusOnTarget:    "focus on target",
	ActionStill:            "still",
	ActionQuit:             "quit",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

var runeActions = map[rune]Action{
	'a': ActionMoveLeft,
	'd': ActionMoveRight,
	'q': ActionMoveUp,
	'e': ActionMoveDown,
	'w': ActionMoveForward,
	's': ActionMoveBack,
}

var keyActions = map[tcell.Key]Action{
	tcell.KeyDown:       ActionYawDown,
	tcell.KeyUp:         ActionYawUp,
	tcell.KeyRight:      ActionPitchRight,
	tcell.KeyLeft:       ActionPitchLeft,
	tcell.KeyHome:       ActionFocusFarther,
	tcell.KeyEnd:        ActionFocusNearer,
	tcell.KeyPgUp:       ActionApertureWider,
	tcell.KeyPgDn:       ActionApertureNarrower,
	tcell.KeyBackspace:  ActionFocusOnTarget,
	tcell.KeyBackspace2: ActionFocusOnTarget,
	tcell.KeyF12:        ActionStill,
	tcell.KeyEscape:     ActionQuit,
	tcell.KeyCtrlC:      ActionQuit,
}

// KeyAction maps a key event to its action
func KeyAction(ev *tcell.EventKey) Action {
	if ev.Key() != tcell.KeyRune {
		return keyActions[ev.Key()]
	}
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		if ev.Rune() == 'c' {
			return ActionQuit
		}
		return ActionNone
	}
	return runeActions[ev.Rune()]
}

// Apply performs a camera action on state and reports whether the view
// changed. Actions that do not touch the camera report false.
func Apply(state *renderer.State, action Action, config Config) bool {
	switch action {
	case ActionMoveLeft:
		return move(state, core.NewVec3(1, 0, 0), config.MoveStep)
	case ActionMoveRight:
		return move(state, core.NewVec3(-1, 0, 0), config.MoveStep)
	case ActionMoveUp:
		return move(state, core.NewVec3(0, 1, 0), config.MoveStep)
	case ActionMoveDown:
		return move(state, core.NewVec3(0, -1, 0), config.MoveStep)
	case ActionMoveForward:
		return move(state, core.NewVec3(0, 0, 1), config.MoveStep)
	case ActionMoveBack:
		return move(state, core.NewVec3(0, 0, -1), config.MoveStep)

	case ActionYawDown:
		state.Rotation.X += config.RotateStep
	case ActionYawUp:
		state.Rotation.X -= config.RotateStep
	case ActionPitchRight:
		state.Rotation.Y += config.RotateStep
	case ActionPitchLeft:
		state.Rotation.Y -= config.RotateStep

	case ActionFocusFarther:
		state.Focus += config.FocusStep
	case ActionFocusNearer:
		focus := max(state.Focus-config.FocusStep, renderer.MinFocus)
		if focus == state.Focus {
			return false
		}
		state.Focus = focus
	case ActionApertureWider:
		state.Aperture += config.ApertureStep
	case ActionApertureNarrower:
		aperture := max(state.Aperture-config.ApertureStep, 0)
		if aperture == state.Aperture {
			return false
		}
		state.Aperture = aperture
	case ActionFocusOnTarget:
		return focusOnTarget(state)

	default:
		return false
	}
	return true
}

// move steps along axis as seen from the camera
func move(state *renderer.State, axis core.Vec3, step float64) bool {
	state.Position = state.Position.Add(renderer.Rotate(axis, state.Rotation).Multiply(step))
	return true
}

// focusOnTarget sets the focal distance to whatever lies straight ahead
func focusOnTarget(state *renderer.State) bool {
	if state.Scene == nil {
		return false
	}
	hit, _, ok := state.Scene.Hit(core.NewRay(state.Position, state.Forward()))
	if !ok || hit.T == state.Focus {
		return false
	}
	state.Focus = hit.T
	return true
}
