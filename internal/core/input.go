package core

// Action is a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionMoveUp           // W - hero/cursor up
	ActionMoveDown         // S
	ActionMoveLeft         // A
	ActionMoveRight        // D
	ActionAimUp            // Up arrow, k - aim cursor up
	ActionAimDown          // Down arrow, j
	ActionAimLeft          // Left arrow, h
	ActionAimRight         // Right arrow, l
	ActionReveal           // Space - primary action on the cursor cell
	ActionFlag             // F - secondary action on the cursor cell
	ActionCast             // C - cast the hero's spell
	ActionInteract         // E - use an adjacent shrine
	ActionHint             // ? - show a deduced safe cell or trap
	ActionConfirm          // Enter
	ActionBack             // Escape
	ActionRestart          // R - new round
	ActionQuit             // Q, Ctrl+C
	ActionPause            // P
)

var actionNames = map[Action]string{
	ActionNone:      "None",
	ActionMoveUp:    "MoveUp",
	ActionMoveDown:  "MoveDown",
	ActionMoveLeft:  "MoveLeft",
	ActionMoveRight: "MoveRight",
	ActionAimUp:     "AimUp",
	ActionAimDown:   "AimDown",
	ActionAimLeft:   "AimLeft",
	ActionAimRight:  "AimRight",
	ActionReveal:    "Reveal",
	ActionFlag:      "Flag",
	ActionCast:      "Cast",
	ActionInteract:  "Interact",
	ActionHint:      "Hint",
	ActionConfirm:   "Confirm",
	ActionBack:      "Back",
	ActionRestart:   "Restart",
	ActionQuit:      "Quit",
	ActionPause:     "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame is the set of actions triggered during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Any reports whether at least one of the given actions was triggered.
func (f InputFrame) Any(actions ...Action) bool {
	for _, a := range actions {
		if f.Actions[a] {
			return true
		}
	}
	return false
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
