package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, K, Up arrow - move cursor up
	ActionDown            // S, J, Down arrow - move cursor down
	ActionLeft            // A, H, Left arrow - move cursor left
	ActionRight           // D, L, Right arrow - move cursor right
	ActionRotate          // Space, R - rotate the tile under the cursor
	ActionPick            // Enter - pick up / drop a tile for swapping
	ActionHint            // I - briefly show the solved picture
	ActionTutorial        // ? - toggle the how-to-play overlay
	ActionBack            // B, Escape - leave the stage
	ActionRestart         // N - new attempt with a fresh scramble
	ActionQuit            // Q, Ctrl+C - exit
	ActionPause           // P - pause/unpause the countdown
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRotate:
		return "Rotate"
	case ActionPick:
		return "Pick"
	case ActionHint:
		return "Hint"
	case ActionTutorial:
		return "Tutorial"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// GestureKind distinguishes pointer gestures.
type GestureKind int

const (
	GestureTap  GestureKind = iota // press and release on the same slot
	GestureDrag                    // press on one slot, release on another
)

// Gesture is a pointer intent already resolved to board slots.
type Gesture struct {
	Kind GestureKind
	From int
	To   int
}

// InputFrame represents the input for one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
	// Gestures are applied in arrival order.
	Gestures []Gesture
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

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// AddGesture queues a pointer gesture for this frame.
func (f *InputFrame) AddGesture(g Gesture) {
	f.Gestures = append(f.Gestures, g)
}

// Clear resets all actions and gestures for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Gestures = f.Gestures[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Gestures = append(clone.Gestures, f.Gestures...)
	return clone
}
