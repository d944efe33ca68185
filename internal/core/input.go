package core

// Action is a semantic command decoded from a key press.
type Action uint8

const (
	ActionNone Action = iota

	// Steering, clockwise from north.
	ActionNorth
	ActionNorthEast
	ActionEast
	ActionSouthEast
	ActionSouth
	ActionSouthWest
	ActionWest
	ActionNorthWest

	ActionWait    // Hold position for one turn
	ActionFire    // Arm the torpedo tube; the next steering key fires
	ActionAhead   // Full ahead; the next steering key navigates the maximum distance
	ActionPause   // Toggle pause
	ActionRestart // Start a new game after game over
	ActionQuit    // Leave the session
	ActionConfirm // Accept a menu choice
	ActionBack    // Return to the menu

	actionCount
)

var actionNames = [...]string{
	ActionNone:      "None",
	ActionNorth:     "North",
	ActionNorthEast: "NorthEast",
	ActionEast:      "East",
	ActionSouthEast: "SouthEast",
	ActionSouth:     "South",
	ActionSouthWest: "SouthWest",
	ActionWest:      "West",
	ActionNorthWest: "NorthWest",
	ActionWait:      "Wait",
	ActionFire:      "Fire",
	ActionAhead:     "Ahead",
	ActionPause:     "Pause",
	ActionRestart:   "Restart",
	ActionQuit:      "Quit",
	ActionConfirm:   "Confirm",
	ActionBack:      "Back",
}

// String returns the action name.
func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "Unknown"
}

// Steering returns the grid offset of a steering action. ok is false for
// every other action. y grows southwards.
func (a Action) Steering() (dx, dy int, ok bool) {
	switch a {
	case ActionNorth:
		return 0, -1, true
	case ActionNorthEast:
		return 1, -1, true
	case ActionEast:
		return 1, 0, true
	case ActionSouthEast:
		return 1, 1, true
	case ActionSouth:
		return 0, 1, true
	case ActionSouthWest:
		return -1, 1, true
	case ActionWest:
		return -1, 0, true
	case ActionNorthWest:
		return -1, -1, true
	}
	return 0, 0, false
}

// InputFrame is the set of actions triggered during one platform tick.
type InputFrame struct {
	pressed uint32
}

// NewInputFrame returns a frame holding the given actions.
func NewInputFrame(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks a as triggered.
func (f *InputFrame) Set(a Action) {
	if a != ActionNone && a < actionCount {
		f.pressed |= 1 << a
	}
}

// Has reports whether a was triggered.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.pressed&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.pressed == 0
}

// Clear drops every action.
func (f *InputFrame) Clear() {
	f.pressed = 0
}

// Steering returns the first steering action in the frame, clockwise from
// north.
func (f InputFrame) Steering() (Action, bool) {
	for a := ActionNorth; a <= ActionNorthWest; a++ {
		if f.Has(a) {
			return a, true
		}
	}
	return ActionNone, false
}
