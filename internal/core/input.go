package core

// Action represents a semantic viewer action, abstracted from physical key presses.
type Action int

const (
	ActionNone   Action = iota
	ActionToggle        // Space - run or pause the simulation
	ActionStep          // N, . - advance exactly one tick while paused
	ActionFaster        // +, = - raise the tick rate
	ActionSlower        // - - lower the tick rate
	ActionReset         // R - rebuild the simulation from its seed
	ActionHelp          // ? - toggle the full help view
	ActionQuit          // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionToggle:
		return "Toggle"
	case ActionStep:
		return "Step"
	case ActionFaster:
		return "Faster"
	case ActionSlower:
		return "Slower"
	case ActionReset:
		return "Reset"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
