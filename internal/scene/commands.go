package scene

// Command is a keyboard-level action.
type Command int

const (
	CommandNone Command = iota
	CommandReset
	CommandToggleEdges
	CommandToggleNodes
	CommandToggleAxes
	CommandScreenshot
	CommandQuit
)

func (c Command) String() string {
	switch c {
	case CommandReset:
		return "reset"
	case CommandToggleEdges:
		return "toggle-edges"
	case CommandToggleNodes:
		return "toggle-nodes"
	case CommandToggleAxes:
		return "toggle-axes"
	case CommandScreenshot:
		return "screenshot"
	case CommandQuit:
		return "quit"
	}
	return "none"
}

// Visibility selects which layers are drawn.
type Visibility struct {
	Nodes bool
	Edges bool
	Axes  bool
}

// Apply toggles the layer named by cmd and reports whether cmd was a
// visibility command.
func (v *Visibility) Apply(cmd Command) bool {
	switch cmd {
	case CommandToggleEdges:
		v.Edges = !v.Edges
	case CommandToggleNodes:
		v.Nodes = !v.Nodes
	case CommandToggleAxes:
		v.Axes = !v.Axes
	default:
		return false
	}
	return true
}
