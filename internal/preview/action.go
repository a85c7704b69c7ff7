package preview

import "unicode/utf8"

// Action represents a viewer input action.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionZoomIn
	ActionZoomOut
	ActionMoreOctaves
	ActionFewerOctaves
	ActionMorePersistence
	ActionLessPersistence
	ActionMoreLacunarity
	ActionLessLacunarity
	ActionCycleGradient
	ActionReseed
	ActionQuit
)

// ParseInput converts raw terminal bytes into actions.
// Handles WASD, arrow key escape sequences, the tuning keys, Q and Ctrl-C.
func ParseInput(data []byte) []Action {
	var actions []Action
	i := 0
	for i < len(data) {
		// Check for escape sequences (arrow keys)
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			switch data[i+2] {
			case 'A':
				actions = append(actions, ActionUp)
			case 'B':
				actions = append(actions, ActionDown)
			case 'C':
				actions = append(actions, ActionRight)
			case 'D':
				actions = append(actions, ActionLeft)
			}
			i += 3
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'w', 'W':
			actions = append(actions, ActionUp)
		case 's', 'S':
			actions = append(actions, ActionDown)
		case 'a', 'A':
			actions = append(actions, ActionLeft)
		case 'd', 'D':
			actions = append(actions, ActionRight)
		case '+', '=':
			actions = append(actions, ActionZoomIn)
		case '-', '_':
			actions = append(actions, ActionZoomOut)
		case 'o':
			actions = append(actions, ActionMoreOctaves)
		case 'O':
			actions = append(actions, ActionFewerOctaves)
		case 'p':
			actions = append(actions, ActionMorePersistence)
		case 'P':
			actions = append(actions, ActionLessPersistence)
		case 'l':
			actions = append(actions, ActionMoreLacunarity)
		case 'L':
			actions = append(actions, ActionLessLacunarity)
		case 'c', 'C':
			actions = append(actions, ActionCycleGradient)
		case 'r', 'R':
			actions = append(actions, ActionReseed)
		case 'q', 'Q':
			actions = append(actions, ActionQuit)
		case 3: // Ctrl-C
			actions = append(actions, ActionQuit)
		}
		i += size
	}
	return actions
}
