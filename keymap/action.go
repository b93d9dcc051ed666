package keymap

// Action is what a key press asks the viewer to do
type Action uint8

const (
	ActionNone Action = iota // unbinds a key in overrides
	ActionQuit
	ActionInterrupt // quit as if interrupted by SIGINT
	ActionCancel    // leave search mode, or quit outside it
	ActionSearch
	ActionSearchNext
	ActionSearchPrev
	ActionDescend
	ActionAscend
	ActionUp
	ActionDown
	ActionPageUp
	ActionPageDown
	ActionHome
	ActionEnd
	ActionYankPath
	ActionYankValue
	ActionRedraw
)

// actionNames maps action names used in key binding files to actions
var actionNames = map[string]Action{
	"none":        ActionNone,
	"quit":        ActionQuit,
	"interrupt":   ActionInterrupt,
	"cancel":      ActionCancel,
	"search":      ActionSearch,
	"search_next": ActionSearchNext,
	"search_prev": ActionSearchPrev,
	"descend":     ActionDescend,
	"ascend":      ActionAscend,
	"up":          ActionUp,
	"down":        ActionDown,
	"page_up":     ActionPageUp,
	"page_down":   ActionPageDown,
	"home":        ActionHome,
	"end":         ActionEnd,
	"yank_path":   ActionYankPath,
	"yank_value":  ActionYankValue,
	"redraw":      ActionRedraw,
}

var actionToName map[Action]string

func init() {
	actionToName = make(map[Action]string, len(actionNames))
	for name, a := range actionNames {
		actionToName[a] = name
	}
}

func (a Action) String() string {
	if name, ok := actionToName[a]; ok {
		return name
	}
	return "unknown"
}

// ActionByName resolves a binding file action name
func ActionByName(name string) (Action, bool) {
	a, ok := actionNames[name]
	return a, ok
}
