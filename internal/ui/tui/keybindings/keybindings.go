package keybindings

import tea "github.com/charmbracelet/bubbletea"

// Action represents a specific action that can be triggered by a key
type Action string

// Define all possible actions
const (
	// Global actions
	ActionQuit       Action = "quit"
	ActionToggleHelp Action = "toggle_help"
	ActionSignOut    Action = "sign_out"
	ActionBack       Action = "back" // General purpose "go back" or "cancel"

	// Navigation actions
	ActionMoveUp     Action = "move_up"
	ActionMoveDown   Action = "move_down"
	ActionMoveLeft   Action = "move_left"
	ActionMoveRight  Action = "move_right"
	ActionPageUp     Action = "page_up"
	ActionPageDown   Action = "page_down"
	ActionMoveTop    Action = "move_top"
	ActionMoveBottom Action = "move_bottom"

	// Auth view actions
	ActionSubmit     Action = "submit"
	ActionNextField  Action = "next_field"
	ActionSwitchMode Action = "switch_mode"

	// Profile picker actions
	ActionSelectProfile Action = "select_profile"
	ActionNewProfile    Action = "new_profile"
	ActionDeleteProfile Action = "delete_profile"

	// Browse actions
	ActionOpenDetails    Action = "open_details"
	ActionPlay           Action = "play"
	ActionToggleWishlist Action = "toggle_wishlist"
	ActionRefreshCatalog Action = "refresh_catalog"
	ActionEnableSearch   Action = "enable_search"
	ActionSearchComplete Action = "search_complete"
	ActionNextTab        Action = "next_tab"
	ActionPrevTab        Action = "prev_tab"

	// Music view actions
	ActionCycleGenre Action = "cycle_genre"

	// Playback actions
	ActionTogglePlay   Action = "toggle_play"
	ActionSkipBack     Action = "skip_back"
	ActionSkipForward  Action = "skip_forward"
	ActionVolumeUp     Action = "volume_up"
	ActionVolumeDown   Action = "volume_down"
	ActionToggleMute   Action = "toggle_mute"
	ActionRetry        Action = "retry"
	ActionClosePlayer  Action = "close_player"
)

// ContextName represents a specific UI context in the application that has its own keybinds
type ContextName string

const (
	ContextGlobal     ContextName = "global"
	ContextAuth       ContextName = "auth"
	ContextProfiles   ContextName = "profiles"
	ContextBrowse     ContextName = "browse"
	ContextDetails    ContextName = "details"
	ContextMusic      ContextName = "music"
	ContextPlayer     ContextName = "player"
	ContextSearchMode ContextName = "search_mode"
	ContextHelp       ContextName = "help"
)

var ContextBindings = map[ContextName][]Binding{
	ContextGlobal:     globalBindings,
	ContextAuth:       authBindings,
	ContextProfiles:   profileBindings,
	ContextBrowse:     browseBindings,
	ContextDetails:    detailBindings,
	ContextMusic:      musicBindings,
	ContextPlayer:     playerBindings,
	ContextSearchMode: searchModeBindings,
	ContextHelp:       helpBindings,
}

// KeyMap stores the mappings from actions to key sequences for each context
type KeyMap struct {
	Primary   string
	Secondary string // Optional alternative key
	Help      string // Description for help screen
}

// Binding maps an action to its keys and help text
type Binding struct {
	Action Action
	KeyMap KeyMap
}

// navigationBindings contains general navigation bindings for consistent navigation across the app
var navigationBindings = []Binding{
	{
		Action: ActionMoveUp,
		KeyMap: KeyMap{
			Primary:   "up",
			Secondary: "k",
			Help:      "Move cursor up",
		},
	},
	{
		Action: ActionMoveDown,
		KeyMap: KeyMap{
			Primary:   "down",
			Secondary: "j",
			Help:      "Move cursor down",
		},
	},
	{
		Action: ActionMoveLeft,
		KeyMap: KeyMap{
			Primary:   "left",
			Secondary: "h",
			Help:      "Move cursor left",
		},
	},
	{
		Action: ActionMoveRight,
		KeyMap: KeyMap{
			Primary:   "right",
			Secondary: "l",
			Help:      "Move cursor right",
		},
	},
	{
		Action: ActionPageUp,
		KeyMap: KeyMap{
			Primary: "pgup",
			Help:    "Move up one page",
		},
	},
	{
		Action: ActionPageDown,
		KeyMap: KeyMap{
			Primary: "pgdown",
			Help:    "Move down one page",
		},
	},
	{
		Action: ActionMoveTop,
		KeyMap: KeyMap{
			Primary: "home",
			Help:    "Move top of view",
		},
	},
	{
		Action: ActionMoveBottom,
		KeyMap: KeyMap{
			Primary: "end",
			Help:    "Move bottom of view",
		},
	},
}

// globalBindings contains key bindings that work across all views
var globalBindings = []Binding{
	{
		Action: ActionQuit,
		KeyMap: KeyMap{
			Primary: "ctrl+c",
			Help:    "Quit application",
		},
	},
	{
		Action: ActionToggleHelp,
		KeyMap: KeyMap{
			Primary: "ctrl+h",
			Help:    "Toggle help screen",
		},
	},
	{
		Action: ActionSignOut,
		KeyMap: KeyMap{
			Primary: "ctrl+l",
			Help:    "Sign out",
		},
	},
	{
		Action: ActionBack,
		KeyMap: KeyMap{
			Primary: "esc",
			Help:    "Go back/cancel current action",
		},
	},
}

// authBindings contains key bindings specific to the sign in/up view
var authBindings = []Binding{
	{
		Action: ActionSubmit,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Submit the form",
		},
	},
	{
		Action: ActionNextField,
		KeyMap: KeyMap{
			Primary:   "tab",
			Secondary: "down",
			Help:      "Move to next field",
		},
	},
	{
		Action: ActionSwitchMode,
		KeyMap: KeyMap{
			Primary: "ctrl+s",
			Help:    "Switch between sign in and sign up",
		},
	},
}

// profileBindings contains key bindings specific to the profile picker
var profileBindings = withNavigation([]Binding{
	{
		Action: ActionSelectProfile,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Use selected profile",
		},
	},
	{
		Action: ActionNewProfile,
		KeyMap: KeyMap{
			Primary: "n",
			Help:    "Create a new profile",
		},
	},
	{
		Action: ActionDeleteProfile,
		KeyMap: KeyMap{
			Primary: "ctrl+d",
			Help:    "Delete selected profile",
		},
	},
})

// browseBindings contains key bindings specific to the catalog browse view
var browseBindings = withNavigation([]Binding{
	{
		Action: ActionOpenDetails,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Open details for selection",
		},
	},
	{
		Action: ActionPlay,
		KeyMap: KeyMap{
			Primary: "p",
			Help:    "Play selection",
		},
	},
	{
		Action: ActionToggleWishlist,
		KeyMap: KeyMap{
			Primary: "w",
			Help:    "Add/remove selection on my list",
		},
	},
	{
		Action: ActionRefreshCatalog,
		KeyMap: KeyMap{
			Primary: "r",
			Help:    "Refresh catalog",
		},
	},
	{
		Action: ActionEnableSearch,
		KeyMap: KeyMap{
			Primary:   "/",
			Secondary: "ctrl+f",
			Help:      "Search the catalog",
		},
	},
	{
		Action: ActionNextTab,
		KeyMap: KeyMap{
			Primary: "tab",
			Help:    "Next tab",
		},
	},
	{
		Action: ActionPrevTab,
		KeyMap: KeyMap{
			Primary: "shift+tab",
			Help:    "Previous tab",
		},
	},
})

// detailBindings contains key bindings specific to the details modal
var detailBindings = withNavigation([]Binding{
	{
		Action: ActionPlay,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Play (selected episode for series)",
		},
	},
	{
		Action: ActionToggleWishlist,
		KeyMap: KeyMap{
			Primary: "w",
			Help:    "Add/remove on my list",
		},
	},
})

// musicBindings contains key bindings specific to the music view
var musicBindings = withNavigation([]Binding{
	{
		Action: ActionPlay,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Play selected track",
		},
	},
	{
		Action: ActionCycleGenre,
		KeyMap: KeyMap{
			Primary: "g",
			Help:    "Cycle genre filter",
		},
	},
	{
		Action: ActionEnableSearch,
		KeyMap: KeyMap{
			Primary:   "/",
			Secondary: "ctrl+f",
			Help:      "Filter tracks",
		},
	},
	{
		Action: ActionNextTab,
		KeyMap: KeyMap{
			Primary: "tab",
			Help:    "Next tab",
		},
	},
	{
		Action: ActionPrevTab,
		KeyMap: KeyMap{
			Primary: "shift+tab",
			Help:    "Previous tab",
		},
	},
})

// playerBindings contains key bindings specific to the player view
var playerBindings = []Binding{
	{
		Action: ActionTogglePlay,
		KeyMap: KeyMap{
			Primary:   " ",
			Secondary: "p",
			Help:      "Play/pause",
		},
	},
	{
		Action: ActionSkipBack,
		KeyMap: KeyMap{
			Primary: "left",
			Help:    "Skip back 10 seconds",
		},
	},
	{
		Action: ActionSkipForward,
		KeyMap: KeyMap{
			Primary: "right",
			Help:    "Skip forward 10 seconds",
		},
	},
	{
		Action: ActionVolumeUp,
		KeyMap: KeyMap{
			Primary:   "up",
			Secondary: "+",
			Help:      "Volume up",
		},
	},
	{
		Action: ActionVolumeDown,
		KeyMap: KeyMap{
			Primary:   "down",
			Secondary: "-",
			Help:      "Volume down",
		},
	},
	{
		Action: ActionToggleMute,
		KeyMap: KeyMap{
			Primary: "m",
			Help:    "Mute/unmute",
		},
	},
	{
		Action: ActionRetry,
		KeyMap: KeyMap{
			Primary: "r",
			Help:    "Retry playback after a failure",
		},
	},
	{
		Action: ActionClosePlayer,
		KeyMap: KeyMap{
			Primary:   "esc",
			Secondary: "q",
			Help:      "Close the player",
		},
	},
}

// helpBindings contains key bindings specific to the help view
var helpBindings = withNavigation([]Binding{})

// searchModeBindings contains key bindings specific for when search mode is active
var searchModeBindings = []Binding{
	{
		Action: ActionBack,
		KeyMap: KeyMap{
			Primary:   "esc",
			Secondary: "ctrl+f",
			Help:      "Exit search mode and remove the filter",
		},
	},
	{
		Action: ActionSearchComplete,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Apply the search filter and return control to the original view",
		},
	},
}

// GetActionKey returns the primary key for an action
func GetActionKey(action Action, bindings []Binding) string {
	for _, binding := range bindings {
		if binding.Action == action {
			return binding.KeyMap.Primary
		}
	}
	return ""
}

// GetBindingByKey returns the action and help text for a given key
func GetBindingByKey(key string, bindings []Binding) (Action, string) {
	for _, binding := range bindings {
		if binding.KeyMap.Primary == key || binding.KeyMap.Secondary == key {
			return binding.Action, binding.KeyMap.Help
		}
	}
	return "", ""
}

// GetActionByKey returns just the action for a given key, or an empty Action if not found
func GetActionByKey(keyMsg tea.KeyMsg, name ContextName) Action {
	if bindings, exists := ContextBindings[name]; exists {
		key := keyMsg.String()
		for _, binding := range bindings {
			if binding.KeyMap.Primary == key || binding.KeyMap.Secondary == key {
				return binding.Action
			}
		}
	}
	return ""
}

// FormatKeyHelp formats a key binding for display in help text
func FormatKeyHelp(binding Binding) string {
	if binding.KeyMap.Secondary != "" {
		return binding.KeyMap.Primary + "/" + binding.KeyMap.Secondary + ": " + binding.KeyMap.Help
	}
	return binding.KeyMap.Primary + ": " + binding.KeyMap.Help
}

// GetHelpText generates formatted help text for a set of bindings
func GetHelpText(title string, bindings []Binding) string {
	helpText := "## " + title + "\n\n"
	for _, binding := range bindings {
		helpText += "* " + FormatKeyHelp(binding) + "\n"
	}
	return helpText
}

// withNavigation is a helper function to include navigation bindings in other binding sets
func withNavigation(bindings []Binding) []Binding {
	return append(append([]Binding{}, navigationBindings...), bindings...)
}
