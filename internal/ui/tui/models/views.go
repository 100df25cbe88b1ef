package models

// View represents a specific UI view in the application
type View string

// Available views in the application
const (
	ViewAuth     View = "auth"
	ViewProfiles View = "profiles"
	ViewBrowse   View = "browse"
	ViewMusic    View = "music"
	ViewPlayer   View = "player"
)

// Modal represents a UI intended to be temporarily shown to the user before returning to the original view
type Modal string

// Available modals in the application
const (
	ModalNone    Modal = "none"
	ModalHelp    Modal = "help"
	ModalDetails Modal = "details"
)

// Tab is one of the top-level catalog tabs
type Tab int

const (
	TabHome Tab = iota
	TabMovies
	TabSeries
	TabMyList
	TabMusic
)

var tabNames = []string{"Home", "Movies", "Series", "My List", "Music"}

func (t Tab) String() string {
	if int(t) < 0 || int(t) >= len(tabNames) {
		return "Unknown"
	}
	return tabNames[t]
}

// TabFromName maps a configured start tab name to a Tab
func TabFromName(name string) (Tab, bool) {
	switch name {
	case "home":
		return TabHome, true
	case "movies":
		return TabMovies, true
	case "series":
		return TabSeries, true
	case "wishlist", "my_list":
		return TabMyList, true
	case "music":
		return TabMusic, true
	default:
		return TabHome, false
	}
}
