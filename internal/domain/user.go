package domain

// User represents the authenticated account on the catalog service
type User struct {
	ID    string
	Email string
}

// Profile is one of the viewing profiles belonging to a user account.  A user
// has at most MaxProfiles of them; the first created profile is the main one.
type Profile struct {
	ID          string
	Name        string
	AvatarIndex int
	IsMain      bool
}

// MaxProfiles is the maximum number of profiles per account
const MaxProfiles = 5
