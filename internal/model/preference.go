package model

// FavoriteEntry is one saved city for a user. A user holds at most five.
type FavoriteEntry struct {
	User string `json:"user"`
	City string `json:"city"`
}

// UnitPreference is a user's persisted unit system. One row per user,
// last write wins.
type UnitPreference struct {
	User string `json:"user"`
	Unit Unit   `json:"unit"`
}
