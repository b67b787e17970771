package model

// Location is a resolved geographic position. Address is only present for
// geocoded results; IP-based lookups carry just the city name.
type Location struct {
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}
