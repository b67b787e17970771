package model

// NominatimResult is one entry of the Nominatim search response array.
// Coordinates arrive as strings.
type NominatimResult struct {
	AddressType string `json:"addresstype"`
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// IPInfoResponse is the subset of the ipinfo.io JSON body used for IP
// geolocation. Loc is a combined "lat,lon" field; both fields are optional.
type IPInfoResponse struct {
	City string `json:"city"`
	Loc  string `json:"loc"`
}
