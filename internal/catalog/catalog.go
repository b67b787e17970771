package catalog

// Condition is the display form of a WMO weather code.
type Condition struct {
	Label string
	Icon  string
}

// Unknown is returned for codes missing from the table, so every lookup
// yields a renderable value.
var Unknown = Condition{Label: "Unknown", Icon: "❓"}

// conditions maps WMO weather interpretation codes to display labels.
var conditions = map[int]Condition{
	0:  {"Clear Sky", "☀️"},
	1:  {"Mainly Clear", "🌤️"},
	2:  {"Partly Cloudy", "⛅"},
	3:  {"Overcast", "☁️"},
	45: {"Fog", "🌫️"},
	48: {"Depositing Rime Fog", "🌫️"},
	51: {"Light Drizzle", "🌦️"},
	53: {"Moderate Drizzle", "🌦️"},
	55: {"Dense Drizzle", "🌧️"},
	56: {"Light Freezing Drizzle", "🌧️"},
	57: {"Dense Freezing Drizzle", "🌧️"},
	61: {"Slight Rain", "🌧️"},
	63: {"Moderate Rain", "🌧️"},
	65: {"Heavy Rain", "🌧️"},
	66: {"Light Freezing Rain", "🌧️"},
	67: {"Heavy Freezing Rain", "🌧️"},
	71: {"Slight Snowfall", "🌨️"},
	73: {"Moderate Snowfall", "🌨️"},
	75: {"Heavy Snowfall", "❄️"},
	77: {"Snow Grains", "❄️"},
	80: {"Slight Rain Showers", "🌦️"},
	81: {"Moderate Rain Showers", "🌧️"},
	82: {"Violent Rain Showers", "⛈️"},
	85: {"Slight Snow Showers", "🌨️"},
	86: {"Heavy Snow Showers", "❄️"},
	95: {"Thunderstorm", "🌩️"},
	96: {"Thunderstorm With Slight Hail", "⛈️"},
	99: {"Thunderstorm With Heavy Hail", "⛈️"},
}

// Lookup returns the display condition for a weather code. The lookup is
// total: unmapped codes return Unknown rather than an empty value.
func Lookup(code int) Condition {
	if c, ok := conditions[code]; ok {
		return c
	}
	return Unknown
}

// Known reports whether a code has an explicit table entry.
func Known(code int) bool {
	_, ok := conditions[code]
	return ok
}

// Background bucket image paths served by the dashboard UI.
const (
	backgroundClear        = "/static/backgrounds/clear.jpg"
	backgroundCloudy       = "/static/backgrounds/cloudy.jpg"
	backgroundRainy        = "/static/backgrounds/rainy.jpg"
	backgroundSnowy        = "/static/backgrounds/snowy.jpg"
	backgroundThunderstorm = "/static/backgrounds/thunderstorm.jpg"
)

// BackgroundFor groups weather codes into five imagery buckets. Unmapped
// codes fall into the cloudy bucket.
func BackgroundFor(code int) string {
	switch code {
	case 0, 1:
		return backgroundClear
	case 51, 53, 55, 56, 57, 61, 63, 65, 66, 67, 80, 81:
		return backgroundRainy
	case 71, 73, 75, 77, 85, 86:
		return backgroundSnowy
	case 82, 95, 96, 99:
		return backgroundThunderstorm
	default:
		return backgroundCloudy
	}
}
