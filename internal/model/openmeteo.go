package model

// OpenMeteoResponse mirrors the subset of the Open-Meteo /v1/forecast
// response this service requests. Each call asks for only one of the
// current/hourly/daily blocks, so the unused blocks stay zero.
type OpenMeteoResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Current   struct {
		Time             string  `json:"time"`
		Temperature2M    float64 `json:"temperature_2m"`
		RelativeHumidity float64 `json:"relative_humidity_2m"`
		WindSpeed10M     float64 `json:"wind_speed_10m"`
		ApparentTemp     float64 `json:"apparent_temperature"`
		WeatherCode      int     `json:"weather_code"`
	} `json:"current"`
	Hourly struct {
		Time             []string  `json:"time"`
		Temperature2M    []float64 `json:"temperature_2m"`
		RelativeHumidity []float64 `json:"relative_humidity_2m"`
	} `json:"hourly"`
	Daily struct {
		Time              []string  `json:"time"`
		WeatherCode       []int     `json:"weather_code"`
		Temperature2MMax  []float64 `json:"temperature_2m_max"`
		Temperature2MMin  []float64 `json:"temperature_2m_min"`
		PrecipProbability []float64 `json:"precipitation_probability_max"`
		Sunrise           []string  `json:"sunrise"`
		Sunset            []string  `json:"sunset"`
	} `json:"daily"`
}
