package model

import "fmt"

// Unit is the measurement system applied to temperature and wind speed.
// The value is forwarded verbatim to the forecast API.
type Unit string

const (
	UnitFahrenheit Unit = "fahrenheit"
	UnitCelsius    Unit = "celsius"
)

// ParseUnit validates a free-text unit value.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case UnitFahrenheit, UnitCelsius:
		return Unit(s), nil
	}
	return "", fmt.Errorf("invalid unit %q: must be %q or %q", s, UnitFahrenheit, UnitCelsius)
}

// WindSpeedUnit returns the wind speed unit matching the temperature unit.
func (u Unit) WindSpeedUnit() string {
	if u == UnitCelsius {
		return "kmh"
	}
	return "mph"
}

// WindSpeedLabel is the display form of WindSpeedUnit.
func (u Unit) WindSpeedLabel() string {
	if u == UnitCelsius {
		return "km/h"
	}
	return "mph"
}
