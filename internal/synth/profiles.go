package synth

// Profile holds the per-city baseline values the seasonal/noise model is
// centered on: mean pollutant concentrations, mean temperature, and mean
// relative humidity.
type Profile struct {
	PM25        float64 // µg/m³
	PM10        float64 // µg/m³
	NO2         float64 // µg/m³
	SO2         float64 // µg/m³
	CO          float64 // mg/m³
	O3          float64 // µg/m³
	Temperature float64 // °C
	Humidity    float64 // %
}

// cityOrder fixes the display/concatenation order for multi-city output.
var cityOrder = []string{
	"Delhi",
	"Mumbai",
	"Kolkata",
	"Chennai",
	"Bengaluru",
	"Hyderabad",
	"Pune",
	"Ahmedabad",
}

var profiles = map[string]Profile{
	"Delhi":     {PM25: 96, PM10: 168, NO2: 52, SO2: 14, CO: 1.9, O3: 44, Temperature: 25, Humidity: 58},
	"Mumbai":    {PM25: 58, PM10: 104, NO2: 38, SO2: 10, CO: 1.3, O3: 36, Temperature: 27, Humidity: 74},
	"Kolkata":   {PM25: 74, PM10: 132, NO2: 44, SO2: 12, CO: 1.5, O3: 38, Temperature: 26, Humidity: 72},
	"Chennai":   {PM25: 46, PM10: 86, NO2: 30, SO2: 9, CO: 1.1, O3: 34, Temperature: 29, Humidity: 70},
	"Bengaluru": {PM25: 42, PM10: 78, NO2: 32, SO2: 8, CO: 1.0, O3: 32, Temperature: 24, Humidity: 64},
	"Hyderabad": {PM25: 52, PM10: 94, NO2: 34, SO2: 9, CO: 1.2, O3: 35, Temperature: 27, Humidity: 60},
	"Pune":      {PM25: 50, PM10: 90, NO2: 33, SO2: 9, CO: 1.1, O3: 34, Temperature: 25, Humidity: 62},
	"Ahmedabad": {PM25: 68, PM10: 124, NO2: 40, SO2: 11, CO: 1.4, O3: 40, Temperature: 28, Humidity: 54},
}

// defaultProfile backs unrecognized city names so generation never fails on
// input it doesn't know.
var defaultProfile = Profile{
	PM25: 55, PM10: 100, NO2: 36, SO2: 10, CO: 1.2, O3: 36, Temperature: 26, Humidity: 64,
}

// Cities returns the fixed city list in display order.
func Cities() []string {
	out := make([]string, len(cityOrder))
	copy(out, cityOrder)
	return out
}

// profileFor resolves a city's base profile, falling back to the default
// profile for unknown names.
func profileFor(city string) Profile {
	if p, ok := profiles[city]; ok {
		return p
	}
	return defaultProfile
}
