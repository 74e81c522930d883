package synth

import (
	"math"
	"time"

	"github.com/aeropulse/aeropulse/internal/aqi"
)

// Generated range: 2019-01-01 through 2024-12-31 inclusive.
const (
	StartDate = "2019-01-01"
	EndDate   = "2024-12-31"
	DayCount  = 2192
)

// Record is one synthesized daily observation for a city. Records are
// created in a single deterministic pass and never mutated afterwards.
type Record struct {
	City string `json:"city"`
	Date string `json:"date"` // YYYY-MM-DD

	PM25 float64 `json:"pm25"`
	PM10 float64 `json:"pm10"`
	NO2  float64 `json:"no2"`
	SO2  float64 `json:"so2"`
	CO   float64 `json:"co"`
	O3   float64 `json:"o3"`
	AQI  int     `json:"aqi"`

	Temperature float64 `json:"temperature"` // °C
	Humidity    float64 `json:"humidity"`    // %
	AirDensity  float64 `json:"air_density"` // kg/m³

	Admissions int     `json:"admissions"`
	Asthma     int     `json:"asthma"`
	COPD       int     `json:"copd"`
	Bronchitis int     `json:"bronchitis"`
	Severity   float64 `json:"severity"` // 0-10
}

// Seasonal amplitudes and noise sigmas. Particulates, NO2, and admissions
// peak in winter (cosine on day-of-year); temperature and O3 peak in summer
// (sine offset to early April crossing). The weekly term models weekday
// traffic on particulates.
const (
	pm25SeasonalAmp = 22.0
	pm10SeasonalAmp = 32.0
	no2SeasonalAmp  = 8.0
	o3SeasonalAmp   = 10.0
	tempSeasonalAmp = 9.0
	humSeasonalAmp  = 12.0
	weeklyAmp       = 3.0

	pm25Noise = 10.0
	pm10Noise = 15.0
	no2Noise  = 5.0
	so2Noise  = 2.0
	coNoise   = 0.25
	o3Noise   = 6.0
	tempNoise = 2.0
	humNoise  = 6.0
	densNoise = 0.01
)

// Concentration floors. Generated values never drop below these.
const (
	pm25Floor = 5.0
	pm10Floor = 10.0
	no2Floor  = 5.0
	so2Floor  = 2.0
	coFloor   = 0.2
	o3Floor   = 10.0
)

// Health model constants: baseline daily admissions plus a sensitivity to
// PM2.5 from 3 days earlier, a penalty for days cooler than 30°C, and a
// penalty for humidity above 80%.
const (
	admissionBaseline    = 20.0
	admissionSeasonalAmp = 4.0
	pm25Sensitivity      = 0.03
	pm25LagDays          = 3
	tempPenaltyThreshold = 30.0
	tempPenaltyRate      = 0.15
	humPenaltyThreshold  = 80.0
	humPenaltyRate       = 0.1
	admissionNoise       = 2.0
)

// Generate produces the complete ordered daily series for a city,
// deterministic for that city name. Unknown names use the default profile.
func Generate(city string) []Record {
	p := profileFor(city)
	rng := NewRand(SeedForCity(city))
	start, _ := time.Parse("2006-01-02", StartDate)

	recs := make([]Record, DayCount)
	for i := range recs {
		d := start.AddDate(0, 0, i)
		doy := float64(d.YearDay())
		dow := float64(int(d.Weekday()))

		winter := math.Cos(2 * math.Pi * doy / 365)
		summer := math.Sin(2 * math.Pi * (doy - 80) / 365)
		weekly := math.Sin(2 * math.Pi * dow / 7)

		pm25 := p.PM25 + pm25SeasonalAmp*winter + weeklyAmp*weekly + rng.NormFloat64(0, pm25Noise)
		pm10 := p.PM10 + pm10SeasonalAmp*winter + weeklyAmp*weekly + rng.NormFloat64(0, pm10Noise)
		no2 := p.NO2 + no2SeasonalAmp*winter + rng.NormFloat64(0, no2Noise)
		so2 := p.SO2 + rng.NormFloat64(0, so2Noise)
		co := p.CO + rng.NormFloat64(0, coNoise)
		o3 := p.O3 + o3SeasonalAmp*summer + rng.NormFloat64(0, o3Noise)
		temp := p.Temperature + tempSeasonalAmp*summer + rng.NormFloat64(0, tempNoise)
		hum := p.Humidity + humSeasonalAmp*math.Sin(2*math.Pi*(doy-150)/365) + rng.NormFloat64(0, humNoise)
		hum = clamp(hum, 10, 100)

		// Dry-air density at the day's temperature, lightly perturbed.
		dens := 352.9/(273.15+temp) + rng.NormFloat64(0, densNoise)
		dens = clamp(dens, 0.9, 1.5)

		pm25 = round1(math.Max(pm25, pm25Floor))
		r := Record{
			City:        city,
			Date:        d.Format("2006-01-02"),
			PM25:        pm25,
			PM10:        round1(math.Max(pm10, pm10Floor)),
			NO2:         round1(math.Max(no2, no2Floor)),
			SO2:         round1(math.Max(so2, so2Floor)),
			CO:          round2(math.Max(co, coFloor)),
			O3:          round1(math.Max(o3, o3Floor)),
			AQI:         aqi.FromPM25(pm25),
			Temperature: round1(temp),
			Humidity:    round1(hum),
			AirDensity:  round3(dens),
		}
		recs[i] = r
	}

	// Second pass: health outcomes depend on the raw pollutant series, in
	// particular PM2.5 from pm25LagDays earlier. Before enough history
	// exists the earliest available value stands in.
	for i := range recs {
		d := start.AddDate(0, 0, i)
		doy := float64(d.YearDay())
		winter := math.Cos(2 * math.Pi * doy / 365)

		lagIdx := i - pm25LagDays
		if lagIdx < 0 {
			lagIdx = 0
		}

		adm := admissionBaseline + admissionSeasonalAmp*winter + pm25Sensitivity*recs[lagIdx].PM25
		if recs[i].Temperature < tempPenaltyThreshold {
			adm += tempPenaltyRate * (tempPenaltyThreshold - recs[i].Temperature)
		}
		if recs[i].Humidity > humPenaltyThreshold {
			adm += humPenaltyRate * (recs[i].Humidity - humPenaltyThreshold)
		}
		adm += rng.NormFloat64(0, admissionNoise)
		if adm < 0 {
			adm = 0
		}
		admissions := int(math.Round(adm))

		asthmaFrac := clamp(0.35+0.1*math.Sin(2*math.Pi*doy/365), 0.2, 0.5)
		copdFrac := clamp(0.3+0.08*math.Cos(2*math.Pi*doy/365), 0.15, 0.45)

		asthma := int(math.Round(float64(admissions) * asthmaFrac))
		if asthma > admissions {
			asthma = admissions
		}
		copd := int(math.Round(float64(admissions) * copdFrac))
		if asthma+copd > admissions {
			copd = admissions - asthma
		}

		recs[i].Admissions = admissions
		recs[i].Asthma = asthma
		recs[i].COPD = copd
		recs[i].Bronchitis = admissions - asthma - copd
		recs[i].Severity = math.Min(10, round1(float64(admissions)/50*5))
	}

	return recs
}

// GenerateAll generates every city's series and concatenates them in
// city-list order. Cities are independent, so order affects only display.
func GenerateAll() []Record {
	var all []Record
	for _, city := range cityOrder {
		all = append(all, Generate(city)...)
	}
	return all
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
