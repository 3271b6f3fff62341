package emissions

import "sort"

// Static lookup tables for the estimator. They are package-level constants in
// spirit: initialized once, never mutated at runtime. All lookups go through
// the accessor functions below, which encode the documented fallbacks, so a
// table miss is never an error.

const (
	// Defaults applied when a (mode, subtype) pair is entirely unknown.
	defaultEmissionFactor  = 1.0  // kg CO2 per km
	defaultConsumptionRate = 35.0 // L per 100 km
	defaultFuelPrice       = 1.50 // per liter
	defaultLoadRatePerTon  = 0.10

	loadMultiplierCap    = 3.0
	weatherMultiplierCap = 2.0

	// Wind thresholds (replacing policy: the higher band wins outright).
	windModerateThreshold = 20.0
	windStrongThreshold   = 35.0
	windModerateFactor    = 1.15
	windStrongFactor      = 1.30

	// Extreme-temperature band.
	tempLowBound    = -10.0
	tempHighBound   = 35.0
	tempExtraFactor = 1.10

	baseConfidence   = 85.0
	noWeatherPenalty = 10.0

	// Degraded-branch outputs (per km of distance).
	fallbackFactorPerKm = 1.0
	fallbackFuelPerKm   = 0.35
	fallbackCostPerKm   = 0.50
	fallbackConfidence  = 50.0
)

// emissionFactors maps (mode, subtype) to a base factor in kg CO2 per km.
var emissionFactors = map[string]map[string]float64{
	"truck":      {"diesel": 0.95, "electric": 0.12, "hybrid": 0.45},
	"ship":       {"diesel": 2.1, "lng": 1.8, "electric": 0.3},
	"train":      {"diesel": 0.35, "electric": 0.08},
	"plane":      {"jet_fuel": 3.15},
	"car":        {"petrol": 0.192, "diesel": 0.171, "hybrid": 0.103, "electric": 0.053},
	"motorcycle": {"petrol": 0.103, "electric": 0.03},
	"bike":       {"none": 0.0},
}

// fuelConsumption maps (mode, subtype) to liters per 100 km.
var fuelConsumption = map[string]map[string]float64{
	"truck":      {"diesel": 35.0, "hybrid": 28.0},
	"ship":       {"diesel": 180.0, "lng": 160.0},
	"train":      {"diesel": 25.0},
	"plane":      {"jet_fuel": 450.0},
	"car":        {"petrol": 7.0, "diesel": 6.0, "hybrid": 4.5},
	"motorcycle": {"petrol": 4.0},
}

// fuelPrices is the price per liter (or equivalent unit) by subtype.
var fuelPrices = map[string]float64{
	"diesel":   1.45,
	"lng":      1.20,
	"electric": 0.15,
	"jet_fuel": 1.80,
	"petrol":   1.60,
}

// defaultSubtypes pins the documented "first entry" fallback per mode.
// Go maps have no iteration order, so the choice is made explicit.
var defaultSubtypes = map[string]string{
	"truck":      "diesel",
	"ship":       "diesel",
	"train":      "diesel",
	"plane":      "jet_fuel",
	"car":        "petrol",
	"motorcycle": "petrol",
	"bike":       "none",
}

// loadRates is the per-ton emission increase by mode.
var loadRates = map[string]float64{
	"truck": 0.15,
	"ship":  0.02,
	"train": 0.05,
	"plane": 0.25,
}

// trafficMultipliers scales emissions and consumption by congestion level.
var trafficMultipliers = map[string]float64{
	"light":  0.95,
	"normal": 1.0,
	"heavy":  1.25,
	"severe": 1.50,
}

// emissionFloors is the minimum reported total (kg CO2) per mode. When the
// raw total falls below the floor, the floor replaces it exactly.
var emissionFloors = map[string]float64{
	"car":        10.0,
	"truck":      50.0,
	"motorcycle": 5.0,
}

// windSensitiveModes are the modes whose emissions respond to wind speed.
var windSensitiveModes = map[string]bool{
	"ship":  true,
	"plane": true,
}

// AverageSpeeds is the assumed cruise speed in km/h per mode, used by the
// great-circle route source to estimate durations.
var AverageSpeeds = map[string]float64{
	"car":   80.0,
	"truck": 70.0,
	"ship":  25.0,
	"train": 60.0,
}

// DefaultAverageSpeed applies to modes absent from AverageSpeeds.
const DefaultAverageSpeed = 70.0

// gradeBands maps ascending total-CO2 boundaries to letter grades.
var gradeBands = []struct {
	belowKg float64
	grade   string
}{
	{1000, "A+"},
	{2500, "A"},
	{5000, "B"},
	{10000, "C"},
	{20000, "D"},
	{50000, "E"},
}

const worstGrade = "F"

// KnownMode reports whether mode has an emission factor table.
func KnownMode(mode string) bool {
	_, ok := emissionFactors[mode]

	return ok
}

// Modes lists every transport mode with an emission factor table, sorted
// for stable output.
func Modes() []string {
	modes := make([]string, 0, len(emissionFactors))
	for mode := range emissionFactors {
		modes = append(modes, mode)
	}
	sort.Strings(modes)

	return modes
}

// emissionFactor resolves the base factor for (mode, subtype), falling back
// to the mode's default subtype, then to the global default.
func emissionFactor(mode, subtype string) float64 {
	table, ok := emissionFactors[mode]
	if !ok {
		return defaultEmissionFactor
	}
	if factor, ok := table[subtype]; ok {
		return factor
	}
	if factor, ok := table[defaultSubtypes[mode]]; ok {
		return factor
	}

	return defaultEmissionFactor
}

// consumptionRate resolves liters per 100 km the same way as emissionFactor.
func consumptionRate(mode, subtype string) float64 {
	table, ok := fuelConsumption[mode]
	if !ok {
		return defaultConsumptionRate
	}
	if rate, ok := table[subtype]; ok {
		return rate
	}
	if rate, ok := table[defaultSubtypes[mode]]; ok {
		return rate
	}

	return defaultConsumptionRate
}

func fuelPrice(subtype string) float64 {
	if price, ok := fuelPrices[subtype]; ok {
		return price
	}

	return defaultFuelPrice
}

func loadRate(mode string) float64 {
	if rate, ok := loadRates[mode]; ok {
		return rate
	}

	return defaultLoadRatePerTon
}

func trafficMultiplier(condition string) float64 {
	if condition == "" {
		return 1.0
	}
	if mult, ok := trafficMultipliers[condition]; ok {
		return mult
	}

	return 1.0
}

// Grade maps a total emission mass to its letter grade band.
func Grade(totalCO2Kg float64) string {
	for _, band := range gradeBands {
		if totalCO2Kg < band.belowKg {
			return band.grade
		}
	}

	return worstGrade
}
