package emissions

import (
	"math"

	"ecoroute/internal/domain/entity"
	"ecoroute/internal/errors"
)

// errNotEstimable marks inputs the normal computation cannot handle. It never
// escapes the package: Estimate converts it into the degraded result.
var errNotEstimable = errors.New("route candidate is not estimable")

// Input carries everything the estimator needs for one candidate route.
type Input struct {
	DistanceKm    float64
	Mode          string
	Subtype       string
	CargoWeightKg float64
	Traffic       string
	Weather       *entity.WeatherSnapshot // nil when no observation is available
}

// Result is a complete emission estimate. Every field is finite and
// non-negative; callers never need to re-validate. Masses and per-km values
// carry four decimal places, fuel volume and cost two. CO2PerKm is the
// multiplied emission factor and is not affected by the minimum-total floor.
type Result struct {
	TotalCO2Kg         float64
	CO2PerKm           float64
	FuelConsumedLiters float64
	FuelCostEstimate   float64
	ConfidenceScore    float64
	Grade              string
	Degraded           bool
}

// Estimate computes emissions for one route candidate. It is a total
// function: any input that cannot be estimated normally yields the degraded
// conservative result instead of an error.
func Estimate(in Input) Result {
	res, err := compute(in)
	if err != nil {
		return degraded(in)
	}

	return res
}

func compute(in Input) (Result, error) {
	if !finiteNonNegative(in.DistanceKm) || !finiteNonNegative(in.CargoWeightKg) {
		return Result{}, errNotEstimable
	}

	subtype := in.Subtype
	if subtype == "" {
		subtype = defaultSubtypes[in.Mode]
	}

	factor := emissionFactor(in.Mode, subtype)
	baseCO2 := in.DistanceKm * factor

	loadMult := 1.0 + (in.CargoWeightKg/1000.0)*loadRate(in.Mode)
	if loadMult > loadMultiplierCap {
		loadMult = loadMultiplierCap
	}

	trafficMult := trafficMultiplier(in.Traffic)
	weatherMult := weatherMultiplier(in.Mode, in.Weather)

	multiplied := factor * loadMult * trafficMult * weatherMult
	total := baseCO2 * loadMult * trafficMult * weatherMult
	if floor, ok := emissionFloors[in.Mode]; ok && total < floor {
		total = floor
	}

	// Fuel burn scales with the same load, traffic, and weather conditions
	// as the emissions.
	liters := in.DistanceKm * consumptionRate(in.Mode, subtype) / 100.0 *
		loadMult * trafficMult * weatherMult
	cost := liters * fuelPrice(subtype)

	confidence := baseConfidence
	if in.Weather == nil {
		confidence -= noWeatherPenalty
	}

	res := Result{
		TotalCO2Kg:         round4(total),
		CO2PerKm:           round4(multiplied),
		FuelConsumedLiters: round2(liters),
		FuelCostEstimate:   round2(cost),
		ConfidenceScore:    confidence,
		Grade:              Grade(total),
	}
	if !res.sane() {
		return Result{}, errNotEstimable
	}

	return res, nil
}

// degraded is the conservative fallback estimate: a flat per-km factor with
// generic fuel figures and a reduced confidence score.
func degraded(in Input) Result {
	dist := in.DistanceKm
	if !finiteNonNegative(dist) {
		dist = 0
	}

	total := dist * fallbackFactorPerKm

	return Result{
		TotalCO2Kg:         round4(total),
		CO2PerKm:           fallbackFactorPerKm,
		FuelConsumedLiters: round2(dist * fallbackFuelPerKm),
		FuelCostEstimate:   round2(dist * fallbackCostPerKm),
		ConfidenceScore:    fallbackConfidence,
		Grade:              Grade(total),
		Degraded:           true,
	}
}

// weatherMultiplier applies wind and temperature adjustments. The wind bands
// replace each other rather than stack, and the combined multiplier is capped.
func weatherMultiplier(mode string, w *entity.WeatherSnapshot) float64 {
	if w == nil {
		return 1.0
	}

	mult := 1.0
	if windSensitiveModes[mode] {
		switch {
		case w.WindSpeed > windStrongThreshold:
			mult *= windStrongFactor
		case w.WindSpeed > windModerateThreshold:
			mult *= windModerateFactor
		}
	}
	if w.TemperatureC < tempLowBound || w.TemperatureC > tempHighBound {
		mult *= tempExtraFactor
	}
	if mult > weatherMultiplierCap {
		mult = weatherMultiplierCap
	}

	return mult
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (r Result) sane() bool {
	for _, v := range []float64{
		r.TotalCO2Kg, r.CO2PerKm, r.FuelConsumedLiters, r.FuelCostEstimate, r.ConfidenceScore,
	} {
		if !finiteNonNegative(v) {
			return false
		}
	}

	return true
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
