package emissions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoroute/internal/domain/entity"
)

func TestEstimateBaseline(t *testing.T) {
	t.Parallel()

	res := Estimate(Input{DistanceKm: 100, Mode: "truck", Subtype: "diesel"})

	require.False(t, res.Degraded)
	assert.InDelta(t, 95.0, res.TotalCO2Kg, 1e-9)
	assert.InDelta(t, 0.95, res.CO2PerKm, 1e-9)
	assert.InDelta(t, 35.0, res.FuelConsumedLiters, 1e-9)
	assert.InDelta(t, 50.75, res.FuelCostEstimate, 1e-9)
	assert.InDelta(t, 75.0, res.ConfidenceScore, 1e-9) // no weather observation
	assert.Equal(t, "A+", res.Grade)
}

func TestEstimateWeatherRestoresConfidence(t *testing.T) {
	t.Parallel()

	res := Estimate(Input{
		DistanceKm: 100,
		Mode:       "truck",
		Subtype:    "diesel",
		Weather:    &entity.WeatherSnapshot{TemperatureC: 20, WindSpeed: 10},
	})

	assert.InDelta(t, 85.0, res.ConfidenceScore, 1e-9)
	assert.InDelta(t, 95.0, res.TotalCO2Kg, 1e-9)
}

func TestEstimateEmissionFloorReplacesTotal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		mode  string
		want  float64
		distK float64
	}{
		{name: "car floor", mode: "car", want: 10.0, distK: 1},
		{name: "truck floor", mode: "truck", want: 50.0, distK: 1},
		{name: "motorcycle floor", mode: "motorcycle", want: 5.0, distK: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := Estimate(Input{DistanceKm: tt.distK, Mode: tt.mode})

			// The floor replaces the raw value exactly.
			assert.InDelta(t, tt.want, res.TotalCO2Kg, 1e-9)
		})
	}
}

func TestEstimateLoadMultiplier(t *testing.T) {
	t.Parallel()

	base := Estimate(Input{DistanceKm: 1000, Mode: "truck", Subtype: "diesel"})
	loaded := Estimate(Input{DistanceKm: 1000, Mode: "truck", Subtype: "diesel", CargoWeightKg: 5000})
	heavier := Estimate(Input{DistanceKm: 1000, Mode: "truck", Subtype: "diesel", CargoWeightKg: 10000})

	// Heavier cargo never lowers emissions.
	assert.Greater(t, loaded.TotalCO2Kg, base.TotalCO2Kg)
	assert.Greater(t, heavier.TotalCO2Kg, loaded.TotalCO2Kg)

	// 5 tons of cargo adds 5 * 0.15 to the multiplier.
	assert.InDelta(t, 950.0*1.75, loaded.TotalCO2Kg, 1e-9)
}

func TestEstimateLoadMultiplierCap(t *testing.T) {
	t.Parallel()

	// 40 tons would give 1 + 40*0.15 = 7.0 uncapped.
	res := Estimate(Input{DistanceKm: 1000, Mode: "truck", Subtype: "diesel", CargoWeightKg: 40000})

	assert.InDelta(t, 950.0*3.0, res.TotalCO2Kg, 1e-9)
}

func TestEstimateFuelScalesWithLoad(t *testing.T) {
	t.Parallel()

	// 5 tons gives a 1.75 multiplier; fuel burn scales with it too.
	res := Estimate(Input{DistanceKm: 1000, Mode: "truck", Subtype: "diesel", CargoWeightKg: 5000})

	assert.InDelta(t, 350.0*1.75, res.FuelConsumedLiters, 1e-9)
	assert.InDelta(t, 888.13, res.FuelCostEstimate, 1e-9) // 612.5 * 1.45 rounded
}

func TestEstimateFuelScalesWithWeather(t *testing.T) {
	t.Parallel()

	res := Estimate(Input{
		DistanceKm: 100,
		Mode:       "ship",
		Subtype:    "diesel",
		Weather:    &entity.WeatherSnapshot{TemperatureC: 20, WindSpeed: 40},
	})

	assert.InDelta(t, 100*2.1*1.30, res.TotalCO2Kg, 1e-9)
	assert.InDelta(t, 180.0*1.30, res.FuelConsumedLiters, 1e-9)
	assert.InDelta(t, 180.0*1.30*1.45, res.FuelCostEstimate, 1e-9)
}

func TestEstimateFuelScalesWithTraffic(t *testing.T) {
	t.Parallel()

	res := Estimate(Input{DistanceKm: 100, Mode: "truck", Subtype: "diesel", Traffic: "heavy"})

	assert.InDelta(t, 35.0*1.25, res.FuelConsumedLiters, 1e-9)
	assert.InDelta(t, 63.44, res.FuelCostEstimate, 1e-9) // 43.75 * 1.45 rounded
}

func TestEstimateRoundsOutputs(t *testing.T) {
	t.Parallel()

	res := Estimate(Input{DistanceKm: 123.456, Mode: "car", Subtype: "petrol"})

	// Raw values: total 23.703552, fuel 8.64192, cost 13.827072.
	assert.InDelta(t, 23.7036, res.TotalCO2Kg, 1e-9)
	assert.InDelta(t, 0.192, res.CO2PerKm, 1e-9)
	assert.InDelta(t, 8.64, res.FuelConsumedLiters, 1e-9)
	assert.InDelta(t, 13.83, res.FuelCostEstimate, 1e-9)
}

func TestEstimatePerKmUnaffectedByFloor(t *testing.T) {
	t.Parallel()

	// The floor replaces the total, but per-km stays the multiplied factor.
	res := Estimate(Input{DistanceKm: 1, Mode: "car", Subtype: "petrol"})

	assert.InDelta(t, 10.0, res.TotalCO2Kg, 1e-9)
	assert.InDelta(t, 0.192, res.CO2PerKm, 1e-9)
}

func TestEstimateTrafficMultiplier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		traffic string
		want    float64
	}{
		{traffic: "light", want: 95.0 * 0.95},
		{traffic: "normal", want: 95.0},
		{traffic: "heavy", want: 95.0 * 1.25},
		{traffic: "severe", want: 95.0 * 1.50},
		{traffic: "", want: 95.0},
		{traffic: "gridlock", want: 95.0}, // unknown condition is neutral
	}

	for _, tt := range tests {
		t.Run("traffic "+tt.traffic, func(t *testing.T) {
			t.Parallel()

			res := Estimate(Input{DistanceKm: 100, Mode: "truck", Subtype: "diesel", Traffic: tt.traffic})

			assert.InDelta(t, tt.want, res.TotalCO2Kg, 1e-9)
		})
	}
}

func TestEstimateWindAdjustment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mode string
		wind float64
		want float64
	}{
		{name: "ship calm", mode: "ship", wind: 10, want: 1.0},
		{name: "ship moderate wind", mode: "ship", wind: 25, want: 1.15},
		{name: "ship strong wind", mode: "ship", wind: 40, want: 1.30},
		{name: "plane strong wind", mode: "plane", wind: 40, want: 1.30},
		{name: "truck ignores wind", mode: "truck", wind: 40, want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := &entity.WeatherSnapshot{TemperatureC: 20, WindSpeed: tt.wind}

			assert.InDelta(t, tt.want, weatherMultiplier(tt.mode, w), 1e-9)
		})
	}
}

func TestEstimateTemperatureAdjustment(t *testing.T) {
	t.Parallel()

	cold := &entity.WeatherSnapshot{TemperatureC: -15, WindSpeed: 0}
	hot := &entity.WeatherSnapshot{TemperatureC: 40, WindSpeed: 0}
	mild := &entity.WeatherSnapshot{TemperatureC: 20, WindSpeed: 0}

	assert.InDelta(t, 1.10, weatherMultiplier("truck", cold), 1e-9)
	assert.InDelta(t, 1.10, weatherMultiplier("truck", hot), 1e-9)
	assert.InDelta(t, 1.0, weatherMultiplier("truck", mild), 1e-9)

	// Strong wind and extreme temperature stack, bounded by the cap.
	stacked := &entity.WeatherSnapshot{TemperatureC: 40, WindSpeed: 40}
	got := weatherMultiplier("ship", stacked)
	assert.InDelta(t, 1.30*1.10, got, 1e-9)
	assert.LessOrEqual(t, got, weatherMultiplierCap)
}

func TestEstimateUnknownModeUsesDefaults(t *testing.T) {
	t.Parallel()

	res := Estimate(Input{DistanceKm: 100, Mode: "hovercraft"})

	require.False(t, res.Degraded)
	assert.InDelta(t, 100.0, res.TotalCO2Kg, 1e-9)           // default 1.0 kg/km
	assert.InDelta(t, 35.0, res.FuelConsumedLiters, 1e-9)    // default 35 L/100km
	assert.InDelta(t, 35.0*1.50, res.FuelCostEstimate, 1e-9) // default price
}

func TestEstimateSubtypeFallsBackToModeDefault(t *testing.T) {
	t.Parallel()

	// Electric trucks have no consumption entry, so the diesel rate applies.
	res := Estimate(Input{DistanceKm: 1000, Mode: "truck", Subtype: "electric"})

	assert.InDelta(t, 1000*0.12, res.TotalCO2Kg, 1e-9, "factor should stay electric")
	assert.InDelta(t, 350.0, res.FuelConsumedLiters, 1e-9)
}

func TestEstimateDegradedFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Input
	}{
		{name: "nan distance", in: Input{DistanceKm: math.NaN(), Mode: "truck"}},
		{name: "infinite distance", in: Input{DistanceKm: math.Inf(1), Mode: "truck"}},
		{name: "negative distance", in: Input{DistanceKm: -5, Mode: "truck"}},
		{name: "nan cargo", in: Input{DistanceKm: 100, Mode: "truck", CargoWeightKg: math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := Estimate(tt.in)

			require.True(t, res.Degraded)
			assert.InDelta(t, fallbackConfidence, res.ConfidenceScore, 1e-9)
			assert.True(t, res.sane())
		})
	}
}

func TestEstimateDegradedKeepsUsableDistance(t *testing.T) {
	t.Parallel()

	res := degraded(Input{DistanceKm: 200, Mode: "truck"})

	assert.InDelta(t, 200.0, res.TotalCO2Kg, 1e-9)
	assert.InDelta(t, 200*0.35, res.FuelConsumedLiters, 1e-9)
	assert.InDelta(t, 200*0.50, res.FuelCostEstimate, 1e-9)
}

func TestEstimateIdempotent(t *testing.T) {
	t.Parallel()

	in := Input{
		DistanceKm:    420.5,
		Mode:          "ship",
		Subtype:       "lng",
		CargoWeightKg: 12000,
		Traffic:       "heavy",
		Weather:       &entity.WeatherSnapshot{TemperatureC: 5, WindSpeed: 28},
	}

	assert.Equal(t, Estimate(in), Estimate(in))
}

func TestEstimateZeroEmissionMode(t *testing.T) {
	t.Parallel()

	res := Estimate(Input{DistanceKm: 50, Mode: "bike"})

	require.False(t, res.Degraded)
	assert.Zero(t, res.TotalCO2Kg)
	assert.Equal(t, "A+", res.Grade)
}

func TestGradeBands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total float64
		want  string
	}{
		{total: 0, want: "A+"},
		{total: 999.99, want: "A+"},
		{total: 1000, want: "A"},
		{total: 2500, want: "B"},
		{total: 5000, want: "C"},
		{total: 10000, want: "D"},
		{total: 20000, want: "E"},
		{total: 50000, want: "F"},
		{total: 1e9, want: "F"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Grade(tt.total))
		})
	}
}
