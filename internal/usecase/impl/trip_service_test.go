package impl

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoroute/internal/domain/entity"
	domainerrors "ecoroute/internal/domain/errors"
	"ecoroute/internal/domain/repository"
	"ecoroute/internal/errors"
	"ecoroute/internal/usecase"
)

type stubRouteSource struct {
	legs []entity.RouteLeg
	err  error
}

func (s *stubRouteSource) Routes(_ context.Context, _, _ entity.Coordinate, _ string, _ int) ([]entity.RouteLeg, error) {
	return s.legs, s.err
}

type stubWeatherSource struct {
	snapshot entity.WeatherSnapshot
	err      error
}

func (s *stubWeatherSource) Snapshot(_ context.Context, _, _ float64) (entity.WeatherSnapshot, error) {
	return s.snapshot, s.err
}

type stubRouteRepo struct {
	created   []*entity.RouteRecord
	createErr error
	records   []*entity.RouteRecord
	listErr   error
}

func (s *stubRouteRepo) Create(_ context.Context, record *entity.RouteRecord) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, record)

	return nil
}

func (s *stubRouteRepo) ListRecent(_ context.Context, _ int) ([]*entity.RouteRecord, error) {
	return s.records, s.listErr
}

func newTripService(routes *stubRouteSource, weather *stubWeatherSource, repo *stubRouteRepo) usecase.TripUsecase {
	return NewTripService(TripParams{
		Routes:    routes,
		Weather:   weather,
		RouteRepo: repo,
		Logger:    slog.Default(),
	})
}

func validRequest() usecase.RouteRequest {
	return usecase.RouteRequest{
		Origin:        entity.Coordinate{Lat: 48.8566, Lng: 2.3522},
		Destination:   entity.Coordinate{Lat: 52.52, Lng: 13.405},
		TransportMode: "truck",
		FuelType:      "diesel",
	}
}

func twoLegs() []entity.RouteLeg {
	return []entity.RouteLeg{
		{DistanceKm: 300, DurationHours: 4.0},
		{DistanceKm: 350, DurationHours: 3.5},
	}
}

func TestCalculateRouteLabelsAndEstimates(t *testing.T) {
	t.Parallel()

	repo := &stubRouteRepo{}
	svc := newTripService(
		&stubRouteSource{legs: twoLegs()},
		&stubWeatherSource{snapshot: entity.WeatherSnapshot{TemperatureC: 18, WindSpeed: 5, Humidity: 60, Condition: "Clear"}},
		repo,
	)

	calc, err := svc.CalculateRoute(context.Background(), validRequest())

	require.NoError(t, err)
	require.Len(t, calc.Options, 2)

	// Shorter distance wins eco, shorter duration wins fastest.
	assert.Equal(t, "eco", calc.Options[0].Label)
	assert.Equal(t, "fastest", calc.Options[1].Label)
	assert.InDelta(t, 285.0, calc.Options[0].Emissions.TotalCO2Kg, 1e-9)
	assert.InDelta(t, 332.5, calc.Options[1].Emissions.TotalCO2Kg, 1e-9)
	assert.InDelta(t, 85.0, calc.Options[0].Emissions.ConfidenceScore, 1e-9)

	require.NotNil(t, calc.Weather)
	assert.Equal(t, "Clear", calc.Weather.Condition)

	// Impact derives from the eco option.
	assert.InDelta(t, 100.0-0.95*50.0, calc.Impact.EcoScore, 1e-9)
	assert.InDelta(t, 285.0/21.77, calc.Impact.TreesToOffset, 1e-9)
	assert.Equal(t, "moderate", calc.Impact.Rating)

	// The eco option was persisted.
	require.Len(t, repo.created, 1)
	assert.InDelta(t, 300.0, repo.created[0].DistanceKm, 1e-9)
	assert.InDelta(t, 285.0, repo.created[0].TotalCO2Kg, 1e-9)
	assert.NotEmpty(t, repo.created[0].Weather)
}

func TestCalculateRouteValidation(t *testing.T) {
	t.Parallel()

	svc := newTripService(&stubRouteSource{legs: twoLegs()}, &stubWeatherSource{}, &stubRouteRepo{})

	tests := []struct {
		name    string
		mutate  func(*usecase.RouteRequest)
		wantErr domainerrors.AppError
	}{
		{
			name:    "origin out of range",
			mutate:  func(req *usecase.RouteRequest) { req.Origin.Lat = 91 },
			wantErr: domainerrors.ErrInvalidCoordinates,
		},
		{
			name:    "destination out of range",
			mutate:  func(req *usecase.RouteRequest) { req.Destination.Lng = -181 },
			wantErr: domainerrors.ErrInvalidCoordinates,
		},
		{
			name:    "unknown transport mode",
			mutate:  func(req *usecase.RouteRequest) { req.TransportMode = "teleporter" },
			wantErr: domainerrors.ErrUnknownTransportMode,
		},
		{
			name:    "negative cargo weight",
			mutate:  func(req *usecase.RouteRequest) { req.CargoWeightKg = -1 },
			wantErr: domainerrors.ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := validRequest()
			tt.mutate(&req)

			_, err := svc.CalculateRoute(context.Background(), req)

			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr.Message())
		})
	}
}

func TestCalculateRouteWithoutWeather(t *testing.T) {
	t.Parallel()

	svc := newTripService(
		&stubRouteSource{legs: twoLegs()},
		&stubWeatherSource{err: errors.New("weather api down")},
		&stubRouteRepo{},
	)

	calc, err := svc.CalculateRoute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Nil(t, calc.Weather)
	// Confidence drops when no observation is available.
	assert.InDelta(t, 75.0, calc.Options[0].Emissions.ConfidenceScore, 1e-9)
}

func TestCalculateRouteSourceFailure(t *testing.T) {
	t.Parallel()

	svc := newTripService(
		&stubRouteSource{err: errors.New("engine exploded")},
		&stubWeatherSource{},
		&stubRouteRepo{},
	)

	_, err := svc.CalculateRoute(context.Background(), validRequest())

	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INTERNAL_ERROR", appErr.ErrorCode())
}

func TestCalculateRouteSurvivesPersistenceFailure(t *testing.T) {
	t.Parallel()

	svc := newTripService(
		&stubRouteSource{legs: twoLegs()},
		&stubWeatherSource{},
		&stubRouteRepo{createErr: repository.ErrStorageDisabled},
	)

	calc, err := svc.CalculateRoute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Len(t, calc.Options, 2)
}

func TestCalculateRouteSingleCandidate(t *testing.T) {
	t.Parallel()

	svc := newTripService(
		&stubRouteSource{legs: []entity.RouteLeg{{DistanceKm: 120, DurationHours: 1.5}}},
		&stubWeatherSource{},
		&stubRouteRepo{},
	)

	calc, err := svc.CalculateRoute(context.Background(), validRequest())

	require.NoError(t, err)
	require.Len(t, calc.Options, 1)
	assert.Equal(t, "eco", calc.Options[0].Label)
}

func TestHistoryWithStorageDisabled(t *testing.T) {
	t.Parallel()

	svc := newTripService(
		&stubRouteSource{},
		&stubWeatherSource{},
		&stubRouteRepo{listErr: repository.ErrStorageDisabled},
	)

	records, err := svc.History(context.Background(), 10)

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHistoryReturnsRecords(t *testing.T) {
	t.Parallel()

	stored := []*entity.RouteRecord{
		{TransportMode: "truck", TotalCO2Kg: 285},
	}
	svc := newTripService(&stubRouteSource{}, &stubWeatherSource{}, &stubRouteRepo{records: stored})

	records, err := svc.History(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, stored, records)
}
