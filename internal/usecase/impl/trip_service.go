// Package impl contains the concrete implementations of the application
// use cases.
package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"

	"ecoroute/internal/domain/emissions"
	"ecoroute/internal/domain/entity"
	domainerrors "ecoroute/internal/domain/errors"
	"ecoroute/internal/domain/repository"
	"ecoroute/internal/domain/service"
	"ecoroute/internal/errors"
	"ecoroute/internal/usecase"
)

const (
	defaultAlternatives = 1

	// One tree absorbs about 21.77 kg of CO2 per year.
	treeAbsorptionKgPerYear = 21.77

	ecoFriendlyScoreThreshold = 70.0
	moderateScoreThreshold    = 40.0
)

// TripParams defines the dependencies of the trip service.
type TripParams struct {
	fx.In

	Routes    service.RouteSource
	Weather   service.WeatherSource
	RouteRepo repository.RouteRepository
	Logger    *slog.Logger
}

type tripService struct {
	routes    service.RouteSource
	weather   service.WeatherSource
	routeRepo repository.RouteRepository
	logger    *slog.Logger
}

// NewTripService creates a new trip service instance.
func NewTripService(params TripParams) usecase.TripUsecase {
	return &tripService{
		routes:    params.Routes,
		weather:   params.Weather,
		routeRepo: params.RouteRepo,
		logger:    params.Logger,
	}
}

// CalculateRoute produces labeled route options with emission estimates
// between two points. Route candidates and weather are fetched concurrently;
// a missing weather observation lowers confidence but never fails the
// calculation.
func (s *tripService) CalculateRoute(ctx context.Context, req usecase.RouteRequest) (*usecase.RouteCalculation, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	alternatives := req.Alternatives
	if alternatives <= 0 {
		alternatives = defaultAlternatives
	}

	var (
		legs     []entity.RouteLeg
		snapshot *entity.WeatherSnapshot
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fetched, err := s.routes.Routes(gctx, req.Origin, req.Destination, req.TransportMode, alternatives)
		if err != nil {
			return errors.Wrap(err, "failed to fetch route candidates")
		}
		legs = fetched

		return nil
	})
	g.Go(func() error {
		fetched, err := s.weather.Snapshot(gctx, req.Origin.Lat, req.Origin.Lng)
		if err != nil {
			s.logger.Debug("weather observation unavailable",
				slog.String("error", err.Error()),
			)

			return nil
		}
		snapshot = &fetched

		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage(err.Error())
	}
	if len(legs) == 0 {
		return nil, domainerrors.ErrInternalError.WrapMessage("route source returned no candidates")
	}

	options, candidates := make([]usecase.RouteOption, len(legs)), make([]emissions.Candidate, len(legs))
	for i, leg := range legs {
		report := emissions.Estimate(emissions.Input{
			DistanceKm:    leg.DistanceKm,
			Mode:          req.TransportMode,
			Subtype:       req.FuelType,
			CargoWeightKg: req.CargoWeightKg,
			Traffic:       req.Traffic,
			Weather:       snapshot,
		})
		options[i] = usecase.RouteOption{
			DistanceKm:    leg.DistanceKm,
			DurationHours: leg.DurationHours,
			Geometry:      leg.Geometry,
			Instructions:  leg.Instructions,
			Summary:       leg.Summary,
			Emissions: usecase.EmissionReport{
				TotalCO2Kg:         report.TotalCO2Kg,
				CO2PerKm:           report.CO2PerKm,
				FuelConsumedLiters: report.FuelConsumedLiters,
				FuelCostEstimate:   report.FuelCostEstimate,
				ConfidenceScore:    report.ConfidenceScore,
				Grade:              report.Grade,
				Degraded:           report.Degraded,
			},
		}
		candidates[i] = emissions.Candidate{
			TotalCO2Kg:    report.TotalCO2Kg,
			DurationHours: leg.DurationHours,
		}
	}

	labels := emissions.Classify(candidates)
	ecoIdx := 0
	for i, label := range labels {
		options[i].Label = label
		if label == emissions.LabelEco {
			ecoIdx = i
		}
	}

	impact := environmentalImpact(options[ecoIdx].Emissions)

	calculation := &usecase.RouteCalculation{
		Origin:        req.Origin,
		Destination:   req.Destination,
		TransportMode: req.TransportMode,
		FuelType:      req.FuelType,
		Weather:       snapshot,
		Options:       options,
		Impact:        impact,
	}

	s.persistRecord(ctx, req, options[ecoIdx], impact, snapshot)

	return calculation, nil
}

// History returns the most recent persisted route calculations. Without a
// configured database the history is simply empty.
func (s *tripService) History(ctx context.Context, limit int) ([]*entity.RouteRecord, error) {
	records, err := s.routeRepo.ListRecent(ctx, limit)
	if err != nil {
		if errors.Is(err, repository.ErrStorageDisabled) {
			return []*entity.RouteRecord{}, nil
		}

		return nil, err
	}

	return records, nil
}

func validateRequest(req usecase.RouteRequest) error {
	if !req.Origin.Valid() || !req.Destination.Valid() {
		return domainerrors.ErrInvalidCoordinates
	}
	if !emissions.KnownMode(req.TransportMode) {
		return domainerrors.ErrUnknownTransportMode.WithDetails(
			"supported modes: " + strings.Join(emissions.Modes(), ", "),
		)
	}
	if req.CargoWeightKg < 0 {
		return domainerrors.ErrValidationFailed.WithDetails("cargo_weight_kg must not be negative")
	}

	return nil
}

// environmentalImpact derives the impact summary from the eco option.
func environmentalImpact(report usecase.EmissionReport) usecase.EnvironmentalImpact {
	score := 100.0 - report.CO2PerKm*50.0
	if score < 0 {
		score = 0
	}

	rating := "high-impact"
	switch {
	case score >= ecoFriendlyScoreThreshold:
		rating = "eco-friendly"
	case score >= moderateScoreThreshold:
		rating = "moderate"
	}

	return usecase.EnvironmentalImpact{
		EcoScore:      score,
		TreesToOffset: report.TotalCO2Kg / treeAbsorptionKgPerYear,
		Rating:        rating,
	}
}

// persistRecord stores the eco option best-effort. Persistence problems are
// logged, never surfaced to the caller.
func (s *tripService) persistRecord(
	ctx context.Context,
	req usecase.RouteRequest,
	eco usecase.RouteOption,
	impact usecase.EnvironmentalImpact,
	snapshot *entity.WeatherSnapshot,
) {
	geometry, err := json.Marshal(eco.Geometry)
	if err != nil {
		geometry = nil
	}

	var weatherDoc []byte
	if snapshot != nil {
		if raw, err := json.Marshal(snapshot); err == nil {
			weatherDoc = raw
		}
	}

	record := &entity.RouteRecord{
		OrganizationID:     req.OrganizationID,
		Origin:             req.Origin,
		Destination:        req.Destination,
		DistanceKm:         eco.DistanceKm,
		DurationHours:      eco.DurationHours,
		TransportMode:      req.TransportMode,
		FuelType:           req.FuelType,
		CargoWeightKg:      int(req.CargoWeightKg),
		TotalCO2Kg:         eco.Emissions.TotalCO2Kg,
		CO2PerKm:           eco.Emissions.CO2PerKm,
		FuelConsumedLiters: eco.Emissions.FuelConsumedLiters,
		FuelCostEstimate:   eco.Emissions.FuelCostEstimate,
		EcoScore:           impact.EcoScore,
		Geometry:           geometry,
		Weather:            weatherDoc,
	}

	if err := s.routeRepo.Create(ctx, record); err != nil {
		if errors.Is(err, repository.ErrStorageDisabled) {
			s.logger.Debug("route record not persisted, storage is disabled")

			return
		}

		s.logger.Warn("failed to persist route record", slog.String("error", err.Error()))
	}
}
