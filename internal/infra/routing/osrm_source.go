package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/paulmach/orb"
	"golang.org/x/time/rate"

	"ecoroute/config"
	"ecoroute/internal/domain/entity"
	"ecoroute/internal/domain/service"
	"ecoroute/internal/errors"
)

const (
	defaultOSRMTimeout     = 10 * time.Second
	defaultRouteCacheSize  = 256
	defaultRequestsPerSec  = 5
	defaultMaxAlternatives = 2

	osrmUserAgent = "ecoroute/1.0"
)

// osrmProfiles maps road transport modes to OSRM routing profiles. Modes
// absent from this table (ship, train, plane) have no road network and are
// always served by the great-circle source.
var osrmProfiles = map[string]string{
	"car":        "driving",
	"truck":      "driving",
	"motorcycle": "driving",
	"bike":       "cycling",
}

// osrmSource queries an OSRM routing engine for road modes and falls back
// to the great-circle source on any failure.
type osrmSource struct {
	baseURL  string
	client   *http.Client
	limiter  *rate.Limiter
	cache    *lru.Cache[string, []entity.RouteLeg]
	logger   *slog.Logger
	fallback service.RouteSource
	maxAlts  int
}

// NewSource builds the route source stack. With no routing block configured
// it returns the great-circle source alone.
func NewSource(cfg *config.Config, logger *slog.Logger) (service.RouteSource, error) {
	fallback := NewMockSource()
	if cfg.Routing == nil {
		logger.Warn("routing engine is not configured, all routes use great-circle estimates")

		return fallback, nil
	}

	rc := cfg.Routing
	if rc.OSRMBaseURL == "" {
		return nil, errors.New("routing.osrmBaseUrl must be provided")
	}

	cacheSize := rc.CacheSize
	if cacheSize <= 0 {
		cacheSize = defaultRouteCacheSize
	}
	cache, err := lru.New[string, []entity.RouteLeg](cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create route cache")
	}

	rps := rc.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSec
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}

	timeout := rc.Timeout
	if timeout <= 0 {
		timeout = defaultOSRMTimeout
	}

	maxAlts := rc.MaxAlternatives
	if maxAlts <= 0 {
		maxAlts = defaultMaxAlternatives
	}

	return &osrmSource{
		baseURL:  strings.TrimRight(rc.OSRMBaseURL, "/"),
		client:   &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		cache:    cache,
		logger:   logger,
		fallback: fallback,
		maxAlts:  maxAlts,
	}, nil
}

// Routes queries OSRM for road modes. Non-road modes and any engine failure
// degrade to the great-circle source, so a candidate list is always produced.
func (s *osrmSource) Routes(ctx context.Context, origin, destination entity.Coordinate, mode string, alternatives int) ([]entity.RouteLeg, error) {
	profile, ok := osrmProfiles[mode]
	if !ok {
		return s.fallback.Routes(ctx, origin, destination, mode, alternatives)
	}

	if alternatives > s.maxAlts {
		alternatives = s.maxAlts
	}

	key := cacheKey(origin, destination, profile, alternatives)
	if cached, found := s.cache.Get(key); found {
		s.logger.Debug("route cache hit", slog.String("key", key))

		return cached, nil
	}

	legs, err := s.query(ctx, origin, destination, profile, alternatives)
	if err != nil {
		s.logger.Warn("routing engine unavailable, using great-circle estimate",
			slog.String("mode", mode),
			slog.String("error", err.Error()),
		)

		return s.fallback.Routes(ctx, origin, destination, mode, alternatives)
	}

	s.cache.Add(key, legs)

	return legs, nil
}

// osrmResponse mirrors the subset of the OSRM route response we consume,
// with geometries requested in GeoJSON form.
type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Duration float64 `json:"duration"` // seconds
		Distance float64 `json:"distance"` // meters
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Legs []struct {
			Summary string `json:"summary"`
			Steps   []struct {
				Distance float64 `json:"distance"`
				Name     string  `json:"name"`
				Maneuver struct {
					Type     string `json:"type"`
					Modifier string `json:"modifier,omitempty"`
				} `json:"maneuver"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

func (s *osrmSource) query(ctx context.Context, origin, destination entity.Coordinate, profile string, alternatives int) ([]entity.RouteLeg, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limiter wait failed")
	}

	// OSRM expects coordinates as longitude,latitude.
	reqURL, err := url.Parse(fmt.Sprintf("%s/route/v1/%s/%.6f,%.6f;%.6f,%.6f",
		s.baseURL, profile,
		origin.Lng, origin.Lat,
		destination.Lng, destination.Lat,
	))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build route URL")
	}

	query := reqURL.Query()
	query.Add("overview", "full")
	query.Add("geometries", "geojson")
	query.Add("steps", "true")
	query.Add("alternatives", fmt.Sprintf("%d", alternatives))
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create route request")
	}
	req.Header.Set("User-Agent", osrmUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "route request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("routing engine returned status %d", resp.StatusCode)
	}

	var result osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "failed to decode route response")
	}
	if result.Code != "Ok" {
		return nil, errors.Errorf("routing engine error: %s", result.Message)
	}
	if len(result.Routes) == 0 {
		return nil, errors.New("routing engine returned no routes")
	}

	legs := make([]entity.RouteLeg, 0, len(result.Routes))
	for _, route := range result.Routes {
		leg := entity.RouteLeg{
			DistanceKm:    route.Distance / 1000.0,
			DurationHours: route.Duration / 3600.0,
			Geometry:      toLineString(route.Geometry.Coordinates),
		}
		if len(route.Legs) > 0 {
			leg.Summary = route.Legs[0].Summary
			for _, step := range route.Legs[0].Steps {
				if instruction := formatInstruction(step.Maneuver.Type, step.Maneuver.Modifier, step.Name, step.Distance); instruction != "" {
					leg.Instructions = append(leg.Instructions, instruction)
				}
			}
		}
		legs = append(legs, leg)
	}

	return legs, nil
}

func toLineString(coordinates [][]float64) orb.LineString {
	line := make(orb.LineString, 0, len(coordinates))
	for _, coord := range coordinates {
		if len(coord) < 2 {
			continue
		}
		line = append(line, orb.Point{coord[0], coord[1]})
	}

	return line
}

// formatInstruction creates a human-readable instruction from a maneuver.
func formatInstruction(maneuverType, modifier, name string, distance float64) string {
	var instruction strings.Builder

	switch maneuverType {
	case "depart":
		instruction.WriteString("Start")
	case "arrive":
		instruction.WriteString("Arrive at destination")
	case "turn":
		instruction.WriteString("Turn")
		if modifier != "" {
			instruction.WriteString(" ")
			instruction.WriteString(modifier)
		}
	case "continue":
		instruction.WriteString("Continue")
		if modifier != "" {
			instruction.WriteString(" ")
			instruction.WriteString(modifier)
		}
	case "roundabout":
		instruction.WriteString("Enter roundabout")
	case "merge":
		instruction.WriteString("Merge")
		if modifier != "" {
			instruction.WriteString(" ")
			instruction.WriteString(modifier)
		}
	case "fork":
		instruction.WriteString("Keep")
		if modifier != "" {
			instruction.WriteString(" ")
			instruction.WriteString(modifier)
		}
		instruction.WriteString(" at fork")
	default:
		instruction.WriteString(maneuverType)
	}

	if name != "" && name != "-" {
		instruction.WriteString(" onto ")
		instruction.WriteString(name)
	}

	if distance > 0 {
		if distance >= 1000 {
			instruction.WriteString(fmt.Sprintf(" for %.1f km", distance/1000))
		} else {
			instruction.WriteString(fmt.Sprintf(" for %d m", int(distance)))
		}
	}

	return instruction.String()
}

func cacheKey(origin, destination entity.Coordinate, profile string, alternatives int) string {
	return fmt.Sprintf("%.6f,%.6f|%.6f,%.6f|%s|%d",
		origin.Lat, origin.Lng,
		destination.Lat, destination.Lng,
		profile, alternatives,
	)
}
