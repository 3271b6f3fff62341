// Package weather provides concrete implementations of the WeatherSource
// domain service.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"ecoroute/config"
	"ecoroute/internal/domain/entity"
	"ecoroute/internal/domain/service"
	"ecoroute/internal/errors"
)

const (
	defaultBaseURL  = "https://api.openweathermap.org"
	defaultTimeout  = 5 * time.Second
	defaultCacheTTL = 10 * time.Minute
)

// placeholderSnapshot is the neutral observation served when no live data
// is available. Its values sit in every "no adjustment" band of the
// emission estimator.
var placeholderSnapshot = entity.WeatherSnapshot{
	TemperatureC: 22.5,
	WindSpeed:    15.2,
	Humidity:     68,
	Condition:    "Clear",
}

// openWeatherSource fetches current conditions from the OpenWeather API,
// with an optional Redis cache in front. Any upstream failure degrades to
// the neutral placeholder snapshot.
type openWeatherSource struct {
	apiKey   string
	baseURL  string
	client   *http.Client
	cache    *redis.Client // nil when caching is disabled
	cacheTTL time.Duration
	logger   *slog.Logger
}

// placeholderSource serves the neutral snapshot unconditionally.
type placeholderSource struct{}

// NewSource builds the weather source stack. Without an API key every
// request gets the placeholder snapshot.
func NewSource(cfg *config.Config, logger *slog.Logger, cache *redis.Client) service.WeatherSource {
	if cfg.Weather == nil || cfg.Weather.APIKey == "" {
		logger.Warn("weather api is not configured, using placeholder conditions")

		return &placeholderSource{}
	}

	wc := cfg.Weather
	baseURL := wc.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := wc.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	cacheTTL := wc.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}

	return &openWeatherSource{
		apiKey:   wc.APIKey,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Snapshot returns the placeholder observation.
func (s *placeholderSource) Snapshot(_ context.Context, _, _ float64) (entity.WeatherSnapshot, error) {
	return placeholderSnapshot, nil
}

// Snapshot returns current conditions at the given point. Upstream errors
// are logged and replaced by the placeholder so a route calculation never
// fails on weather.
func (s *openWeatherSource) Snapshot(ctx context.Context, lat, lng float64) (entity.WeatherSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return entity.WeatherSnapshot{}, err
	}

	key := cacheKey(lat, lng)
	if snapshot, ok := s.cached(ctx, key); ok {
		return snapshot, nil
	}

	snapshot, err := s.fetch(ctx, lat, lng)
	if err != nil {
		s.logger.Warn("weather api unavailable, using placeholder conditions",
			slog.Float64("lat", lat),
			slog.Float64("lng", lng),
			slog.String("error", err.Error()),
		)

		return placeholderSnapshot, nil
	}

	s.store(ctx, key, snapshot)

	return snapshot, nil
}

// openWeatherResponse mirrors the subset of the OpenWeather current-weather
// response we consume.
type openWeatherResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
}

func (s *openWeatherSource) fetch(ctx context.Context, lat, lng float64) (entity.WeatherSnapshot, error) {
	reqURL, err := url.Parse(s.baseURL + "/data/2.5/weather")
	if err != nil {
		return entity.WeatherSnapshot{}, errors.Wrap(err, "failed to build weather URL")
	}

	query := reqURL.Query()
	query.Add("lat", fmt.Sprintf("%.4f", lat))
	query.Add("lon", fmt.Sprintf("%.4f", lng))
	query.Add("appid", s.apiKey)
	query.Add("units", "metric")
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return entity.WeatherSnapshot{}, errors.Wrap(err, "failed to create weather request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return entity.WeatherSnapshot{}, errors.Wrap(err, "weather request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.WeatherSnapshot{}, errors.Errorf("weather api returned status %d", resp.StatusCode)
	}

	var result openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return entity.WeatherSnapshot{}, errors.Wrap(err, "failed to decode weather response")
	}

	snapshot := entity.WeatherSnapshot{
		TemperatureC: result.Main.Temp,
		WindSpeed:    result.Wind.Speed,
		Humidity:     result.Main.Humidity,
	}
	if len(result.Weather) > 0 {
		snapshot.Condition = result.Weather[0].Main
	}

	return snapshot, nil
}

func (s *openWeatherSource) cached(ctx context.Context, key string) (entity.WeatherSnapshot, bool) {
	if s.cache == nil {
		return entity.WeatherSnapshot{}, false
	}

	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return entity.WeatherSnapshot{}, false
	}

	var snapshot entity.WeatherSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return entity.WeatherSnapshot{}, false
	}

	return snapshot, true
}

func (s *openWeatherSource) store(ctx context.Context, key string, snapshot entity.WeatherSnapshot) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("failed to cache weather snapshot", slog.String("error", err.Error()))
	}
}

func cacheKey(lat, lng float64) string {
	return fmt.Sprintf("weather:%.4f:%.4f", lat, lng)
}
