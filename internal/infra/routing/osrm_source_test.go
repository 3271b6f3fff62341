package routing

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoroute/config"
	"ecoroute/internal/domain/entity"
)

const osrmFixture = `{
  "code": "Ok",
  "routes": [
    {
      "duration": 3600,
      "distance": 90000,
      "geometry": {"type": "LineString", "coordinates": [[2.35, 48.85], [2.5, 49.0], [2.6, 49.1]]},
      "legs": [
        {
          "summary": "A1",
          "steps": [
            {"distance": 500, "name": "Rue de Rivoli", "maneuver": {"type": "depart"}},
            {"distance": 89500, "name": "A1", "maneuver": {"type": "merge", "modifier": "slight right"}},
            {"distance": 0, "name": "", "maneuver": {"type": "arrive"}}
          ]
        }
      ]
    }
  ]
}`

func newTestSource(t *testing.T, baseURL string) *osrmSource {
	t.Helper()

	cfg := &config.Config{
		Routing: &config.RoutingConfig{
			OSRMBaseURL:       baseURL,
			Timeout:           2 * time.Second,
			RequestsPerSecond: 100,
		},
	}

	source, err := NewSource(cfg, slog.Default())
	require.NoError(t, err)

	osrm, ok := source.(*osrmSource)
	require.True(t, ok)

	return osrm
}

func TestOSRMSourceParsesRoutes(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(osrmFixture))
	}))
	defer server.Close()

	source := newTestSource(t, server.URL)
	origin := entity.Coordinate{Lat: 48.85, Lng: 2.35}
	destination := entity.Coordinate{Lat: 49.1, Lng: 2.6}

	legs, err := source.Routes(context.Background(), origin, destination, "car", 0)

	require.NoError(t, err)
	require.Len(t, legs, 1)
	assert.Contains(t, gotPath, "/route/v1/driving/")
	assert.InDelta(t, 90.0, legs[0].DistanceKm, 1e-9)
	assert.InDelta(t, 1.0, legs[0].DurationHours, 1e-9)
	assert.Equal(t, "A1", legs[0].Summary)
	require.Len(t, legs[0].Geometry, 3)
	assert.InDelta(t, 2.35, legs[0].Geometry[0][0], 1e-9)
	require.NotEmpty(t, legs[0].Instructions)
	assert.Equal(t, "Start onto Rue de Rivoli for 500 m", legs[0].Instructions[0])
}

func TestOSRMSourceCachesResults(t *testing.T) {
	t.Parallel()

	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte(osrmFixture))
	}))
	defer server.Close()

	source := newTestSource(t, server.URL)
	origin := entity.Coordinate{Lat: 48.85, Lng: 2.35}
	destination := entity.Coordinate{Lat: 49.1, Lng: 2.6}

	_, err := source.Routes(context.Background(), origin, destination, "car", 0)
	require.NoError(t, err)
	_, err = source.Routes(context.Background(), origin, destination, "car", 0)
	require.NoError(t, err)

	assert.Equal(t, 1, hits)
}

func TestOSRMSourceFallsBackOnFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	source := newTestSource(t, server.URL)
	origin := entity.Coordinate{Lat: 0, Lng: 0}
	destination := entity.Coordinate{Lat: 0, Lng: 1}

	legs, err := source.Routes(context.Background(), origin, destination, "car", 0)

	require.NoError(t, err)
	require.Len(t, legs, 1)
	// The great-circle estimate took over.
	assert.InDelta(t, 111.19, legs[0].DistanceKm, 0.1)
}

func TestOSRMSourceNonRoadModesSkipEngine(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("routing engine must not be queried for non-road modes")
	}))
	defer server.Close()

	source := newTestSource(t, server.URL)
	origin := entity.Coordinate{Lat: 31.23, Lng: 121.47}
	destination := entity.Coordinate{Lat: 51.95, Lng: 4.14}

	for _, mode := range []string{"ship", "train", "plane"} {
		legs, err := source.Routes(context.Background(), origin, destination, mode, 1)

		require.NoError(t, err)
		assert.Len(t, legs, 2)
	}
}

func TestNewSourceWithoutRoutingConfig(t *testing.T) {
	t.Parallel()

	source, err := NewSource(&config.Config{}, slog.Default())

	require.NoError(t, err)
	_, isMock := source.(*mockSource)
	assert.True(t, isMock)
}
