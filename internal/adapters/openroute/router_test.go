package openroute_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/wayfinder/internal/adapters/openroute"
	"github.com/samirrijal/wayfinder/internal/core/domain"
)

const heidelbergRoute = `{
  "type": "FeatureCollection",
  "bbox": [8.681423, 49.414599, 8.690123, 49.420514],
  "features": [{
    "bbox": [8.681423, 49.414599, 8.690123, 49.420514],
    "type": "Feature",
    "properties": {
      "segments": [{
        "distance": 1495.2,
        "duration": 281.9,
        "steps": [
          {"distance": 1.4, "duration": 0.3, "type": 11, "instruction": "Head west on Gerokstraße", "name": "Gerokstraße", "way_points": [0, 1]},
          {"distance": 1493.8, "duration": 281.6, "type": 10, "instruction": "Arrive at Am Götzenberg, on the right", "name": "-", "way_points": [1, 2]}
        ]
      }],
      "summary": {"distance": 1495.2, "duration": 281.9},
      "way_points": [0, 2]
    },
    "geometry": {
      "coordinates": [[8.681495, 49.41461], [8.686507, 49.41943], [8.687872, 49.420318]],
      "type": "LineString"
    }
  }],
  "metadata": {"service": "routing"}
}`

func TestRoute_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/directions/foot-walking/geojson", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))

		raw, _ := io.ReadAll(r.Body)
		var body struct {
			Coordinates  [][2]float64 `json:"coordinates"`
			Instructions bool         `json:"instructions"`
		}
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, [][2]float64{{8.681495, 49.41461}, {8.687872, 49.420318}}, body.Coordinates)
		assert.True(t, body.Instructions)

		w.Header().Set("Content-Type", "application/geo+json")
		w.Write([]byte(heidelbergRoute))
	}))
	defer srv.Close()

	r := openroute.New(srv.URL, "test-key", time.Second)
	route, err := r.Route(context.Background(),
		domain.NewCoordinate(8.681495, 49.41461),
		domain.NewCoordinate(8.687872, 49.420318),
		domain.ProfileWalking,
	)
	require.NoError(t, err)

	assert.Equal(t, domain.ProfileWalking, route.Profile)
	assert.Len(t, route.Geometry, 3)
	assert.Equal(t, domain.NewCoordinate(8.686507, 49.41943), route.Geometry[1])
	require.Len(t, route.Steps, 2)
	assert.Equal(t, "Head west on Gerokstraße", route.Steps[0].Instruction)
	assert.Equal(t, 1493.8, route.Steps[1].DistanceMeters)
	assert.Equal(t, domain.Summary{DistanceMeters: 1495.2, DurationSeconds: 281.9}, route.Summary)
	assert.Equal(t, domain.Bounds{MinLon: 8.681423, MinLat: 49.414599, MaxLon: 8.690123, MaxLat: 49.420514}, route.Bounds)
}

func TestRoute_ProfileNames(t *testing.T) {
	want := map[domain.Profile]string{
		domain.ProfileDriving: "driving-car",
		domain.ProfileCycling: "cycling-regular",
		domain.ProfileWalking: "foot-walking",
	}
	for p, name := range want {
		got, ok := openroute.ProfileName(p)
		assert.True(t, ok)
		assert.Equal(t, name, got)
	}

	_, err := openroute.New("http://unused", "k", time.Second).Route(context.Background(), domain.Coordinate{}, domain.Coordinate{}, "hovercraft")
	assert.True(t, errors.Is(err, domain.ErrInvalid))
}

func TestRoute_BoundsFromGeometryWhenMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":"FeatureCollection","features":[{"type":"Feature",
			"properties":{"segments":[],"summary":{"distance":10,"duration":2}},
			"geometry":{"type":"LineString","coordinates":[[1,2],[3,1],[2,4]]}}]}`))
	}))
	defer srv.Close()

	route, err := openroute.New(srv.URL, "k", time.Second).Route(context.Background(), domain.NewCoordinate(1, 2), domain.NewCoordinate(2, 4), domain.ProfileDriving)
	require.NoError(t, err)
	assert.Equal(t, domain.Bounds{MinLon: 1, MinLat: 1, MaxLon: 3, MaxLat: 4}, route.Bounds)
	assert.Empty(t, route.Steps)
}

func TestRoute_Degenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":"FeatureCollection","features":[{"type":"Feature",
			"bbox":[8.68,49.41,8.68,49.41],
			"properties":{"segments":[{"steps":[{"instruction":"Arrive at your destination","distance":0,"duration":0}]}],"summary":{}},
			"geometry":{"type":"LineString","coordinates":[[8.68,49.41],[8.68,49.41]]}}]}`))
	}))
	defer srv.Close()

	p := domain.NewCoordinate(8.68, 49.41)
	route, err := openroute.New(srv.URL, "k", time.Second).Route(context.Background(), p, p, domain.ProfileDriving)
	require.NoError(t, err)
	assert.Equal(t, domain.Summary{}, route.Summary)
	require.Len(t, route.Steps, 1)
}

func TestRoute_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"route not found", http.StatusNotFound, `{"error":{"code":2009,"message":"Route could not be found - Unable to find a route between points 1 and 2."},"info":{"engine":{}}}`, domain.ErrRouteNotFound},
		{"point not routable", http.StatusNotFound, `{"error":{"code":2010,"message":"Could not find routable point within a radius of 350.0 meters"}}`, domain.ErrRouteNotFound},
		{"empty features", http.StatusOK, `{"type":"FeatureCollection","features":[]}`, domain.ErrRouteNotFound},
		{"bad key", http.StatusForbidden, `{"error":"Access to this API has been disallowed"}`, domain.ErrNetwork},
		{"invalid parameter", http.StatusBadRequest, `{"error":{"code":2003,"message":"Parameter 'coordinates' has incorrect value"}}`, domain.ErrNetwork},
		{"server error", http.StatusInternalServerError, ``, domain.ErrNetwork},
		{"malformed body", http.StatusOK, `{"features": 12}`, domain.ErrNetwork},
		{"wrong geometry", http.StatusOK, `{"features":[{"geometry":{"type":"Point","coordinates":[1,2]},"properties":{}}]}`, domain.ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := openroute.New(srv.URL, "k", time.Second).Route(context.Background(), domain.NewCoordinate(0, 0), domain.NewCoordinate(1, 1), domain.ProfileCycling)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "expected %v, got %v", tt.want, err)
		})
	}
}
