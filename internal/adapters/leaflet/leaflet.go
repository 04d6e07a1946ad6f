// Package leaflet serializes a rendered map into a standalone HTML page that
// draws it with Leaflet.
package leaflet

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/paulmach/orb/geojson"

	"github.com/samirrijal/wayfinder/internal/core/domain"
	"github.com/samirrijal/wayfinder/internal/pkg/geospatial"
)

// ContentType of documents produced by Write.
const ContentType = "text/html; charset=utf-8"

var page = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map("map").setView({{.Center}}, {{.Zoom}});
L.tileLayer("https://tile.openstreetmap.org/{z}/{x}/{y}.png", {
  maxZoom: 19,
  attribution: "&copy; OpenStreetMap contributors"
}).addTo(map);
L.geoJSON({{.Route}}).addTo(map);
{{- range .Circles}}
L.circleMarker({{.Position}}, {radius: {{.Radius}}, color: {{.Color}}, weight: {{.Weight}}, fill: true, fillColor: {{.FillColor}}, fillOpacity: {{.FillOpacity}}}).bindTooltip({{.Tooltip}}).addTo(map);
{{- end}}
{{- range .Pins}}
L.marker({{.Position}}).bindTooltip({{.Tooltip}}).addTo(map);
{{- end}}
map.fitBounds({{.FitBounds}});
</script>
</body>
</html>
`))

type marker struct {
	Position    [2]float64
	Tooltip     string
	Radius      int
	Color       string
	Weight      int
	FillColor   string
	FillOpacity float64
}

type view struct {
	Title     string
	Center    [2]float64
	Zoom      int
	Route     *geojson.FeatureCollection
	Circles   []marker
	Pins      []marker
	FitBounds [2][2]float64
}

// Write renders m as an HTML document to w.
func Write(w io.Writer, m *domain.RenderedMap) error {
	route := geojson.NewFeatureCollection()
	f := geojson.NewFeature(geospatial.LineString(m.Route))
	f.Properties["name"] = "Route"
	route.Append(f)

	v := view{
		Title:     "Route",
		Center:    m.Center.Pair(),
		Zoom:      m.Zoom,
		Route:     route,
		FitBounds: [2][2]float64{m.FitBounds.SouthWest().Pair(), m.FitBounds.NorthEast().Pair()},
	}

	for _, mk := range m.Markers {
		out := marker{
			Position:    mk.Position.Pair(),
			Tooltip:     mk.Tooltip,
			Radius:      mk.Radius,
			Color:       mk.Color,
			Weight:      mk.Weight,
			FillColor:   mk.FillColor,
			FillOpacity: mk.FillOpacity,
		}
		if mk.Kind == domain.MarkerCircle {
			v.Circles = append(v.Circles, out)
		} else {
			v.Pins = append(v.Pins, out)
		}
	}

	if err := page.Execute(w, v); err != nil {
		return fmt.Errorf("render map: %w", err)
	}
	return nil
}

// Render returns the HTML document for m.
func Render(m *domain.RenderedMap) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
