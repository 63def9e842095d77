package domain

import "fmt"

// RegionID names a display region a rendering surface binds to.
type RegionID string

const (
	ChartRegion RegionID = "chartdiv"
	MapRegion   RegionID = "mapdiv"
)

// SurfaceKind selects the chart family an engine builds.
type SurfaceKind string

const (
	SurfaceKindXY  SurfaceKind = "xy"
	SurfaceKindMap SurfaceKind = "map"
)

// SurfaceConfig is the declarative description handed to the rendering engine at creation.
type SurfaceConfig struct {
	Kind            SurfaceKind `json:"kind"`
	Title           string      `json:"title"`
	SeriesName      string      `json:"seriesName,omitempty"`
	TooltipTemplate string      `json:"tooltipTemplate"`
	BaseInterval    string      `json:"baseInterval,omitempty"`
	Themes          []string    `json:"themes"`
	StrokeColor     string      `json:"strokeColor,omitempty"`
	ExportPrefix    string      `json:"exportPrefix"`
	Map             *MapConfig  `json:"map,omitempty"`
}

// MapConfig describes the static world map of the geographic panel.
type MapConfig struct {
	Projection  string   `json:"projection"`
	Geodata     string   `json:"geodata"`
	Exclude     []string `json:"exclude"`
	PanX        string   `json:"panX"`
	PanY        string   `json:"panY"`
	Fill        string   `json:"fill"`
	Stroke      string   `json:"stroke"`
	StrokeWidth float64  `json:"strokeWidth"`
	HoverFill   string   `json:"hoverFill"`
}

const (
	ChartExportPrefix = "CryptoPulse_Data"
	MapExportPrefix   = "CryptoPulse_Map"
)

// Asset describes the single tracked asset.
type Asset struct {
	ID    string // provider id, e.g. "bitcoin"
	Name  string // display name, e.g. "Bitcoin"
	Label string // ticker, e.g. "BTC"
}

// NewPriceChartConfig builds the line chart description for asset priced in code.
func NewPriceChartConfig(asset Asset, code CurrencyCode) SurfaceConfig {
	return SurfaceConfig{
		Kind:            SurfaceKindXY,
		Title:           fmt.Sprintf("%s Price (%s)", asset.Name, code.Label()),
		SeriesName:      asset.Label,
		TooltipTemplate: fmt.Sprintf("[bold]{valueY}[/] %s", code.Label()),
		BaseInterval:    "1 day",
		Themes:          []string{"animated", "dark"},
		StrokeColor:     "#00e5ff",
		ExportPrefix:    ChartExportPrefix,
	}
}

// NewWorldMapConfig builds the static geographic panel description.
func NewWorldMapConfig() SurfaceConfig {
	return SurfaceConfig{
		Kind:            SurfaceKindMap,
		Title:           "Global Snapshot",
		TooltipTemplate: "{name}",
		Themes:          []string{"animated", "dark"},
		ExportPrefix:    MapExportPrefix,
		Map: &MapConfig{
			Projection:  "mercator",
			Geodata:     "worldLow",
			Exclude:     []string{"AQ"},
			PanX:        "rotateX",
			PanY:        "rotateY",
			Fill:        "#2a2f3a",
			Stroke:      "#0b0f19",
			StrokeWidth: 0.5,
			HoverFill:   "#00e5ff",
		},
	}
}
