// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Camera    CameraConfig    `yaml:"camera"`
	Structure StructureConfig `yaml:"structure"`
	Render    RenderConfig    `yaml:"render"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Samples    int    `yaml:"samples"` // MSAA samples, 0 disables
}

// CameraConfig holds projection and input settings.
type CameraConfig struct {
	FOVDegrees        float32 `yaml:"fov_degrees"`
	Near              float32 `yaml:"near"`
	Far               float32 `yaml:"far"`
	Orthographic      bool    `yaml:"orthographic"`
	DistanceFactor    float32 `yaml:"distance_factor"` // initial distance = radius * factor
	RotateSensitivity float32 `yaml:"rotate_sensitivity"`
	PanSensitivity    float32 `yaml:"pan_sensitivity"`
	ZoomSensitivity   float32 `yaml:"zoom_sensitivity"`
}

// StructureConfig holds the structure source.
type StructureConfig struct {
	Nodes     string             `yaml:"nodes"` // CSV with X, Y, Z columns
	Edges     string             `yaml:"edges"` // CSV with start_node, end_node columns
	Variables map[string]float64 `yaml:"variables"`
	Formulas  map[string]string  `yaml:"formulas"`
	Watch     bool               `yaml:"watch"`
}

// RenderConfig holds what is drawn and how.
type RenderConfig struct {
	ShowNodes  bool       `yaml:"show_nodes"`
	ShowEdges  bool       `yaml:"show_edges"`
	ShowAxes   bool       `yaml:"show_axes"`
	PointSize  float32    `yaml:"point_size"`
	Background [3]float32 `yaml:"background"`
	EdgeColor  [3]float32 `yaml:"edge_color"`
	NodeColor  [3]float32 `yaml:"node_color"`

	// ScreenshotDir receives PNGs saved with the P key.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "frameview",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Samples:    4,
		},
		Camera: CameraConfig{
			FOVDegrees:        45,
			Near:              0.1,
			Far:               1000,
			DistanceFactor:    2.5,
			RotateSensitivity: 0.01,
			PanSensitivity:    0.002,
			ZoomSensitivity:   0.01,
		},
		Structure: StructureConfig{
			Nodes: "nodes.csv",
			Edges: "edges.csv",
		},
		Render: RenderConfig{
			ShowNodes:  true,
			ShowEdges:  true,
			ShowAxes:   true,
			PointSize:  6,
			Background: [3]float32{0.95, 0.95, 0.95},
			EdgeColor:  [3]float32{0.1, 0.4, 0.8},
			NodeColor:  [3]float32{0.8, 0.2, 0.1},

			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
