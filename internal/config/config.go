// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Camera    CameraConfig    `yaml:"camera"`
	Animation AnimationConfig `yaml:"animation"`
	Assets    AssetsConfig    `yaml:"assets"`
	Debug     DebugConfig     `yaml:"debug"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	FPSLimit   int        `yaml:"fps_limit"`
	ClearColor [3]float32 `yaml:"clear_color"`
}

// CameraConfig holds the first-person camera settings.
type CameraConfig struct {
	FOV              float32    `yaml:"fov"` // degrees
	Near             float32    `yaml:"near"`
	Far              float32    `yaml:"far"`
	MoveSpeed        float32    `yaml:"move_speed"`        // units per second
	MouseSensitivity float32    `yaml:"mouse_sensitivity"` // radians per pixel
	Position         [3]float32 `yaml:"position"`
}

// AnimationConfig holds playback settings.
type AnimationConfig struct {
	Autoplay bool    `yaml:"autoplay"`
	Loop     bool    `yaml:"loop"`
	Speed    float32 `yaml:"speed"`
}

// AssetsConfig holds model and texture locations.
type AssetsConfig struct {
	Model      string `yaml:"model"`
	TextureDir string `yaml:"texture_dir"` // fallback for relative texture paths
}

// DebugConfig holds overlay toggles.
type DebugConfig struct {
	ShowStats      bool `yaml:"show_stats"` // frame statistics in the window title
	ShowBounds     bool `yaml:"show_bounds"`
	ShowCollisions bool `yaml:"show_collisions"`
	Wireframe      bool `yaml:"wireframe"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			ClearColor: [3]float32{0.1, 0.1, 0.12},
		},
		Camera: CameraConfig{
			FOV:              60,
			Near:             0.1,
			Far:              500,
			MoveSpeed:        5,
			MouseSensitivity: 0.003,
			Position:         [3]float32{0, 1.5, 5},
		},
		Animation: AnimationConfig{
			Autoplay: true,
			Loop:     true,
			Speed:    1,
		},
		Assets: AssetsConfig{
			Model: "",
		},
		Debug: DebugConfig{
			ShowStats: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
