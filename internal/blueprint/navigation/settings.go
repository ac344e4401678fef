package navigation

import "math"

// Settings holds camera placement constants. Angles are in degrees.
type Settings struct {
	FOV               float64 `yaml:"fov" json:"fov"`
	OrbitDistance     float64 `yaml:"orbit_distance" json:"orbitDistance"`
	OrbitElevation    float64 `yaml:"orbit_elevation" json:"orbitElevation"`
	OrbitAzimuth      float64 `yaml:"orbit_azimuth" json:"orbitAzimuth"`
	MinDistance       float64 `yaml:"min_distance" json:"minDistance"`
	MoveStep          float64 `yaml:"move_step" json:"moveStep"`
	RotateStep        float64 `yaml:"rotate_step" json:"rotateStep"`
	ZoomStep          float64 `yaml:"zoom_step" json:"zoomStep"`
	EyeHeight         float64 `yaml:"eye_height" json:"eyeHeight"`
	TopDownHeight     float64 `yaml:"top_down_height" json:"topDownHeight"`
	TopDownFOV        float64 `yaml:"top_down_fov" json:"topDownFov"`
	MinZoom           float64 `yaml:"min_zoom" json:"minZoom"`
	MaxZoom           float64 `yaml:"max_zoom" json:"maxZoom"`
	FocusDistanceMult float64 `yaml:"focus_distance_mult" json:"focusDistanceMult"`
}

func DefaultSettings() Settings {
	return Settings{
		FOV:               50,
		OrbitDistance:     30,
		OrbitElevation:    35,
		OrbitAzimuth:      45,
		MinDistance:       0.5,
		MoveStep:          1,
		RotateStep:        5,
		ZoomStep:          0.1,
		EyeHeight:         1.7,
		TopDownHeight:     100,
		TopDownFOV:        20,
		MinZoom:           0.25,
		MaxZoom:           10,
		FocusDistanceMult: 2.5,
	}
}

// withDefaults fills zero fields from DefaultSettings.
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	fill := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&s.FOV, d.FOV)
	fill(&s.OrbitDistance, d.OrbitDistance)
	fill(&s.MinDistance, d.MinDistance)
	fill(&s.MoveStep, d.MoveStep)
	fill(&s.RotateStep, d.RotateStep)
	fill(&s.ZoomStep, d.ZoomStep)
	fill(&s.EyeHeight, d.EyeHeight)
	fill(&s.TopDownHeight, d.TopDownHeight)
	fill(&s.TopDownFOV, d.TopDownFOV)
	fill(&s.MinZoom, d.MinZoom)
	fill(&s.MaxZoom, d.MaxZoom)
	fill(&s.FocusDistanceMult, d.FocusDistanceMult)
	return s
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
