package scene

// Document is the YAML form of a scene.
//
//	width: 200
//	height: 100
//	background: "#ffffff"
//	items:
//	  - type: rect
//	    x: 10
//	    y: 10
//	    width: 80
//	    height: 40
//	    fill: "#3366cc"
//	    filter:
//	      primitives:
//	        - type: blur
//	          std-deviation: [2]
type Document struct {
	Width      int               `yaml:"width"`
	Height     int               `yaml:"height"`
	Background string            `yaml:"background"`
	Fonts      map[string]string `yaml:"fonts"`
	Items      []Item            `yaml:"items"`

	Extra map[string]any `yaml:",inline"`
}

// Item is one node of the scene tree. Which fields apply depends on Type:
// group, rect, circle, ellipse, polygon, polyline, path, image or text.
type Item struct {
	Type      string `yaml:"type"`
	ID        string `yaml:"id"`
	Transform string `yaml:"transform"`

	Opacity       *float64 `yaml:"opacity"`
	Blend         string   `yaml:"blend"`
	Isolate       bool     `yaml:"isolate"`
	Hidden        bool     `yaml:"hidden"`
	Cached        bool     `yaml:"cached"`
	BackgroundNew bool     `yaml:"enable-background-new"`
	Clip          *Item    `yaml:"clip"`
	Mask          *Item    `yaml:"mask"`
	Filter        *Filter  `yaml:"filter"`

	// Geometry.
	X      float64      `yaml:"x"`
	Y      float64      `yaml:"y"`
	Width  float64      `yaml:"width"`
	Height float64      `yaml:"height"`
	CX     float64      `yaml:"cx"`
	CY     float64      `yaml:"cy"`
	R      float64      `yaml:"r"`
	RX     float64      `yaml:"rx"`
	RY     float64      `yaml:"ry"`
	Points [][2]float64 `yaml:"points"`
	D      string       `yaml:"d"`

	// Style.
	Fill          string    `yaml:"fill"`
	FillOpacity   *float64  `yaml:"fill-opacity"`
	FillRule      string    `yaml:"fill-rule"`
	ClipRule      string    `yaml:"clip-rule"`
	Stroke        string    `yaml:"stroke"`
	StrokeOpacity *float64  `yaml:"stroke-opacity"`
	StrokeWidth   *float64  `yaml:"stroke-width"`
	LineCap       string    `yaml:"stroke-linecap"`
	LineJoin      string    `yaml:"stroke-linejoin"`
	MiterLimit    *float64  `yaml:"stroke-miterlimit"`
	Dash          []float64 `yaml:"stroke-dasharray"`
	PaintOrder    string    `yaml:"paint-order"`

	// Image.
	File   string `yaml:"file"`
	Smooth *bool  `yaml:"smooth"`

	// Text.
	Text          string  `yaml:"text"`
	Font          string  `yaml:"font"`
	Size          float64 `yaml:"size"`
	Anchor        string  `yaml:"anchor"`
	LetterSpacing float64 `yaml:"letter-spacing"`

	// Group.
	ChildTransform string `yaml:"child-transform"`
	Children       []Item `yaml:"children"`

	Extra map[string]any `yaml:",inline"`
}

// Filter describes a filter chain.
type Filter struct {
	Units              string      `yaml:"units"`
	PrimitiveUnits     string      `yaml:"primitive-units"`
	Region             []float64   `yaml:"region"`
	Resolution         []int       `yaml:"resolution"`
	ColorInterpolation string      `yaml:"color-interpolation"`
	Primitives         []Primitive `yaml:"primitives"`

	Extra map[string]any `yaml:",inline"`
}

// Primitive describes one filter primitive. Fields not used by Type are
// ignored.
type Primitive struct {
	Type               string    `yaml:"type"`
	In                 string    `yaml:"in"`
	In2                string    `yaml:"in2"`
	Result             string    `yaml:"result"`
	Subregion          []float64 `yaml:"subregion"`
	ColorInterpolation string    `yaml:"color-interpolation"`

	StdDeviation  []float64 `yaml:"std-deviation"`
	Dx            float64   `yaml:"dx"`
	Dy            float64   `yaml:"dy"`
	Color         string    `yaml:"color"`
	Opacity       *float64  `yaml:"opacity"`
	Operator      string    `yaml:"operator"`
	K             []float64 `yaml:"k"`
	Mode          string    `yaml:"mode"`
	MatrixType    string    `yaml:"matrix-type"`
	Values        []float64 `yaml:"values"`
	Radius        []float64 `yaml:"radius"`
	Inputs        []string  `yaml:"inputs"`
	BaseFrequency []float64 `yaml:"base-frequency"`
	Octaves       int       `yaml:"octaves"`
	Seed          float64   `yaml:"seed"`
	Stitch        bool      `yaml:"stitch"`
	Fractal       bool      `yaml:"fractal"`
	Scale         float64   `yaml:"scale"`
	XChannel      string    `yaml:"x-channel"`
	YChannel      string    `yaml:"y-channel"`
	Order         []int     `yaml:"order"`
	Kernel        []float64 `yaml:"kernel"`
	Divisor       float64   `yaml:"divisor"`
	Bias          float64   `yaml:"bias"`
	PreserveAlpha bool      `yaml:"preserve-alpha"`

	Light            *Light   `yaml:"light"`
	SurfaceScale     *float64 `yaml:"surface-scale"`
	LightingColor    string   `yaml:"lighting-color"`
	DiffuseConstant  *float64 `yaml:"diffuse-constant"`
	SpecularConstant *float64 `yaml:"specular-constant"`
	SpecularExponent *float64 `yaml:"specular-exponent"`

	Funcs map[string]Transfer `yaml:"funcs"`

	Extra map[string]any `yaml:",inline"`
}

// Light describes a light source: distant, point or spot.
type Light struct {
	Type              string     `yaml:"type"`
	Azimuth           float64    `yaml:"azimuth"`
	Elevation         float64    `yaml:"elevation"`
	Position          [3]float64 `yaml:"position"`
	PointsAt          [3]float64 `yaml:"points-at"`
	SpecularExponent  float64    `yaml:"specular-exponent"`
	LimitingConeAngle float64    `yaml:"limiting-cone-angle"`
}

// Transfer describes one component transfer function.
type Transfer struct {
	Type      string    `yaml:"type"`
	Values    []float64 `yaml:"values"`
	Slope     float64   `yaml:"slope"`
	Intercept float64   `yaml:"intercept"`
	Amplitude float64   `yaml:"amplitude"`
	Exponent  float64   `yaml:"exponent"`
	Offset    float64   `yaml:"offset"`
}
