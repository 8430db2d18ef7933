package domain

// Default palette shared by the custom colors mod
const (
	DefaultRed  = "#f21818"
	DefaultBlue = "#006cff"
)

// ModName names an optional per-song modifier
type ModName string

const (
	ModMappingExtensions ModName = "mappingExtensions"
	ModCustomColors      ModName = "customColors"
)

// ColorElement names one slot of the custom colors palette
type ColorElement string

const (
	ColorLeft     ColorElement = "colorLeft"
	ColorRight    ColorElement = "colorRight"
	EnvColorLeft  ColorElement = "envColorLeft"
	EnvColorRight ColorElement = "envColorRight"
	ObstacleColor ColorElement = "obstacleColor"
)

// MappingExtensions describes a custom note grid
type MappingExtensions struct {
	NumRows    int     `json:"numRows"`
	NumCols    int     `json:"numCols"`
	CellWidth  float64 `json:"cellWidth"`
	CellHeight float64 `json:"cellHeight"`
}

// CustomColors is the custom colors palette, as hex strings
type CustomColors struct {
	ColorLeft     string `json:"colorLeft"`
	ColorRight    string `json:"colorRight"`
	EnvColorLeft  string `json:"envColorLeft"`
	EnvColorRight string `json:"envColorRight"`
	ObstacleColor string `json:"obstacleColor"`
}

// With returns a copy of c with the named slot set to color.
// ok is false for an unknown element.
func (c CustomColors) With(element ColorElement, color string) (CustomColors, bool) {
	switch element {
	case ColorLeft:
		c.ColorLeft = color
	case ColorRight:
		c.ColorRight = color
	case EnvColorLeft:
		c.EnvColorLeft = color
	case EnvColorRight:
		c.EnvColorRight = color
	case ObstacleColor:
		c.ObstacleColor = color
	default:
		return c, false
	}
	return c, true
}

// ModSettings holds the per-song mod configuration. A mod is enabled iff
// its field is non-nil.
type ModSettings struct {
	MappingExtensions *MappingExtensions `json:"mappingExtensions,omitempty"`
	CustomColors      *CustomColors      `json:"customColors,omitempty"`
}

// DefaultMappingExtensions returns the grid used when mapping extensions is
// first enabled.
func DefaultMappingExtensions() MappingExtensions {
	return MappingExtensions{NumRows: 3, NumCols: 4, CellWidth: 1, CellHeight: 1}
}

// DefaultCustomColors returns the palette used when custom colors is first
// enabled.
func DefaultCustomColors() CustomColors {
	return CustomColors{
		ColorLeft:     DefaultRed,
		ColorRight:    DefaultBlue,
		EnvColorLeft:  DefaultRed,
		EnvColorRight: DefaultBlue,
		ObstacleColor: DefaultRed,
	}
}
