package vehicle

// Toggle names one switchable vehicle feature.
type Toggle int

const (
	Movement Toggle = iota
	Camera
	WallClimb
	Boost
	IndicatorLeft
	IndicatorRight
)

func (t Toggle) String() string {
	switch t {
	case Movement:
		return "movement"
	case Camera:
		return "camera"
	case WallClimb:
		return "wall_climb"
	case Boost:
		return "boost"
	case IndicatorLeft:
		return "indicator_left"
	case IndicatorRight:
		return "indicator_right"
	default:
		return "unknown"
	}
}

// Toggles is a snapshot of the feature switches.
type Toggles struct {
	Movement       bool
	Camera         bool
	WallClimb      bool
	Boost          bool
	IndicatorLeft  bool
	IndicatorRight bool
}

// Enabled reports the state of t.
func (ts Toggles) Enabled(t Toggle) bool {
	switch t {
	case Movement:
		return ts.Movement
	case Camera:
		return ts.Camera
	case WallClimb:
		return ts.WallClimb
	case Boost:
		return ts.Boost
	case IndicatorLeft:
		return ts.IndicatorLeft
	case IndicatorRight:
		return ts.IndicatorRight
	}
	return false
}

func (ts *Toggles) set(t Toggle, on bool) {
	switch t {
	case Movement:
		ts.Movement = on
	case Camera:
		ts.Camera = on
	case WallClimb:
		ts.WallClimb = on
	case Boost:
		ts.Boost = on
	case IndicatorLeft:
		ts.IndicatorLeft = on
	case IndicatorRight:
		ts.IndicatorRight = on
	}
}
