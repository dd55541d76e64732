package shared

const (
	// ZoneSize is the number of pivots that form a zone.
	ZoneSize = 3
)

// LevelKind represents the type of level.
type LevelKind int

const (
	Support LevelKind = iota
	Resistance
)

// String stringifies the provided level kind.
func (l LevelKind) String() string {
	switch l {
	case Support:
		return "support"
	case Resistance:
		return "resistance"
	default:
		return "unknown"
	}
}

// Zone represents a support or resistance level formed by a cluster of same-kind pivots.
type Zone struct {
	Kind      LevelKind
	Mean      float64
	Positions [ZoneSize]int
	Prices    [ZoneSize]float64
}

// IsBrokenBy checks whether the provided close diverges from the zone by more than
// the provided threshold, in the direction that breaks the level.
func (z *Zone) IsBrokenBy(close float64, threshold float64) bool {
	switch z.Kind {
	case Support:
		return z.Mean-close > threshold
	case Resistance:
		return close-z.Mean > threshold
	default:
		return false
	}
}
