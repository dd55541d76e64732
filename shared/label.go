package shared

// PivotLabel represents the pivot classification of a candlestick.
type PivotLabel int

const (
	PivotNone PivotLabel = iota
	PivotHigh
	PivotLow
	PivotBoth
)

// String stringifies the provided pivot label.
func (l PivotLabel) String() string {
	switch l {
	case PivotNone:
		return "none"
	case PivotHigh:
		return "high"
	case PivotLow:
		return "low"
	case PivotBoth:
		return "both"
	default:
		return "unknown"
	}
}

// IsHigh checks whether the label marks a pivot high.
func (l PivotLabel) IsHigh() bool {
	return l == PivotHigh || l == PivotBoth
}

// IsLow checks whether the label marks a pivot low.
func (l PivotLabel) IsLow() bool {
	return l == PivotLow || l == PivotBoth
}

// StructureFlag represents a detected market structure event at a candlestick.
type StructureFlag int

const (
	NoStructure StructureFlag = iota
	SupportBreak
	ResistanceBreak
)

// String stringifies the provided structure flag.
func (f StructureFlag) String() string {
	switch f {
	case NoStructure:
		return "none"
	case SupportBreak:
		return "support break"
	case ResistanceBreak:
		return "resistance break"
	default:
		return "unknown"
	}
}
