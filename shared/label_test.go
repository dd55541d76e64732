package shared

import (
	"testing"
)

func TestPivotLabel(t *testing.T) {
	tests := []struct {
		name     string
		label    PivotLabel
		wantStr  string
		wantHigh bool
		wantLow  bool
	}{
		{"no pivot", PivotNone, "none", false, false},
		{"pivot high", PivotHigh, "high", true, false},
		{"pivot low", PivotLow, "low", false, true},
		{"pivot high and low", PivotBoth, "both", true, true},
		{"unknown label", PivotLabel(999), "unknown", false, false},
	}

	for _, test := range tests {
		if test.label.String() != test.wantStr {
			t.Errorf("%s: expected %q, got %q", test.name, test.wantStr, test.label.String())
		}
		if test.label.IsHigh() != test.wantHigh {
			t.Errorf("%s: expected high %v, got %v", test.name, test.wantHigh, test.label.IsHigh())
		}
		if test.label.IsLow() != test.wantLow {
			t.Errorf("%s: expected low %v, got %v", test.name, test.wantLow, test.label.IsLow())
		}
	}
}

func TestStructureFlagString(t *testing.T) {
	tests := []struct {
		name string
		flag StructureFlag
		want string
	}{
		{"no structure", NoStructure, "none"},
		{"support break", SupportBreak, "support break"},
		{"resistance break", ResistanceBreak, "resistance break"},
		{"unknown flag", StructureFlag(999), "unknown"},
	}

	for _, test := range tests {
		str := test.flag.String()
		if str != test.want {
			t.Errorf("%s: expected %v, got %v", test.name, test.want, str)
		}
	}
}
