package config

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRegistryLookup_UnknownKey(t *testing.T) {
	registry := DefaultRegistry()

	_, err := registry.Lookup("monopoly")
	if err == nil {
		t.Fatal("expected an error for an unknown institution key")
	}
	want := "Unsupported bank type: monopoly. No configuration found."
	if err.Error() != want {
		t.Errorf("Lookup error = %q, want %q", err.Error(), want)
	}
}

// Every institution maps either a single signed amount column or the
// outflow/inflow pair, never both and never neither.
func TestDefaultRegistry_AmountFieldInvariant(t *testing.T) {
	for key, inst := range DefaultRegistry() {
		single := inst.AmountField != ""
		split := inst.OutflowField != "" && inst.InflowField != ""
		if single == split {
			t.Errorf("%s: want exactly one of AmountField or OutflowField+InflowField", key)
		}
		if (inst.OutflowField != "") != (inst.InflowField != "") {
			t.Errorf("%s: OutflowField and InflowField must be set together", key)
		}
	}
}

func TestDefaultRegistry_RequiredFields(t *testing.T) {
	for key, inst := range DefaultRegistry() {
		if inst.Label == "" || inst.DateField == "" || inst.DescriptionField == "" {
			t.Errorf("%s: label, date field and description field are required", key)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"3.50", "3.5"},
		{"-3.50", "-3.5"},
		{"$1,234.56", "1234.56"},
		{"€ 12.00", "12"},
		{"(spaces) 7", "7"},
		{"", "0"},
		{"n/a", "0"},
		{"-", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseAmount(tt.input)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestTransformAmountPrecedence(t *testing.T) {
	registry := DefaultRegistry()

	inst, err := registry.Lookup("cibc")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if inst.TransformAmount == nil {
		t.Fatal("cibc should carry a custom amount transform")
	}

	// Charges are exported positive; the transform flips them.
	got := inst.TransformAmount("", "", "42.10")
	if !got.Equal(decimal.RequireFromString("-42.10")) {
		t.Errorf("TransformAmount = %s, want -42.10", got)
	}
}
