package layout

import "testing"

func TestTruncateLabel(t *testing.T) {
	c := DefaultConstants()
	tests := []struct {
		name     string
		label    string
		boxWidth float64
		want     string
		cut      bool
	}{
		{name: "fits untouched", label: "Object", boxWidth: 80, want: "Object"},
		{name: "exact fit", label: "abcd", boxWidth: 36, want: "abcd"},
		{name: "shortened with ellipsis", label: "VeryLongTypeName", boxWidth: 60, want: "Ver…", cut: true},
		{name: "tiny box keeps bare ellipsis", label: "Object", boxWidth: 30, want: "…", cut: true},
		{name: "multibyte counts runes", label: "Čerpadlo", boxWidth: 52, want: "Če…", cut: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateLabel(tt.label, tt.boxWidth, c)
			if got.Text != tt.want {
				t.Errorf("TruncateLabel(%q, %v).Text = %q, want %q", tt.label, tt.boxWidth, got.Text, tt.want)
			}
			if got.Truncated != tt.cut {
				t.Errorf("Truncated = %v, want %v", got.Truncated, tt.cut)
			}
			if got.Full != tt.label {
				t.Errorf("Full = %q, want %q", got.Full, tt.label)
			}
		})
	}
}
