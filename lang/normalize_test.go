package lang

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		marked bool
	}{
		{`@3Box(1,2,3)`, `Box(1,2,3)`, true},
		{`@3 Mesh\left(b\right)`, ` Mesh(b)`, true},
		{`@3a=\operatorname{Box}(1,\ 2,3)`, `a=\operatorname{Box}(1, 2,3)`, true},
		{`Box(1,2,3)`, `Box(1,2,3)`, false},
		{`x@3`, `x@3`, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := HasMarker(tt.raw); got != tt.marked {
				t.Errorf("HasMarker(%q) = %v, want %v", tt.raw, got, tt.marked)
			}

			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
