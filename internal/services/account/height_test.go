package account

import "testing"

func TestParseLowerHeight(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"170-175", 170, true},
		{"80", 80, true},
		{"250", 250, true},
		{"170cm", 170, true},
		{" 165 - 170 ", 165, true},
		{"-180", 180, true},
		{"79", 0, false},
		{"251", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseLowerHeight(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseLowerHeight(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
