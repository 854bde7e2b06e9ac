package controller

import (
	"testing"
	"time"
)

func TestParseStartDate(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want time.Time
	}{
		{"2024-05-01T14:30", true, time.Date(2024, 5, 1, 14, 30, 0, 0, time.Local)},
		{" 2024-05-01T14:30:15 ", true, time.Date(2024, 5, 1, 14, 30, 15, 0, time.Local)},
		{"2024-05-01", false, time.Time{}},
		{"2024-05-01 14:30", false, time.Time{}},
		{"", false, time.Time{}},
	}
	for _, tt := range tests {
		got, ok := parseStartDate(tt.in)
		if ok != tt.ok || !got.Equal(tt.want) {
			t.Errorf("parseStartDate(%q): got (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
