package date

import (
	"testing"
	"time"
)

func TestNewRange(t *testing.T) {
	testCases := []struct {
		name   string
		in     Date
		period Period
		want   Range
	}{
		{
			name:   "day",
			in:     New(2025, time.September, 8),
			period: Daily,
			want:   Range{From: New(2025, time.September, 8), To: New(2025, time.September, 8)},
		},
		{
			name:   "a Wednesday",
			in:     New(2025, time.September, 10),
			period: Weekly,
			want:   Range{From: New(2025, time.September, 8), To: New(2025, time.September, 14)},
		},
		{
			name:   "a Sunday",
			in:     New(2025, time.September, 14),
			period: Weekly,
			want:   Range{From: New(2025, time.September, 8), To: New(2025, time.September, 14)},
		},
		{
			name:   "a leap year",
			in:     New(2024, time.February, 15),
			period: Monthly,
			want:   Range{From: New(2024, time.February, 1), To: New(2024, time.February, 29)},
		},
		{
			name:   "third quarter",
			in:     New(2025, time.August, 20),
			period: Quarterly,
			want:   Range{From: New(2025, time.July, 1), To: New(2025, time.September, 30)},
		},
		{
			name:   "last quarter",
			in:     New(2025, time.November, 2),
			period: Quarterly,
			want:   Range{From: New(2025, time.October, 1), To: New(2025, time.December, 31)},
		},
		{
			name:   "year",
			in:     New(2025, time.June, 1),
			period: Yearly,
			want:   Range{From: New(2025, time.January, 1), To: New(2025, time.December, 31)},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewRange(tc.in, tc.period); got != tc.want {
				t.Errorf("NewRange(%v, %v) = %v, want %v", tc.in, tc.period, got, tc.want)
			}
		})
	}
}

func TestRangeContains(t *testing.T) {
	jan1 := New(2025, time.January, 1)
	jan31 := New(2025, time.January, 31)
	testCases := []struct {
		name string
		r    Range
		day  Date
		want bool
	}{
		{"open range", Range{}, jan1, true},
		{"lower bound included", Range{From: jan1, To: jan31}, jan1, true},
		{"upper bound included", Range{From: jan1, To: jan31}, jan31, true},
		{"before", Range{From: jan1, To: jan31}, jan1.Add(-1), false},
		{"after", Range{From: jan1, To: jan31}, jan31.Add(1), false},
		{"open end", Range{From: jan1}, jan31.Add(400), true},
		{"open start", Range{To: jan31}, jan1.Add(-400), true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Contains(tc.day); got != tc.want {
				t.Errorf("%v.Contains(%v) = %v, want %v", tc.r, tc.day, got, tc.want)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	for _, s := range []string{"day", "Weekly", "month", "quarter", "yearly"} {
		if _, err := ParsePeriod(s); err != nil {
			t.Errorf("ParsePeriod(%q) unexpected error: %v", s, err)
		}
	}
	if _, err := ParsePeriod("fortnight"); err == nil {
		t.Errorf("ParsePeriod(%q) want error", "fortnight")
	}
}
