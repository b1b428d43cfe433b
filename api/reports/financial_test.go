package reports

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBreakEvenSessions(t *testing.T) {
	cases := []struct {
		name          string
		fixed, price  string
		variable      string
		want          int64
		wantUndefined bool
	}{
		{name: "rounds up", fixed: "1000", price: "100", variable: "20", want: 13},
		{name: "exact", fixed: "800", price: "100", variable: "20", want: 10},
		{name: "zero fixed costs", fixed: "0", price: "100", variable: "20", want: 0},
		{name: "zero margin", fixed: "1000", price: "50", variable: "50", wantUndefined: true},
		{name: "negative margin", fixed: "1000", price: "40", variable: "50", wantUndefined: true},
		{name: "negative fixed costs", fixed: "-10", price: "100", variable: "20", wantUndefined: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BreakEvenSessions(
				decimal.RequireFromString(tc.fixed),
				decimal.RequireFromString(tc.price),
				decimal.RequireFromString(tc.variable),
			)
			if tc.wantUndefined {
				if got != nil {
					t.Errorf("expected nil, got %d", *got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected a value, got nil")
			}
			if *got != tc.want {
				t.Errorf("got %d, want %d", *got, tc.want)
			}
		})
	}
}

func TestForecastSessions(t *testing.T) {
	cases := []struct {
		name    string
		history []int
		window  int
		want    int
	}{
		{name: "empty history", history: nil, window: 3, want: 0},
		{name: "single month", history: []int{7}, window: 3, want: 7},
		{name: "average of window", history: []int{10, 20, 30}, window: 3, want: 20},
		{name: "older months ignored", history: []int{100, 10, 20, 30}, window: 3, want: 20},
		{name: "shorter than window", history: []int{10, 20}, window: 3, want: 15},
		{name: "rounds half up", history: []int{1, 2}, window: 3, want: 2},
		{name: "zero window", history: []int{5}, window: 0, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ForecastSessions(tc.history, tc.window); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}
