package planning

import "testing"

func intp(v int) *int { return &v }

func TestOccupancy(t *testing.T) {
	cases := []struct {
		name    string
		planned int
		actual  *int
		want    float64
		wantNil bool
	}{
		{name: "three quarters", planned: 20, actual: intp(15), want: 75},
		{name: "over plan", planned: 10, actual: intp(12), want: 120},
		{name: "zero actuals", planned: 10, actual: intp(0), want: 0},
		{name: "no actuals recorded", planned: 10, actual: nil, wantNil: true},
		{name: "nothing planned", planned: 0, actual: intp(5), wantNil: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Occupancy(tc.planned, tc.actual)
			if tc.wantNil {
				if got != nil {
					t.Errorf("expected nil, got %v", *got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected a value, got nil")
			}
			if *got != tc.want {
				t.Errorf("got %v, want %v", *got, tc.want)
			}
		})
	}
}

func TestValidMonth(t *testing.T) {
	cases := map[string]bool{
		"2024-03":    true,
		"2024-12":    true,
		"2024-13":    false,
		"2024-3":     false,
		"03.2024":    false,
		"":           false,
		"2024-03-01": false,
	}
	for in, want := range cases {
		if got := validMonth(in); got != want {
			t.Errorf("validMonth(%q) = %v, want %v", in, got, want)
		}
	}
}
