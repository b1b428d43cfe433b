package imports

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func testCatalog() []TherapyRef {
	return []TherapyRef{
		{TherapyID: "t-physio", Name: "Physiotherapie", PricePerSession: decimal.NewFromInt(90)},
		{TherapyID: "t-massage", Name: "Massage", PricePerSession: decimal.NewFromInt(60)},
	}
}

func TestResolveTherapies_CaseInsensitiveExact(t *testing.T) {
	rows := []SessionRow{
		{TherapyName: "physiotherapie"},
		{TherapyName: "MASSAGE"},
	}

	res := ResolveTherapies(rows, testCatalog())
	if len(res.Missing) != 0 {
		t.Fatalf("expected no missing therapies, got %v", res.Missing)
	}
	if got := res.Matched["physiotherapie"].TherapyID; got != "t-physio" {
		t.Errorf("physiotherapie resolved to %q", got)
	}
	if got := res.Matched["MASSAGE"].TherapyID; got != "t-massage" {
		t.Errorf("MASSAGE resolved to %q", got)
	}
}

func TestResolveTherapies_NoFuzzyMatch(t *testing.T) {
	rows := []SessionRow{{TherapyName: "Physio"}} // prefix, not an exact match

	res := ResolveTherapies(rows, testCatalog())
	if len(res.Matched) != 0 {
		t.Errorf("prefix should not match: %v", res.Matched)
	}
	if !reflect.DeepEqual(res.Missing, []string{"Physio"}) {
		t.Errorf("missing: got %v", res.Missing)
	}
}

func TestResolveTherapies_MissingDedupedAndSorted(t *testing.T) {
	rows := []SessionRow{
		{TherapyName: "Yoga"},
		{TherapyName: "Akupunktur"},
		{TherapyName: "yoga"},
		{TherapyName: "Massage"},
	}

	res := ResolveTherapies(rows, testCatalog())
	if !reflect.DeepEqual(res.Missing, []string{"Akupunktur", "Yoga"}) {
		t.Errorf("missing: got %v", res.Missing)
	}
	if _, ok := res.Matched["Massage"]; !ok {
		t.Error("Massage should have resolved")
	}
}

func TestResolveTherapies_EmptyCatalog(t *testing.T) {
	res := ResolveTherapies([]SessionRow{{TherapyName: "Massage"}}, nil)
	if len(res.Matched) != 0 || !reflect.DeepEqual(res.Missing, []string{"Massage"}) {
		t.Errorf("unexpected resolution: %+v", res)
	}
}
