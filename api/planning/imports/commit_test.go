package imports

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestAggregateGroups_MonthAndTherapyGrouping(t *testing.T) {
	catalog := testCatalog()
	rows := []SessionRow{
		{Date: day("2024-03-05"), TherapyName: "Massage", Sessions: 5, SourceRow: 2},
		{Date: day("2024-03-20"), TherapyName: "massage", Sessions: 3, SourceRow: 3},
		{Date: day("2024-04-02"), TherapyName: "Massage", Sessions: 2, SourceRow: 4},
		{Date: day("2024-03-10"), TherapyName: "Physiotherapie", Sessions: 1, SourceRow: 5},
	}
	res := ResolveTherapies(rows, catalog)

	groups, skipped := AggregateGroups(rows, res)
	if len(skipped) != 0 {
		t.Fatalf("expected no skipped rows, got %d", len(skipped))
	}
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %+v", groups)
	}

	// Sorted by month, then therapy name.
	first := groups[0]
	if first.Month != "2024-03" || first.TherapyName != "Massage" {
		t.Fatalf("unexpected first group: %+v", first)
	}
	if first.Sessions != 8 || first.RowCount != 2 {
		t.Errorf("massage march: got sessions=%d rows=%d, want 8/2", first.Sessions, first.RowCount)
	}
	// Derived revenue: 8 sessions x 60.
	if !first.Revenue.Equal(decimal.NewFromInt(480)) {
		t.Errorf("massage march revenue: got %s, want 480", first.Revenue)
	}

	if groups[1].Month != "2024-03" || groups[1].TherapyName != "Physiotherapie" {
		t.Errorf("unexpected second group: %+v", groups[1])
	}
	if groups[2].Month != "2024-04" || groups[2].Sessions != 2 {
		t.Errorf("unexpected third group: %+v", groups[2])
	}
}

func TestAggregateGroups_RevenueOverride(t *testing.T) {
	catalog := testCatalog()
	rows := []SessionRow{
		{Date: day("2024-03-05"), TherapyName: "Massage", Sessions: 2, Revenue: dec("100.50")},
		{Date: day("2024-03-06"), TherapyName: "Massage", Sessions: 1}, // derived: 60
	}
	res := ResolveTherapies(rows, catalog)

	groups, _ := AggregateGroups(rows, res)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if want := decimal.RequireFromString("160.50"); !groups[0].Revenue.Equal(want) {
		t.Errorf("mixed revenue: got %s, want %s", groups[0].Revenue, want)
	}
}

func TestAggregateGroups_UnresolvedRowsSkipped(t *testing.T) {
	catalog := testCatalog()
	rows := []SessionRow{
		{Date: day("2024-03-05"), TherapyName: "Massage", Sessions: 5, SourceRow: 2},
		{Date: day("2024-03-06"), TherapyName: "Yoga", Sessions: 2, SourceRow: 3},
		{Date: day("2024-03-07"), TherapyName: "Yoga", Sessions: 1, SourceRow: 4},
	}
	res := ResolveTherapies(rows, catalog)

	groups, skipped := AggregateGroups(rows, res)
	if len(skipped) != 2 {
		t.Fatalf("expected 2 skipped rows, got %d", len(skipped))
	}

	// Every valid row is accounted for exactly once.
	imported := 0
	for _, g := range groups {
		imported += g.RowCount
	}
	if imported+len(skipped) != len(rows) {
		t.Errorf("conservation violated: imported=%d skipped=%d total=%d", imported, len(skipped), len(rows))
	}
}

func TestAggregateGroups_EmptyInput(t *testing.T) {
	groups, skipped := AggregateGroups(nil, Resolution{Matched: map[string]TherapyRef{}})
	if len(groups) != 0 || len(skipped) != 0 {
		t.Errorf("expected empty output, got groups=%v skipped=%v", groups, skipped)
	}
}
