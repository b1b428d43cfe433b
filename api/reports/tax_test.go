package reports

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEstimateTax_NonPositiveProfit(t *testing.T) {
	for _, profit := range []string{"0", "-5000"} {
		est := EstimateTax(decimal.RequireFromString(profit))
		if !est.SocialInsurance.IsZero() || !est.IncomeTax.IsZero() {
			t.Errorf("profit %s: expected zero charges, got %+v", profit, est)
		}
		if !est.NetIncome.Equal(est.Profit) {
			t.Errorf("profit %s: net should equal profit, got %s", profit, est.NetIncome)
		}
	}
}

func TestEstimateTax_BelowTaxThreshold(t *testing.T) {
	// 15000 profit: SVS 4024.50 leaves 10975.50 taxable, under the
	// tax-free bracket bound.
	est := EstimateTax(decimal.NewFromInt(15000))
	if want := decimal.RequireFromString("4024.50"); !est.SocialInsurance.Equal(want) {
		t.Errorf("social insurance: got %s, want %s", est.SocialInsurance, want)
	}
	if !est.IncomeTax.IsZero() {
		t.Errorf("income tax: got %s, want 0", est.IncomeTax)
	}
	if want := decimal.RequireFromString("10975.50"); !est.NetIncome.Equal(want) {
		t.Errorf("net income: got %s, want %s", est.NetIncome, want)
	}
}

func TestEstimateTax_SecondBracket(t *testing.T) {
	// 20000 profit: SVS 5366.00, taxable 14634.00, tax 20% on the part
	// above 12816 = 363.60.
	est := EstimateTax(decimal.NewFromInt(20000))
	if want := decimal.RequireFromString("5366.00"); !est.SocialInsurance.Equal(want) {
		t.Errorf("social insurance: got %s, want %s", est.SocialInsurance, want)
	}
	if want := decimal.RequireFromString("363.60"); !est.IncomeTax.Equal(want) {
		t.Errorf("income tax: got %s, want %s", est.IncomeTax, want)
	}
	if want := decimal.RequireFromString("14270.40"); !est.NetIncome.Equal(want) {
		t.Errorf("net income: got %s, want %s", est.NetIncome, want)
	}
}

func TestEstimateTax_ContributionBaseCapped(t *testing.T) {
	// 100000 profit: SVS is charged on the 90300 ceiling, not the full
	// profit; tax then spans four brackets.
	est := EstimateTax(decimal.NewFromInt(100000))
	if want := decimal.RequireFromString("24227.49"); !est.SocialInsurance.Equal(want) {
		t.Errorf("social insurance: got %s, want %s", est.SocialInsurance, want)
	}
	if want := decimal.RequireFromString("22945.54"); !est.IncomeTax.Equal(want) {
		t.Errorf("income tax: got %s, want %s", est.IncomeTax, want)
	}
}

func TestEstimateTax_Monotonic(t *testing.T) {
	prev := decimal.Zero
	for _, profit := range []int64{1000, 10000, 30000, 60000, 120000, 500000} {
		est := EstimateTax(decimal.NewFromInt(profit))
		if est.NetIncome.LessThan(prev) {
			t.Fatalf("net income decreased at profit %d: %s < %s", profit, est.NetIncome, prev)
		}
		prev = est.NetIncome
	}
}
