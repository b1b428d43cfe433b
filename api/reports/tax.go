package reports

import (
	"encoding/json"
	"net/http"

	"PraxisPlan/api"
	"PraxisPlan/api/constants"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Austrian income tax brackets (2024) and the SVS self-employed social
// insurance rate. The estimator is deliberately coarse: it exists so the
// dashboard can show a ballpark figure, not a filing.
var taxBrackets = []struct {
	upTo decimal.Decimal // exclusive upper bound, zero = no bound
	rate decimal.Decimal
}{
	{decimal.NewFromInt(12816), decimal.Zero},
	{decimal.NewFromInt(20818), decimal.NewFromFloat(0.20)},
	{decimal.NewFromInt(34513), decimal.NewFromFloat(0.30)},
	{decimal.NewFromInt(66612), decimal.NewFromFloat(0.40)},
	{decimal.NewFromInt(99266), decimal.NewFromFloat(0.48)},
	{decimal.Decimal{}, decimal.NewFromFloat(0.50)},
}

var (
	svsRate = decimal.NewFromFloat(0.2683)
	svsCap  = decimal.NewFromInt(90300) // yearly contribution base ceiling
)

type TaxEstimate struct {
	Profit          decimal.Decimal `json:"profit"`
	SocialInsurance decimal.Decimal `json:"social_insurance"`
	TaxableIncome   decimal.Decimal `json:"taxable_income"`
	IncomeTax       decimal.Decimal `json:"income_tax"`
	NetIncome       decimal.Decimal `json:"net_income"`
}

// EstimateTax computes the Austrian-style estimate for a yearly profit:
// SVS contributions first, progressive income tax on the remainder.
// Non-positive profit yields an all-zero estimate.
func EstimateTax(profit decimal.Decimal) TaxEstimate {
	est := TaxEstimate{
		Profit:          profit,
		SocialInsurance: decimal.Zero,
		TaxableIncome:   decimal.Zero,
		IncomeTax:       decimal.Zero,
		NetIncome:       profit,
	}
	if !profit.IsPositive() {
		return est
	}

	svsBase := profit
	if svsBase.GreaterThan(svsCap) {
		svsBase = svsCap
	}
	est.SocialInsurance = svsBase.Mul(svsRate).Round(2)

	taxable := profit.Sub(est.SocialInsurance)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	est.TaxableIncome = taxable

	tax := decimal.Zero
	lower := decimal.Zero
	for _, b := range taxBrackets {
		upper := b.upTo
		unbounded := upper.IsZero()
		if !unbounded && taxable.LessThanOrEqual(lower) {
			break
		}
		slice := taxable.Sub(lower)
		if !unbounded {
			width := upper.Sub(lower)
			if slice.GreaterThan(width) {
				slice = width
			}
		}
		if slice.IsPositive() {
			tax = tax.Add(slice.Mul(b.rate))
		}
		if unbounded {
			break
		}
		lower = upper
	}
	est.IncomeTax = tax.Round(2)
	est.NetIncome = profit.Sub(est.SocialInsurance).Sub(est.IncomeTax).Round(2)
	return est
}

// GetTaxEstimate sums the year's contribution margin and runs the estimator.
// An explicit yearly profit in the request overrides the computed figure.
func GetTaxEstimate(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req struct {
			UserID          string   `json:"user_id"`
			Year            string   `json:"year"`
			YearlyProfit    *float64 `json:"yearly_profit"`
			FixedCostsTotal float64  `json:"fixed_costs_total"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}

		var profit decimal.Decimal
		if req.YearlyProfit != nil {
			profit = decimal.NewFromFloat(*req.YearlyProfit)
		} else {
			if req.Year == "" {
				api.RespondWithError(w, http.StatusBadRequest, "year or yearly_profit required")
				return
			}
			err := pgxPool.QueryRow(ctx, `
				SELECT COALESCE(SUM(
					COALESCE(p.actual_revenue, COALESCE(p.actual_sessions, 0) * t.price_per_session)
					- COALESCE(p.actual_sessions, 0) * t.variable_cost_per_session
				), 0)
				FROM monthly_plans p
				JOIN therapy_types t ON p.therapy_id = t.therapy_id
				WHERE p.user_id = $1 AND p.month LIKE $2 || '-%'`,
				req.UserID, req.Year).Scan(&profit)
			if err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToQuery)
				return
			}
			profit = profit.Sub(decimal.NewFromFloat(req.FixedCostsTotal))
		}

		w.Header().Set(constants.ContentTypeText, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":  true,
			"estimate": EstimateTax(profit),
		})
	}
}
