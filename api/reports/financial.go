package reports

import (
	"encoding/json"
	"net/http"
	"sort"

	"PraxisPlan/api"
	"PraxisPlan/api/constants"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// MonthFinancials aggregates one month's money figures across all therapies.
type MonthFinancials struct {
	Month              string          `json:"month"`
	Sessions           int             `json:"sessions"`
	Revenue            decimal.Decimal `json:"revenue"`
	VariableCosts      decimal.Decimal `json:"variable_costs"`
	ContributionMargin decimal.Decimal `json:"contribution_margin"`
}

// BreakEvenSessions returns how many sessions cover the fixed costs given
// the average unit margin, rounded up. Zero or negative margin yields nil:
// there is no break-even point.
func BreakEvenSessions(fixedCosts, pricePerSession, variableCostPerSession decimal.Decimal) *int64 {
	margin := pricePerSession.Sub(variableCostPerSession)
	if !margin.IsPositive() || fixedCosts.IsNegative() {
		return nil
	}
	n := fixedCosts.Div(margin).Ceil().IntPart()
	return &n
}

// ForecastSessions projects the next month as the trailing average of the
// recorded actuals, most recent window months. Empty history forecasts zero.
func ForecastSessions(history []int, window int) int {
	if len(history) == 0 || window <= 0 {
		return 0
	}
	if len(history) > window {
		history = history[len(history)-window:]
	}
	sum := 0
	for _, v := range history {
		sum += v
	}
	// round half up
	return (sum + len(history)/2) / len(history)
}

type financialRequest struct {
	UserID     string  `json:"user_id"`
	FromMonth  string  `json:"from_month"`
	ToMonth    string  `json:"to_month"`
	FixedCosts float64 `json:"fixed_costs_per_month"`
}

// GetFinancialReport returns per-month revenue, variable costs and margin,
// plus break-even sessions and a naive next-month forecast.
func GetFinancialReport(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req financialRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		if req.FromMonth == "" {
			req.FromMonth = "0000-01"
		}
		if req.ToMonth == "" {
			req.ToMonth = "9999-12"
		}

		dbRows, err := pgxPool.Query(ctx, `
			SELECT p.month, COALESCE(p.actual_sessions, 0),
			       COALESCE(p.actual_revenue, COALESCE(p.actual_sessions, 0) * t.price_per_session),
			       COALESCE(p.actual_sessions, 0) * t.variable_cost_per_session,
			       t.price_per_session, t.variable_cost_per_session
			FROM monthly_plans p
			JOIN therapy_types t ON p.therapy_id = t.therapy_id
			WHERE p.user_id = $1 AND p.month >= $2 AND p.month <= $3
			  AND p.actual_sessions IS NOT NULL`,
			req.UserID, req.FromMonth, req.ToMonth)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToQuery)
			return
		}
		defer dbRows.Close()

		byMonth := map[string]*MonthFinancials{}
		var weightedPrice, weightedVarCost decimal.Decimal
		totalSessions := 0
		for dbRows.Next() {
			var month string
			var sessions int
			var revenue, varCosts, price, varCost decimal.Decimal
			if err := dbRows.Scan(&month, &sessions, &revenue, &varCosts, &price, &varCost); err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB)
				return
			}
			m, ok := byMonth[month]
			if !ok {
				m = &MonthFinancials{Month: month, Revenue: decimal.Zero, VariableCosts: decimal.Zero}
				byMonth[month] = m
			}
			m.Sessions += sessions
			m.Revenue = m.Revenue.Add(revenue)
			m.VariableCosts = m.VariableCosts.Add(varCosts)
			n := decimal.NewFromInt(int64(sessions))
			weightedPrice = weightedPrice.Add(price.Mul(n))
			weightedVarCost = weightedVarCost.Add(varCost.Mul(n))
			totalSessions += sessions
		}
		if dbRows.Err() != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB)
			return
		}

		months := []MonthFinancials{}
		for _, m := range byMonth {
			m.ContributionMargin = m.Revenue.Sub(m.VariableCosts)
			months = append(months, *m)
		}
		sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })

		// Session-weighted average unit economics for break-even
		var breakEven *int64
		if totalSessions > 0 {
			n := decimal.NewFromInt(int64(totalSessions))
			breakEven = BreakEvenSessions(
				decimal.NewFromFloat(req.FixedCosts),
				weightedPrice.Div(n),
				weightedVarCost.Div(n),
			)
		}

		history := make([]int, 0, len(months))
		for _, m := range months {
			history = append(history, m.Sessions)
		}
		forecast := ForecastSessions(history, 3)

		w.Header().Set(constants.ContentTypeText, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":             true,
			"months":              months,
			"break_even_sessions": breakEven,
			"forecast_sessions":   forecast,
		})
	}
}
