package reports

import (
	"encoding/json"
	"net/http"

	"PraxisPlan/api"
	"PraxisPlan/api/constants"

	"github.com/jackc/pgx/v5/pgxpool"
)

// VarianceRow compares planned against actual sessions for one therapy in
// one month. Occupancy is nil until actuals are recorded.
type VarianceRow struct {
	TherapyID       string   `json:"therapy_id"`
	TherapyName     string   `json:"therapy_name"`
	Month           string   `json:"month"`
	PlannedSessions int      `json:"planned_sessions"`
	ActualSessions  *int     `json:"actual_sessions"`
	Delta           *int     `json:"delta"`
	Occupancy       *float64 `json:"occupancy_pct"`
}

type VarianceTotals struct {
	PlannedSessions int      `json:"planned_sessions"`
	ActualSessions  int      `json:"actual_sessions"`
	Occupancy       *float64 `json:"occupancy_pct"`
}

// BuildVariance derives delta and occupancy per row plus batch totals.
// Rows without recorded actuals contribute to planned totals only.
func BuildVariance(rows []VarianceRow) ([]VarianceRow, VarianceTotals) {
	totals := VarianceTotals{}
	haveActuals := false
	for i := range rows {
		r := &rows[i]
		totals.PlannedSessions += r.PlannedSessions
		if r.ActualSessions != nil {
			haveActuals = true
			totals.ActualSessions += *r.ActualSessions
			d := *r.ActualSessions - r.PlannedSessions
			r.Delta = &d
			if r.PlannedSessions > 0 {
				pct := float64(*r.ActualSessions) / float64(r.PlannedSessions) * 100
				r.Occupancy = &pct
			}
		}
	}
	if haveActuals && totals.PlannedSessions > 0 {
		pct := float64(totals.ActualSessions) / float64(totals.PlannedSessions) * 100
		totals.Occupancy = &pct
	}
	return rows, totals
}

// GetVarianceReport returns planned-vs-actual per therapy for one month.
func GetVarianceReport(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req struct {
			UserID string `json:"user_id"`
			Month  string `json:"month"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.Month == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}

		dbRows, err := pgxPool.Query(ctx, `
			SELECT p.therapy_id, t.name, p.month, p.planned_sessions, p.actual_sessions
			FROM monthly_plans p
			JOIN therapy_types t ON p.therapy_id = t.therapy_id
			WHERE p.user_id = $1 AND p.month = $2
			ORDER BY lower(t.name)`, req.UserID, req.Month)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToQuery)
			return
		}
		defer dbRows.Close()

		rows := []VarianceRow{}
		for dbRows.Next() {
			var v VarianceRow
			if err := dbRows.Scan(&v.TherapyID, &v.TherapyName, &v.Month, &v.PlannedSessions, &v.ActualSessions); err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB)
				return
			}
			rows = append(rows, v)
		}
		if dbRows.Err() != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB)
			return
		}

		rows, totals := BuildVariance(rows)
		w.Header().Set(constants.ContentTypeText, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"rows":    rows,
			"totals":  totals,
		})
	}
}
