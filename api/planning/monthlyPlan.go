package planning

import (
	"encoding/json"
	"net/http"
	"time"

	"PraxisPlan/api"
	"PraxisPlan/api/constants"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MonthlyPlan mirrors a monthly_plans row joined with its therapy name.
type MonthlyPlan struct {
	PlanID          string   `json:"plan_id"`
	TherapyID       string   `json:"therapy_id"`
	TherapyName     string   `json:"therapy_name"`
	Month           string   `json:"month"`
	PlannedSessions int      `json:"planned_sessions"`
	ActualSessions  *int     `json:"actual_sessions"`
	Occupancy       *float64 `json:"occupancy_pct"`
}

// Occupancy returns actual/planned as a percentage, nil when it is not
// defined (no actuals recorded yet, or nothing planned).
func Occupancy(planned int, actual *int) *float64 {
	if actual == nil || planned <= 0 {
		return nil
	}
	pct := float64(*actual) / float64(planned) * 100
	return &pct
}

func validMonth(s string) bool {
	_, err := time.Parse(constants.MonthFormat, s)
	return err == nil
}

// GetMonthlyPlans lists plans for a month range, newest month first.
func GetMonthlyPlans(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req struct {
			UserID    string `json:"user_id"`
			FromMonth string `json:"from_month"`
			ToMonth   string `json:"to_month"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrMissingUserID)
			return
		}
		if req.FromMonth == "" {
			req.FromMonth = "0000-01"
		}
		if req.ToMonth == "" {
			req.ToMonth = "9999-12"
		}

		rows, err := pgxPool.Query(ctx, `
			SELECT p.plan_id, p.therapy_id, t.name, p.month, p.planned_sessions, p.actual_sessions
			FROM monthly_plans p
			JOIN therapy_types t ON p.therapy_id = t.therapy_id
			WHERE p.user_id = $1 AND p.month >= $2 AND p.month <= $3
			ORDER BY p.month DESC, lower(t.name)`,
			req.UserID, req.FromMonth, req.ToMonth)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToQuery)
			return
		}
		defer rows.Close()

		results := make([]MonthlyPlan, 0)
		for rows.Next() {
			var p MonthlyPlan
			if err := rows.Scan(&p.PlanID, &p.TherapyID, &p.TherapyName, &p.Month, &p.PlannedSessions, &p.ActualSessions); err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB)
				return
			}
			p.Occupancy = Occupancy(p.PlannedSessions, p.ActualSessions)
			results = append(results, p)
		}
		if rows.Err() != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB)
			return
		}
		api.RespondWithPayload(w, true, "", results)
	}
}

// SetPlannedSessions upserts the planned side of a (therapy, month) plan,
// leaving recorded actuals untouched.
func SetPlannedSessions(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req struct {
			UserID          string `json:"user_id"`
			TherapyID       string `json:"therapy_id"`
			Month           string `json:"month"`
			PlannedSessions int    `json:"planned_sessions"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.TherapyID == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		if !validMonth(req.Month) {
			api.RespondWithError(w, http.StatusBadRequest, "month must be YYYY-MM")
			return
		}
		if req.PlannedSessions < 0 {
			api.RespondWithError(w, http.StatusBadRequest, "planned_sessions must not be negative")
			return
		}

		_, err := pgxPool.Exec(ctx, `
			INSERT INTO monthly_plans (plan_id, user_id, therapy_id, month, planned_sessions, actual_sessions)
			VALUES ($1, $2, $3, $4, $5, NULL)
			ON CONFLICT (user_id, therapy_id, month)
			DO UPDATE SET planned_sessions = EXCLUDED.planned_sessions, updated_at = now()`,
			uuid.New().String(), req.UserID, req.TherapyID, req.Month, req.PlannedSessions)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, "Failed to save plan: "+err.Error())
			return
		}
		api.RespondWithResult(w, true, "")
	}
}

// SetActualSessions records actuals manually for a (therapy, month); creates
// the plan row with planned_sessions = 0 when none exists yet.
func SetActualSessions(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req struct {
			UserID         string `json:"user_id"`
			TherapyID      string `json:"therapy_id"`
			Month          string `json:"month"`
			ActualSessions int    `json:"actual_sessions"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.TherapyID == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		if !validMonth(req.Month) {
			api.RespondWithError(w, http.StatusBadRequest, "month must be YYYY-MM")
			return
		}
		if req.ActualSessions < 0 {
			api.RespondWithError(w, http.StatusBadRequest, "actual_sessions must not be negative")
			return
		}

		_, err := pgxPool.Exec(ctx, `
			INSERT INTO monthly_plans (plan_id, user_id, therapy_id, month, planned_sessions, actual_sessions)
			VALUES ($1, $2, $3, $4, 0, $5)
			ON CONFLICT (user_id, therapy_id, month)
			DO UPDATE SET actual_sessions = EXCLUDED.actual_sessions, updated_at = now()`,
			uuid.New().String(), req.UserID, req.TherapyID, req.Month, req.ActualSessions)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, "Failed to save actuals: "+err.Error())
			return
		}
		api.RespondWithResult(w, true, "")
	}
}

// ResetActualSessions clears recorded actuals back to NULL; the planned side
// of the row survives.
func ResetActualSessions(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req struct {
			UserID    string `json:"user_id"`
			TherapyID string `json:"therapy_id"`
			Month     string `json:"month"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.TherapyID == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		if !validMonth(req.Month) {
			api.RespondWithError(w, http.StatusBadRequest, "month must be YYYY-MM")
			return
		}

		tag, err := pgxPool.Exec(ctx, `
			UPDATE monthly_plans SET actual_sessions = NULL, updated_at = now()
			WHERE user_id = $1 AND therapy_id = $2 AND month = $3`,
			req.UserID, req.TherapyID, req.Month)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, "Failed to reset actuals: "+err.Error())
			return
		}
		if tag.RowsAffected() == 0 {
			api.RespondWithError(w, http.StatusNotFound, "no plan for this therapy and month")
			return
		}
		api.RespondWithResult(w, true, "")
	}
}
