package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"PraxisPlan/api"
	"PraxisPlan/api/constants"
	"PraxisPlan/api/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// getUserFriendlyTherapyError converts database errors into user-facing messages
func getUserFriendlyTherapyError(err error, context string) (string, int) {
	if err == nil {
		return "", http.StatusOK
	}

	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "unique") || strings.Contains(errMsg, "duplicate") {
		if strings.Contains(errMsg, "therapy_types_user_name_key") {
			return "A therapy type with this name already exists. Names are matched case-insensitively.", http.StatusOK
		}
		return "This therapy type already exists.", http.StatusOK
	}

	if strings.Contains(errMsg, "foreign key") || strings.Contains(errMsg, "violates foreign key constraint") {
		if strings.Contains(errMsg, "monthly_plans") {
			return "Therapy type is referenced by monthly plans and cannot be deleted.", http.StatusOK
		}
		return "Referenced record does not exist.", http.StatusOK
	}

	if strings.Contains(errMsg, "null value") || strings.Contains(errMsg, "violates not-null constraint") {
		if strings.Contains(errMsg, "name") {
			return "Therapy name is required.", http.StatusOK
		}
		return "Required field is missing.", http.StatusOK
	}

	if strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "network") {
		return "Database connection issue. Please try again.", http.StatusServiceUnavailable
	}

	if context != "" {
		return context + ": " + err.Error(), http.StatusInternalServerError
	}
	return err.Error(), http.StatusInternalServerError
}

type TherapyTypeRequest struct {
	UserID                 string  `json:"user_id"`
	Name                   string  `json:"name"`
	PricePerSession        float64 `json:"price_per_session"`
	VariableCostPerSession float64 `json:"variable_cost_per_session"`
}

type TherapyTypeUpdateRequest struct {
	UserID                 string   `json:"user_id"`
	TherapyID              string   `json:"therapy_id"`
	Name                   *string  `json:"name"`
	PricePerSession        *float64 `json:"price_per_session"`
	VariableCostPerSession *float64 `json:"variable_cost_per_session"`
	Status                 *string  `json:"status"`
}

// TherapyType mirrors a therapy_types row; prices are decimal on the wire.
type TherapyType struct {
	TherapyID              string          `json:"therapy_id"`
	UserID                 string          `json:"user_id"`
	Name                   string          `json:"name"`
	PricePerSession        decimal.Decimal `json:"price_per_session"`
	VariableCostPerSession decimal.Decimal `json:"variable_cost_per_session"`
	Status                 string          `json:"status"`
	CreatedAt              time.Time       `json:"created_at"`
}

func CreateTherapyType(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req TherapyTypeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || strings.TrimSpace(req.Name) == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		if req.PricePerSession < 0 || req.VariableCostPerSession < 0 {
			api.RespondWithError(w, http.StatusBadRequest, "price and variable cost must not be negative")
			return
		}

		therapyID := uuid.New().String()
		_, err := pgxPool.Exec(ctx, `
			INSERT INTO therapy_types (therapy_id, user_id, name, price_per_session, variable_cost_per_session, status)
			VALUES ($1, $2, $3, $4, $5, 'Active')`,
			therapyID, req.UserID, strings.TrimSpace(req.Name),
			decimal.NewFromFloat(req.PricePerSession),
			decimal.NewFromFloat(req.VariableCostPerSession),
		)
		if err != nil {
			msg, status := getUserFriendlyTherapyError(err, "Failed to create therapy type")
			api.RespondWithError(w, status, msg)
			return
		}
		api.RespondWithPayload(w, true, "", map[string]interface{}{"therapy_id": therapyID})
	}
}

func GetTherapyTypes(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req struct {
			UserID string `json:"user_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrMissingUserID)
			return
		}

		pagination, err := utils.ExtractPagination(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		total, err := utils.CountTotal(ctx, pgxPool,
			`SELECT COUNT(*) FROM therapy_types WHERE user_id = $1 AND status = 'Active'`, req.UserID)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToQuery)
			return
		}
		pagination.SetPaginationStats(total)

		rows, err := pgxPool.Query(ctx, `
			SELECT therapy_id, user_id, name, price_per_session, variable_cost_per_session, status, created_at
			FROM therapy_types
			WHERE user_id = $1 AND status = 'Active'
			ORDER BY lower(name)
			LIMIT $2 OFFSET $3`, req.UserID, pagination.Limit, pagination.Offset)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToQuery)
			return
		}
		defer rows.Close()

		results := make([]TherapyType, 0)
		for rows.Next() {
			var t TherapyType
			if err := rows.Scan(&t.TherapyID, &t.UserID, &t.Name, &t.PricePerSession, &t.VariableCostPerSession, &t.Status, &t.CreatedAt); err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB)
				return
			}
			results = append(results, t)
		}
		if rows.Err() != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB)
			return
		}

		w.Header().Set(constants.ContentTypeText, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":    true,
			"rows":       results,
			"pagination": pagination,
		})
	}
}

func UpdateTherapyType(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req TherapyTypeUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.TherapyID == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}

		sets := []string{"updated_at = now()"}
		args := []interface{}{}
		arg := 1
		addSet := func(col string, val interface{}) {
			sets = append(sets, col+" = $"+strconv.Itoa(arg))
			args = append(args, val)
			arg++
		}
		if req.Name != nil {
			if strings.TrimSpace(*req.Name) == "" {
				api.RespondWithError(w, http.StatusBadRequest, "name must not be empty")
				return
			}
			addSet("name", strings.TrimSpace(*req.Name))
		}
		if req.PricePerSession != nil {
			addSet("price_per_session", decimal.NewFromFloat(*req.PricePerSession))
		}
		if req.VariableCostPerSession != nil {
			addSet("variable_cost_per_session", decimal.NewFromFloat(*req.VariableCostPerSession))
		}
		if req.Status != nil {
			addSet("status", *req.Status)
		}
		if len(args) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, "no fields to update")
			return
		}

		args = append(args, req.TherapyID, req.UserID)
		sql := `UPDATE therapy_types SET ` + strings.Join(sets, ", ") +
			` WHERE therapy_id = $` + strconv.Itoa(arg) + ` AND user_id = $` + strconv.Itoa(arg+1)
		tag, err := pgxPool.Exec(ctx, sql, args...)
		if err != nil {
			msg, status := getUserFriendlyTherapyError(err, "Failed to update therapy type")
			api.RespondWithError(w, status, msg)
			return
		}
		if tag.RowsAffected() == 0 {
			api.RespondWithError(w, http.StatusNotFound, "therapy type not found")
			return
		}
		api.RespondWithResult(w, true, "")
	}
}

// DeleteTherapyType soft-deletes; plans keep their foreign reference.
func DeleteTherapyType(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req struct {
			UserID    string `json:"user_id"`
			TherapyID string `json:"therapy_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.TherapyID == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		tag, err := pgxPool.Exec(ctx, `
			UPDATE therapy_types SET status = 'Deleted', updated_at = now()
			WHERE therapy_id = $1 AND user_id = $2`, req.TherapyID, req.UserID)
		if err != nil {
			msg, status := getUserFriendlyTherapyError(err, "Failed to delete therapy type")
			api.RespondWithError(w, status, msg)
			return
		}
		if tag.RowsAffected() == 0 {
			api.RespondWithError(w, http.StatusNotFound, "therapy type not found")
			return
		}
		api.RespondWithResult(w, true, "")
	}
}
