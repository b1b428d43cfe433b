package imports

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// AggregateGroups folds valid rows into (month, therapy) aggregates. Rows
// whose therapy did not resolve are counted as skipped, not dropped
// silently. Revenue is the sum of per-row overrides where present,
// otherwise sessions × the catalog price.
func AggregateGroups(rows []SessionRow, res Resolution) (groups []PlanGroup, skipped []SessionRow) {
	type key struct {
		month     string
		therapyID string
	}
	byKey := map[key]*PlanGroup{}
	order := []key{}

	for _, r := range rows {
		therapy, ok := res.Matched[r.TherapyName]
		if !ok {
			skipped = append(skipped, r)
			continue
		}
		k := key{month: r.Date.Format("2006-01"), therapyID: therapy.TherapyID}
		g, exists := byKey[k]
		if !exists {
			g = &PlanGroup{
				Month:       k.month,
				TherapyID:   therapy.TherapyID,
				TherapyName: therapy.Name,
				Revenue:     decimal.Zero,
			}
			byKey[k] = g
			order = append(order, k)
		}
		g.Sessions += r.Sessions
		g.RowCount++
		if r.Revenue != nil {
			g.Revenue = g.Revenue.Add(*r.Revenue)
		} else {
			g.Revenue = g.Revenue.Add(therapy.PricePerSession.Mul(decimal.NewFromInt(int64(r.Sessions))))
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].month != order[j].month {
			return order[i].month < order[j].month
		}
		return byKey[order[i]].TherapyName < byKey[order[j]].TherapyName
	})
	for _, k := range order {
		groups = append(groups, *byKey[k])
	}
	return groups, skipped
}

// CommitGroups upserts each aggregate into monthly_plans. The conflict
// target is the (user_id, therapy_id, month) unique key, so the actuals are
// replaced wholesale on re-import rather than added, and concurrent imports
// cannot produce duplicate rows. A failure on one group is recorded and the
// remaining groups still run.
func CommitGroups(ctx context.Context, db *pgxpool.Pool, userID string, groups []PlanGroup, skipped []SessionRow, res Resolution) CommitResult {
	result := CommitResult{
		Errors:           []RowIssue{},
		Warnings:         []RowIssue{},
		MissingTherapies: res.Missing,
	}

	for _, r := range skipped {
		result.Warnings = append(result.Warnings, RowIssue{
			Row:     r.SourceRow,
			Message: fmt.Sprintf("therapy %q not found in catalog, row skipped", r.TherapyName),
		})
	}
	result.SkippedCount = len(skipped)

	for _, g := range groups {
		_, err := db.Exec(ctx, `
			INSERT INTO monthly_plans (plan_id, user_id, therapy_id, month, planned_sessions, actual_sessions, actual_revenue)
			VALUES ($1, $2, $3, $4, 0, $5, $6)
			ON CONFLICT (user_id, therapy_id, month)
			DO UPDATE SET actual_sessions = EXCLUDED.actual_sessions,
			              actual_revenue = EXCLUDED.actual_revenue,
			              updated_at = now()`,
			uuid.New().String(), userID, g.TherapyID, g.Month, g.Sessions, g.Revenue)
		if err != nil {
			result.Errors = append(result.Errors, RowIssue{
				Row:     0,
				Message: fmt.Sprintf("failed to save %s / %s: %v", g.Month, g.TherapyName, err),
			})
			continue
		}
		result.ImportedCount += g.RowCount
	}

	result.Success = len(result.Errors) == 0
	return result
}
