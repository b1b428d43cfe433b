package imports

import (
	"context"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

func foldName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ResolveTherapies matches the batch's distinct therapy names against the
// catalog, case-insensitively and exactly (no fuzzy matching). Missing names
// are reported, never fatal: the user fixes the catalog and re-imports.
func ResolveTherapies(rows []SessionRow, catalog []TherapyRef) Resolution {
	byFold := make(map[string]TherapyRef, len(catalog))
	for _, t := range catalog {
		byFold[foldName(t.Name)] = t
	}

	res := Resolution{Matched: map[string]TherapyRef{}, Missing: []string{}}
	seenMissing := map[string]bool{}
	for _, r := range rows {
		key := foldName(r.TherapyName)
		if _, done := res.Matched[r.TherapyName]; done {
			continue
		}
		if t, ok := byFold[key]; ok {
			res.Matched[r.TherapyName] = t
			continue
		}
		if !seenMissing[key] {
			seenMissing[key] = true
			res.Missing = append(res.Missing, r.TherapyName)
		}
	}
	sort.Strings(res.Missing)
	return res
}

// LoadCatalog fetches the user's active therapy types for resolution.
func LoadCatalog(ctx context.Context, db *pgxpool.Pool, userID string) ([]TherapyRef, error) {
	rows, err := db.Query(ctx, `
		SELECT therapy_id, name, price_per_session
		FROM therapy_types
		WHERE user_id = $1 AND status = 'Active'`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	catalog := []TherapyRef{}
	for rows.Next() {
		var t TherapyRef
		if err := rows.Scan(&t.TherapyID, &t.Name, &t.PricePerSession); err != nil {
			return nil, err
		}
		catalog = append(catalog, t)
	}
	return catalog, rows.Err()
}
