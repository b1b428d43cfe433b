package imports

import "sort"

// BuildPreview summarizes valid rows for user confirmation. Pure; an empty
// batch yields a zero-value summary.
func BuildPreview(rows []SessionRow) Preview {
	p := Preview{TherapyTypesFound: []string{}}
	if len(rows) == 0 {
		return p
	}

	p.ValidRows = len(rows)
	seen := map[string]string{} // lower -> first-seen spelling
	start, end := rows[0].Date, rows[0].Date
	for _, r := range rows {
		p.TotalSessions += r.Sessions
		if r.Date.Before(start) {
			start = r.Date
		}
		if r.Date.After(end) {
			end = r.Date
		}
		key := foldName(r.TherapyName)
		if _, ok := seen[key]; !ok {
			seen[key] = r.TherapyName
		}
	}
	p.DateRange = DateRange{Start: start.Format("2006-01-02"), End: end.Format("2006-01-02")}

	for _, name := range seen {
		p.TherapyTypesFound = append(p.TherapyTypesFound, name)
	}
	sort.Strings(p.TherapyTypesFound)
	return p
}
