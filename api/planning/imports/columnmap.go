package imports

import "strings"

// fieldSynonyms maps each semantic field to the header spellings we accept,
// German first since most exports come from German-speaking practices.
// Kept as plain data so the synonym set is testable and extensible.
var fieldSynonyms = map[string][]string{
	"date": {
		"date", "datum", "rechnungsdatum", "invoice date", "termin", "sitzungsdatum",
	},
	"therapy_type": {
		"therapy", "therapy type", "therapie", "therapieart", "behandlung",
		"treatment", "leistung", "leistungsart",
	},
	"sessions": {
		"sessions", "sitzungen", "anzahl sitzungen", "number of sessions",
		"count", "anzahl", "einheiten",
	},
	"revenue": {
		"revenue", "umsatz", "betrag", "amount", "honorar", "summe",
	},
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// DetectColumnMapping scans the header row for known synonyms and returns a
// best-effort mapping. Unmatched fields stay empty for manual selection;
// duplicate headers resolve to the first occurrence. Never fails.
func DetectColumnMapping(headers []string) ColumnMapping {
	find := func(field string) string {
		synonyms := fieldSynonyms[field]
		for _, h := range headers {
			n := normalizeHeader(h)
			if n == "" {
				continue
			}
			for _, syn := range synonyms {
				if n == syn {
					return h
				}
			}
		}
		return ""
	}

	return ColumnMapping{
		DateColumn:     find("date"),
		TherapyColumn:  find("therapy_type"),
		SessionsColumn: find("sessions"),
		RevenueColumn:  find("revenue"),
	}
}
