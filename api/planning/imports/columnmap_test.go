package imports

import "testing"

func TestDetectColumnMapping_GermanHeaders(t *testing.T) {
	headers := []string{"Rechnungsdatum", "Therapieart", "Anzahl Sitzungen", "Betrag"}
	m := DetectColumnMapping(headers)

	if m.DateColumn != "Rechnungsdatum" {
		t.Errorf("date column: got %q, want %q", m.DateColumn, "Rechnungsdatum")
	}
	if m.TherapyColumn != "Therapieart" {
		t.Errorf("therapy column: got %q, want %q", m.TherapyColumn, "Therapieart")
	}
	if m.SessionsColumn != "Anzahl Sitzungen" {
		t.Errorf("sessions column: got %q, want %q", m.SessionsColumn, "Anzahl Sitzungen")
	}
	if m.RevenueColumn != "Betrag" {
		t.Errorf("revenue column: got %q, want %q", m.RevenueColumn, "Betrag")
	}
	if !m.Complete() {
		t.Error("expected mapping to be complete")
	}
}

func TestDetectColumnMapping_EnglishHeaders(t *testing.T) {
	headers := []string{"Date", "Therapy", "Sessions", "Revenue"}
	m := DetectColumnMapping(headers)

	if m.DateColumn != "Date" || m.TherapyColumn != "Therapy" || m.SessionsColumn != "Sessions" || m.RevenueColumn != "Revenue" {
		t.Errorf("unexpected mapping: %+v", m)
	}
}

func TestDetectColumnMapping_CaseInsensitive(t *testing.T) {
	headers := []string{"DATUM", "behandlung", "SiTzUnGeN"}
	m := DetectColumnMapping(headers)

	if m.DateColumn != "DATUM" {
		t.Errorf("date column: got %q", m.DateColumn)
	}
	if m.TherapyColumn != "behandlung" {
		t.Errorf("therapy column: got %q", m.TherapyColumn)
	}
	if m.SessionsColumn != "SiTzUnGeN" {
		t.Errorf("sessions column: got %q", m.SessionsColumn)
	}
}

func TestDetectColumnMapping_UnmatchedFieldsStayEmpty(t *testing.T) {
	headers := []string{"Foo", "Bar", "Baz"}
	m := DetectColumnMapping(headers)

	if m.DateColumn != "" || m.TherapyColumn != "" || m.SessionsColumn != "" || m.RevenueColumn != "" {
		t.Errorf("expected empty mapping, got %+v", m)
	}
	if m.Complete() {
		t.Error("expected mapping to be incomplete")
	}
}

func TestDetectColumnMapping_DuplicateHeadersFirstWins(t *testing.T) {
	// Two date-ish headers: only the first occurrence is taken
	headers := []string{"Datum", "Date", "Therapie", "Sitzungen"}
	m := DetectColumnMapping(headers)

	if m.DateColumn != "Datum" {
		t.Errorf("date column: got %q, want first occurrence %q", m.DateColumn, "Datum")
	}
}

func TestDetectColumnMapping_WhitespaceHeadersIgnored(t *testing.T) {
	headers := []string{"   ", "", "Date", "Therapy", "Sessions"}
	m := DetectColumnMapping(headers)

	if m.DateColumn != "Date" {
		t.Errorf("date column: got %q", m.DateColumn)
	}
}
