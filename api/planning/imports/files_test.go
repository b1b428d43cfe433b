package imports

import (
	"reflect"
	"strings"
	"testing"
)

func TestDecodeFile_CSV(t *testing.T) {
	data := []byte("Date,Therapy,Sessions\n2024-03-15,Massage,3\n")

	rows, spreadsheet, err := DecodeFile(data, "export.csv", ',')
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if spreadsheet {
		t.Error("csv should not be flagged as a spreadsheet")
	}
	want := [][]string{{"Date", "Therapy", "Sessions"}, {"2024-03-15", "Massage", "3"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows: got %v, want %v", rows, want)
	}
}

func TestDecodeFile_SemicolonCSV(t *testing.T) {
	data := []byte("Rechnungsdatum;Therapieart;Anzahl Sitzungen\n15.03.2024;Massage;3,0\n")

	rows, _, err := DecodeFile(data, "latido.csv", ';')
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if len(rows) != 2 || len(rows[1]) != 3 || rows[1][2] != "3,0" {
		t.Errorf("semicolon rows: got %v", rows)
	}
}

func TestDecodeFile_UnsupportedExtension(t *testing.T) {
	if _, _, err := DecodeFile([]byte("x"), "sessions.pdf", ','); err == nil {
		t.Error("expected an error for an unsupported extension")
	}
}

func TestDecodeFile_EmptyCSV(t *testing.T) {
	if _, _, err := DecodeFile(nil, "empty.csv", ','); err == nil {
		t.Error("expected an error for an empty file")
	}
}

func TestSplitHeader(t *testing.T) {
	rows := [][]string{{"A", "B"}, {"1", "2"}, {"3", "4"}}

	headers, data, err := splitHeader(rows, true)
	if err != nil {
		t.Fatalf("splitHeader: %v", err)
	}
	if !reflect.DeepEqual(headers, []string{"A", "B"}) || len(data) != 2 {
		t.Errorf("got headers=%v data=%v", headers, data)
	}
}

func TestSplitHeader_Headerless(t *testing.T) {
	rows := [][]string{{"1", "2", "3"}, {"4", "5"}}

	headers, data, err := splitHeader(rows, false)
	if err != nil {
		t.Fatalf("splitHeader: %v", err)
	}
	if !reflect.DeepEqual(headers, []string{"column_1", "column_2", "column_3"}) {
		t.Errorf("pseudo-headers: got %v", headers)
	}
	if len(data) != 2 {
		t.Errorf("data rows: got %d, want 2", len(data))
	}
}

func TestSplitHeader_HeaderOnly(t *testing.T) {
	if _, _, err := splitHeader([][]string{{"A"}}, true); err == nil {
		t.Error("expected an error for a header-only file")
	}
}

func TestDelimiterFromName(t *testing.T) {
	cases := map[string]rune{
		"semicolon": ';',
		";":         ';',
		"tab":       '\t',
		"comma":     ',',
		"":          ',',
		"Semicolon": ';',
	}
	for in, want := range cases {
		if got := DelimiterFromName(in); got != want {
			t.Errorf("DelimiterFromName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTemplates_MatchTheirOwnMappings(t *testing.T) {
	// both bundled templates must survive the detect -> parse pipeline
	cases := []struct {
		name      string
		body      string
		delimiter rune
	}{
		{name: "standard", body: standardTemplate, delimiter: ','},
		{name: "latido", body: latidoTemplate, delimiter: ';'},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows, _, err := DecodeFile([]byte(tc.body), tc.name+".csv", tc.delimiter)
			if err != nil {
				t.Fatalf("DecodeFile: %v", err)
			}
			mapping := DetectColumnMapping(rows[0])
			if !mapping.Complete() {
				t.Fatalf("template headers did not map: %+v", mapping)
			}
			result, err := ParseRows(rows, mapping, ParseConfig{HasHeader: true})
			if err != nil {
				t.Fatalf("ParseRows: %v", err)
			}
			if len(result.Valid) == 0 || len(result.Errors) != 0 {
				t.Errorf("template rows should all parse: %+v", result)
			}
			if !strings.HasSuffix(tc.body, "\n") {
				t.Errorf("template should end with a newline")
			}
		})
	}
}
