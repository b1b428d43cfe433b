package imports

import (
	"net/http"

	"PraxisPlan/api/constants"
)

// Downloadable CSV templates. Static text, not part of the import
// algorithm; the Latido variant mirrors that software's German export
// (semicolon delimiter, DD.MM.YYYY dates, decimal comma).
const standardTemplate = `Date,Therapy,Sessions,Revenue
2024-03-01,Massage,5,450.00
2024-03-15,Physiotherapie,3,270.00
`

const latidoTemplate = `Rechnungsdatum;Therapieart;Anzahl Sitzungen;Betrag
01.03.2024;Massage;5;450,00
15.03.2024;Physiotherapie;3;270,00
`

func serveTemplate(filename, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(constants.ContentTypeText, constants.ContentTypeCSV)
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		w.Write([]byte(body))
	}
}

func DownloadTemplate() http.HandlerFunc {
	return serveTemplate("session-import-template.csv", standardTemplate)
}

func DownloadLatidoTemplate() http.HandlerFunc {
	return serveTemplate("latido-import-template.csv", latidoTemplate)
}
