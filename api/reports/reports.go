package reports

import (
	"log"
	"net/http"

	"PraxisPlan/api/middlewares"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
)

func StartReportsService(db *pgxpool.Pool) {
	router := mux.NewRouter()
	router.Use(middlewares.SessionMiddleware)

	router.Handle("/reports/variance", GetVarianceReport(db)).Methods("POST")
	router.Handle("/reports/financial", GetFinancialReport(db)).Methods("POST")
	router.Handle("/reports/tax-estimate", GetTaxEstimate(db)).Methods("POST")

	log.Println("Reports Service started on :7133")
	err := http.ListenAndServe(":7133", router)
	if err != nil {
		log.Fatalf("Reports Service failed: %v", err)
	}
}
