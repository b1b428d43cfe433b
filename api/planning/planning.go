package planning

import (
	"log"
	"net/http"

	"PraxisPlan/api/middlewares"
	"PraxisPlan/api/planning/imports"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
)

func StartPlanningService(db *pgxpool.Pool) {
	router := mux.NewRouter()

	// Template downloads carry no user data and need no session
	router.Handle("/planning/imports/template", imports.DownloadTemplate()).Methods("GET")
	router.Handle("/planning/imports/template/latido", imports.DownloadLatidoTemplate()).Methods("GET")

	authed := router.NewRoute().Subrouter()
	authed.Use(middlewares.SessionMiddleware)

	authed.Handle("/planning/plans", GetMonthlyPlans(db)).Methods("POST")
	authed.Handle("/planning/plans/planned", SetPlannedSessions(db)).Methods("POST")
	authed.Handle("/planning/plans/actual", SetActualSessions(db)).Methods("POST")
	authed.Handle("/planning/plans/actual/reset", ResetActualSessions(db)).Methods("POST")

	authed.Handle("/planning/imports/detect", imports.DetectMappingHandler()).Methods("POST")
	authed.Handle("/planning/imports/preview", imports.PreviewImportHandler(db)).Methods("POST")
	authed.Handle("/planning/imports/commit", imports.CommitImportHandler(db)).Methods("POST")

	log.Println("Planning Service started on :7132")
	err := http.ListenAndServe(":7132", router)
	if err != nil {
		log.Fatalf("Planning Service failed: %v", err)
	}
}
