package catalog

import (
	"log"
	"net/http"

	"PraxisPlan/api/middlewares"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
)

func StartCatalogService(db *pgxpool.Pool) {
	router := mux.NewRouter()
	router.Use(middlewares.SessionMiddleware)

	router.Handle("/catalog/therapy-types/create", CreateTherapyType(db)).Methods("POST")
	router.Handle("/catalog/therapy-types", GetTherapyTypes(db)).Methods("POST")
	router.Handle("/catalog/therapy-types/update", UpdateTherapyType(db)).Methods("POST")
	router.Handle("/catalog/therapy-types/delete", DeleteTherapyType(db)).Methods("POST")

	log.Println("Catalog Service started on :7131")
	err := http.ListenAndServe(":7131", router)
	if err != nil {
		log.Fatalf("Catalog Service failed: %v", err)
	}
}
