// routes/api_routes.go
package routes

import (
	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/gorilla/mux"
)

// SetupRoutes настраивает маршруты HTTP API отчётов о запусках ETL.
// API только читает журнал запусков — единственную поверхность,
// адресованную оператору
func SetupRoutes(router *mux.Router, repo models.ETLLogRepository) {
	// Журнал запусков ETL
	router.HandleFunc("/api/etl/runs", GetRunsHandler(repo)).Methods("GET")

	// Последний запуск
	router.HandleFunc("/api/etl/runs/latest", GetLastRunHandler(repo)).Methods("GET")
}
