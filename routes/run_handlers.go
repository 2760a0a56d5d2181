package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/LilVoxy/coursework_dwh/models"
)

// Максимальное количество записей журнала в одном ответе
const maxRunsLimit = 100

// GetRunsHandler возвращает обработчик списка запусков ETL
func GetRunsHandler(repo models.ETLLogRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 20
		if v := r.URL.Query().Get("limit"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed <= 0 {
				http.Error(w, "некорректный параметр limit", http.StatusBadRequest)
				return
			}
			limit = parsed
		}
		if limit > maxRunsLimit {
			limit = maxRunsLimit
		}

		runs, err := repo.GetRecentRuns(limit)
		if err != nil {
			log.Printf("Ошибка при чтении журнала запусков: %v", err)
			http.Error(w, "не удалось прочитать журнал запусков", http.StatusInternalServerError)
			return
		}

		writeJSON(w, runs)
	}
}

// GetLastRunHandler возвращает обработчик последнего запуска ETL
func GetLastRunHandler(repo models.ETLLogRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, err := repo.GetLastRun()
		if err != nil {
			log.Printf("Ошибка при чтении журнала запусков: %v", err)
			http.Error(w, "не удалось прочитать журнал запусков", http.StatusInternalServerError)
			return
		}

		if run == nil {
			http.Error(w, "журнал запусков пуст", http.StatusNotFound)
			return
		}

		writeJSON(w, run)
	}
}

// writeJSON сериализует ответ в JSON
func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Ошибка при сериализации ответа: %v", err)
	}
}
