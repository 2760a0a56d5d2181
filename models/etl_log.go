package models

import (
	"time"
)

// ETLRunLog представляет запись журнала о запуске ETL-процесса
type ETLRunLog struct {
	RunID              string    `json:"run_id"` // uuid запуска
	StartTime          time.Time `json:"start_time"`
	EndTime            time.Time `json:"end_time"`
	Status             string    `json:"status"` // 'in_progress', 'success', 'failed'
	CategoriesLoaded   int       `json:"categories_loaded"`
	CustomersLoaded    int       `json:"customers_loaded"`
	ProductsLoaded     int       `json:"products_loaded"`
	SalesLoaded        int       `json:"sales_loaded"`
	FailedStep         int       `json:"failed_step"` // 0, если все шаги прошли
	VerificationPassed bool      `json:"verification_passed"`
	ErrorMessage       string    `json:"error_message"`
}

// ETLLogRepository определяет операции над журналом запусков ETL
type ETLLogRepository interface {
	// CreateETLLogTable создает таблицу журнала, если она не существует
	CreateETLLogTable() error

	// CreateLogEntry создает новую запись о запуске и возвращает её uuid
	CreateLogEntry(startTime time.Time) (string, error)

	// UpdateLogEntrySuccess обновляет запись при успешном завершении
	UpdateLogEntrySuccess(runID string, endTime time.Time, result *BatchResult, verificationPassed bool) error

	// UpdateLogEntryFailure обновляет запись при ошибке
	UpdateLogEntryFailure(runID string, endTime time.Time, failedStep int, errorMessage string) error

	// GetRecentRuns возвращает последние записи журнала
	GetRecentRuns(limit int) ([]ETLRunLog, error)

	// GetLastRun возвращает последнюю запись журнала
	GetLastRun() (*ETLRunLog, error)
}
