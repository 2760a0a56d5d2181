package models

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MySQLETLLogRepository реализация ETLLogRepository для MySQL
type MySQLETLLogRepository struct {
	db *sql.DB
}

// NewMySQLETLLogRepository создает новый экземпляр MySQLETLLogRepository
func NewMySQLETLLogRepository(db *sql.DB) *MySQLETLLogRepository {
	return &MySQLETLLogRepository{
		db: db,
	}
}

// CreateETLLogTable создает таблицу для журналирования ETL процесса, если она не существует.
// Журнал — операционная таблица раннера, а не целевая таблица загрузки
func (r *MySQLETLLogRepository) CreateETLLogTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS sales_dwh.etl_run_log (
		run_id CHAR(36) PRIMARY KEY,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NULL,
		status ENUM('success', 'failed', 'in_progress') NOT NULL DEFAULT 'in_progress',
		categories_loaded INT DEFAULT 0,
		customers_loaded INT DEFAULT 0,
		products_loaded INT DEFAULT 0,
		sales_loaded INT DEFAULT 0,
		failed_step INT DEFAULT 0,
		verification_passed TINYINT(1) DEFAULT 0,
		error_message TEXT,
		execution_time_seconds FLOAT
	);
	`

	_, err := r.db.Exec(query)
	if err != nil {
		return fmt.Errorf("ошибка при создании таблицы etl_run_log: %w", err)
	}

	return nil
}

// CreateLogEntry создает новую запись о запуске ETL и возвращает её uuid
func (r *MySQLETLLogRepository) CreateLogEntry(startTime time.Time) (string, error) {
	runID := uuid.NewString()

	query := `
	INSERT INTO sales_dwh.etl_run_log (run_id, start_time, status)
	VALUES (?, ?, 'in_progress')
	`

	_, err := r.db.Exec(query, runID, startTime)
	if err != nil {
		return "", fmt.Errorf("ошибка при создании записи о запуске ETL: %w", err)
	}

	return runID, nil
}

// UpdateLogEntrySuccess обновляет запись при успешном завершении ETL.
// Количество загруженных строк берётся из отчёта по шагам партии
func (r *MySQLETLLogRepository) UpdateLogEntrySuccess(runID string, endTime time.Time, result *BatchResult, verificationPassed bool) error {
	var startTime time.Time
	err := r.db.QueryRow("SELECT start_time FROM sales_dwh.etl_run_log WHERE run_id = ?", runID).Scan(&startTime)
	if err != nil {
		return fmt.Errorf("ошибка при получении времени начала ETL: %w", err)
	}

	counts := rowCountsByTarget(result)

	query := `
	UPDATE sales_dwh.etl_run_log
	SET
		end_time = ?,
		status = 'success',
		categories_loaded = ?,
		customers_loaded = ?,
		products_loaded = ?,
		sales_loaded = ?,
		verification_passed = ?,
		execution_time_seconds = ?
	WHERE run_id = ?
	`

	_, err = r.db.Exec(query,
		endTime,
		counts[TargetCategories.Name],
		counts[TargetCustomers.Name],
		counts[TargetProducts.Name],
		counts[TargetSales.Name],
		verificationPassed,
		endTime.Sub(startTime).Seconds(),
		runID,
	)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении записи журнала ETL: %w", err)
	}

	return nil
}

// UpdateLogEntryFailure обновляет запись при ошибке ETL
func (r *MySQLETLLogRepository) UpdateLogEntryFailure(runID string, endTime time.Time, failedStep int, errorMessage string) error {
	var startTime time.Time
	err := r.db.QueryRow("SELECT start_time FROM sales_dwh.etl_run_log WHERE run_id = ?", runID).Scan(&startTime)
	if err != nil {
		return fmt.Errorf("ошибка при получении времени начала ETL: %w", err)
	}

	query := `
	UPDATE sales_dwh.etl_run_log
	SET
		end_time = ?,
		status = 'failed',
		failed_step = ?,
		error_message = ?,
		execution_time_seconds = ?
	WHERE run_id = ?
	`

	_, err = r.db.Exec(query, endTime, failedStep, errorMessage, endTime.Sub(startTime).Seconds(), runID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении записи журнала ETL: %w", err)
	}

	return nil
}

// GetRecentRuns возвращает последние записи журнала запусков
func (r *MySQLETLLogRepository) GetRecentRuns(limit int) ([]ETLRunLog, error) {
	query := `
	SELECT run_id, start_time, COALESCE(end_time, start_time), status,
		categories_loaded, customers_loaded, products_loaded, sales_loaded,
		failed_step, verification_passed, COALESCE(error_message, '')
	FROM sales_dwh.etl_run_log
	ORDER BY start_time DESC
	LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении журнала запусков: %w", err)
	}
	defer rows.Close()

	var runs []ETLRunLog
	for rows.Next() {
		var run ETLRunLog
		if err := rows.Scan(
			&run.RunID, &run.StartTime, &run.EndTime, &run.Status,
			&run.CategoriesLoaded, &run.CustomersLoaded, &run.ProductsLoaded, &run.SalesLoaded,
			&run.FailedStep, &run.VerificationPassed, &run.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("ошибка при обработке записи журнала: %w", err)
		}
		runs = append(runs, run)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по журналу: %w", err)
	}

	return runs, nil
}

// GetLastRun возвращает последнюю запись журнала запусков
func (r *MySQLETLLogRepository) GetLastRun() (*ETLRunLog, error) {
	runs, err := r.GetRecentRuns(1)
	if err != nil {
		return nil, err
	}

	if len(runs) == 0 {
		return nil, nil
	}

	return &runs[0], nil
}

// rowCountsByTarget собирает количество загруженных строк по именам целевых таблиц
func rowCountsByTarget(result *BatchResult) map[string]int {
	counts := make(map[string]int)
	if result == nil {
		return counts
	}

	for _, report := range result.Steps {
		counts[report.Target.Name] = report.RowCount
	}

	return counts
}
