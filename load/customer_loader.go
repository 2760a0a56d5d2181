package load

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// CustomerLoader отвечает за загрузку измерения клиентов
type CustomerLoader struct {
	tx     *sql.Tx
	logger *utils.ETLLogger
}

// NewCustomerLoader создает новый экземпляр CustomerLoader
func NewCustomerLoader(tx *sql.Tx, logger *utils.ETLLogger) *CustomerLoader {
	return &CustomerLoader{
		tx:     tx,
		logger: logger,
	}
}

// Load загружает измерение клиентов в рамках транзакции партии
func (l *CustomerLoader) Load(customers []models.CustomerDimension) (int, error) {
	if len(customers) == 0 {
		l.logger.Debug("Нет данных клиентов для загрузки")
		return 0, nil
	}

	stmt, err := l.tx.Prepare(`
		INSERT INTO sales_dwh.dim_customers
		(customer_key, customer_id, customer_number, first_name, last_name,
		country, marital_status, gender, birthdate, create_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	processed := 0
	for _, customer := range customers {
		if _, err := stmt.Exec(
			customer.CustomerKey,
			customer.CustomerID,
			customer.CustomerNumber,
			customer.FirstName,
			customer.LastName,
			customer.Country,
			customer.MaritalStatus,
			customer.Gender,
			customer.BirthDate,
			customer.CreateDate,
		); err != nil {
			return processed, fmt.Errorf("ошибка при вставке клиента %s: %w", customer.CustomerNumber, err)
		}
		processed++

		// Логируем прогресс каждые 1000 клиентов
		if processed%1000 == 0 {
			l.logger.Debug("Загружено %d из %d клиентов...", processed, len(customers))
		}
	}

	l.logger.Debug("Загружено %d записей измерения клиентов", processed)
	return processed, nil
}
