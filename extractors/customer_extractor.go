package extractors

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// CustomerExtractor извлекает staging-записи клиентов CRM
type CustomerExtractor struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewCustomerExtractor создает новый экземпляр CustomerExtractor
func NewCustomerExtractor(db *sql.DB, logger *utils.ETLLogger) *CustomerExtractor {
	return &CustomerExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractCustomers извлекает все staging-записи клиентов.
// Сортировка по первичному ключу задает порядок выгрузки —
// он же служит вторичным ключом при разрешении дубликатов
func (e *CustomerExtractor) ExtractCustomers() ([]models.CRMCustomerStaging, error) {
	e.logger.Debug("Начало извлечения данных о клиентах")

	query := `
		SELECT cst_id, COALESCE(cst_key, ''), COALESCE(cst_firstname, ''), COALESCE(cst_lastname, ''),
			COALESCE(cst_marital_status, ''), COALESCE(cst_gndr, ''), cst_create_date
		FROM crm_cust_info
		WHERE cst_id IS NOT NULL
		ORDER BY cst_id
	`

	rows, err := e.db.Query(query)
	if err != nil {
		e.logger.Error("Ошибка при извлечении данных о клиентах: %v", err)
		return nil, fmt.Errorf("ошибка запроса клиентов: %w", err)
	}
	defer rows.Close()

	var customers []models.CRMCustomerStaging
	for rows.Next() {
		var customer models.CRMCustomerStaging
		var createDate sql.NullTime

		if err := rows.Scan(
			&customer.CustomerID,
			&customer.CustomerNumber,
			&customer.FirstName,
			&customer.LastName,
			&customer.MaritalStatus,
			&customer.Gender,
			&createDate,
		); err != nil {
			e.logger.Error("Ошибка при обработке данных клиента: %v", err)
			return nil, fmt.Errorf("ошибка обработки данных клиента: %w", err)
		}

		if createDate.Valid {
			customer.CreateDate = &createDate.Time
		}

		customers = append(customers, customer)
	}

	if err = rows.Err(); err != nil {
		e.logger.Error("Ошибка после итерации по клиентам: %v", err)
		return nil, fmt.Errorf("ошибка после итерации по клиентам: %w", err)
	}

	e.logger.Debug("Извлечено %d клиентов", len(customers))
	return customers, nil
}
