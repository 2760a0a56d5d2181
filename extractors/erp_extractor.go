package extractors

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// ERPExtractor извлекает дополнительные данные клиентов из ERP-выгрузок
type ERPExtractor struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewERPExtractor создает новый экземпляр ERPExtractor
func NewERPExtractor(db *sql.DB, logger *utils.ETLLogger) *ERPExtractor {
	return &ERPExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractERPCustomers извлекает даты рождения и пол клиентов из ERP
func (e *ERPExtractor) ExtractERPCustomers() ([]models.ERPCustomerStaging, error) {
	e.logger.Debug("Начало извлечения ERP-данных клиентов")

	query := `
		SELECT COALESCE(cid, ''), bdate, COALESCE(gen, '')
		FROM erp_cust_az12
		ORDER BY cid
	`

	rows, err := e.db.Query(query)
	if err != nil {
		e.logger.Error("Ошибка при извлечении ERP-данных клиентов: %v", err)
		return nil, fmt.Errorf("ошибка запроса ERP-данных клиентов: %w", err)
	}
	defer rows.Close()

	var customers []models.ERPCustomerStaging
	for rows.Next() {
		var customer models.ERPCustomerStaging
		var birthDate sql.NullTime

		if err := rows.Scan(&customer.CustomerNumber, &birthDate, &customer.Gender); err != nil {
			e.logger.Error("Ошибка при обработке ERP-данных клиента: %v", err)
			return nil, fmt.Errorf("ошибка обработки ERP-данных клиента: %w", err)
		}

		if birthDate.Valid {
			customer.BirthDate = &birthDate.Time
		}

		customers = append(customers, customer)
	}

	if err = rows.Err(); err != nil {
		e.logger.Error("Ошибка после итерации по ERP-данным клиентов: %v", err)
		return nil, fmt.Errorf("ошибка после итерации по ERP-данным клиентов: %w", err)
	}

	e.logger.Debug("Извлечено %d ERP-записей клиентов", len(customers))
	return customers, nil
}

// ExtractERPLocations извлекает страны клиентов из ERP
func (e *ERPExtractor) ExtractERPLocations() ([]models.ERPLocationStaging, error) {
	e.logger.Debug("Начало извлечения ERP-данных стран")

	query := `
		SELECT COALESCE(cid, ''), COALESCE(cntry, '')
		FROM erp_loc_a101
		ORDER BY cid
	`

	rows, err := e.db.Query(query)
	if err != nil {
		e.logger.Error("Ошибка при извлечении ERP-данных стран: %v", err)
		return nil, fmt.Errorf("ошибка запроса ERP-данных стран: %w", err)
	}
	defer rows.Close()

	var locations []models.ERPLocationStaging
	for rows.Next() {
		var location models.ERPLocationStaging

		if err := rows.Scan(&location.CustomerNumber, &location.Country); err != nil {
			e.logger.Error("Ошибка при обработке ERP-данных страны: %v", err)
			return nil, fmt.Errorf("ошибка обработки ERP-данных страны: %w", err)
		}

		locations = append(locations, location)
	}

	if err = rows.Err(); err != nil {
		e.logger.Error("Ошибка после итерации по ERP-данным стран: %v", err)
		return nil, fmt.Errorf("ошибка после итерации по ERP-данным стран: %w", err)
	}

	e.logger.Debug("Извлечено %d ERP-записей стран", len(locations))
	return locations, nil
}
