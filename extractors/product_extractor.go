package extractors

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// ProductExtractor извлекает staging-записи товаров CRM
type ProductExtractor struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewProductExtractor создает новый экземпляр ProductExtractor
func NewProductExtractor(db *sql.DB, logger *utils.ETLLogger) *ProductExtractor {
	return &ProductExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractProducts извлекает все staging-записи товаров в порядке выгрузки
func (e *ProductExtractor) ExtractProducts() ([]models.CRMProductStaging, error) {
	e.logger.Debug("Начало извлечения данных о товарах")

	query := `
		SELECT prd_id, COALESCE(prd_key, ''), COALESCE(prd_nm, ''), prd_cost,
			COALESCE(prd_line, ''), prd_start_dt
		FROM crm_prd_info
		ORDER BY prd_id
	`

	rows, err := e.db.Query(query)
	if err != nil {
		e.logger.Error("Ошибка при извлечении данных о товарах: %v", err)
		return nil, fmt.Errorf("ошибка запроса товаров: %w", err)
	}
	defer rows.Close()

	var products []models.CRMProductStaging
	for rows.Next() {
		var product models.CRMProductStaging
		var cost sql.NullFloat64
		var startDate sql.NullTime

		if err := rows.Scan(
			&product.ProductID,
			&product.ProductKey,
			&product.Name,
			&cost,
			&product.Line,
			&startDate,
		); err != nil {
			e.logger.Error("Ошибка при обработке данных товара: %v", err)
			return nil, fmt.Errorf("ошибка обработки данных товара: %w", err)
		}

		if cost.Valid {
			product.Cost = &cost.Float64
		}
		if startDate.Valid {
			product.StartDate = &startDate.Time
		}

		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		e.logger.Error("Ошибка после итерации по товарам: %v", err)
		return nil, fmt.Errorf("ошибка после итерации по товарам: %w", err)
	}

	e.logger.Debug("Извлечено %d товаров", len(products))
	return products, nil
}
