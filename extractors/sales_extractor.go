package extractors

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// SalesExtractor извлекает staging-записи продаж CRM
type SalesExtractor struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewSalesExtractor создает новый экземпляр SalesExtractor
func NewSalesExtractor(db *sql.DB, logger *utils.ETLLogger) *SalesExtractor {
	return &SalesExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractSales извлекает все staging-записи продаж.
// Токены дат читаются в сыром виде — их проверяет фаза трансформации
func (e *SalesExtractor) ExtractSales() ([]models.CRMSalesStaging, error) {
	e.logger.Debug("Начало извлечения данных о продажах")

	query := `
		SELECT COALESCE(sls_ord_num, ''), COALESCE(sls_prd_key, ''), sls_cust_id,
			COALESCE(CAST(sls_order_dt AS CHAR), ''),
			COALESCE(CAST(sls_ship_dt AS CHAR), ''),
			COALESCE(CAST(sls_due_dt AS CHAR), ''),
			sls_sales, COALESCE(sls_quantity, 0), sls_price
		FROM crm_sales_details
		ORDER BY sls_ord_num, sls_prd_key
	`

	rows, err := e.db.Query(query)
	if err != nil {
		e.logger.Error("Ошибка при извлечении данных о продажах: %v", err)
		return nil, fmt.Errorf("ошибка запроса продаж: %w", err)
	}
	defer rows.Close()

	var sales []models.CRMSalesStaging
	for rows.Next() {
		var sale models.CRMSalesStaging
		var amount, price sql.NullFloat64

		if err := rows.Scan(
			&sale.OrderNumber,
			&sale.ProductKey,
			&sale.CustomerID,
			&sale.OrderDate,
			&sale.ShipDate,
			&sale.DueDate,
			&amount,
			&sale.Quantity,
			&price,
		); err != nil {
			e.logger.Error("Ошибка при обработке данных продажи: %v", err)
			return nil, fmt.Errorf("ошибка обработки данных продажи: %w", err)
		}

		if amount.Valid {
			sale.Sales = &amount.Float64
		}
		if price.Valid {
			sale.Price = &price.Float64
		}

		sales = append(sales, sale)
	}

	if err = rows.Err(); err != nil {
		e.logger.Error("Ошибка после итерации по продажам: %v", err)
		return nil, fmt.Errorf("ошибка после итерации по продажам: %w", err)
	}

	e.logger.Debug("Извлечено %d продаж", len(sales))
	return sales, nil
}
