package load

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// SalesLoader отвечает за загрузку фактов продаж
type SalesLoader struct {
	tx     *sql.Tx
	logger *utils.ETLLogger
}

// NewSalesLoader создает новый экземпляр SalesLoader
func NewSalesLoader(tx *sql.Tx, logger *utils.ETLLogger) *SalesLoader {
	return &SalesLoader{
		tx:     tx,
		logger: logger,
	}
}

// Load загружает факты продаж в рамках транзакции партии.
// Забракованные санитизацией даты и цены сохраняются как NULL
func (l *SalesLoader) Load(sales []models.SalesFact) (int, error) {
	if len(sales) == 0 {
		l.logger.Debug("Нет данных продаж для загрузки")
		return 0, nil
	}

	stmt, err := l.tx.Prepare(`
		INSERT INTO sales_dwh.fact_sales
		(order_number, product_number, customer_id,
		order_date, ship_date, due_date, sales_amount, quantity, price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	processed := 0
	for _, sale := range sales {
		if _, err := stmt.Exec(
			sale.OrderNumber,
			sale.ProductNumber,
			sale.CustomerID,
			sale.OrderDate,
			sale.ShipDate,
			sale.DueDate,
			sale.Sales,
			sale.Quantity,
			sale.Price,
		); err != nil {
			return processed, fmt.Errorf("ошибка при вставке продажи %s: %w", sale.OrderNumber, err)
		}
		processed++

		// Логируем прогресс каждые 5000 фактов
		if processed%5000 == 0 {
			l.logger.Debug("Загружено %d из %d фактов продаж...", processed, len(sales))
		}
	}

	l.logger.Debug("Загружено %d фактов продаж", processed)
	return processed, nil
}
