package load

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// ProductLoader отвечает за загрузку измерения товаров
type ProductLoader struct {
	tx     *sql.Tx
	logger *utils.ETLLogger
}

// NewProductLoader создает новый экземпляр ProductLoader
func NewProductLoader(tx *sql.Tx, logger *utils.ETLLogger) *ProductLoader {
	return &ProductLoader{
		tx:     tx,
		logger: logger,
	}
}

// Load загружает измерение товаров в рамках транзакции партии.
// EndDate актуальной ревизии равен nil и сохраняется как NULL —
// открытый интервал действия
func (l *ProductLoader) Load(products []models.ProductDimension) (int, error) {
	if len(products) == 0 {
		l.logger.Debug("Нет данных товаров для загрузки")
		return 0, nil
	}

	stmt, err := l.tx.Prepare(`
		INSERT INTO sales_dwh.dim_products
		(product_key, product_id, product_number, product_name,
		category_id, cost, product_line, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	processed := 0
	for _, product := range products {
		if _, err := stmt.Exec(
			product.ProductKey,
			product.ProductID,
			product.ProductNumber,
			product.ProductName,
			product.CategoryID,
			product.Cost,
			product.ProductLine,
			product.StartDate,
			product.EndDate,
		); err != nil {
			return processed, fmt.Errorf("ошибка при вставке товара %s: %w", product.ProductNumber, err)
		}
		processed++

		// Логируем прогресс каждые 1000 товаров
		if processed%1000 == 0 {
			l.logger.Debug("Загружено %d из %d товаров...", processed, len(products))
		}
	}

	l.logger.Debug("Загружено %d записей измерения товаров", processed)
	return processed, nil
}
