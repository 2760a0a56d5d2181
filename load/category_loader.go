package load

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// CategoryLoader отвечает за загрузку справочника категорий обслуживания
type CategoryLoader struct {
	tx     *sql.Tx
	logger *utils.ETLLogger
}

// NewCategoryLoader создает новый экземпляр CategoryLoader
func NewCategoryLoader(tx *sql.Tx, logger *utils.ETLLogger) *CategoryLoader {
	return &CategoryLoader{
		tx:     tx,
		logger: logger,
	}
}

// Load загружает строки справочника в рамках транзакции партии
func (l *CategoryLoader) Load(categories []models.MaintenanceCategory) (int, error) {
	if len(categories) == 0 {
		l.logger.Debug("Нет строк справочника категорий для загрузки")
		return 0, nil
	}

	stmt, err := l.tx.Prepare(`
		INSERT INTO sales_dwh.ref_maintenance_categories
		(category_id, category, subcategory, maintenance)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	processed := 0
	for _, category := range categories {
		if _, err := stmt.Exec(
			category.CategoryID,
			category.Category,
			category.Subcategory,
			category.Maintenance,
		); err != nil {
			return processed, fmt.Errorf("ошибка при вставке категории %s: %w", category.CategoryID, err)
		}
		processed++
	}

	l.logger.Debug("Загружено %d строк справочника категорий", processed)
	return processed, nil
}
