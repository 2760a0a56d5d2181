package extractors

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// ReferenceExtractor извлекает справочные таблицы.
// Справочники читаются один раз на партию и считаются неизменяемыми
// до конца фазы трансформации
type ReferenceExtractor struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewReferenceExtractor создает новый экземпляр ReferenceExtractor
func NewReferenceExtractor(db *sql.DB, logger *utils.ETLLogger) *ReferenceExtractor {
	return &ReferenceExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractCategories извлекает справочник категорий обслуживания
func (e *ReferenceExtractor) ExtractCategories() ([]models.ERPCategoryStaging, error) {
	e.logger.Debug("Начало извлечения справочника категорий")

	query := `
		SELECT COALESCE(id, ''), COALESCE(cat, ''), COALESCE(subcat, ''), COALESCE(maintenance, '')
		FROM erp_px_cat_g1v2
		ORDER BY id
	`

	rows, err := e.db.Query(query)
	if err != nil {
		e.logger.Error("Ошибка при извлечении справочника категорий: %v", err)
		return nil, fmt.Errorf("ошибка запроса справочника категорий: %w", err)
	}
	defer rows.Close()

	var categories []models.ERPCategoryStaging
	for rows.Next() {
		var category models.ERPCategoryStaging

		if err := rows.Scan(&category.CategoryID, &category.Category, &category.Subcategory, &category.Maintenance); err != nil {
			e.logger.Error("Ошибка при обработке строки справочника: %v", err)
			return nil, fmt.Errorf("ошибка обработки строки справочника: %w", err)
		}

		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		e.logger.Error("Ошибка после итерации по справочнику: %v", err)
		return nil, fmt.Errorf("ошибка после итерации по справочнику: %w", err)
	}

	e.logger.Debug("Извлечено %d строк справочника категорий", len(categories))
	return categories, nil
}

// LookupSet возвращает множество ключей указанного справочника.
// Сейчас поддерживается только справочник категорий обслуживания
func (e *ReferenceExtractor) LookupSet(referenceName string) (map[string]struct{}, error) {
	switch referenceName {
	case "maintenance_categories":
		categories, err := e.ExtractCategories()
		if err != nil {
			return nil, err
		}

		set := make(map[string]struct{}, len(categories))
		for _, category := range categories {
			set[category.CategoryID] = struct{}{}
		}
		return set, nil
	default:
		return nil, fmt.Errorf("неизвестный справочник: %s", referenceName)
	}
}
