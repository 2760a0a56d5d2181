package transform

import (
	"github.com/LilVoxy/coursework_dwh/models"
)

// CategorySet представляет множество идентификаторов категорий обслуживания.
// Загружается один раз на партию и не изменяется до конца фазы трансформации
type CategorySet struct {
	ids map[string]struct{}
}

// NewCategorySet создает множество категорий из строк справочника
func NewCategorySet(categories []models.MaintenanceCategory) *CategorySet {
	set := &CategorySet{
		ids: make(map[string]struct{}, len(categories)),
	}

	for _, category := range categories {
		set.ids[category.CategoryID] = struct{}{}
	}

	return set
}

// Contains проверяет принадлежность идентификатора категории множеству
func (s *CategorySet) Contains(categoryID string) bool {
	_, exists := s.ids[categoryID]
	return exists
}

// Size возвращает количество категорий в множестве
func (s *CategorySet) Size() int {
	return len(s.ids)
}

// ProcessCategories копирует строки справочника категорий в формат хранилища
// без изменений — справочник проходит сквозь пайплайн как есть
func ProcessCategories(rows []models.ERPCategoryStaging) []models.MaintenanceCategory {
	categories := make([]models.MaintenanceCategory, 0, len(rows))

	for _, row := range rows {
		categories = append(categories, models.MaintenanceCategory{
			CategoryID:  row.CategoryID,
			Category:    row.Category,
			Subcategory: row.Subcategory,
			Maintenance: row.Maintenance,
		})
	}

	return categories
}
