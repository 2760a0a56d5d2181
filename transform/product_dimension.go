package transform

import (
	"sort"
	"strings"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Таблица соответствий для нормализации кода линейки товара
var productLineMap = map[string]string{
	"R": "Road",
	"M": "Mountain",
	"S": "Other sales",
	"T": "Touring",
}

// Ширина сегмента категории в составном бизнес-ключе товара
// и позиция, с которой начинается сегмент номера товара
const (
	categorySegmentWidth = 5
	productSegmentStart  = 7
)

// ProductDimensionProcessor отвечает за преобразование данных товаров
type ProductDimensionProcessor struct {
	logger *utils.ETLLogger
}

// NewProductDimensionProcessor создает новый экземпляр ProductDimensionProcessor
func NewProductDimensionProcessor(logger *utils.ETLLogger) *ProductDimensionProcessor {
	return &ProductDimensionProcessor{
		logger: logger,
	}
}

// ProcessProductDimension обрабатывает staging-записи товаров и возвращает измерение товаров.
// Товары, чья производная категория отсутствует в справочнике обслуживания,
// молча отбрасываются — это фильтр по принадлежности, а не соединение с ошибкой
func (p *ProductDimensionProcessor) ProcessProductDimension(
	products []models.CRMProductStaging,
	categories *CategorySet,
) ([]models.ProductDimension, error) {
	p.logger.Debug("Обработка измерения товаров...")

	if categories == nil {
		return nil, &models.TransformError{
			Entity:  "dim_products",
			Message: "справочник категорий обслуживания не загружен",
		}
	}

	if len(products) == 0 {
		p.logger.Debug("Нет данных товаров для обработки")
		return []models.ProductDimension{}, nil
	}

	transformedProducts := make([]models.ProductDimension, 0, len(products))
	dropped := 0

	for _, product := range products {
		categoryID, productNumber := splitProductKey(product.ProductKey)

		// Фильтр по справочнику: не-члены отбрасываются без ошибки
		if !categories.Contains(categoryID) {
			dropped++
			continue
		}

		// Отсутствующая себестоимость приводится к нулю
		cost := 0.0
		if product.Cost != nil {
			cost = *product.Cost
		}

		var startDate time.Time
		if product.StartDate != nil {
			startDate = *product.StartDate
		}

		transformedProducts = append(transformedProducts, models.ProductDimension{
			ProductID:     product.ProductID,
			ProductNumber: productNumber,
			ProductName:   strings.TrimSpace(product.Name),
			CategoryID:    categoryID,
			Cost:          cost,
			ProductLine:   mapCode(productLineMap, product.Line),
			StartDate:     startDate,
		})
	}

	deriveValidityIntervals(transformedProducts)

	// Суррогатные ключи назначаются по детерминированному порядку:
	// производный ключ товара, затем дата начала действия ревизии
	sort.SliceStable(transformedProducts, func(i, j int) bool {
		if transformedProducts[i].ProductNumber != transformedProducts[j].ProductNumber {
			return transformedProducts[i].ProductNumber < transformedProducts[j].ProductNumber
		}
		return transformedProducts[i].StartDate.Before(transformedProducts[j].StartDate)
	})
	for i := range transformedProducts {
		transformedProducts[i].ProductKey = i + 1
	}

	p.logger.Info("Обработано измерение товаров. Трансформировано записей: %d (отфильтровано по справочнику: %d)",
		len(transformedProducts), dropped)
	return transformedProducts, nil
}

// splitProductKey разрезает составной бизнес-ключ фиксированными срезами:
// первые пять символов — идентификатор категории (разделители '-' приводятся к '_'),
// начиная с седьмого символа — номер товара
func splitProductKey(key string) (categoryID, productNumber string) {
	key = strings.TrimSpace(key)

	if len(key) <= categorySegmentWidth {
		return strings.ReplaceAll(key, "-", "_"), ""
	}

	categoryID = strings.ReplaceAll(key[:categorySegmentWidth], "-", "_")

	if len(key) >= productSegmentStart {
		productNumber = key[productSegmentStart-1:]
	}

	return categoryID, productNumber
}

// deriveValidityIntervals выставляет интервалы действия ревизий товара.
// Для каждой группы ревизий одного номера товара, отсортированной по дате начала,
// дата окончания ревизии равна дате начала следующей минус один день;
// последняя ревизия остается открытой (EndDate == nil)
func deriveValidityIntervals(products []models.ProductDimension) {
	// Группируем индексы ревизий по номеру товара
	revisions := make(map[string][]int)
	for i, product := range products {
		revisions[product.ProductNumber] = append(revisions[product.ProductNumber], i)
	}

	for _, indexes := range revisions {
		// Сортировка ревизий по дате начала; стабильная,
		// чтобы равные даты сохраняли порядок выгрузки
		sort.SliceStable(indexes, func(a, b int) bool {
			return products[indexes[a]].StartDate.Before(products[indexes[b]].StartDate)
		})

		for pos := 0; pos < len(indexes)-1; pos++ {
			endDate := products[indexes[pos+1]].StartDate.AddDate(0, 0, -1)
			products[indexes[pos]].EndDate = &endDate
		}
		products[indexes[len(indexes)-1]].EndDate = nil
	}
}
