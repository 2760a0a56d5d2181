package transform

import (
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Transformer координирует процесс преобразования staging-данных в модель хранилища
type Transformer struct {
	logger             *utils.ETLLogger
	customerProcessor  *CustomerDimensionProcessor
	productProcessor   *ProductDimensionProcessor
	salesFactProcessor *SalesFactsProcessor
}

// NewTransformer создает новый экземпляр Transformer
func NewTransformer(logger *utils.ETLLogger) *Transformer {
	return &Transformer{
		logger:             logger,
		customerProcessor:  NewCustomerDimensionProcessor(logger),
		productProcessor:   NewProductDimensionProcessor(logger),
		salesFactProcessor: NewSalesFactsProcessor(logger),
	}
}

// Transform выполняет полный процесс преобразования staging-партии.
// Порядок фиксирован: сначала справочник категорий, затем измерения,
// затем факты — трансформация товаров фильтруется по справочнику
func (t *Transformer) Transform(batch *models.StagingBatch) (*models.TransformedData, error) {
	startTime := time.Now()
	t.logger.Info("Начало фазы Transform (Преобразование данных)")

	transformedData := &models.TransformedData{}

	// 1. Справочник категорий обслуживания копируется без изменений
	// и одновременно превращается в множество для фильтрации товаров
	t.logger.Info("Копирование справочника категорий...")
	transformedData.Categories = ProcessCategories(batch.Categories)
	categorySet := NewCategorySet(transformedData.Categories)

	// 2. Преобразование измерения клиентов
	t.logger.Info("Преобразование данных клиентов...")
	customers, err := t.customerProcessor.ProcessCustomerDimension(batch.Customers, batch.ERPCustomers, batch.ERPLocations)
	if err != nil {
		t.logger.Error("Ошибка при преобразовании данных клиентов: %v", err)
		return nil, fmt.Errorf("ошибка при преобразовании данных клиентов: %w", err)
	}
	transformedData.Customers = customers

	// 3. Преобразование измерения товаров (с фильтром по справочнику)
	t.logger.Info("Преобразование данных товаров...")
	products, err := t.productProcessor.ProcessProductDimension(batch.Products, categorySet)
	if err != nil {
		t.logger.Error("Ошибка при преобразовании данных товаров: %v", err)
		return nil, fmt.Errorf("ошибка при преобразовании данных товаров: %w", err)
	}
	transformedData.Products = products

	// 4. Преобразование фактов продаж
	t.logger.Info("Преобразование данных продаж...")
	sales, err := t.salesFactProcessor.ProcessSalesFacts(batch.Sales)
	if err != nil {
		t.logger.Error("Ошибка при преобразовании данных продаж: %v", err)
		return nil, fmt.Errorf("ошибка при преобразовании данных продаж: %w", err)
	}
	transformedData.Sales = sales

	duration := time.Since(startTime)
	t.logger.Info("Фаза Transform завершена. Длительность: %v", duration)

	return transformedData, nil
}
