package extractors

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Extractor координирует процесс извлечения staging-партии
type Extractor struct {
	db                 *sql.DB
	logger             *utils.ETLLogger
	customerExtractor  *CustomerExtractor
	productExtractor   *ProductExtractor
	salesExtractor     *SalesExtractor
	erpExtractor       *ERPExtractor
	referenceExtractor *ReferenceExtractor
}

// NewExtractor создает новый экземпляр Extractor
func NewExtractor(db *sql.DB, logger *utils.ETLLogger) *Extractor {
	return &Extractor{
		db:                 db,
		logger:             logger,
		customerExtractor:  NewCustomerExtractor(db, logger),
		productExtractor:   NewProductExtractor(db, logger),
		salesExtractor:     NewSalesExtractor(db, logger),
		erpExtractor:       NewERPExtractor(db, logger),
		referenceExtractor: NewReferenceExtractor(db, logger),
	}
}

// Extract извлекает полную staging-партию для одного запуска ETL.
// Каждый запуск читает таблицы целиком: пайплайн пакетный, без инкрементальности
func (e *Extractor) Extract() (*models.StagingBatch, error) {
	startTime := time.Now()
	e.logger.LogExtractStart()

	var batch models.StagingBatch
	var err error

	// Извлекаем клиентов CRM
	batch.Customers, err = e.customerExtractor.ExtractCustomers()
	if err != nil {
		e.logger.Error("Ошибка при извлечении клиентов: %v", err)
		return nil, fmt.Errorf("ошибка извлечения клиентов: %w", err)
	}

	// Извлекаем товары CRM
	batch.Products, err = e.productExtractor.ExtractProducts()
	if err != nil {
		e.logger.Error("Ошибка при извлечении товаров: %v", err)
		return nil, fmt.Errorf("ошибка извлечения товаров: %w", err)
	}

	// Извлекаем продажи CRM
	batch.Sales, err = e.salesExtractor.ExtractSales()
	if err != nil {
		e.logger.Error("Ошибка при извлечении продаж: %v", err)
		return nil, fmt.Errorf("ошибка извлечения продаж: %w", err)
	}

	// Извлекаем дополнительные данные клиентов из ERP
	batch.ERPCustomers, err = e.erpExtractor.ExtractERPCustomers()
	if err != nil {
		e.logger.Error("Ошибка при извлечении ERP-данных клиентов: %v", err)
		return nil, fmt.Errorf("ошибка извлечения ERP-данных клиентов: %w", err)
	}

	// Извлекаем страны клиентов из ERP
	batch.ERPLocations, err = e.erpExtractor.ExtractERPLocations()
	if err != nil {
		e.logger.Error("Ошибка при извлечении ERP-данных стран: %v", err)
		return nil, fmt.Errorf("ошибка извлечения ERP-данных стран: %w", err)
	}

	// Извлекаем справочник категорий обслуживания
	batch.Categories, err = e.referenceExtractor.ExtractCategories()
	if err != nil {
		e.logger.Error("Ошибка при извлечении справочника категорий: %v", err)
		return nil, fmt.Errorf("ошибка извлечения справочника категорий: %w", err)
	}

	batch.ExtractedAt = time.Now()

	e.logger.LogExtractComplete(
		len(batch.Customers),
		len(batch.Products),
		len(batch.Sales),
		len(batch.Categories),
		time.Since(startTime),
	)

	return &batch, nil
}
