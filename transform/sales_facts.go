package transform

import (
	"math"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// SalesFactsProcessor отвечает за преобразование данных продаж
type SalesFactsProcessor struct {
	logger *utils.ETLLogger
}

// NewSalesFactsProcessor создает новый экземпляр SalesFactsProcessor
func NewSalesFactsProcessor(logger *utils.ETLLogger) *SalesFactsProcessor {
	return &SalesFactsProcessor{
		logger: logger,
	}
}

// ProcessSalesFacts обрабатывает staging-записи продаж и возвращает факты продаж.
// Аномалии на уровне строки (битые токены дат, расхождения сумм) исправляются
// локально правилами согласования и никогда не приводят к ошибке
func (p *SalesFactsProcessor) ProcessSalesFacts(sales []models.CRMSalesStaging) ([]models.SalesFact, error) {
	p.logger.Debug("Обработка фактов продаж...")

	if len(sales) == 0 {
		p.logger.Debug("Нет данных продаж для обработки")
		return []models.SalesFact{}, nil
	}

	transformedSales := make([]models.SalesFact, 0, len(sales))

	for _, sale := range sales {
		amount, price := reconcileAmounts(sale.Sales, sale.Quantity, sale.Price)

		transformedSales = append(transformedSales, models.SalesFact{
			OrderNumber:   sale.OrderNumber,
			ProductNumber: sale.ProductKey,
			CustomerID:    sale.CustomerID,
			OrderDate:     ParseDateToken(sale.OrderDate),
			ShipDate:      ParseDateToken(sale.ShipDate),
			DueDate:       ParseDateToken(sale.DueDate),
			Sales:         amount,
			Quantity:      sale.Quantity,
			Price:         price,
		})
	}

	p.logger.Info("Обработаны факты продаж. Трансформировано записей: %d", len(transformedSales))
	return transformedSales, nil
}

// reconcileAmounts согласует сумму продажи и цену с количеством.
// Порядок фиксирован для воспроизводимости: сначала исправляется сумма
// по ИСХОДНЫМ количеству и цене, затем цена — по уже исправленной сумме
func reconcileAmounts(sales *float64, quantity int, price *float64) (*float64, *float64) {
	qty := float64(quantity)

	// Шаг 1: исправление суммы. Сумма пересчитывается, когда она отсутствует,
	// неположительна или расходится с количеством * |цена|
	fixedSales := sales
	if sales == nil || *sales <= 0 || (price != nil && *sales != qty*math.Abs(*price)) {
		if price != nil {
			recomputed := qty * math.Abs(*price)
			fixedSales = &recomputed
		} else {
			// Пересчитать не из чего: сумма остается неопределенной
			fixedSales = nil
		}
	}

	// Шаг 2: исправление цены по исправленной сумме. Цена пересчитывается,
	// когда она отсутствует, неположительна или расходится с сумма / количество.
	// Деление на ноль никогда не распространяется: результат становится nil
	fixedPrice := price
	if price == nil || *price <= 0 || priceDisagrees(fixedSales, quantity, *price) {
		if quantity != 0 && fixedSales != nil {
			recomputed := *fixedSales / qty
			fixedPrice = &recomputed
		} else {
			fixedPrice = nil
		}
	}

	return fixedSales, fixedPrice
}

// priceDisagrees проверяет расхождение цены с отношением сумма / количество.
// Нулевое количество делает отношение неопределенным — цена считается расходящейся;
// неопределенная сумма опровергнуть цену не может
func priceDisagrees(sales *float64, quantity int, price float64) bool {
	if quantity == 0 {
		return true
	}
	if sales == nil {
		return false
	}
	return *sales/float64(quantity) != price
}
