package load

import (
	"github.com/LilVoxy/coursework_dwh/models"
)

// Warehouse предоставляет оркестратору доступ к целевому хранилищу
type Warehouse interface {
	// BeginBatch открывает одну атомарную партию загрузки
	BeginBatch() (BatchTx, error)
}

// BatchTx представляет одну атомарную партию загрузки: все операции
// выполняются в рамках одной транзакции и становятся видимыми
// только после Commit
type BatchTx interface {
	// TargetExists проверяет существование целевой таблицы
	TargetExists(target models.TargetTable) (bool, error)

	// ClearTarget удаляет текущее содержимое целевой таблицы
	ClearTarget(target models.TargetTable) error

	// InsertCategories загружает справочник категорий обслуживания
	InsertCategories(categories []models.MaintenanceCategory) (int, error)

	// InsertCustomers загружает измерение клиентов
	InsertCustomers(customers []models.CustomerDimension) (int, error)

	// InsertProducts загружает измерение товаров
	InsertProducts(products []models.ProductDimension) (int, error)

	// InsertSales загружает факты продаж
	InsertSales(sales []models.SalesFact) (int, error)

	// Commit фиксирует партию целиком
	Commit() error

	// Rollback откатывает партию целиком
	Rollback() error
}

// LoadStep описывает один шаг загрузки: целевую таблицу и функцию записи.
// Номер шага выводится из позиции в списке, внешнего изменяемого счетчика нет
type LoadStep struct {
	Target models.TargetTable
	Run    func(tx BatchTx) (int, error)
}

// NewBatchSteps строит фиксированный порядок шагов загрузки для партии:
// справочник, измерения, затем факты
func NewBatchSteps(data *models.TransformedData) []LoadStep {
	return []LoadStep{
		{
			Target: models.TargetCategories,
			Run: func(tx BatchTx) (int, error) {
				return tx.InsertCategories(data.Categories)
			},
		},
		{
			Target: models.TargetCustomers,
			Run: func(tx BatchTx) (int, error) {
				return tx.InsertCustomers(data.Customers)
			},
		},
		{
			Target: models.TargetProducts,
			Run: func(tx BatchTx) (int, error) {
				return tx.InsertProducts(data.Products)
			},
		},
		{
			Target: models.TargetSales,
			Run: func(tx BatchTx) (int, error) {
				return tx.InsertSales(data.Sales)
			},
		},
	}
}

// ExpectedTargets возвращает набор целей, проверяемых после фиксации партии
func ExpectedTargets() []models.TargetTable {
	return []models.TargetTable{
		models.TargetCategories,
		models.TargetCustomers,
		models.TargetProducts,
		models.TargetSales,
	}
}
