package models

import (
	"fmt"
	"time"
)

// CustomerDimension представляет измерение клиентов в хранилище
type CustomerDimension struct {
	CustomerKey    int    // суррогатный ключ
	CustomerID     int    // идентификатор в исходной системе
	CustomerNumber string // бизнес-ключ
	FirstName      string
	LastName       string
	Country        string
	MaritalStatus  string // 'Married', 'Single', 'Unknown'
	Gender         string // 'Female', 'Male', 'Unknown'
	BirthDate      *time.Time
	CreateDate     time.Time
}

// ProductDimension представляет измерение товаров в хранилище
// Интервал действия [StartDate, EndDate] описывает историю ревизий товара;
// у актуальной ревизии EndDate равен nil (открытый интервал)
type ProductDimension struct {
	ProductKey    int    // суррогатный ключ
	ProductID     int    // идентификатор в исходной системе
	ProductNumber string // производный ключ товара (остаток составного ключа)
	ProductName   string
	CategoryID    string // производный идентификатор категории
	Cost          float64
	ProductLine   string // 'Road', 'Mountain', 'Other sales', 'Touring', 'Unknown'
	StartDate     time.Time
	EndDate       *time.Time
}

// SalesFact представляет факт продажи в хранилище
// Инвариант после трансформации: Sales == Quantity * Price, когда обе части определены
type SalesFact struct {
	OrderNumber   string
	ProductNumber string
	CustomerID    int
	OrderDate     *time.Time
	ShipDate      *time.Time
	DueDate       *time.Time
	Sales         *float64
	Quantity      int
	Price         *float64
}

// MaintenanceCategory представляет строку справочника категорий обслуживания,
// копируемую в хранилище без изменений
type MaintenanceCategory struct {
	CategoryID  string
	Category    string
	Subcategory string
	Maintenance string
}

// TransformedData содержит трансформированные данные для загрузки в хранилище
type TransformedData struct {
	// Справочник
	Categories []MaintenanceCategory

	// Измерения
	Customers []CustomerDimension
	Products  []ProductDimension

	// Факты
	Sales []SalesFact
}

// TargetTable идентифицирует целевую таблицу хранилища парой (схема, имя)
type TargetTable struct {
	Schema string
	Name   string
}

// Qualified возвращает полное имя таблицы для SQL-запросов.
// Оба сегмента — константы уровня пакета, пользовательский ввод сюда не попадает
func (t TargetTable) Qualified() string {
	return fmt.Sprintf("`%s`.`%s`", t.Schema, t.Name)
}

// String возвращает читаемое имя цели для логов и диагностики
func (t TargetTable) String() string {
	return t.Schema + "." + t.Name
}

// Целевые таблицы хранилища. Объявлены константами уровня пакета:
// оркестратор и проверка работают только с этим фиксированным набором
var (
	TargetCategories = TargetTable{Schema: "sales_dwh", Name: "ref_maintenance_categories"}
	TargetCustomers  = TargetTable{Schema: "sales_dwh", Name: "dim_customers"}
	TargetProducts   = TargetTable{Schema: "sales_dwh", Name: "dim_products"}
	TargetSales      = TargetTable{Schema: "sales_dwh", Name: "fact_sales"}
)

// StepStatus описывает итог выполнения шага загрузки
type StepStatus string

const (
	StepStatusLoaded     StepStatus = "loaded"
	StepStatusFailed     StepStatus = "failed"
	StepStatusRolledBack StepStatus = "rolled_back"
)

// StepReport содержит диагностику одного шага загрузки
type StepReport struct {
	Step     int
	Target   TargetTable
	RowCount int
	Duration time.Duration
	Status   StepStatus
}

// BatchResult представляет итог загрузки одной партии —
// отчёт по шагам плюс общий результат фиксации
type BatchResult struct {
	Steps      []StepReport
	Committed  bool
	FailedStep *StepFailure
}
