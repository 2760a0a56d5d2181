package models

import (
	"time"
)

// CRMCustomerStaging представляет сырую запись клиента из CRM-выгрузки
type CRMCustomerStaging struct {
	CustomerID     int
	CustomerNumber string // бизнес-ключ (cst_key)
	FirstName      string
	LastName       string
	MaritalStatus  string // сырой код: 'S', 'M' и т.п.
	Gender         string // сырой код: 'F', 'M' и т.п.
	CreateDate     *time.Time
}

// CRMProductStaging представляет сырую запись товара из CRM-выгрузки
type CRMProductStaging struct {
	ProductID  int
	ProductKey string // составной бизнес-ключ: категория + номер товара
	Name       string
	Cost       *float64
	Line       string // сырой код линейки: 'R', 'M', 'S', 'T'
	StartDate  *time.Time
}

// CRMSalesStaging представляет сырую запись продажи из CRM-выгрузки
// Даты хранятся как 8-значные числовые токены в исходном виде
type CRMSalesStaging struct {
	OrderNumber string
	ProductKey  string
	CustomerID  int
	OrderDate   string
	ShipDate    string
	DueDate     string
	Sales       *float64
	Quantity    int
	Price       *float64
}

// ERPCustomerStaging представляет дополнительные данные клиента из ERP-выгрузки
type ERPCustomerStaging struct {
	CustomerNumber string // ключ клиента, совпадает с бизнес-ключом CRM
	BirthDate      *time.Time
	Gender         string
}

// ERPLocationStaging представляет страну клиента из ERP-выгрузки
type ERPLocationStaging struct {
	CustomerNumber string
	Country        string
}

// ERPCategoryStaging представляет строку справочника категорий обслуживания
type ERPCategoryStaging struct {
	CategoryID  string
	Category    string
	Subcategory string
	Maintenance string
}

// StagingBatch содержит данные, извлечённые из staging-базы за один запуск
type StagingBatch struct {
	Customers    []CRMCustomerStaging
	Products     []CRMProductStaging
	Sales        []CRMSalesStaging
	ERPCustomers []ERPCustomerStaging
	ERPLocations []ERPLocationStaging
	Categories   []ERPCategoryStaging
	ExtractedAt  time.Time
}
