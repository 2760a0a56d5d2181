package transform

import (
	"sort"
	"strings"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Таблицы соответствий для нормализации категориальных кодов клиента.
// Неизвестные и пустые коды всегда отображаются в 'Unknown'
var (
	maritalStatusMap = map[string]string{
		"S": "Single",
		"M": "Married",
	}

	genderMap = map[string]string{
		"F":      "Female",
		"FEMALE": "Female",
		"M":      "Male",
		"MALE":   "Male",
	}

	countryMap = map[string]string{
		"DE":            "Germany",
		"US":            "United States",
		"USA":           "United States",
		"UNITED STATES": "United States",
	}
)

const unknownValue = "Unknown"

// CustomerDimensionProcessor отвечает за преобразование данных клиентов
type CustomerDimensionProcessor struct {
	logger *utils.ETLLogger
}

// NewCustomerDimensionProcessor создает новый экземпляр CustomerDimensionProcessor
func NewCustomerDimensionProcessor(logger *utils.ETLLogger) *CustomerDimensionProcessor {
	return &CustomerDimensionProcessor{
		logger: logger,
	}
}

// ProcessCustomerDimension обрабатывает staging-записи клиентов и возвращает измерение клиентов.
// Дубликаты по бизнес-ключу схлопываются: побеждает запись с максимальной датой создания,
// при равных датах — запись, пришедшая позже по порядку выгрузки
func (p *CustomerDimensionProcessor) ProcessCustomerDimension(
	customers []models.CRMCustomerStaging,
	erpCustomers []models.ERPCustomerStaging,
	erpLocations []models.ERPLocationStaging,
) ([]models.CustomerDimension, error) {
	p.logger.Debug("Обработка измерения клиентов...")

	if len(customers) == 0 {
		p.logger.Debug("Нет данных клиентов для обработки")
		return []models.CustomerDimension{}, nil
	}

	// Группируем записи по бизнес-ключу и выбираем победителя в каждой группе
	winners := make(map[string]models.CRMCustomerStaging)
	for _, customer := range customers {
		current, exists := winners[customer.CustomerNumber]
		if !exists || supersedes(customer, current) {
			winners[customer.CustomerNumber] = customer
		}
	}

	// Подготавливаем карты обогащения из ERP-выгрузок
	birthDates := make(map[string]*time.Time, len(erpCustomers))
	erpGenders := make(map[string]string, len(erpCustomers))
	for _, erpCustomer := range erpCustomers {
		birthDates[erpCustomer.CustomerNumber] = erpCustomer.BirthDate
		erpGenders[erpCustomer.CustomerNumber] = erpCustomer.Gender
	}

	countries := make(map[string]string, len(erpLocations))
	for _, location := range erpLocations {
		countries[location.CustomerNumber] = location.Country
	}

	now := time.Now()

	// Собираем победителей и сортируем по исходному идентификатору,
	// чтобы суррогатные ключи назначались детерминированно
	deduplicated := make([]models.CRMCustomerStaging, 0, len(winners))
	for _, winner := range winners {
		deduplicated = append(deduplicated, winner)
	}
	sort.Slice(deduplicated, func(i, j int) bool {
		return deduplicated[i].CustomerID < deduplicated[j].CustomerID
	})

	transformedCustomers := make([]models.CustomerDimension, 0, len(deduplicated))
	for i, customer := range deduplicated {
		// Нормализуем пол: значение CRM приоритетно,
		// ERP используется только когда CRM не дал ответа
		gender := mapCode(genderMap, customer.Gender)
		if gender == unknownValue {
			gender = mapCode(genderMap, erpGenders[customer.CustomerNumber])
		}

		var createDate time.Time
		if customer.CreateDate != nil {
			createDate = *customer.CreateDate
		}

		dimension := models.CustomerDimension{
			CustomerKey:    i + 1,
			CustomerID:     customer.CustomerID,
			CustomerNumber: customer.CustomerNumber,
			FirstName:      strings.TrimSpace(customer.FirstName),
			LastName:       strings.TrimSpace(customer.LastName),
			Country:        mapCode(countryMap, countries[customer.CustomerNumber]),
			MaritalStatus:  mapCode(maritalStatusMap, customer.MaritalStatus),
			Gender:         gender,
			BirthDate:      SanitizeBirthDate(birthDates[customer.CustomerNumber], now),
			CreateDate:     createDate,
		}

		transformedCustomers = append(transformedCustomers, dimension)
	}

	p.logger.Info("Обработано измерение клиентов. Трансформировано записей: %d (дубликатов схлопнуто: %d)",
		len(transformedCustomers), len(customers)-len(transformedCustomers))
	return transformedCustomers, nil
}

// supersedes определяет, вытесняет ли кандидат текущего победителя группы.
// Запись без даты создания проигрывает любой датированной;
// при равных датах побеждает более поздняя по порядку выгрузки (кандидат)
func supersedes(candidate, current models.CRMCustomerStaging) bool {
	switch {
	case candidate.CreateDate == nil && current.CreateDate == nil:
		return true
	case candidate.CreateDate == nil:
		return false
	case current.CreateDate == nil:
		return true
	default:
		return !candidate.CreateDate.Before(*current.CreateDate)
	}
}

// mapCode ищет нормализованный код в таблице соответствий;
// неизвестные и пустые коды отображаются в 'Unknown', никогда в nil или ошибку
func mapCode(table map[string]string, raw string) string {
	if mapped, exists := table[normalizeCode(raw)]; exists {
		return mapped
	}
	return unknownValue
}
