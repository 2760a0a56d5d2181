package transform

import (
	"testing"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductProcessor() *ProductDimensionProcessor {
	return NewProductDimensionProcessor(utils.NewDiscardLogger())
}

func categorySetOf(ids ...string) *CategorySet {
	categories := make([]models.MaintenanceCategory, 0, len(ids))
	for _, id := range ids {
		categories = append(categories, models.MaintenanceCategory{CategoryID: id})
	}
	return NewCategorySet(categories)
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestSplitProductKey(t *testing.T) {
	tests := []struct {
		key          string
		wantCategory string
		wantNumber   string
	}{
		{"CO-RF-FR-R92B-58", "CO_RF", "FR-R92B-58"},
		{"AC-HE-HL-U509", "AC_HE", "HL-U509"},
		{"AC-HE", "AC_HE", ""},
		{"ABC", "ABC", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		categoryID, productNumber := splitProductKey(tt.key)
		assert.Equal(t, tt.wantCategory, categoryID, "ключ %q", tt.key)
		assert.Equal(t, tt.wantNumber, productNumber, "ключ %q", tt.key)
	}
}

func TestProcessProductDimension_ReferentialFilter(t *testing.T) {
	staged := []models.CRMProductStaging{
		{ProductID: 1, ProductKey: "CO-RF-FR-R92B-58", StartDate: date(2011, 7, 1)},
		// Категория AC_HE отсутствует в справочнике: строка молча отбрасывается
		{ProductID: 2, ProductKey: "AC-HE-HL-U509", StartDate: date(2011, 7, 1)},
	}

	result, err := newProductProcessor().ProcessProductDimension(staged, categorySetOf("CO_RF"))
	require.NoError(t, err)
	require.Len(t, result, 1)

	assert.Equal(t, "FR-R92B-58", result[0].ProductNumber)
	assert.Equal(t, "CO_RF", result[0].CategoryID)
}

func TestProcessProductDimension_FilterCanEmptyOutput(t *testing.T) {
	// Пустой результат фильтра — не ошибка
	staged := []models.CRMProductStaging{
		{ProductID: 1, ProductKey: "AC-HE-HL-U509", StartDate: date(2011, 7, 1)},
	}

	result, err := newProductProcessor().ProcessProductDimension(staged, categorySetOf("CO_RF"))
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestProcessProductDimension_NilReferenceSetFails(t *testing.T) {
	_, err := newProductProcessor().ProcessProductDimension(nil, nil)
	require.Error(t, err)

	var transformErr *models.TransformError
	require.ErrorAs(t, err, &transformErr)
	assert.Equal(t, "dim_products", transformErr.Entity)
}

func TestProcessProductDimension_CostAndLineNormalization(t *testing.T) {
	staged := []models.CRMProductStaging{
		{ProductID: 1, ProductKey: "CO-RF-FR-1", Cost: nil, Line: "R", StartDate: date(2011, 7, 1)},
		{ProductID: 2, ProductKey: "CO-RF-FR-2", Cost: floatPtr(1059.31), Line: " m ", StartDate: date(2011, 7, 1)},
		{ProductID: 3, ProductKey: "CO-RF-FR-3", Cost: floatPtr(12), Line: "S", StartDate: date(2011, 7, 1)},
		{ProductID: 4, ProductKey: "CO-RF-FR-4", Cost: floatPtr(7), Line: "T", StartDate: date(2011, 7, 1)},
		{ProductID: 5, ProductKey: "CO-RF-FR-5", Cost: floatPtr(7), Line: "Q", StartDate: date(2011, 7, 1)},
	}

	result, err := newProductProcessor().ProcessProductDimension(staged, categorySetOf("CO_RF"))
	require.NoError(t, err)
	require.Len(t, result, 5)

	byNumber := make(map[string]models.ProductDimension)
	for _, product := range result {
		byNumber[product.ProductNumber] = product
	}

	assert.Equal(t, 0.0, byNumber["FR-1"].Cost)
	assert.Equal(t, "Road", byNumber["FR-1"].ProductLine)
	assert.Equal(t, 1059.31, byNumber["FR-2"].Cost)
	assert.Equal(t, "Mountain", byNumber["FR-2"].ProductLine)
	assert.Equal(t, "Other sales", byNumber["FR-3"].ProductLine)
	assert.Equal(t, "Touring", byNumber["FR-4"].ProductLine)
	assert.Equal(t, "Unknown", byNumber["FR-5"].ProductLine)
}

func TestProcessProductDimension_ValidityIntervalsContiguous(t *testing.T) {
	// Три ревизии одного товара: дата окончания каждой равна дате начала
	// следующей минус один день, последняя ревизия открыта
	staged := []models.CRMProductStaging{
		{ProductID: 1, ProductKey: "CO-RF-FR-R92B-58", StartDate: date(2012, 7, 1)},
		{ProductID: 2, ProductKey: "CO-RF-FR-R92B-58", StartDate: date(2011, 7, 1)},
		{ProductID: 3, ProductKey: "CO-RF-FR-R92B-58", StartDate: date(2013, 7, 1)},
	}

	result, err := newProductProcessor().ProcessProductDimension(staged, categorySetOf("CO_RF"))
	require.NoError(t, err)
	require.Len(t, result, 3)

	// Результат отсортирован по номеру товара и дате начала
	for i := 0; i < len(result)-1; i++ {
		require.NotNil(t, result[i].EndDate, "ревизия %d должна быть закрыта", i)
		expectedEnd := result[i+1].StartDate.AddDate(0, 0, -1)
		assert.Equal(t, expectedEnd, *result[i].EndDate)
	}
	assert.Nil(t, result[len(result)-1].EndDate, "последняя ревизия должна быть открыта")

	assert.Equal(t, time.Date(2011, 7, 1, 0, 0, 0, 0, time.UTC), result[0].StartDate)
	assert.Equal(t, time.Date(2012, 6, 30, 0, 0, 0, 0, time.UTC), *result[0].EndDate)
}

func TestProcessProductDimension_IntervalsIndependentPerProduct(t *testing.T) {
	staged := []models.CRMProductStaging{
		{ProductID: 1, ProductKey: "CO-RF-FR-A", StartDate: date(2011, 1, 1)},
		{ProductID: 2, ProductKey: "CO-RF-FR-B", StartDate: date(2012, 1, 1)},
		{ProductID: 3, ProductKey: "CO-RF-FR-A", StartDate: date(2013, 1, 1)},
	}

	result, err := newProductProcessor().ProcessProductDimension(staged, categorySetOf("CO_RF"))
	require.NoError(t, err)
	require.Len(t, result, 3)

	byKey := make(map[string][]models.ProductDimension)
	for _, product := range result {
		byKey[product.ProductNumber] = append(byKey[product.ProductNumber], product)
	}

	// Единственная ревизия другого товара всегда открыта
	require.Len(t, byKey["FR-B"], 1)
	assert.Nil(t, byKey["FR-B"][0].EndDate)

	require.Len(t, byKey["FR-A"], 2)
	require.NotNil(t, byKey["FR-A"][0].EndDate)
	assert.Equal(t, time.Date(2012, 12, 31, 0, 0, 0, 0, time.UTC), *byKey["FR-A"][0].EndDate)
	assert.Nil(t, byKey["FR-A"][1].EndDate)
}

func TestProcessProductDimension_SurrogateKeysSequential(t *testing.T) {
	staged := []models.CRMProductStaging{
		{ProductID: 5, ProductKey: "CO-RF-FR-B", StartDate: date(2011, 1, 1)},
		{ProductID: 6, ProductKey: "CO-RF-FR-A", StartDate: date(2011, 1, 1)},
	}

	result, err := newProductProcessor().ProcessProductDimension(staged, categorySetOf("CO_RF"))
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, 1, result[0].ProductKey)
	assert.Equal(t, "FR-A", result[0].ProductNumber)
	assert.Equal(t, 2, result[1].ProductKey)
	assert.Equal(t, "FR-B", result[1].ProductNumber)
}

func TestNewCategorySet(t *testing.T) {
	set := categorySetOf("CO_RF", "AC_HE")

	assert.Equal(t, 2, set.Size())
	assert.True(t, set.Contains("CO_RF"))
	assert.False(t, set.Contains("BK_MT"))
}

func TestProcessCategories_CopiesThrough(t *testing.T) {
	rows := []models.ERPCategoryStaging{
		{CategoryID: "AC_HE", Category: "Accessories", Subcategory: "Helmets", Maintenance: "No"},
	}

	categories := ProcessCategories(rows)
	require.Len(t, categories, 1)

	assert.Equal(t, "AC_HE", categories[0].CategoryID)
	assert.Equal(t, "Accessories", categories[0].Category)
	assert.Equal(t, "Helmets", categories[0].Subcategory)
	assert.Equal(t, "No", categories[0].Maintenance)
}
