package load

import (
	"errors"
	"testing"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBatchTx — ручная подмена партии загрузки для проверки оркестратора
type fakeBatchTx struct {
	missingTargets map[string]bool
	existsErr      map[string]error
	clearErr       map[string]error
	insertErr      map[string]error
	rowCounts      map[string]int

	clearedTargets []string
	committed      bool
	rolledBack     bool
}

func newFakeBatchTx() *fakeBatchTx {
	return &fakeBatchTx{
		missingTargets: map[string]bool{},
		existsErr:      map[string]error{},
		clearErr:       map[string]error{},
		insertErr:      map[string]error{},
		rowCounts:      map[string]int{},
	}
}

func (tx *fakeBatchTx) TargetExists(target models.TargetTable) (bool, error) {
	if err := tx.existsErr[target.Name]; err != nil {
		return false, err
	}
	return !tx.missingTargets[target.Name], nil
}

func (tx *fakeBatchTx) ClearTarget(target models.TargetTable) error {
	if err := tx.clearErr[target.Name]; err != nil {
		return err
	}
	tx.clearedTargets = append(tx.clearedTargets, target.Name)
	return nil
}

func (tx *fakeBatchTx) insert(target models.TargetTable) (int, error) {
	if err := tx.insertErr[target.Name]; err != nil {
		return 0, err
	}
	return tx.rowCounts[target.Name], nil
}

func (tx *fakeBatchTx) InsertCategories([]models.MaintenanceCategory) (int, error) {
	return tx.insert(models.TargetCategories)
}

func (tx *fakeBatchTx) InsertCustomers([]models.CustomerDimension) (int, error) {
	return tx.insert(models.TargetCustomers)
}

func (tx *fakeBatchTx) InsertProducts([]models.ProductDimension) (int, error) {
	return tx.insert(models.TargetProducts)
}

func (tx *fakeBatchTx) InsertSales([]models.SalesFact) (int, error) {
	return tx.insert(models.TargetSales)
}

func (tx *fakeBatchTx) Commit() error {
	tx.committed = true
	return nil
}

func (tx *fakeBatchTx) Rollback() error {
	tx.rolledBack = true
	return nil
}

// fakeWarehouse выдает заранее подготовленную партию
type fakeWarehouse struct {
	tx       *fakeBatchTx
	beginErr error
}

func (w *fakeWarehouse) BeginBatch() (BatchTx, error) {
	if w.beginErr != nil {
		return nil, w.beginErr
	}
	return w.tx, nil
}

// failingCommitTx проваливает фиксацию партии
type failingCommitTx struct {
	*fakeBatchTx
	commitErr error
}

func (tx *failingCommitTx) Commit() error {
	return tx.commitErr
}

func newManager(tx *fakeBatchTx) (*LoadManager, *fakeWarehouse) {
	warehouse := &fakeWarehouse{tx: tx}
	return NewLoadManager(warehouse, utils.NewDiscardLogger()), warehouse
}

func sampleData() *models.TransformedData {
	return &models.TransformedData{
		Categories: []models.MaintenanceCategory{{CategoryID: "CO_RF"}},
		Customers:  []models.CustomerDimension{{CustomerKey: 1}},
		Products:   []models.ProductDimension{{ProductKey: 1}},
		Sales:      []models.SalesFact{{OrderNumber: "SO1"}},
	}
}

func TestRunBatch_Success(t *testing.T) {
	tx := newFakeBatchTx()
	tx.rowCounts[models.TargetCategories.Name] = 37
	tx.rowCounts[models.TargetCustomers.Name] = 18484
	tx.rowCounts[models.TargetProducts.Name] = 295
	tx.rowCounts[models.TargetSales.Name] = 60398

	manager, _ := newManager(tx)
	result, err := manager.RunBatch(NewBatchSteps(sampleData()))

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Committed)
	assert.Nil(t, result.FailedStep)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)

	require.Len(t, result.Steps, 4)
	for i, report := range result.Steps {
		assert.Equal(t, i+1, report.Step)
		assert.Equal(t, models.StepStatusLoaded, report.Status)
	}
	assert.Equal(t, 37, result.Steps[0].RowCount)
	assert.Equal(t, models.TargetCategories, result.Steps[0].Target)
	assert.Equal(t, 60398, result.Steps[3].RowCount)
	assert.Equal(t, models.TargetSales, result.Steps[3].Target)

	// Каждая цель очищена до записи
	assert.Equal(t, []string{
		models.TargetCategories.Name,
		models.TargetCustomers.Name,
		models.TargetProducts.Name,
		models.TargetSales.Name,
	}, tx.clearedTargets)
}

func TestRunBatch_MissingTargetRollsBackEverything(t *testing.T) {
	tx := newFakeBatchTx()
	tx.missingTargets[models.TargetProducts.Name] = true

	manager, _ := newManager(tx)
	result, err := manager.RunBatch(NewBatchSteps(sampleData()))

	require.Error(t, err)
	var missing *models.MissingTargetError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, 3, missing.Step)
	assert.Equal(t, models.TargetProducts, missing.Target)

	require.NotNil(t, result)
	assert.False(t, result.Committed)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)

	require.NotNil(t, result.FailedStep)
	assert.Equal(t, 3, result.FailedStep.Step)
	assert.Equal(t, models.TargetProducts, result.FailedStep.Target)

	// Выполненные до провала шаги помечены откаченными
	require.Len(t, result.Steps, 3)
	assert.Equal(t, models.StepStatusRolledBack, result.Steps[0].Status)
	assert.Equal(t, models.StepStatusRolledBack, result.Steps[1].Status)
	assert.Equal(t, models.StepStatusFailed, result.Steps[2].Status)
}

func TestRunBatch_InsertErrorRollsBack(t *testing.T) {
	insertErr := errors.New("обрыв соединения")
	tx := newFakeBatchTx()
	tx.insertErr[models.TargetSales.Name] = insertErr

	manager, _ := newManager(tx)
	result, err := manager.RunBatch(NewBatchSteps(sampleData()))

	require.Error(t, err)
	assert.ErrorIs(t, err, insertErr)

	assert.False(t, result.Committed)
	assert.True(t, tx.rolledBack)
	require.NotNil(t, result.FailedStep)
	assert.Equal(t, 4, result.FailedStep.Step)
	assert.Equal(t, models.TargetSales, result.FailedStep.Target)
}

func TestRunBatch_TargetExistsErrorRollsBack(t *testing.T) {
	checkErr := errors.New("information_schema недоступна")
	tx := newFakeBatchTx()
	tx.existsErr[models.TargetCategories.Name] = checkErr

	manager, _ := newManager(tx)
	result, err := manager.RunBatch(NewBatchSteps(sampleData()))

	require.Error(t, err)
	assert.ErrorIs(t, err, checkErr)
	assert.False(t, result.Committed)
	assert.True(t, tx.rolledBack)
	require.NotNil(t, result.FailedStep)
	assert.Equal(t, 1, result.FailedStep.Step)
}

func TestRunBatch_BeginFailure(t *testing.T) {
	beginErr := errors.New("хранилище недоступно")
	warehouse := &fakeWarehouse{beginErr: beginErr}
	manager := NewLoadManager(warehouse, utils.NewDiscardLogger())

	result, err := manager.RunBatch(NewBatchSteps(sampleData()))

	require.Error(t, err)
	assert.ErrorIs(t, err, beginErr)
	assert.False(t, result.Committed)
	require.NotNil(t, result.FailedStep)
	assert.Equal(t, 0, result.FailedStep.Step)
	assert.Empty(t, result.Steps)
}

func TestRunBatch_CommitFailureRollsBack(t *testing.T) {
	commitErr := errors.New("фиксация отклонена")
	inner := newFakeBatchTx()
	tx := &failingCommitTx{fakeBatchTx: inner, commitErr: commitErr}

	manager := NewLoadManager(warehouseFunc(func() (BatchTx, error) { return tx, nil }), utils.NewDiscardLogger())
	steps := NewBatchSteps(sampleData())
	result, err := manager.RunBatch(steps)

	require.Error(t, err)
	assert.ErrorIs(t, err, commitErr)
	assert.False(t, result.Committed)
	assert.True(t, inner.rolledBack)
	require.NotNil(t, result.FailedStep)
	assert.Equal(t, len(steps), result.FailedStep.Step)

	// Все шаги партии помечены откаченными
	require.Len(t, result.Steps, len(steps))
	for _, report := range result.Steps {
		assert.Equal(t, models.StepStatusRolledBack, report.Status)
	}
}

// warehouseFunc адаптирует функцию к интерфейсу Warehouse
type warehouseFunc func() (BatchTx, error)

func (f warehouseFunc) BeginBatch() (BatchTx, error) { return f() }

func TestRunBatch_EmptyEntityStillCommits(t *testing.T) {
	tx := newFakeBatchTx()

	manager, _ := newManager(tx)
	result, err := manager.RunBatch(NewBatchSteps(&models.TransformedData{}))

	require.NoError(t, err)
	assert.True(t, result.Committed)
	require.Len(t, result.Steps, 4)
	for _, report := range result.Steps {
		assert.Equal(t, 0, report.RowCount)
		assert.Equal(t, models.StepStatusLoaded, report.Status)
	}
}

func TestExpectedTargets(t *testing.T) {
	targets := ExpectedTargets()
	require.Len(t, targets, 4)
	assert.Equal(t, models.TargetCategories, targets[0])
	assert.Equal(t, models.TargetSales, targets[3])
}
