package load

import (
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// LoadManager отвечает за выполнение партии загрузки в хранилище.
// Партия атомарна: любой провалившийся шаг откатывает все шаги партии,
// частично загруженное состояние никогда не видно читателям
type LoadManager struct {
	warehouse Warehouse
	logger    *utils.ETLLogger
}

// NewLoadManager создает новый экземпляр LoadManager
func NewLoadManager(warehouse Warehouse, logger *utils.ETLLogger) *LoadManager {
	return &LoadManager{
		warehouse: warehouse,
		logger:    logger,
	}
}

// RunBatch выполняет шаги загрузки в объявленном порядке внутри одной транзакции.
// Каждый шаг: проверка существования цели, очистка, запись, учет строк и длительности.
// При успехе всех шагов — одна фиксация; при ошибке возвращается StepFailure
// с номером шага и целью
func (m *LoadManager) RunBatch(steps []LoadStep) (*models.BatchResult, error) {
	startTime := time.Now()
	m.logger.Info("Начало фазы Load (Загрузка данных). Шагов в партии: %d", len(steps))

	result := &models.BatchResult{}

	tx, err := m.warehouse.BeginBatch()
	if err != nil {
		m.logger.Error("Ошибка при открытии партии загрузки: %v", err)
		failure := &models.StepFailure{
			Step:    0,
			Message: "не удалось открыть транзакцию партии: " + err.Error(),
			Err:     err,
		}
		result.FailedStep = failure
		return result, failure
	}

	for i, step := range steps {
		stepNumber := i + 1
		stepStart := time.Now()

		m.logger.Info("Шаг %d/%d: загрузка %s...", stepNumber, len(steps), step.Target)

		// Проверяем, что целевая таблица существует
		exists, err := tx.TargetExists(step.Target)
		if err != nil {
			return m.failBatch(tx, result, stepNumber, step.Target, err), err
		}
		if !exists {
			missing := &models.MissingTargetError{Step: stepNumber, Target: step.Target}
			return m.failBatch(tx, result, stepNumber, step.Target, missing), missing
		}

		// Полная замена содержимого: пайплайн идемпотентен на уровне запуска
		if err := tx.ClearTarget(step.Target); err != nil {
			return m.failBatch(tx, result, stepNumber, step.Target, err), err
		}

		rowCount, err := step.Run(tx)
		if err != nil {
			return m.failBatch(tx, result, stepNumber, step.Target, err), err
		}

		duration := time.Since(stepStart)
		result.Steps = append(result.Steps, models.StepReport{
			Step:     stepNumber,
			Target:   step.Target,
			RowCount: rowCount,
			Duration: duration,
			Status:   models.StepStatusLoaded,
		})

		// Пустой результат для отфильтрованной сущности — не ошибка
		m.logger.Info("Шаг %d завершен: %s, строк: %d, длительность: %v",
			stepNumber, step.Target, rowCount, duration)
	}

	if err := tx.Commit(); err != nil {
		m.logger.Error("Ошибка при фиксации партии: %v", err)
		tx.Rollback()
		failure := &models.StepFailure{
			Step:    len(steps),
			Message: "не удалось зафиксировать партию: " + err.Error(),
			Err:     err,
		}
		markRolledBack(result)
		result.FailedStep = failure
		return result, failure
	}

	result.Committed = true
	m.logger.Info("Фаза Load завершена. Партия зафиксирована. Длительность: %v", time.Since(startTime))

	return result, nil
}

// failBatch откатывает партию целиком и формирует диагностику провалившегося шага
func (m *LoadManager) failBatch(tx BatchTx, result *models.BatchResult, stepNumber int, target models.TargetTable, cause error) *models.BatchResult {
	m.logger.Error("Шаг %d (%s) провален: %v. Откат партии", stepNumber, target, cause)

	if err := tx.Rollback(); err != nil {
		m.logger.Error("Ошибка при откате партии: %v", err)
	}

	markRolledBack(result)

	result.Steps = append(result.Steps, models.StepReport{
		Step:   stepNumber,
		Target: target,
		Status: models.StepStatusFailed,
	})

	result.FailedStep = &models.StepFailure{
		Step:    stepNumber,
		Target:  target,
		Message: cause.Error(),
		Err:     cause,
	}

	return result
}

// markRolledBack помечает уже выполненные шаги партии как откаченные
func markRolledBack(result *models.BatchResult) {
	for i := range result.Steps {
		if result.Steps[i].Status == models.StepStatusLoaded {
			result.Steps[i].Status = models.StepStatusRolledBack
		}
	}
}
