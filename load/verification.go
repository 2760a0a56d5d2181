package load

import (
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// RowCounter читает размер целевой таблицы после фиксации партии
type RowCounter interface {
	CountRows(target models.TargetTable) (int64, error)
}

// Verifier выполняет структурную проверку хранилища после фиксации партии:
// каждая ожидаемая цель существует и непуста. Проверка никогда не откатывает
// партию — она уже зафиксирована, результат адресован оператору
type Verifier struct {
	counter RowCounter
	logger  *utils.ETLLogger
}

// NewVerifier создает новый экземпляр Verifier
func NewVerifier(counter RowCounter, logger *utils.ETLLogger) *Verifier {
	return &Verifier{
		counter: counter,
		logger:  logger,
	}
}

// Verify проверяет ожидаемый набор целей и возвращает итог вместе со списком проблем
func (v *Verifier) Verify(expected []models.TargetTable) (bool, []models.VerificationFailure) {
	v.logger.Info("Проверка хранилища после фиксации. Целей: %d", len(expected))

	var failures []models.VerificationFailure

	for _, target := range expected {
		count, err := v.counter.CountRows(target)
		if err != nil {
			failures = append(failures, models.VerificationFailure{
				Target: target,
				Reason: fmt.Sprintf("не удалось прочитать таблицу: %v", err),
			})
			continue
		}

		if count == 0 {
			failures = append(failures, models.VerificationFailure{
				Target: target,
				Reason: "таблица пуста после загрузки",
			})
		}
	}

	if len(failures) > 0 {
		for _, failure := range failures {
			v.logger.Warn("Проверка: %s", failure)
		}
		return false, failures
	}

	v.logger.Info("Проверка пройдена: все цели существуют и непусты")
	return true, nil
}
