package models

import (
	"fmt"
)

// MissingTargetError означает, что целевая таблица шага отсутствует в хранилище.
// Фатальна для партии: вся транзакция откатывается
type MissingTargetError struct {
	Step   int
	Target TargetTable
}

func (e *MissingTargetError) Error() string {
	return fmt.Sprintf("шаг %d: целевая таблица %s не существует", e.Step, e.Target)
}

// TransformError означает, что правило трансформации не смогло выдать значение
// обязательного поля и ситуация не покрывается политикой sentinel/NULL.
// Фатальна для партии
type TransformError struct {
	Entity  string
	Message string
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("ошибка трансформации %s: %s", e.Entity, e.Message)
}

// StepFailure содержит диагностику провалившегося шага загрузки:
// номер шага, целевую таблицу и причину
type StepFailure struct {
	Step    int
	Target  TargetTable
	Message string
	Err     error
}

func (e *StepFailure) Error() string {
	return fmt.Sprintf("шаг %d (%s): %s", e.Step, e.Target, e.Message)
}

// Unwrap возвращает исходную ошибку шага
func (e *StepFailure) Unwrap() error {
	return e.Err
}

// VerificationFailure описывает проблему, обнаруженную проверкой после фиксации.
// Не ошибка партии: фиксация уже произошла, сигнал предназначен оператору
type VerificationFailure struct {
	Target TargetTable
	Reason string
}

func (f VerificationFailure) String() string {
	return fmt.Sprintf("%s: %s", f.Target, f.Reason)
}
