package transform

import (
	"strings"
	"time"
)

// Нижняя граница допустимых дат рождения
var minBirthDate = time.Date(1926, 1, 1, 0, 0, 0, 0, time.UTC)

// ParseDateToken разбирает 8-значный числовой токен даты из staging-записи.
// Токен считается корректным только при длине ровно 8 символов и разборе
// по формату ГГГГММДД; иначе поле становится nil
func ParseDateToken(token string) *time.Time {
	token = strings.TrimSpace(token)
	if len(token) != 8 {
		return nil
	}

	parsed, err := time.Parse("20060102", token)
	if err != nil {
		return nil
	}

	return &parsed
}

// SanitizeBirthDate проверяет дату рождения: допустимы только значения
// в интервале [1926-01-01, now], остальные заменяются на nil
func SanitizeBirthDate(birthDate *time.Time, now time.Time) *time.Time {
	if birthDate == nil {
		return nil
	}

	if birthDate.Before(minBirthDate) || birthDate.After(now) {
		return nil
	}

	return birthDate
}

// normalizeCode приводит сырой код к канонической форме для поиска
// в таблице соответствий: обрезка пробелов и верхний регистр
func normalizeCode(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
