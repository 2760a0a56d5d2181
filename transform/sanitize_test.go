package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  *time.Time
	}{
		{"корректный токен", "20101229", date(2010, 12, 29)},
		{"токен с пробелами вокруг", " 20101229 ", date(2010, 12, 29)},
		{"нулевой токен", "0", nil},
		{"семь символов", "2010122", nil},
		{"девять символов", "201012290", nil},
		{"пустая строка", "", nil},
		{"нечисловой токен", "20AB1229", nil},
		{"несуществующая дата", "20101332", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDateToken(tt.token)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func TestSanitizeBirthDate(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		birthDate *time.Time
		want      *time.Time
	}{
		{"дата внутри окна", date(1980, 5, 20), date(1980, 5, 20)},
		{"нижняя граница включена", date(1926, 1, 1), date(1926, 1, 1)},
		{"текущий момент включен", date(2025, 1, 1), date(2025, 1, 1)},
		{"раньше нижней границы", date(1925, 12, 31), nil},
		{"дата в будущем", date(2025, 1, 2), nil},
		{"отсутствующая дата", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeBirthDate(tt.birthDate, now)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "M", normalizeCode(" m "))
	assert.Equal(t, "FEMALE", normalizeCode("female"))
	assert.Equal(t, "", normalizeCode("   "))
}
