package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubmittedTrimsLabelsAndValues(t *testing.T) {
	text := "  Имя пользователя :  Иван  \nЭлектронная почта: ivan@example.com\nУровень языка:advanced"
	data := ParseSubmitted(text)

	assert.Equal(t, SubmittedData{
		"Имя пользователя":  "Иван",
		"Электронная почта": "ivan@example.com",
		"Уровень языка":     "advanced",
	}, data)
}

func TestParseSubmittedDropsLinesWithoutColon(t *testing.T) {
	data := ParseSubmitted("Данные формы\n\nИмя пользователя: Иван\nспасибо")
	assert.Len(t, data, 1)
	assert.Equal(t, "Иван", data["Имя пользователя"])
}

func TestParseSubmittedLastDuplicateWins(t *testing.T) {
	data := ParseSubmitted("Email: first@example.com\nEmail: second@example.com\n")
	assert.Len(t, data, 1)
	assert.Equal(t, "second@example.com", data["Email"])
}

func TestParseSubmittedSplitsAtFirstColon(t *testing.T) {
	data := ParseSubmitted("Время: 10:30:00\r\n")
	assert.Equal(t, "10:30:00", data["Время"])
}

func TestParseSubmittedNeverNil(t *testing.T) {
	data := ParseSubmitted("")
	require.NotNil(t, data)
	assert.Empty(t, data)
}

func TestParseSubmittedDateRoundTrip(t *testing.T) {
	data := ParseSubmitted("Имя пользователя: Иван\nДата рождения: 1990-01-01\n")
	require.Len(t, data, 2)

	p := NewPage(nil, nil, 0)
	require.NoError(t, p.VerifyDateOfBirth(data, "01011990"))
}
