package reminder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTime(t *testing.T) {
	valid := []string{"00:00", "09:05", "19:59", "23:59", "24:00"}
	invalid := []string{"", "HH:MM", "24:30", "30:00", "1:00", "01:5", "0100", "01:00 ", "١٢:٠٠"}

	for _, s := range valid {
		assert.True(t, IsValidTime(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsValidTime(s), s)
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"01/01/2025", "31/02/2025", "99/99/9999", "00/00/0000"}
	invalid := []string{"", "DD/MM/YYYY", "1/1/2025", "01-01-2025", "01/01/20255", "2025/01/01"}

	for _, s := range valid {
		assert.True(t, IsValidDate(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsValidDate(s), s)
	}
}

func TestValidate_ReportsFirstFailingField(t *testing.T) {
	err := Validate(Reminder{Date: "bad", Time: "bad", Message: ""})

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "date", vErr.Field)
	assert.Equal(t, "bad", vErr.Value)
	assert.Contains(t, vErr.Error(), DatePlaceholder)
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, Validate(Reminder{Date: "25/12/2025", Time: "09:00", Message: "Buy gifts"}))
}
