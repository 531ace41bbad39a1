package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCeilDays(t *testing.T) {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, CeilDays(base, base))
	assert.Equal(t, 5, CeilDays(base, base.Add(5*Day)))
	assert.Equal(t, 1, CeilDays(base, base.Add(time.Minute)))
	assert.Equal(t, 2, CeilDays(base, base.Add(Day+time.Second)))
	assert.Equal(t, 3, CeilDays(base.Add(3*Day), base), "diferença negativa conta como positiva")
}

func TestFormatDays(t *testing.T) {
	assert.Equal(t, "0 dias", FormatDays(0))
	assert.Equal(t, "1 dia", FormatDays(1))
	assert.Equal(t, "5 dias", FormatDays(5))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", FormatDate(nil))
	assert.Equal(t, "-", FormatDate(&time.Time{}))
	d := time.Date(2024, 12, 25, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "25/12/2024", FormatDate(&d))
}
