package utils

import (
	"fmt"
	"time"
)

const Day = 24 * time.Hour

// CeilDays = ceil(|to - from| / 24h). A diferença é absoluta: relógios
// desencontrados nunca geram contagem negativa.
func CeilDays(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		d = -d
	}
	days := int(d / Day)
	if d%Day != 0 {
		days++
	}
	return days
}

// FormatDays: "1 dia", e "N dias" para qualquer outro valor (inclusive 0).
func FormatDays(n int) string {
	if n == 1 {
		return "1 dia"
	}
	return fmt.Sprintf("%d dias", n)
}

// FormatDate usa o formato brasileiro dd/mm/aaaa; nil vira "-".
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format("02/01/2006")
}
