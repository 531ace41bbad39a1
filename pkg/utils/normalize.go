package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize remove acentos, espaços nas pontas e caixa.
// Exemplo: " Crítico/Urgente " -> "critico/urgente"
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, err := transform.String(t, s)
	if err != nil {
		normalized = s
	}
	return strings.ToLower(normalized)
}

// EqualFoldAccents compara ignorando acentos e caixa.
func EqualFoldAccents(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Canonical devolve o valor de "valid" que corresponde a "value" ignorando
// acentos e caixa. ok=false quando nenhum corresponde.
func Canonical(value string, valid []string) (string, bool) {
	n := Normalize(value)
	for _, v := range valid {
		if Normalize(v) == n {
			return v, true
		}
	}
	return value, false
}
