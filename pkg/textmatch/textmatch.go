// Package textmatch compara textos para los filtros de búsqueda de los listados
// (coincidencia parcial, sin distinguir mayúsculas ni formas Unicode equivalentes).
package textmatch

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold normaliza s para comparaciones insensibles a mayúsculas (NFC + case folding).
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// Contains informa si needle aparece en haystack ignorando mayúsculas.
// Un needle vacío siempre coincide.
func Contains(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(Fold(haystack), Fold(needle))
}

// AnyContains informa si needle aparece en alguno de los campos.
func AnyContains(needle string, fields ...string) bool {
	if strings.TrimSpace(needle) == "" {
		return true
	}
	for _, f := range fields {
		if Contains(f, needle) {
			return true
		}
	}
	return false
}
