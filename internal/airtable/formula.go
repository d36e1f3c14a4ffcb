package airtable

import (
	"fmt"
	"strings"
)

// Quote escapa un valor para usarlo como literal string en una formula.
func Quote(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `"`, `\"`)
	return `"` + value + `"`
}

func Field(name string) string {
	return "{" + name + "}"
}

// Eq arma {Field} = "value".
func Eq(field, value string) string {
	return fmt.Sprintf("%s = %s", Field(field), Quote(value))
}

// Gte arma {Field} >= "value". Sirve para fechas ISO en texto.
func Gte(field, value string) string {
	return fmt.Sprintf("%s >= %s", Field(field), Quote(value))
}

// Search arma SEARCH("needle", {Field}) > 0.
func Search(needle, field string) string {
	return fmt.Sprintf("SEARCH(%s, %s) > 0", Quote(needle), Field(field))
}

// And combina condiciones no vacias. Una sola condicion se devuelve tal cual.
func And(conds ...string) string {
	var parts []string
	for _, c := range conds {
		if strings.TrimSpace(c) != "" {
			parts = append(parts, c)
		}
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return "AND(" + strings.Join(parts, ", ") + ")"
	}
}
