package parser

import (
	"strconv"
	"strings"
)

// NumberFormat estratégia nomeada de parsing numérico por localidade.
// Fontes de arquivo brasileiras usam "." como separador de milhar e ","
// como decimal; resultados SQL chegam em formato simples.
type NumberFormat string

const (
	// NumberFormatBrazil 1.234,56 -> 1234.56
	NumberFormatBrazil NumberFormat = "pt-br"
	// NumberFormatPlain 1234.56 -> 1234.56 (vírgula como milhar, se houver)
	NumberFormatPlain NumberFormat = "plain"
)

// ParseNumber converte string numérica para float64 segundo a estratégia.
// Valores não parseáveis viram 0, nunca erro (semântica "coerce" da origem;
// frouxidão documentada, não é um portão de validação).
func (f NumberFormat) ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)

	switch f {
	case NumberFormatBrazil:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	default:
		s = strings.ReplaceAll(s, ",", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatNumber formata um float no formato da localidade (sem separador
// de milhar, para que o parsing reverso seja estável)
func (f NumberFormat) FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if f == NumberFormatBrazil {
		s = strings.ReplaceAll(s, ".", ",")
	}
	return s
}
