package parser

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// ReadCSV lê um arquivo CSV detectando o separador (";" ou ",").
// Ganha o separador cujo cabeçalho mapeia mais colunas conhecidas.
func ReadCSV(path string) (*RawTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}

	var best *RawTable
	bestScore := -1
	for _, sep := range []rune{';', ','} {
		t, err := parseCSV(string(data), sep)
		if err != nil {
			continue
		}
		score := knownColumnCount(t.Headers)
		if score > bestScore {
			best = t
			bestScore = score
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%w: %s: CSV ilegível", ErrSourceUnavailable, path)
	}
	return best, nil
}

func parseCSV(content string, sep rune) (*RawTable, error) {
	r := csv.NewReader(strings.NewReader(content))
	r.Comma = sep
	r.LazyQuotes = true
	r.FieldsPerRecord = -1 // fontes reais têm linhas irregulares

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &RawTable{}, nil
	}
	return &RawTable{Headers: rows[0], Rows: rows[1:]}, nil
}

func knownColumnCount(headers []string) int {
	count := 0
	for _, h := range headers {
		if _, ok := headerVariants[NormalizeColumnName(h)]; ok {
			count++
		}
	}
	return count
}
