package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX lê um sheet de uma planilha XLSX. Com sheet vazio usa o primeiro.
func ReadXLSX(path, sheet string) (*RawTable, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	defer file.Close()

	if sheet == "" {
		list := file.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: %s: planilha sem sheets", ErrSourceUnavailable, path)
		}
		sheet = list[0]
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: sheet %q: %v", ErrSourceUnavailable, path, sheet, err)
	}
	if len(rows) == 0 {
		return &RawTable{}, nil
	}
	return &RawTable{Headers: rows[0], Rows: rows[1:]}, nil
}
