package exporter

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/ArthurRLA/dashboard-px/internal/model"
)

// Cores do cabeçalho da planilha exportada
const (
	headerFillColor = "#47C7DA"
	headerFontColor = "#FFFFFF"
)

// formatoBRL formato de número monetário em reais
const formatoBRL = `"R$" #,##0.00`

// Exporter gera a planilha de incentivos (tabela mensal + resumo)
type Exporter struct{}

// NewExporter cria o exportador
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export monta a planilha a partir da tabela pivot e do resumo
func (e *Exporter) Export(pivot model.IncentivePivot, summary model.IncentiveSummary) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := "Incentivos"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: headerFontColor},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("criar estilo de cabeçalho: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: ptr(formatoBRL)})
	if err != nil {
		return nil, fmt.Errorf("criar estilo monetário: %w", err)
	}

	// cabeçalho: consultor, um mês por coluna, total
	headers := append([]string{"Vendedor"}, pivot.Meses...)
	headers = append(headers, "Total")
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetRowStyle(sheetName, 1, 1, headerStyle)

	for i, row := range pivot.Rows {
		line := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", line), row.Vendedor)
		for j, valor := range row.Valores {
			cell, _ := excelize.CoordinatesToCellName(j+2, line)
			f.SetCellValue(sheetName, cell, valor)
		}
		totalCell, _ := excelize.CoordinatesToCellName(len(pivot.Meses)+2, line)
		f.SetCellValue(sheetName, totalCell, row.Total)
	}

	if len(pivot.Rows) > 0 {
		firstMoney, _ := excelize.CoordinatesToCellName(2, 2)
		lastMoney, _ := excelize.CoordinatesToCellName(len(pivot.Meses)+2, len(pivot.Rows)+1)
		f.SetCellStyle(sheetName, firstMoney, lastMoney, moneyStyle)
	}

	f.SetColWidth(sheetName, "A", "A", 28)
	if len(pivot.Meses) > 0 {
		lastCol, _ := excelize.ColumnNumberToName(len(pivot.Meses) + 2)
		f.SetColWidth(sheetName, "B", lastCol, 14)
	}

	if err := e.writeSummarySheet(f, headerStyle, moneyStyle, summary); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// writeSummarySheet adiciona a aba de resumo do período
func (e *Exporter) writeSummarySheet(f *excelize.File, headerStyle, moneyStyle int, summary model.IncentiveSummary) error {
	sheetName := "Resumo"
	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("criar aba de resumo: %w", err)
	}

	rows := [][]interface{}{
		{"Indicador", "Valor"},
		{"Valor Total", summary.ValorTotal},
		{"Total de Vendedores", summary.TotalVendedores},
		{"Valor Médio", summary.ValorMedio},
	}
	for i, row := range rows {
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			f.SetCellValue(sheetName, cell, v)
		}
	}
	f.SetRowStyle(sheetName, 1, 1, headerStyle)
	f.SetCellStyle(sheetName, "B2", "B2", moneyStyle)
	f.SetCellStyle(sheetName, "B4", "B4", moneyStyle)
	f.SetColWidth(sheetName, "A", "B", 22)
	return nil
}

// SaveToDir grava a planilha no diretório com nome único e devolve o caminho
func SaveToDir(f *excelize.File, dir string) (string, error) {
	filename := fmt.Sprintf("incentivos_%s.xlsx", uuid.New().String())
	path := filepath.Join(dir, filename)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("salvar planilha: %w", err)
	}
	return path, nil
}

func ptr(s string) *string { return &s }
