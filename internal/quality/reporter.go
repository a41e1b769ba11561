package quality

import (
	"fmt"

	"github.com/ArthurRLA/dashboard-px/internal/model"
)

// Limiares de severidade sobre a fração de linhas sem preço cadastrado
const (
	limiteCritico = 0.50
	limiteAlerta  = 0.20
)

// Validate examina o conjunto mestre já normalizado e produz o relatório
// de qualidade do painel. Nunca bloqueia a carga: problemas viram
// contadores e uma severidade, nunca erro.
func Validate(records []*model.SaleRecord, dropped model.DropStats) model.QualityReport {
	rep := model.QualityReport{
		TotalRegistros:       len(records),
		QuantidadesInvalidas: dropped.InvalidQuantity,
	}

	for _, r := range records {
		if r.StatusPreco == model.PrecoSemCadastro {
			rep.ProdutosSemPreco++
		}
		if r.ValorTotal == 0 {
			rep.ValoresZerados++
		}
		if r.Inconsistente {
			rep.ValoresInconsistentes++
		}
	}

	if rep.TotalRegistros > 0 {
		rep.SemPrecoPct = float64(rep.ProdutosSemPreco) / float64(rep.TotalRegistros) * 100
	}

	fracao := rep.SemPrecoPct / 100
	switch {
	case fracao > limiteCritico:
		rep.Severidade = model.SeverityCritical
		rep.Mensagem = fmt.Sprintf("%d de %d registros (%.1f%%) sem preço cadastrado; valores do painel podem estar muito subestimados",
			rep.ProdutosSemPreco, rep.TotalRegistros, rep.SemPrecoPct)
	case fracao > limiteAlerta:
		rep.Severidade = model.SeverityWarning
		rep.Mensagem = fmt.Sprintf("%d de %d registros (%.1f%%) sem preço cadastrado",
			rep.ProdutosSemPreco, rep.TotalRegistros, rep.SemPrecoPct)
	default:
		rep.Severidade = model.SeverityInfo
		rep.Mensagem = fmt.Sprintf("%d registros carregados; %d sem preço cadastrado",
			rep.TotalRegistros, rep.ProdutosSemPreco)
	}
	return rep
}
