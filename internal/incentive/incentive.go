package incentive

import (
	"sort"
	"strings"

	"github.com/ArthurRLA/dashboard-px/internal/model"
)

// Summary calcula os cartões do painel de incentivos
func Summary(items []model.IncentiveByEmployee) model.IncentiveSummary {
	var s model.IncentiveSummary
	for _, it := range items {
		s.ValorTotal += it.ValorTotalIncentivos
	}
	s.TotalVendedores = len(items)
	if s.TotalVendedores > 0 {
		s.ValorMedio = s.ValorTotal / float64(s.TotalVendedores)
	}
	return s
}

// FilterByFuncao mantém apenas os premiados cuja lista de funções contém a
// função pedida. Premiados multi-função ("Vendedor / Gerente") casam com
// qualquer uma das partes. Função vazia não filtra nada.
func FilterByFuncao(items []model.IncentiveByEmployee, funcao string) []model.IncentiveByEmployee {
	funcao = strings.TrimSpace(funcao)
	if funcao == "" {
		return items
	}

	var out []model.IncentiveByEmployee
	for _, it := range items {
		for _, part := range strings.Split(it.Funcao, "/") {
			if strings.EqualFold(strings.TrimSpace(part), funcao) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// MonthlyPivot monta a tabela consultor × mês. Colunas em ordem
// cronológica; linhas em ordem decrescente de total. Meses sem valor para
// um consultor saem como 0.
func MonthlyPivot(items []model.IncentiveByMonth) model.IncentivePivot {
	mesSet := make(map[model.Period]struct{})
	for _, it := range items {
		if !it.Mes.IsZero() {
			mesSet[it.Mes] = struct{}{}
		}
	}

	meses := make([]model.Period, 0, len(mesSet))
	for m := range mesSet {
		meses = append(meses, m)
	}
	sort.Slice(meses, func(i, j int) bool { return meses[i].Before(meses[j]) })

	colIndex := make(map[model.Period]int, len(meses))
	labels := make([]string, len(meses))
	for i, m := range meses {
		colIndex[m] = i
		labels[i] = m.Label()
	}

	type acc struct {
		valores []float64
		total   float64
	}
	byVendedor := make(map[string]*acc)
	var order []string
	for _, it := range items {
		a, ok := byVendedor[it.Vendedor]
		if !ok {
			a = &acc{valores: make([]float64, len(meses))}
			byVendedor[it.Vendedor] = a
			order = append(order, it.Vendedor)
		}
		if idx, ok := colIndex[it.Mes]; ok {
			a.valores[idx] += it.ValorMes
		}
		a.total += it.ValorMes
	}

	pivot := model.IncentivePivot{Meses: labels}
	for _, vendedor := range order {
		a := byVendedor[vendedor]
		pivot.Rows = append(pivot.Rows, model.IncentivePivotRow{
			Vendedor: vendedor,
			Valores:  a.valores,
			Total:    a.total,
		})
	}
	sort.SliceStable(pivot.Rows, func(i, j int) bool {
		if pivot.Rows[i].Total != pivot.Rows[j].Total {
			return pivot.Rows[i].Total > pivot.Rows[j].Total
		}
		return pivot.Rows[i].Vendedor < pivot.Rows[j].Vendedor
	})
	return pivot
}
