package aggregator

import (
	"math"
	"sort"

	"github.com/ArthurRLA/dashboard-px/internal/model"
)

// safeDiv divisão com denominador zero/indefinido resolvida para 0 no ponto
// do cálculo; NaN/Inf nunca chegam à apresentação
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	v := num / den
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ByConsultor agrega o conjunto mestre por vendedor: soma de quantidades,
// soma de valores e contagem de documentos distintos. Ticket médio usa a
// contagem de OS como denominador (revisão atual do painel).
func ByConsultor(records []*model.SaleRecord) []model.ConsultorMetrics {
	type acc struct {
		totalProdutos float64
		vendaRS       float64
		docs          map[string]struct{}
	}

	byName := make(map[string]*acc)
	for _, r := range records {
		a, ok := byName[r.Vendedor]
		if !ok {
			a = &acc{docs: make(map[string]struct{})}
			byName[r.Vendedor] = a
		}
		a.totalProdutos += r.Quantidade
		a.vendaRS += r.ValorTotal
		a.docs[r.NDoc] = struct{}{}
	}

	out := make([]model.ConsultorMetrics, 0, len(byName))
	for nome, a := range byName {
		totalOS := len(a.docs)
		out = append(out, model.ConsultorMetrics{
			Consultor:     nome,
			TotalProdutos: a.totalProdutos,
			VendaRS:       a.vendaRS,
			TotalOS:       totalOS,
			TicketMedio:   safeDiv(a.vendaRS, float64(totalOS)),
			Performance:   safeDiv(a.totalProdutos, float64(totalOS)),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Consultor < out[j].Consultor })
	return out
}

// ByProduto agrega por (código, descrição) e calcula a penetração de cada
// produto como % da quantidade geral (0 quando o total geral é 0)
func ByProduto(records []*model.SaleRecord) []model.ProdutoMetrics {
	type key struct{ produto, descricao string }
	type acc struct {
		quantidade float64
		valor      float64
	}

	totalGeral := 0.0
	byProd := make(map[key]*acc)
	for _, r := range records {
		k := key{r.Produto, r.Descricao}
		a, ok := byProd[k]
		if !ok {
			a = &acc{}
			byProd[k] = a
		}
		a.quantidade += r.Quantidade
		a.valor += r.ValorTotal
		totalGeral += r.Quantidade
	}

	out := make([]model.ProdutoMetrics, 0, len(byProd))
	for k, a := range byProd {
		out = append(out, model.ProdutoMetrics{
			Produto:           k.produto,
			Descricao:         k.descricao,
			QuantidadeTotal:   a.quantidade,
			ValorTotal:        a.valor,
			PenetracaoProduto: safeDiv(a.quantidade, totalGeral) * 100,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Produto != out[j].Produto {
			return out[i].Produto < out[j].Produto
		}
		return out[i].Descricao < out[j].Descricao
	})
	return out
}

// ByPeriodoLoja agrega por (período, loja) para a evolução temporal.
// O eixo de tempo sai como rótulo string ordenável; a camada de gráficos
// não serializa objetos temporais.
func ByPeriodoLoja(records []*model.SaleRecord) []model.PeriodoLojaMetrics {
	type key struct {
		periodo model.Period
		loja    string
	}
	type acc struct {
		quantidade float64
		valor      float64
	}

	byKey := make(map[key]*acc)
	for _, r := range records {
		k := key{r.Periodo, r.NomeLoja}
		a, ok := byKey[k]
		if !ok {
			a = &acc{}
			byKey[k] = a
		}
		a.quantidade += r.Quantidade
		a.valor += r.ValorTotal
	}

	out := make([]model.PeriodoLojaMetrics, 0, len(byKey))
	for k, a := range byKey {
		out = append(out, model.PeriodoLojaMetrics{
			Periodo:       k.periodo,
			PeriodoStr:    k.periodo.Label(),
			NomeLoja:      k.loja,
			TotalProdutos: a.quantidade,
			VendaRS:       a.valor,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Periodo != out[j].Periodo {
			return out[i].Periodo.Before(out[j].Periodo)
		}
		return out[i].NomeLoja < out[j].NomeLoja
	})
	return out
}

// KPIsChave calcula os cartões do topo a partir das métricas por consultor
func KPIsChave(consultores []model.ConsultorMetrics) model.KPIsChave {
	var k model.KPIsChave
	if len(consultores) == 0 {
		return k
	}

	var somaPerf, somaTicket float64
	for _, c := range consultores {
		k.VendaTotal += c.VendaRS
		k.TotalProdutos += c.TotalProdutos
		somaPerf += c.Performance
		somaTicket += c.TicketMedio
	}
	n := float64(len(consultores))
	k.PerformanceMedia = safeDiv(somaPerf, n)
	k.TicketMedio = safeDiv(somaTicket, n)
	return k
}
