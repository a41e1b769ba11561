package kpi

import (
	"sort"
	"strings"

	"github.com/ArthurRLA/dashboard-px/internal/model"
	"github.com/ArthurRLA/dashboard-px/internal/parser"
)

// Rótulos lógicos dos KPIs do painel
const (
	LabelTotalProdutos = "TOTAL DE PRODUTOS"
	LabelVendaRS       = "TOTAL VENDA RS"
	LabelTicketMedio   = "TKT MÉDIO SELL OUT"
	LabelPerformance   = "PERFORMANCE"
)

// columnNames rótulo lógico → coluna da agregação por consultor
var columnNames = map[string]string{
	LabelTotalProdutos: "Total_Produtos",
	LabelVendaRS:       "Venda_RS",
	LabelTicketMedio:   "Ticket_Medio",
	LabelPerformance:   "Performance",
}

// WidePrefixes prefixos do formato legado largo (uma coluna por consultor,
// ex.: "Produtos_Ana") → rótulo lógico do KPI
var WidePrefixes = map[string]string{
	"Produtos_":    LabelTotalProdutos,
	"Venda_RS_":    LabelVendaRS,
	"TKT_Medio_":   LabelTicketMedio,
	"Performance_": LabelPerformance,
}

// Entry valor de um KPI para um consultor
type Entry struct {
	Consultor string  `json:"consultor"`
	Valor     float64 `json:"valor"`
}

// Descriptor mapeia rótulo lógico para coluna de origem e alias de exibição
type Descriptor struct {
	Label  string `json:"label"`
	Column string `json:"column"`
	Alias  string `json:"alias"`
}

// Registry mapeamento declarativo KPI → série por consultor. Reconstruído
// a cada carga, derivado apenas do esquema dos dados agregados.
type Registry struct {
	Order       []string              `json:"order"` // rótulos na ordem de exibição
	Descriptors map[string]Descriptor `json:"descriptors"`
	Series      map[string][]Entry    `json:"series"`
}

// displayOrder ordem fixa dos rótulos no ranking
var displayOrder = []string{LabelTotalProdutos, LabelVendaRS, LabelTicketMedio, LabelPerformance}

// FromConsultorMetrics monta o registro no formato atual: uma coluna
// agregada por KPI, uma linha por consultor.
func FromConsultorMetrics(rows []model.ConsultorMetrics) *Registry {
	reg := newRegistry()
	for _, label := range displayOrder {
		entries := make([]Entry, 0, len(rows))
		for _, r := range rows {
			entries = append(entries, Entry{Consultor: r.Consultor, Valor: valueFor(r, label)})
		}
		reg.Series[label] = entries
	}
	return reg
}

// FromWideRow monta o registro a partir do formato legado largo: uma linha
// de totais cujas colunas seguem o padrão prefixo+consultor. Os nomes de
// consultor saem dos sufixos, deduplicados sem diferenciar maiúsculas, e
// cada valor é associado ao consultor da PRÓPRIA coluna (join por chave,
// nunca alinhamento posicional).
func FromWideRow(headers []string, row []string, locale parser.NumberFormat) *Registry {
	reg := newRegistry()

	for _, label := range displayOrder {
		byConsultor := make(map[string]float64)
		var order []string
		for i, h := range headers {
			prefix, ok := widePrefixOf(h)
			if !ok || WidePrefixes[prefix] != label {
				continue
			}
			consultor := strings.ToUpper(strings.TrimPrefix(h, prefix))
			if consultor == "" {
				continue
			}
			valor := 0.0
			if i < len(row) {
				valor = locale.ParseNumber(row[i])
			}
			if _, seen := byConsultor[consultor]; !seen {
				order = append(order, consultor)
			}
			byConsultor[consultor] += valor
		}

		entries := make([]Entry, 0, len(order))
		for _, c := range order {
			entries = append(entries, Entry{Consultor: c, Valor: byConsultor[c]})
		}
		reg.Series[label] = entries
	}
	return reg
}

// Consultores união ordenada dos nomes de consultor presentes nas séries
func (r *Registry) Consultores() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, entries := range r.Series {
		for _, e := range entries {
			key := strings.ToUpper(e.Consultor)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			names = append(names, e.Consultor)
		}
	}
	sort.Strings(names)
	return names
}

func newRegistry() *Registry {
	reg := &Registry{
		Order:       append([]string(nil), displayOrder...),
		Descriptors: make(map[string]Descriptor),
		Series:      make(map[string][]Entry),
	}
	for _, label := range displayOrder {
		reg.Descriptors[label] = Descriptor{Label: label, Column: columnNames[label], Alias: label}
	}
	return reg
}

func valueFor(r model.ConsultorMetrics, label string) float64 {
	switch label {
	case LabelTotalProdutos:
		return r.TotalProdutos
	case LabelVendaRS:
		return r.VendaRS
	case LabelTicketMedio:
		return r.TicketMedio
	case LabelPerformance:
		return r.Performance
	}
	return 0
}

func widePrefixOf(header string) (string, bool) {
	for prefix := range WidePrefixes {
		if strings.HasPrefix(header, prefix) {
			return prefix, true
		}
	}
	return "", false
}
