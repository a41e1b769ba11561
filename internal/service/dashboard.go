package service

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ArthurRLA/dashboard-px/internal/aggregator"
	"github.com/ArthurRLA/dashboard-px/internal/combiner"
	"github.com/ArthurRLA/dashboard-px/internal/config"
	"github.com/ArthurRLA/dashboard-px/internal/kpi"
	"github.com/ArthurRLA/dashboard-px/internal/model"
	"github.com/ArthurRLA/dashboard-px/internal/parser"
	"github.com/ArthurRLA/dashboard-px/internal/quality"
	"github.com/ArthurRLA/dashboard-px/internal/store"
)

// DashboardRequest seleção de filtros de uma carga do dashboard
type DashboardRequest struct {
	LojaIDs []int        `json:"lojaIds"`
	Inicio  model.Period `json:"inicio"`
	Fim     model.Period `json:"fim"`
	// Filtro substring opcional sobre a coluna de loja/cliente das fontes
	Filtro string `json:"filtro,omitempty"`
	// Consultores restringe o conjunto mestre aos vendedores listados
	Consultores []string `json:"consultores,omitempty"`
	// Extras fontes de arquivo adicionais (uploads), combinadas após o banco
	Extras []combiner.Source `json:"-"`
}

// DashboardResult payload completo de uma carga do dashboard
type DashboardResult struct {
	Consultores []model.ConsultorMetrics   `json:"consultores"`
	Produtos    []model.ProdutoMetrics     `json:"produtos"`
	Evolucao    []model.PeriodoLojaMetrics `json:"evolucao"`
	KPIs        model.KPIsChave            `json:"kpis"`
	Registry    *kpi.Registry              `json:"registry"`
	Qualidade   model.QualityReport        `json:"qualidade"`
	Warnings    []combiner.Warning         `json:"warnings,omitempty"`

	TotalRegistros int       `json:"totalRegistros"`
	GeradoEm       time.Time `json:"geradoEm"`
	DoCache        bool      `json:"doCache"`
}

// Dashboard orquestra o pipeline completo de uma requisição: consulta o
// banco, combina com fontes de arquivo, agrega, monta o registro de KPIs
// e o relatório de qualidade. Resultados ficam em cache por TTL.
// As opções de pipeline podem ser trocadas em execução (PATCH /api/config)
// e valem a partir da carga seguinte.
type Dashboard struct {
	store *store.Store
	cache *resultCache

	mu       sync.RWMutex
	pipeline config.PipelineConfig
	cacheTTL time.Duration
}

// NewDashboard cria o serviço com as opções de normalização configuradas
func NewDashboard(st *store.Store, pipeline config.PipelineConfig, cacheTTL time.Duration) *Dashboard {
	return &Dashboard{
		store:    st,
		cache:    newResultCache(),
		pipeline: pipeline,
		cacheTTL: cacheTTL,
	}
}

// UpdateOptions troca as opções de pipeline e o TTL em execução.
// Resultados em cache são descartados: foram calculados com as opções
// antigas.
func (d *Dashboard) UpdateOptions(pipeline config.PipelineConfig, cacheTTL time.Duration) {
	d.mu.Lock()
	d.pipeline = pipeline
	d.cacheTTL = cacheTTL
	d.mu.Unlock()

	d.cache.clear()
}

// InvalidateCache descarta os resultados em cache (após importação)
func (d *Dashboard) InvalidateCache() {
	d.cache.clear()
}

// FileOptions opções de normalização aplicadas a fontes de arquivo na
// próxima carga
func (d *Dashboard) FileOptions() parser.Options {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return parser.Options{
		Locale:     parser.NumberFormat(d.pipeline.Locale),
		DateFormat: d.pipeline.DateFormat,
		Tolerance:  d.pipeline.Tolerance,
	}
}

// ttl TTL de cache vigente
func (d *Dashboard) ttl() time.Duration {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cacheTTL
}

// Load executa o pipeline para a seleção dada. Requisições sem fontes
// extras são atendidas do cache quando a mesma seleção foi carregada
// dentro do TTL.
func (d *Dashboard) Load(req DashboardRequest) (*DashboardResult, error) {
	key := ""
	if len(req.Extras) == 0 {
		key = cacheKey(req)
		if cached, ok := d.cache.get(key); ok {
			out := *cached
			out.DoCache = true
			return &out, nil
		}
	}

	sources, err := d.buildSources(req)
	if err != nil {
		return nil, err
	}

	// fontes de arquivo seguem a localidade configurada; a fonte de banco
	// sobrepõe a própria localidade no descritor
	comb := combiner.New(d.FileOptions())
	master, warnings, err := comb.Combine(sources)
	if err != nil {
		return nil, err
	}

	if len(req.Consultores) > 0 {
		master.Records = filterConsultores(master.Records, req.Consultores)
		if len(master.Records) == 0 {
			return nil, combiner.ErrNoData
		}
	}

	consultores := aggregator.ByConsultor(master.Records)
	result := &DashboardResult{
		Consultores:    consultores,
		Produtos:       aggregator.ByProduto(master.Records),
		Evolucao:       aggregator.ByPeriodoLoja(master.Records),
		KPIs:           aggregator.KPIsChave(consultores),
		Registry:       kpi.FromConsultorMetrics(consultores),
		Qualidade:      quality.Validate(master.Records, master.Dropped),
		Warnings:       warnings,
		TotalRegistros: master.Len(),
		GeradoEm:       time.Now(),
	}

	if key != "" {
		d.cache.put(key, result, d.ttl())
	}
	return result, nil
}

// buildSources monta a lista de fontes: banco primeiro, uploads depois
func (d *Dashboard) buildSources(req DashboardRequest) ([]combiner.Source, error) {
	var sources []combiner.Source

	if len(req.LojaIDs) > 0 {
		table, err := d.store.SalesTable(req.LojaIDs, req.Inicio, req.Fim)
		if err != nil {
			return nil, fmt.Errorf("load sales from database: %w", err)
		}
		// sem NomeLoja: cada linha do banco já carrega a própria loja
		sources = append(sources, combiner.Source{
			Kind:   combiner.KindTable,
			Table:  table,
			Filtro: req.Filtro,
			Locale: parser.NumberFormatPlain,
		})
	}

	for _, extra := range req.Extras {
		if extra.Filtro == "" {
			extra.Filtro = req.Filtro
		}
		sources = append(sources, extra)
	}

	if len(sources) == 0 {
		return nil, combiner.ErrNoData
	}
	return sources, nil
}

// filterConsultores restringe os registros aos vendedores pedidos
// (comparação sem diferenciar maiúsculas)
func filterConsultores(records []*model.SaleRecord, consultores []string) []*model.SaleRecord {
	keep := make(map[string]struct{}, len(consultores))
	for _, c := range consultores {
		keep[strings.ToUpper(strings.TrimSpace(c))] = struct{}{}
	}

	var out []*model.SaleRecord
	for _, r := range records {
		if _, ok := keep[strings.ToUpper(r.Vendedor)]; ok {
			out = append(out, r)
		}
	}
	return out
}

// cacheKey chave determinística da seleção (lojas ordenadas + intervalo +
// filtros)
func cacheKey(req DashboardRequest) string {
	ids := append([]int(nil), req.LojaIDs...)
	sort.Ints(ids)

	var b strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&b, "%d,", id)
	}
	fmt.Fprintf(&b, "|%s|%s|%s", req.Inicio.Label(), req.Fim.Label(), strings.ToLower(strings.TrimSpace(req.Filtro)))

	consultores := append([]string(nil), req.Consultores...)
	for i, c := range consultores {
		consultores[i] = strings.ToUpper(strings.TrimSpace(c))
	}
	sort.Strings(consultores)
	for _, c := range consultores {
		fmt.Fprintf(&b, "|%s", c)
	}
	return b.String()
}
