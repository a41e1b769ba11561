package service

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ArthurRLA/dashboard-px/internal/combiner"
	"github.com/ArthurRLA/dashboard-px/internal/config"
	"github.com/ArthurRLA/dashboard-px/internal/model"
	"github.com/ArthurRLA/dashboard-px/internal/parser"
	"github.com/ArthurRLA/dashboard-px/internal/store"
)

func novoDashboardTeste(t *testing.T) *Dashboard {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	stmts := []string{
		`INSERT INTO groups (id, nome) VALUES (1, 'Grupo Norte')`,
		`INSERT INTO customer (id, nome_fantasia, grupo_id) VALUES (1, 'Loja A', 1)`,
		`INSERT INTO employee (id, nome, funcao, customer_id) VALUES (1, 'Ana', 'Vendedor', 1)`,
		`INSERT INTO product (id, codigo, descricao) VALUES (1, 'P1', 'Filtro')`,
		`INSERT INTO product (id, codigo, descricao) VALUES (2, 'P2', 'Vela')`,
		`INSERT INTO table_price (product_id, preco) VALUES (1, 10.0)`,
		`INSERT INTO sale (n_doc, mes, quantidade, employee_id, product_id, customer_id)
			VALUES ('OS-1', '2025-04-01', 10, 1, 1, 1)`,
		`INSERT INTO sale (n_doc, mes, quantidade, employee_id, product_id, customer_id)
			VALUES ('OS-2', '2025-04-01', 3, 1, 2, 1)`,
	}
	for _, stmt := range stmts {
		if err := st.Exec(stmt); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	return NewDashboard(st, config.DefaultConfig().Pipeline, 5*time.Minute)
}

func requisicaoAbril() DashboardRequest {
	return DashboardRequest{
		LojaIDs: []int{1},
		Inicio:  model.Period{Year: 2025, Month: 4},
		Fim:     model.Period{Year: 2025, Month: 4},
	}
}

func TestLoad_PipelineCompleto(t *testing.T) {
	d := novoDashboardTeste(t)

	got, err := d.Load(requisicaoAbril())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got.TotalRegistros != 2 {
		t.Fatalf("want 2 records, got %d", got.TotalRegistros)
	}
	if len(got.Consultores) != 1 || got.Consultores[0].Consultor != "Ana" {
		t.Fatalf("unexpected consultores: %+v", got.Consultores)
	}
	// OS-1: 10 un × R$10; OS-2 sem preço cadastrado entra zerada
	if got.Consultores[0].VendaRS != 100 || got.Consultores[0].TotalOS != 2 {
		t.Fatalf("unexpected Ana metrics: %+v", got.Consultores[0])
	}
	if len(got.Produtos) != 2 {
		t.Fatalf("want 2 produtos, got %+v", got.Produtos)
	}
	if len(got.Evolucao) != 1 || got.Evolucao[0].NomeLoja != "Loja A" {
		t.Fatalf("evolution must keep the real store name: %+v", got.Evolucao)
	}
	if got.Registry == nil || len(got.Registry.Order) != 4 {
		t.Fatalf("missing KPI registry: %+v", got.Registry)
	}

	// 1 de 2 registros sem preço: 50% fica no nível de alerta
	if got.Qualidade.ProdutosSemPreco != 1 || got.Qualidade.Severidade != model.SeverityWarning {
		t.Fatalf("unexpected quality report: %+v", got.Qualidade)
	}
}

func TestLoad_CacheDentroDoTTL(t *testing.T) {
	d := novoDashboardTeste(t)

	first, err := d.Load(requisicaoAbril())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if first.DoCache {
		t.Fatal("first load must not come from cache")
	}

	second, err := d.Load(requisicaoAbril())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !second.DoCache {
		t.Fatal("second load within TTL must come from cache")
	}

	d.InvalidateCache()
	third, err := d.Load(requisicaoAbril())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if third.DoCache {
		t.Fatal("load after invalidation must recompute")
	}
}

func TestLoad_FonteExtraNaoUsaCache(t *testing.T) {
	d := novoDashboardTeste(t)

	if _, err := d.Load(requisicaoAbril()); err != nil {
		t.Fatalf("load: %v", err)
	}

	req := requisicaoAbril()
	req.Extras = []combiner.Source{{
		Kind: combiner.KindTable,
		Table: &parser.RawTable{
			Headers: []string{"Vendedor", "Produto", "Quantidade", "Valor_Total"},
			Rows:    [][]string{{"Bruno", "P1", "5", "60,00"}},
		},
		NomeLoja: "Loja Upload",
	}}

	got, err := d.Load(req)
	if err != nil {
		t.Fatalf("load with extra: %v", err)
	}
	if got.DoCache {
		t.Fatal("request with extra sources must bypass the cache")
	}
	if got.TotalRegistros != 3 {
		t.Fatalf("want 3 records (2 db + 1 upload), got %d", got.TotalRegistros)
	}
	if len(got.Consultores) != 2 {
		t.Fatalf("upload rows must join the master set: %+v", got.Consultores)
	}
}

func TestLoad_FiltroDeConsultores(t *testing.T) {
	d := novoDashboardTeste(t)

	req := requisicaoAbril()
	req.Consultores = []string{"ana"} // sem diferenciar maiúsculas
	got, err := d.Load(req)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.TotalRegistros != 2 || len(got.Consultores) != 1 {
		t.Fatalf("unexpected filtered result: %+v", got)
	}

	req.Consultores = []string{"ninguem"}
	if _, err := d.Load(req); !errors.Is(err, combiner.ErrNoData) {
		t.Fatalf("filter matching nobody must be ErrNoData, got %v", err)
	}
}

func TestUpdateOptions_ValemNaProximaCarga(t *testing.T) {
	d := novoDashboardTeste(t)

	// valor declarado diverge de preço × quantidade em 10 unidades de moeda
	req := DashboardRequest{Extras: []combiner.Source{{
		Kind: combiner.KindTable,
		Table: &parser.RawTable{
			Headers: []string{"Vendedor", "Produto", "Quantidade", "Valor_Unidade", "Valor_Total"},
			Rows:    [][]string{{"Ana", "P1", "10", "9,00", "100,00"}},
		},
		NomeLoja: "Loja Upload",
	}}}

	got, err := d.Load(req)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Qualidade.ValoresInconsistentes != 1 {
		t.Fatalf("divergence above default tolerance must be flagged: %+v", got.Qualidade)
	}

	// tolerância mais folgada passa a valer já na carga seguinte
	pipeline := config.DefaultConfig().Pipeline
	pipeline.Tolerance = 50
	d.UpdateOptions(pipeline, 5*time.Minute)

	if opts := d.FileOptions(); opts.Tolerance != 50 {
		t.Fatalf("want tolerance 50 after update, got %v", opts.Tolerance)
	}

	got, err = d.Load(req)
	if err != nil {
		t.Fatalf("load after update: %v", err)
	}
	if got.Qualidade.ValoresInconsistentes != 0 {
		t.Fatalf("updated tolerance must reach the pipeline: %+v", got.Qualidade)
	}
}

func TestUpdateOptions_DescartaCache(t *testing.T) {
	d := novoDashboardTeste(t)

	if _, err := d.Load(requisicaoAbril()); err != nil {
		t.Fatalf("load: %v", err)
	}
	d.UpdateOptions(config.DefaultConfig().Pipeline, 5*time.Minute)

	got, err := d.Load(requisicaoAbril())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.DoCache {
		t.Fatal("results cached under old options must be discarded")
	}
}

func TestLoad_SemSelecao(t *testing.T) {
	d := novoDashboardTeste(t)

	_, err := d.Load(DashboardRequest{})
	if !errors.Is(err, combiner.ErrNoData) {
		t.Fatalf("want ErrNoData, got %v", err)
	}
}
