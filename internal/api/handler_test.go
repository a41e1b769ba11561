package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArthurRLA/dashboard-px/internal/config"
	"github.com/ArthurRLA/dashboard-px/internal/parser"
	"github.com/ArthurRLA/dashboard-px/internal/service"
	"github.com/ArthurRLA/dashboard-px/internal/store"
)

func novoRouterTeste(t *testing.T) *gin.Engine {
	t.Helper()
	router, _ := novoRouterComServico(t)
	return router
}

func novoRouterComServico(t *testing.T) (*gin.Engine, *service.Dashboard) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dataDir := t.TempDir()
	for _, sub := range []string{"uploads", "exports"} {
		if err := os.MkdirAll(filepath.Join(dataDir, sub), 0755); err != nil {
			t.Fatalf("mkdir %s: %v", sub, err)
		}
	}

	st, err := store.New(filepath.Join(dataDir, "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	stmts := []string{
		`INSERT INTO groups (id, nome) VALUES (1, 'Grupo Norte')`,
		`INSERT INTO customer (id, nome_fantasia, grupo_id) VALUES (1, 'Loja A', 1)`,
		`INSERT INTO employee (id, nome, funcao, customer_id) VALUES (1, 'Ana', 'Vendedor', 1)`,
		`INSERT INTO product (id, codigo, descricao) VALUES (1, 'P1', 'Filtro')`,
		`INSERT INTO table_price (product_id, preco) VALUES (1, 10.0)`,
		`INSERT INTO sale (n_doc, mes, quantidade, employee_id, product_id, customer_id)
			VALUES ('OS-1', '2025-04-01', 10, 1, 1, 1)`,
		`INSERT INTO incentive (mes, valor, employee_id) VALUES ('2025-04-01', 100.0, 1)`,
	}
	for _, stmt := range stmts {
		if err := st.Exec(stmt); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	cfg := config.DefaultConfig()
	dashboard := service.NewDashboard(st, cfg.Pipeline, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	h := NewHandler(st, dashboard, cfg, dataDir)

	router := gin.New()
	h.RegisterRoutes(router.Group("/api"))
	return router, dashboard
}

func doGet(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetStatus(t *testing.T) {
	router := novoRouterTeste(t)

	w := doGet(t, router, "/api/status")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Initialized || resp.Vendas != 1 || resp.PeriodoMin != "2025-04" {
		t.Fatalf("unexpected status: %+v", resp)
	}
}

func TestGetDashboard(t *testing.T) {
	router := novoRouterTeste(t)

	w := doGet(t, router, "/api/dashboard?lojas=1&inicio=2025-04&fim=2025-04")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp service.DashboardResult
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TotalRegistros != 1 || len(resp.Consultores) != 1 {
		t.Fatalf("unexpected dashboard: %+v", resp)
	}
	if resp.Consultores[0].VendaRS != 100 {
		t.Fatalf("unexpected venda: %+v", resp.Consultores[0])
	}
}

func TestGetDashboard_SemSelecao(t *testing.T) {
	router := novoRouterTeste(t)

	w := doGet(t, router, "/api/dashboard?lojas=&inicio=2025-04&fim=2025-04")
	if w.Code != http.StatusNotFound {
		t.Fatalf("empty selection must be 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetDashboard_ParametrosInvalidos(t *testing.T) {
	router := novoRouterTeste(t)

	if w := doGet(t, router, "/api/dashboard?lojas=abc"); w.Code != http.StatusBadRequest {
		t.Fatalf("bad loja id must be 400, got %d", w.Code)
	}
	if w := doGet(t, router, "/api/dashboard?lojas=1&inicio=2025-13"); w.Code != http.StatusBadRequest {
		t.Fatalf("bad period must be 400, got %d", w.Code)
	}
}

func TestGetIncentivos(t *testing.T) {
	router := novoRouterTeste(t)

	w := doGet(t, router, "/api/incentivos?inicio=2025-04&fim=2025-04")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp incentivePayload
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Resumo.ValorTotal != 100 || len(resp.Premiados) != 1 {
		t.Fatalf("unexpected incentives: %+v", resp)
	}
	if len(resp.TabelaMes.Meses) != 1 || resp.TabelaMes.Meses[0] != "2025-04" {
		t.Fatalf("unexpected pivot: %+v", resp.TabelaMes)
	}
}

func TestGetIncentivos_FiltroDeFuncao(t *testing.T) {
	router := novoRouterTeste(t)

	w := doGet(t, router, "/api/incentivos?funcao=Gerente")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp incentivePayload
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Premiados) != 0 || len(resp.TabelaMes.Rows) != 0 {
		t.Fatalf("function filter must drop non-matching rows: %+v", resp)
	}
}

func TestExportIncentivos_TokenDeDownload(t *testing.T) {
	router := novoRouterTeste(t)

	req := httptest.NewRequest(http.MethodPost, "/api/incentivos/export?inicio=2025-04&fim=2025-04", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("missing download token: %s", w.Body.String())
	}

	dl := doGet(t, router, "/api/export/download/"+resp.Token)
	if dl.Code != http.StatusOK {
		t.Fatalf("download must succeed, got %d", dl.Code)
	}

	// token é de uso único
	again := doGet(t, router, "/api/export/download/"+resp.Token)
	if again.Code != http.StatusNotFound {
		t.Fatalf("reused token must be 404, got %d", again.Code)
	}
}

func TestDownloadExport_TokenInvalido(t *testing.T) {
	router := novoRouterTeste(t)

	w := doGet(t, router, "/api/export/download/nao-existe")
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}
}

func TestGetConfig(t *testing.T) {
	router := novoRouterTeste(t)

	w := doGet(t, router, "/api/config")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}

	var resp ConfigResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Locale != "pt-br" || resp.CacheTTLSeconds != 300 {
		t.Fatalf("unexpected config: %+v", resp)
	}
}

func TestUpdateConfig_AplicaAoServico(t *testing.T) {
	router, dashboard := novoRouterComServico(t)

	body := `{"updates":{"tolerance":5.0,"locale":"plain"}}`
	req := httptest.NewRequest(http.MethodPatch, "/api/config", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp ConfigResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Tolerance != 5.0 || resp.Locale != "plain" {
		t.Fatalf("unexpected config echo: %+v", resp)
	}

	// a mudança chega ao serviço, não só à resposta
	opts := dashboard.FileOptions()
	if opts.Tolerance != 5.0 || opts.Locale != parser.NumberFormatPlain {
		t.Fatalf("updated options must reach the pipeline: %+v", opts)
	}
}

func TestImport_FormatoNaoSuportado(t *testing.T) {
	router := novoRouterTeste(t)

	req := httptest.NewRequest(http.MethodPost, "/api/import", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty form must be 400, got %d", w.Code)
	}
}
