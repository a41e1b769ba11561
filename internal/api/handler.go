package api

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/ArthurRLA/dashboard-px/internal/combiner"
	"github.com/ArthurRLA/dashboard-px/internal/config"
	"github.com/ArthurRLA/dashboard-px/internal/model"
	"github.com/ArthurRLA/dashboard-px/internal/service"
	"github.com/ArthurRLA/dashboard-px/internal/store"
)

// Handler processador da API REST do dashboard
type Handler struct {
	store     *store.Store
	dashboard *service.Dashboard
	cfg       *config.AppConfig
	dataDir   string // raiz de dados, com subdiretórios uploads/ e exports/

	downloads *exportDownloadStore

	mu      sync.Mutex
	uploads []combiner.Source // fontes de arquivo registradas via /api/import
}

// NewHandler cria o processador da API
func NewHandler(st *store.Store, dashboard *service.Dashboard, cfg *config.AppConfig, dataDir string) *Handler {
	return &Handler{
		store:     st,
		dashboard: dashboard,
		cfg:       cfg,
		dataDir:   dataDir,
		downloads: newExportDownloadStore(),
	}
}

// exportsDir diretório das planilhas exportadas
func (h *Handler) exportsDir() string {
	return filepath.Join(h.dataDir, "exports")
}

// uploadsDir diretório das fontes de arquivo enviadas
func (h *Handler) uploadsDir() string {
	return filepath.Join(h.dataDir, "uploads")
}

// RegisterRoutes registra as rotas da API
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// estado do sistema
	router.GET("/status", h.GetStatus)

	// hierarquia de lojas e intervalo de dados
	router.GET("/grupos", h.ListGrupos)
	router.GET("/lojas", h.ListLojas)
	router.GET("/periodo", h.GetPeriodo)

	// painel principal
	router.GET("/dashboard", h.GetDashboard)

	// incentivos
	router.GET("/incentivos", h.GetIncentivos)
	router.POST("/incentivos/export", h.ExportIncentivos)
	router.GET("/export/download/:token", h.DownloadExport)

	// configuração
	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)

	// fontes de arquivo
	router.POST("/import", h.Import)
	router.DELETE("/import", h.ClearImports)
}

// extraSources cópia das fontes de upload registradas
func (h *Handler) extraSources() []combiner.Source {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]combiner.Source(nil), h.uploads...)
}

// parseLojaIDs interpreta o parâmetro "lojas" ("1,2,3")
func parseLojaIDs(raw string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("id de loja inválido: %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parsePeriodParam interpreta um período "2025-04"
func parsePeriodParam(raw string) (model.Period, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.Period{}, nil
	}
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return model.Period{}, fmt.Errorf("período inválido: %q", raw)
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		return model.Period{}, fmt.Errorf("período inválido: %q", raw)
	}
	return model.Period{Year: year, Month: month}, nil
}
