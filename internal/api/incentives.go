package api

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArthurRLA/dashboard-px/internal/exporter"
	"github.com/ArthurRLA/dashboard-px/internal/incentive"
	"github.com/ArthurRLA/dashboard-px/internal/model"
)

// downloadTokenTTL validade do token de download de exportação
const downloadTokenTTL = 10 * time.Minute

// incentivePayload carga completa do painel de incentivos
type incentivePayload struct {
	Resumo    model.IncentiveSummary      `json:"resumo"`
	Premiados []model.IncentiveByEmployee `json:"premiados"`
	PorMes    []model.IncentiveByMonth    `json:"porMes"`
	TabelaMes model.IncentivePivot        `json:"tabelaMes"`
}

// loadIncentives carrega o painel de incentivos para o intervalo/função
func (h *Handler) loadIncentives(c *gin.Context) (*incentivePayload, bool) {
	inicio, err := parsePeriodParam(c.Query("inicio"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	fim, err := parsePeriodParam(c.Query("fim"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	if inicio.IsZero() || fim.IsZero() {
		min, max, err := h.store.DateRange()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return nil, false
		}
		if inicio.IsZero() {
			inicio = min
		}
		if fim.IsZero() {
			fim = max
		}
	}

	premiados, err := h.store.IncentivesByEmployee(inicio, fim)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	premiados = incentive.FilterByFuncao(premiados, c.Query("funcao"))

	porMes, err := h.store.IncentivesByMonth(inicio, fim)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}

	// o pivot respeita o filtro de função aplicado à lista de premiados
	if funcao := c.Query("funcao"); funcao != "" {
		keep := make(map[string]struct{}, len(premiados))
		for _, p := range premiados {
			keep[p.Vendedor] = struct{}{}
		}
		filtered := porMes[:0:0]
		for _, m := range porMes {
			if _, ok := keep[m.Vendedor]; ok {
				filtered = append(filtered, m)
			}
		}
		porMes = filtered
	}

	return &incentivePayload{
		Resumo:    incentive.Summary(premiados),
		Premiados: premiados,
		PorMes:    porMes,
		TabelaMes: incentive.MonthlyPivot(porMes),
	}, true
}

// GetIncentivos painel de incentivos
// GET /api/incentivos?inicio=2025-04&fim=2025-06&funcao=Vendedor
func (h *Handler) GetIncentivos(c *gin.Context) {
	payload, ok := h.loadIncentives(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, payload)
}

// ExportIncentivos gera a planilha de incentivos e devolve um token de
// download com validade curta
// POST /api/incentivos/export
func (h *Handler) ExportIncentivos(c *gin.Context) {
	payload, ok := h.loadIncentives(c)
	if !ok {
		return
	}

	f, err := exporter.NewExporter().Export(payload.TabelaMes, payload.Resumo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	path, err := exporter.SaveToDir(f, h.exportsDir())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token := h.downloads.put(path, downloadTokenTTL)
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresIn": int(downloadTokenTTL.Seconds()),
	})
}

// DownloadExport baixa uma planilha exportada a partir do token
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "token inválido ou expirado"})
		return
	}
	h.downloads.delete(token)
	c.FileAttachment(item.filePath, filepath.Base(item.filePath))
}
