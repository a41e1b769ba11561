package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse estado geral do sistema
type StatusResponse struct {
	Initialized bool   `json:"initialized"` // banco tem vendas
	Lojas       int    `json:"lojas"`
	Vendas      int    `json:"vendas"`
	Produtos    int    `json:"produtos"`
	Incentivos  int    `json:"incentivos"`
	PeriodoMin  string `json:"periodoMin,omitempty"`
	PeriodoMax  string `json:"periodoMax,omitempty"`
	Uploads     int    `json:"uploads"` // fontes de arquivo registradas
}

// GetStatus estado geral do sistema
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	counts, err := h.store.Status()
	if err != nil {
		c.JSON(http.StatusOK, StatusResponse{Initialized: false})
		return
	}

	resp := StatusResponse{
		Initialized: counts.Vendas > 0,
		Lojas:       counts.Lojas,
		Vendas:      counts.Vendas,
		Produtos:    counts.Produtos,
		Incentivos:  counts.Incentivos,
		Uploads:     len(h.extraSources()),
	}

	if min, max, err := h.store.DateRange(); err == nil {
		resp.PeriodoMin = min.Label()
		resp.PeriodoMax = max.Label()
	}

	c.JSON(http.StatusOK, resp)
}
