package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ArthurRLA/dashboard-px/internal/combiner"
	"github.com/ArthurRLA/dashboard-px/internal/service"
)

// GetDashboard executa o pipeline do painel para a seleção de filtros
// GET /api/dashboard?lojas=1,2&inicio=2025-04&fim=2025-05&filtro=matriz
func (h *Handler) GetDashboard(c *gin.Context) {
	lojaIDs, err := parseLojaIDs(c.Query("lojas"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	inicio, err := parsePeriodParam(c.Query("inicio"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fim, err := parsePeriodParam(c.Query("fim"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// sem intervalo explícito, usa todo o histórico do banco
	if inicio.IsZero() || fim.IsZero() {
		min, max, err := h.store.DateRange()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if inicio.IsZero() {
			inicio = min
		}
		if fim.IsZero() {
			fim = max
		}
	}

	var consultores []string
	for _, part := range strings.Split(c.Query("consultores"), ",") {
		if part = strings.TrimSpace(part); part != "" {
			consultores = append(consultores, part)
		}
	}

	result, err := h.dashboard.Load(service.DashboardRequest{
		LojaIDs:     lojaIDs,
		Inicio:      inicio,
		Fim:         fim,
		Filtro:      c.Query("filtro"),
		Consultores: consultores,
		Extras:      h.extraSources(),
	})
	if err != nil {
		if errors.Is(err, combiner.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": "sem dados para os filtros selecionados"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
