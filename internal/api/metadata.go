package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListGrupos lista os grupos organizacionais
// GET /api/grupos
func (h *Handler) ListGrupos(c *gin.Context) {
	grupos, err := h.store.ListGrupos()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"grupos": grupos})
}

// ListLojas lista as lojas com sua hierarquia de grupos
// GET /api/lojas
func (h *Handler) ListLojas(c *gin.Context) {
	lojas, err := h.store.ListLojas()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	hierarquia, err := h.store.ShopHierarchy()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lojas":      lojas,
		"hierarquia": hierarquia,
	})
}

// GetPeriodo intervalo de períodos com vendas registradas
// GET /api/periodo
func (h *Handler) GetPeriodo(c *gin.Context) {
	min, max, err := h.store.DateRange()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"inicio": min.Label(),
		"fim":    max.Label(),
	})
}
