package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ArthurRLA/dashboard-px/internal/combiner"
)

// Import registra um arquivo de vendas (CSV ou XLSX) como fonte adicional
// do painel. O arquivo fica no diretório de uploads e entra em todas as
// cargas seguintes, combinado após o banco.
// POST /api/import (multipart: file, nome_loja, filtro, sheet)
func (h *Handler) Import(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "formulário inválido"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "arquivo não encontrado no formulário"})
		return
	}
	uploaded := files[0]

	var kind combiner.SourceKind
	switch strings.ToLower(filepath.Ext(uploaded.Filename)) {
	case ".csv":
		kind = combiner.KindCSV
	case ".xlsx":
		kind = combiner.KindXLSX
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "formato não suportado; envie CSV ou XLSX"})
		return
	}

	nomeLoja := strings.TrimSpace(c.PostForm("nome_loja"))
	if nomeLoja == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nome_loja é obrigatório"})
		return
	}

	path := filepath.Join(h.uploadsDir(),
		fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(uploaded.Filename)))
	if err := c.SaveUploadedFile(uploaded, path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao salvar o arquivo"})
		return
	}

	src := combiner.Source{
		Kind:     kind,
		Path:     path,
		Sheet:    c.PostForm("sheet"),
		NomeLoja: nomeLoja,
		Filtro:   c.PostForm("filtro"),
	}

	h.mu.Lock()
	h.uploads = append(h.uploads, src)
	total := len(h.uploads)
	h.mu.Unlock()

	h.dashboard.InvalidateCache()

	c.JSON(http.StatusOK, gin.H{
		"nomeLoja": nomeLoja,
		"arquivo":  filepath.Base(path),
		"uploads":  total,
	})
}

// ClearImports remove todas as fontes de arquivo registradas
// DELETE /api/import
func (h *Handler) ClearImports(c *gin.Context) {
	h.mu.Lock()
	uploads := h.uploads
	h.uploads = nil
	h.mu.Unlock()

	for _, src := range uploads {
		_ = os.Remove(src.Path)
	}

	h.dashboard.InvalidateCache()
	c.JSON(http.StatusOK, gin.H{"removidos": len(uploads)})
}
