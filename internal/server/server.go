package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArthurRLA/dashboard-px/internal/api"
	"github.com/ArthurRLA/dashboard-px/internal/config"
	"github.com/ArthurRLA/dashboard-px/internal/service"
	"github.com/ArthurRLA/dashboard-px/internal/store"
)

// Server servidor HTTP do dashboard
type Server struct {
	router *gin.Engine
	store  *store.Store
	api    *api.Handler
}

// NewServer monta o servidor: banco, serviço do dashboard e rotas da API
func NewServer(cfg *config.AppConfig) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("criar diretório de dados: %w", err)
	}

	sqliteStore, err := store.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("inicializar banco: %w", err)
	}

	dashboard := service.NewDashboard(sqliteStore, cfg.Pipeline,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second)

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
		api:    api.NewHandler(sqliteStore, dashboard, cfg, dataDir),
	}

	s.setupRoutes()
	return s, nil
}

// setupRoutes registra middleware e rotas
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// Run inicia o servidor
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close fecha os recursos do servidor
func (s *Server) Close() {
	if err := s.store.Close(); err != nil {
		log.Printf("erro ao fechar banco: %v", err)
	}
}

// GetStore expõe o armazenamento (testes)
func (s *Server) GetStore() *store.Store {
	return s.store
}
