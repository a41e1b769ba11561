package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ArthurRLA/dashboard-px/internal/config"
	"github.com/ArthurRLA/dashboard-px/internal/server"
	"github.com/ArthurRLA/dashboard-px/internal/util"
)

var (
	port    = flag.Int("port", 0, "porta do serviço (config.toml tem prioridade quando define port)")
	devMode = flag.Bool("dev", false, "modo de desenvolvimento")
	dbPath  = flag.String("db", "", "caminho do banco SQLite (sobrepõe a configuração)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Dashboard PX - Painel de Vendas")
	fmt.Println("==========================================")

	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("falha ao carregar configuração, usando padrões: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// flags sobrepõem a configuração
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("falha ao iniciar o servidor: %v", err)
	}
	defer srv.Close()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("serviço escutando na porta %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("falha ao subir o serviço: %v", err)
		}
	}()

	if !cfg.Server.DevMode {
		fmt.Printf("abrindo o navegador: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("não foi possível abrir o navegador, acesse: %s\n", url)
		}
	} else {
		fmt.Printf("modo de desenvolvimento: acesse %s\n", url)
	}

	fmt.Println("\npressione Ctrl+C para encerrar...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nencerrando o serviço...")
}
