package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig configuração da aplicação
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Database DatabaseConfig `toml:"database"`
	Pipeline PipelineConfig `toml:"pipeline"`
	Cache    CacheConfig    `toml:"cache"`
}

// ServerConfig configuração do servidor HTTP
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig diretórios de dados (uploads, exports)
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// DatabaseConfig localização do banco SQLite
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// PipelineConfig parâmetros de normalização das fontes
type PipelineConfig struct {
	// Locale estratégia numérica das fontes de arquivo: "pt-br" ou "plain"
	Locale string `toml:"locale"`
	// DateFormat layout Go da coluna de período nos arquivos
	DateFormat string `toml:"date_format"`
	// Tolerance tolerância do cruzamento preço × quantidade, em moeda
	Tolerance float64 `toml:"tolerance"`
}

// CacheConfig cache de resultados do dashboard
type CacheConfig struct {
	TTLSeconds int `toml:"ttl_seconds"`
}

// LoadConfigInfo metainformação do carregamento
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig configuração padrão
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20300,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Database: DatabaseConfig{
			Path: "data/dashboard.db",
		},
		Pipeline: PipelineConfig{
			Locale:     "pt-br",
			DateFormat: "2006-01-02",
			Tolerance:  0.10,
		},
		Cache: CacheConfig{
			TTLSeconds: 300,
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir diretório do executável
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo carrega config.toml (ao lado do executável) e devolve
// também a metainformação do carregamento
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		// sem diretório do executável, usa o diretório atual
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// sem arquivo de configuração, segue com os padrões
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	// variável de ambiente sobrepõe o banco (execução local / testes e2e)
	if v := os.Getenv("DASHBOARD_PX_DB_PATH"); v != "" {
		config.Database.Path = v
	}

	return config, info, nil
}

// LoadConfig carrega a configuração de config.toml
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// SaveConfig grava a configuração em config.toml
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir garante o diretório de dados e seus subdiretórios
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := filepath.Join(exeDir, config.Data.DataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	subdirs := []string{"uploads", "exports"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}

// GetDataPath caminho de um arquivo dentro do diretório de dados
func GetDataPath(config *AppConfig, subdir, filename string) string {
	exeDir, _ := GetExeDir()
	if exeDir == "" {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir, subdir, filename)
}
