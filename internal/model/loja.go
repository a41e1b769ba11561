package model

// LojaConfig identificação de uma loja selecionável no dashboard
type LojaConfig struct {
	ID          int    `json:"id"`
	Nome        string `json:"nome"`
	CNPJ        string `json:"cnpj,omitempty"`
	GrupoID     int    `json:"grupoId,omitempty"`
	Grupo       string `json:"grupo,omitempty"`
	TotalVendas int    `json:"totalVendas,omitempty"`
}

// GrupoConfig grupo organizacional de lojas
type GrupoConfig struct {
	ID          int    `json:"id"`
	Nome        string `json:"nome"`
	TotalLojas  int    `json:"totalLojas"`
	TotalVendas int    `json:"totalVendas"`
}

// ShopConfig hierarquia Grupo -> Loja usada pelos filtros do dashboard
type ShopConfig map[string]map[string]LojaConfig
