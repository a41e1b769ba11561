package model

// ConsultorMetrics métricas agregadas por consultor/vendedor
type ConsultorMetrics struct {
	Consultor     string  `json:"consultor"`
	TotalProdutos float64 `json:"totalProdutos"` // soma das quantidades
	VendaRS       float64 `json:"vendaRs"`       // soma do valor total
	TotalOS       int     `json:"totalOs"`       // documentos distintos
	TicketMedio   float64 `json:"ticketMedio"`   // VendaRS / TotalOS (0 se TotalOS = 0)
	Performance   float64 `json:"performance"`   // TotalProdutos / TotalOS (0 se TotalOS = 0)
}

// ProdutoMetrics métricas agregadas por produto
type ProdutoMetrics struct {
	Produto           string  `json:"produto"`
	Descricao         string  `json:"descricao"`
	QuantidadeTotal   float64 `json:"quantidadeTotal"`
	ValorTotal        float64 `json:"valorTotal"`
	PenetracaoProduto float64 `json:"penetracaoProduto"` // % da quantidade geral
}

// PeriodoLojaMetrics métricas agregadas por período e loja
type PeriodoLojaMetrics struct {
	Periodo       Period  `json:"periodo"`
	PeriodoStr    string  `json:"periodoStr"` // rótulo plano para gráficos
	NomeLoja      string  `json:"nomeLoja"`
	TotalProdutos float64 `json:"totalProdutos"`
	VendaRS       float64 `json:"vendaRs"`
}

// KPIsChave cartões do topo do dashboard
type KPIsChave struct {
	VendaTotal       float64 `json:"vendaTotal"`
	PerformanceMedia float64 `json:"performanceMedia"`
	TicketMedio      float64 `json:"ticketMedio"`
	TotalProdutos    float64 `json:"totalProdutos"`
}
