package model

// IncentiveByEmployee total de incentivos de um premiado no período selecionado
type IncentiveByEmployee struct {
	EmployeeID           int     `json:"employeeId"`
	Vendedor             string  `json:"vendedor"`
	Funcao               string  `json:"funcao,omitempty"` // pode conter múltiplas funções "A / B"
	Loja                 string  `json:"loja"`
	ValorTotalIncentivos float64 `json:"valorTotalIncentivos"`
	QuantidadeIncentivos int     `json:"quantidadeIncentivos"`
}

// IncentiveByMonth valor de incentivos de um premiado em um mês
type IncentiveByMonth struct {
	EmployeeID    int     `json:"employeeId"`
	Vendedor      string  `json:"vendedor"`
	Mes           Period  `json:"mes"`
	MesDisplay    string  `json:"mesDisplay"`
	ValorMes      float64 `json:"valorMes"`
	QuantidadeMes int     `json:"quantidadeMes"`
}

// IncentiveSummary métricas resumo do painel de incentivos
type IncentiveSummary struct {
	ValorTotal      float64 `json:"valorTotal"`
	TotalVendedores int     `json:"totalVendedores"`
	ValorMedio      float64 `json:"valorMedio"`
}

// IncentivePivot tabela mensal consultor × mês (colunas na ordem de Meses)
type IncentivePivot struct {
	Meses []string            `json:"meses"` // rótulos de coluna, ordem cronológica
	Rows  []IncentivePivotRow `json:"rows"`
}

// IncentivePivotRow linha da tabela pivot mensal
type IncentivePivotRow struct {
	Vendedor string    `json:"vendedor"`
	Valores  []float64 `json:"valores"` // alinhado a Meses
	Total    float64   `json:"total"`
}
