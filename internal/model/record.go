package model

import "fmt"

// StatusPreco valores possíveis do flag de resolução de preço
const (
	PrecoOK          = "OK"
	PrecoSemCadastro = "SEM_PRECO"
)

// Period referência temporal de uma transação (granularidade de mês)
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// IsZero indica período ausente (data não parseável na origem)
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// Label rótulo ordenável para eixo temporal (a camada de apresentação
// não serializa objetos de data, apenas strings)
func (p Period) Label() string {
	if p.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Before ordena períodos cronologicamente
func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Month < o.Month
}

// SaleRecord registro transacional canônico (uma linha de venda)
type SaleRecord struct {
	NDoc     string `json:"nDoc"`     // número do documento/OS
	Periodo  Period `json:"periodo"`  // mês de referência (pode ser zero)
	Vendedor string `json:"vendedor"` // nome do consultor
	Funcao   string `json:"funcao,omitempty"`

	Produto   string `json:"produto"` // código do produto
	Descricao string `json:"descricao"`

	Quantidade   float64 `json:"quantidade"`
	ValorUnidade float64 `json:"valorUnidade"`
	ValorTotal   float64 `json:"valorTotal"`

	LojaID   int    `json:"lojaId,omitempty"`
	NomeLoja string `json:"nomeLoja"` // loja de origem, gravada na combinação

	StatusPreco   string `json:"statusPreco"`   // OK / SEM_PRECO
	Inconsistente bool   `json:"inconsistente"` // valor declarado diverge de preço×quantidade
}

// DropStats contadores de linhas excluídas durante a normalização
type DropStats struct {
	MissingRequired   int `json:"missingRequired"`   // sem vendedor ou produto
	InvalidQuantity   int `json:"invalidQuantity"`   // quantidade <= 0
	UnparsablePeriods int `json:"unparsablePeriods"` // período nulo (linha mantida)
}

// Add acumula contadores de outra fonte
func (d *DropStats) Add(o DropStats) {
	d.MissingRequired += o.MissingRequired
	d.InvalidQuantity += o.InvalidQuantity
	d.UnparsablePeriods += o.UnparsablePeriods
}

// MasterSet conjunto mestre de registros canônicos de uma requisição.
// Duplicatas de documento+produto são válidas (pedidos multi-linha);
// o conjunto nunca é persistido de volta.
type MasterSet struct {
	Records []*SaleRecord `json:"records"`
	Dropped DropStats     `json:"dropped"`
}

// Append concatena outro conjunto preservando a ordem fonte a fonte
func (m *MasterSet) Append(o *MasterSet) {
	if o == nil {
		return
	}
	m.Records = append(m.Records, o.Records...)
	m.Dropped.Add(o.Dropped)
}

// Len número de registros canônicos retidos
func (m *MasterSet) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Records)
}
