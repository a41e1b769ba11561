package model

// Severity severidade do relatório de qualidade
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// QualityReport contadores de qualidade sobre o conjunto normalizado.
// Apenas relata; nunca altera os dados.
type QualityReport struct {
	TotalRegistros        int `json:"totalRegistros"`
	ProdutosSemPreco      int `json:"produtosSemPreco"`
	ValoresZerados        int `json:"valoresZerados"`
	QuantidadesInvalidas  int `json:"quantidadesInvalidas"`
	ValoresInconsistentes int `json:"valoresInconsistentes"`

	SemPrecoPct float64  `json:"semPrecoPct"`
	Severidade  Severity `json:"severidade"`
	Mensagem    string   `json:"mensagem,omitempty"`
}
