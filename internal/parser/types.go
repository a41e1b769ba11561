package parser

import "errors"

// Erros recuperáveis da normalização. O combinador decide o que absorver.
var (
	// ErrSourceUnavailable arquivo ausente ou fonte ilegível
	ErrSourceUnavailable = errors.New("fonte indisponível")
	// ErrSchemaMismatch colunas obrigatórias ausentes após o mapeamento
	ErrSchemaMismatch = errors.New("colunas obrigatórias ausentes")
	// ErrNoMatchingRows o filtro de loja não casou com nenhuma linha
	ErrNoMatchingRows = errors.New("nenhuma linha casou com o filtro")
)

// RawTable tabela bruta de uma fonte (CSV, XLSX ou resultado SQL)
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// Colunas canônicas após o mapeamento de cabeçalhos
const (
	ColNDoc         = "n_doc"
	ColMes          = "mes"
	ColQuantidade   = "quantidade"
	ColFuncao       = "funcao"
	ColVendedor     = "vendedor"
	ColProduto      = "produto"
	ColDescricao    = "descricao"
	ColValorUnidade = "valor_unidade"
	ColValorTotal   = "valor_total"
	ColLojaID       = "loja_id"
	ColNomeLoja     = "nome_loja"
	ColStatusPreco  = "status_preco"
)

// RequiredColumns colunas sem as quais a fonte não pode ser agregada
var RequiredColumns = []string{ColVendedor, ColProduto, ColQuantidade, ColValorTotal}

// Options parâmetros de normalização de uma fonte
type Options struct {
	Locale      NumberFormat // estratégia de parsing numérico
	DateFormat  string       // layout da coluna de período (default 2006-01-02)
	Tolerance   float64      // tolerância do cruzamento preço×quantidade (default 0.10)
	StoreFilter string       // substring (case-insensitive) sobre a coluna de loja/cliente
	StoreName   string       // nome de loja gravado nos registros de saída
}

// DefaultTolerance tolerância padrão em unidades de moeda
const DefaultTolerance = 0.10

// DefaultDateFormat layout padrão da coluna de período
const DefaultDateFormat = "2006-01-02"
