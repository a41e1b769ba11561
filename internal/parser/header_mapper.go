package parser

import (
	"regexp"
	"strings"
)

// headerVariants variantes conhecidas de cabeçalho → coluna canônica.
// As chaves já estão na forma normalizada (ver NormalizeColumnName).
var headerVariants = map[string]string{
	"n_doc":     ColNDoc,
	"ndoc":      ColNDoc,
	"documento": ColNDoc,
	"num_doc":   ColNDoc,
	"os":        ColNDoc,

	"mes":      ColMes,
	"data":     ColMes,
	"periodo":  ColMes,
	"data_ref": ColMes,

	"quantidade": ColQuantidade,
	"qtd":        ColQuantidade,
	"qtde":       ColQuantidade,

	"funcao": ColFuncao,
	"cargo":  ColFuncao,

	"vendedor":  ColVendedor,
	"consultor": ColVendedor,

	"produto":     ColProduto,
	"codigo":      ColProduto,
	"cod_produto": ColProduto,

	"descricao":     ColDescricao,
	"desc_produto":  ColDescricao,
	"nome_produto":  ColDescricao,

	"valor_unidade":  ColValorUnidade,
	"valor_unitario": ColValorUnidade,
	"preco_unitario": ColValorUnidade,
	"preco":          ColValorUnidade,

	"valor_total": ColValorTotal,
	"total":       ColValorTotal,
	"valor":       ColValorTotal,

	"loja_id": ColLojaID,

	"nome_loja": ColNomeLoja,
	"loja":      ColNomeLoja,
	"cliente":   ColNomeLoja,

	"status_preco": ColStatusPreco,
}

// accentReplacer remove acentuação comum em cabeçalhos pt-BR
var accentReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "ã", "a", "â", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "õ", "o", "ô", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
	"º", "", "°", "",
)

var spaceRun = regexp.MustCompile(`\s+`)

// NormalizeColumnName normaliza um cabeçalho: minúsculas, sem acento,
// espaços e separadores colapsados em "_"
func NormalizeColumnName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\n", " ")
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\t", " ")
	name = strings.ToLower(name)
	name = accentReplacer.Replace(name)
	name = spaceRun.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_.")
	return name
}

// MapColumns renomeia cabeçalhos conhecidos para os nomes canônicos.
// Colunas desconhecidas passam intactas.
func MapColumns(t *RawTable) *RawTable {
	out := &RawTable{
		Headers: make([]string, len(t.Headers)),
		Rows:    t.Rows,
	}
	for i, h := range t.Headers {
		norm := NormalizeColumnName(h)
		if canonical, ok := headerVariants[norm]; ok {
			out.Headers[i] = canonical
		} else {
			out.Headers[i] = h
		}
	}
	return out
}

// columnIndex localiza uma coluna canônica; -1 quando ausente
func columnIndex(headers []string, canonical string) int {
	for i, h := range headers {
		if h == canonical {
			return i
		}
	}
	return -1
}

// MissingRequired lista as colunas obrigatórias ausentes após o mapeamento
func MissingRequired(headers []string) []string {
	var missing []string
	for _, col := range RequiredColumns {
		if columnIndex(headers, col) < 0 {
			missing = append(missing, col)
		}
	}
	return missing
}
