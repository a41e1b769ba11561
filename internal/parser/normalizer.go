package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ArthurRLA/dashboard-px/internal/model"
)

// Normalizer transforma uma tabela bruta em registros canônicos.
// Nunca propaga erro além das condições recuperáveis de esquema/filtro.
type Normalizer struct {
	opts Options
}

// NewNormalizer cria um normalizador preenchendo defaults
func NewNormalizer(opts Options) *Normalizer {
	if opts.Locale == "" {
		opts.Locale = NumberFormatBrazil
	}
	if opts.DateFormat == "" {
		opts.DateFormat = DefaultDateFormat
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	return &Normalizer{opts: opts}
}

// Normalize aplica mapeamento de colunas, filtro de loja, coerção numérica,
// extração de período e o cruzamento preço×quantidade. Linhas sem vendedor
// ou produto, ou com quantidade <= 0, são excluídas do conjunto canônico e
// contabilizadas em Dropped.
func (n *Normalizer) Normalize(raw *RawTable) (*model.MasterSet, error) {
	if raw == nil || len(raw.Headers) == 0 {
		return &model.MasterSet{}, nil
	}

	mapped := MapColumns(raw)
	if missing := MissingRequired(mapped.Headers); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}

	idx := make(map[string]int)
	for i, h := range mapped.Headers {
		idx[h] = i
	}
	get := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	filter := strings.ToLower(strings.TrimSpace(n.opts.StoreFilter))
	matched := 0

	ms := &model.MasterSet{}
	for _, row := range mapped.Rows {
		if filter != "" {
			loja := strings.ToLower(get(row, ColNomeLoja))
			if !strings.Contains(loja, filter) {
				continue
			}
			matched++
		}

		vendedor := get(row, ColVendedor)
		produto := get(row, ColProduto)
		if vendedor == "" || produto == "" {
			ms.Dropped.MissingRequired++
			continue
		}

		quantidade := n.opts.Locale.ParseNumber(get(row, ColQuantidade))
		if quantidade <= 0 {
			ms.Dropped.InvalidQuantity++
			continue
		}

		valorUnidade := n.opts.Locale.ParseNumber(get(row, ColValorUnidade))
		valorTotal := n.opts.Locale.ParseNumber(get(row, ColValorTotal))
		// valores monetários são não-negativos no conjunto canônico
		if valorUnidade < 0 {
			valorUnidade = 0
		}
		if valorTotal < 0 {
			valorTotal = 0
		}

		rec := &model.SaleRecord{
			NDoc:         get(row, ColNDoc),
			Vendedor:     vendedor,
			Funcao:       get(row, ColFuncao),
			Produto:      produto,
			Descricao:    get(row, ColDescricao),
			Quantidade:   quantidade,
			ValorUnidade: valorUnidade,
			ValorTotal:   valorTotal,
		}

		if rawMes := get(row, ColMes); rawMes != "" {
			rec.Periodo = n.parsePeriod(rawMes)
			if rec.Periodo.IsZero() {
				ms.Dropped.UnparsablePeriods++
			}
		}

		if id := get(row, ColLojaID); id != "" {
			rec.LojaID, _ = strconv.Atoi(id)
		}
		rec.NomeLoja = n.opts.StoreName
		if rec.NomeLoja == "" {
			rec.NomeLoja = get(row, ColNomeLoja)
		}

		rec.StatusPreco = get(row, ColStatusPreco)
		if rec.StatusPreco == "" {
			if valorUnidade == 0 {
				rec.StatusPreco = model.PrecoSemCadastro
			} else {
				rec.StatusPreco = model.PrecoOK
			}
		}

		// cruzamento preço×quantidade: divergência acima da tolerância é
		// sinal de qualidade, nunca exclusão
		if valorUnidade > 0 {
			expected := valorUnidade * quantidade
			if math.Abs(valorTotal-expected) > n.opts.Tolerance {
				rec.Inconsistente = true
			}
		}

		ms.Records = append(ms.Records, rec)
	}

	if filter != "" && matched == 0 && len(mapped.Rows) > 0 {
		return nil, fmt.Errorf("%w: filtro %q", ErrNoMatchingRows, n.opts.StoreFilter)
	}

	return ms, nil
}

// parsePeriod extrai o período mensal aceitando o layout configurado,
// o rótulo canônico "2006-01" e o formato brasileiro "01/2006"
func (n *Normalizer) parsePeriod(s string) model.Period {
	for _, layout := range []string{n.opts.DateFormat, "2006-01", "01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return model.Period{Year: t.Year(), Month: int(t.Month())}
		}
	}
	return model.Period{}
}

// TableFromRecords reconstrói uma tabela canônica a partir de registros,
// no formato numérico indicado. Normalizar a saída novamente é um no-op.
func TableFromRecords(records []*model.SaleRecord, locale NumberFormat) *RawTable {
	t := &RawTable{
		Headers: []string{
			ColNDoc, ColMes, ColVendedor, ColFuncao, ColProduto, ColDescricao,
			ColQuantidade, ColValorUnidade, ColValorTotal,
			ColLojaID, ColNomeLoja, ColStatusPreco,
		},
	}
	for _, r := range records {
		lojaID := ""
		if r.LojaID != 0 {
			lojaID = strconv.Itoa(r.LojaID)
		}
		t.Rows = append(t.Rows, []string{
			r.NDoc, r.Periodo.Label(), r.Vendedor, r.Funcao, r.Produto, r.Descricao,
			locale.FormatNumber(r.Quantidade),
			locale.FormatNumber(r.ValorUnidade),
			locale.FormatNumber(r.ValorTotal),
			lojaID, r.NomeLoja, r.StatusPreco,
		})
	}
	return t
}
