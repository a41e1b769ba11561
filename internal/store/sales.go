package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ArthurRLA/dashboard-px/internal/model"
	"github.com/ArthurRLA/dashboard-px/internal/parser"
)

// periodDate converte um período para a forma armazenada ('YYYY-MM-01')
func periodDate(p model.Period) string {
	return fmt.Sprintf("%04d-%02d-01", p.Year, p.Month)
}

// parsePeriodDate converte a forma armazenada de volta para período
func parsePeriodDate(s string) model.Period {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return model.Period{}
	}
	return model.Period{Year: t.Year(), Month: int(t.Month())}
}

// SalesTable consulta as vendas das lojas no intervalo [inicio, fim] e
// devolve uma tabela bruta no mesmo formato das fontes de arquivo, para
// que o pipeline de normalização trate banco e arquivo por igual.
// O valor total é derivado de quantidade × preço cadastrado; produtos sem
// preço saem com valor 0 e status SEM_PRECO.
func (s *Store) SalesTable(lojaIDs []int, inicio, fim model.Period) (*parser.RawTable, error) {
	if len(lojaIDs) == 0 {
		return nil, fmt.Errorf("sales query: %w", parser.ErrNoMatchingRows)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(lojaIDs)), ",")
	query := fmt.Sprintf(`
		SELECT
			sa.n_doc,
			sa.mes,
			sa.quantidade,
			COALESCE(e.funcao, ''),
			COALESCE(e.nome, ''),
			p.codigo,
			COALESCE(p.descricao, ''),
			COALESCE(tp.preco, 0),
			sa.quantidade * COALESCE(tp.preco, 0),
			c.id,
			c.nome_fantasia,
			CASE WHEN tp.preco IS NULL THEN '%s' ELSE '%s' END
		FROM sale sa
		JOIN customer c        ON c.id = sa.customer_id
		JOIN product p         ON p.id = sa.product_id
		LEFT JOIN employee e   ON e.id = sa.employee_id
		LEFT JOIN table_price tp ON tp.product_id = sa.product_id
		WHERE c.id IN (%s) AND sa.mes BETWEEN ? AND ?
		ORDER BY sa.mes, sa.n_doc, sa.id
	`, model.PrecoSemCadastro, model.PrecoOK, placeholders)

	args := make([]interface{}, 0, len(lojaIDs)+2)
	for _, id := range lojaIDs {
		args = append(args, id)
	}
	args = append(args, periodDate(inicio), periodDate(fim))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sales failed: %w", err)
	}
	defer rows.Close()

	table := &parser.RawTable{
		Headers: []string{
			"N_Doc", "Mes", "Quantidade", "Funcao", "Vendedor",
			"Produto", "Descricao", "Valor_Unidade", "Valor_Total",
			"Loja_ID", "Nome_Loja", "Status_Preco",
		},
	}

	for rows.Next() {
		var (
			nDoc, mes, funcao, vendedor, produto, descricao, nomeLoja, status string
			quantidade, valorUnidade, valorTotal                              float64
			lojaID                                                            int
		)
		if err := rows.Scan(&nDoc, &mes, &quantidade, &funcao, &vendedor,
			&produto, &descricao, &valorUnidade, &valorTotal, &lojaID, &nomeLoja, &status); err != nil {
			return nil, fmt.Errorf("scan sales failed: %w", err)
		}
		table.Rows = append(table.Rows, []string{
			nDoc, mes,
			strconv.FormatFloat(quantidade, 'f', -1, 64),
			funcao, vendedor, produto, descricao,
			strconv.FormatFloat(valorUnidade, 'f', -1, 64),
			strconv.FormatFloat(valorTotal, 'f', -1, 64),
			strconv.Itoa(lojaID), nomeLoja, status,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales failed: %w", err)
	}
	return table, nil
}
