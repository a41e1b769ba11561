package store

import (
	"fmt"
	"strings"

	"github.com/ArthurRLA/dashboard-px/internal/model"
)

// normalizeFuncaoList reescreve a lista do GROUP_CONCAT ("A,B") na forma
// de exibição "A / B"
func normalizeFuncaoList(s string) string {
	var clean []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			clean = append(clean, part)
		}
	}
	return strings.Join(clean, " / ")
}

// IncentivesByEmployee totaliza os incentivos por premiado no intervalo.
// Premiados com mais de uma função aparecem uma vez, com as funções
// concatenadas ("Vendedor / Gerente").
func (s *Store) IncentivesByEmployee(inicio, fim model.Period) ([]model.IncentiveByEmployee, error) {
	rows, err := s.db.Query(`
		SELECT
			MIN(e.id),
			e.nome,
			COALESCE(GROUP_CONCAT(DISTINCT e.funcao), ''),
			COALESCE(MIN(c.nome_fantasia), ''),
			SUM(i.valor),
			COUNT(i.id)
		FROM incentive i
		JOIN employee e     ON e.id = i.employee_id
		LEFT JOIN customer c ON c.id = e.customer_id
		WHERE i.mes BETWEEN ? AND ?
		GROUP BY e.nome
		ORDER BY SUM(i.valor) DESC, e.nome
	`, periodDate(inicio), periodDate(fim))
	if err != nil {
		return nil, fmt.Errorf("query incentives by employee failed: %w", err)
	}
	defer rows.Close()

	var out []model.IncentiveByEmployee
	for rows.Next() {
		var it model.IncentiveByEmployee
		if err := rows.Scan(&it.EmployeeID, &it.Vendedor, &it.Funcao, &it.Loja,
			&it.ValorTotalIncentivos, &it.QuantidadeIncentivos); err != nil {
			return nil, fmt.Errorf("scan incentives by employee failed: %w", err)
		}
		it.Funcao = normalizeFuncaoList(it.Funcao)
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate incentives by employee failed: %w", err)
	}
	return out, nil
}

// IncentivesByMonth totaliza os incentivos por premiado e mês no intervalo
func (s *Store) IncentivesByMonth(inicio, fim model.Period) ([]model.IncentiveByMonth, error) {
	rows, err := s.db.Query(`
		SELECT
			MIN(e.id),
			e.nome,
			i.mes,
			SUM(i.valor),
			COUNT(i.id)
		FROM incentive i
		JOIN employee e ON e.id = i.employee_id
		WHERE i.mes BETWEEN ? AND ?
		GROUP BY e.nome, i.mes
		ORDER BY i.mes, e.nome
	`, periodDate(inicio), periodDate(fim))
	if err != nil {
		return nil, fmt.Errorf("query incentives by month failed: %w", err)
	}
	defer rows.Close()

	var out []model.IncentiveByMonth
	for rows.Next() {
		var (
			it  model.IncentiveByMonth
			mes string
		)
		if err := rows.Scan(&it.EmployeeID, &it.Vendedor, &mes, &it.ValorMes, &it.QuantidadeMes); err != nil {
			return nil, fmt.Errorf("scan incentives by month failed: %w", err)
		}
		it.Mes = parsePeriodDate(mes)
		it.MesDisplay = it.Mes.Label()
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate incentives by month failed: %w", err)
	}
	return out, nil
}
