package store

import (
	"fmt"

	"github.com/ArthurRLA/dashboard-px/internal/model"
)

// ListGrupos lista os grupos organizacionais com contagens agregadas
func (s *Store) ListGrupos() ([]model.GrupoConfig, error) {
	rows, err := s.db.Query(`
		SELECT
			g.id,
			g.nome,
			COUNT(DISTINCT c.id),
			COUNT(sa.id)
		FROM groups g
		LEFT JOIN customer c ON c.grupo_id = g.id
		LEFT JOIN sale sa    ON sa.customer_id = c.id
		GROUP BY g.id, g.nome
		ORDER BY g.nome
	`)
	if err != nil {
		return nil, fmt.Errorf("query groups failed: %w", err)
	}
	defer rows.Close()

	var out []model.GrupoConfig
	for rows.Next() {
		var g model.GrupoConfig
		if err := rows.Scan(&g.ID, &g.Nome, &g.TotalLojas, &g.TotalVendas); err != nil {
			return nil, fmt.Errorf("scan groups failed: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups failed: %w", err)
	}
	return out, nil
}

// ListLojas lista as lojas com seu grupo e volume de vendas
func (s *Store) ListLojas() ([]model.LojaConfig, error) {
	rows, err := s.db.Query(`
		SELECT
			c.id,
			c.nome_fantasia,
			COALESCE(c.cnpj, ''),
			COALESCE(c.grupo_id, 0),
			COALESCE(g.nome, ''),
			COUNT(sa.id)
		FROM customer c
		LEFT JOIN groups g ON g.id = c.grupo_id
		LEFT JOIN sale sa  ON sa.customer_id = c.id
		GROUP BY c.id, c.nome_fantasia, c.cnpj, c.grupo_id, g.nome
		ORDER BY c.nome_fantasia
	`)
	if err != nil {
		return nil, fmt.Errorf("query lojas failed: %w", err)
	}
	defer rows.Close()

	var out []model.LojaConfig
	for rows.Next() {
		var l model.LojaConfig
		if err := rows.Scan(&l.ID, &l.Nome, &l.CNPJ, &l.GrupoID, &l.Grupo, &l.TotalVendas); err != nil {
			return nil, fmt.Errorf("scan lojas failed: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lojas failed: %w", err)
	}
	return out, nil
}

// ShopHierarchy monta a hierarquia Grupo -> Loja dos filtros do dashboard.
// Lojas sem grupo entram sob "Sem Grupo".
func (s *Store) ShopHierarchy() (model.ShopConfig, error) {
	lojas, err := s.ListLojas()
	if err != nil {
		return nil, err
	}

	cfg := make(model.ShopConfig)
	for _, l := range lojas {
		grupo := l.Grupo
		if grupo == "" {
			grupo = "Sem Grupo"
		}
		if _, ok := cfg[grupo]; !ok {
			cfg[grupo] = make(map[string]model.LojaConfig)
		}
		cfg[grupo][l.Nome] = l
	}
	return cfg, nil
}

// DateRange devolve o menor e o maior período com vendas registradas
func (s *Store) DateRange() (min, max model.Period, err error) {
	var minStr, maxStr string
	row := s.db.QueryRow(`SELECT COALESCE(MIN(mes), ''), COALESCE(MAX(mes), '') FROM sale`)
	if err := row.Scan(&minStr, &maxStr); err != nil {
		return model.Period{}, model.Period{}, fmt.Errorf("query date range failed: %w", err)
	}
	return parsePeriodDate(minStr), parsePeriodDate(maxStr), nil
}

// StatusCounts contagens gerais exibidas no endpoint de status
type StatusCounts struct {
	Lojas      int `json:"lojas"`
	Vendas     int `json:"vendas"`
	Produtos   int `json:"produtos"`
	Incentivos int `json:"incentivos"`
}

// Status devolve as contagens gerais do banco
func (s *Store) Status() (StatusCounts, error) {
	var c StatusCounts
	row := s.db.QueryRow(`
		SELECT
			(SELECT COUNT(1) FROM customer),
			(SELECT COUNT(1) FROM sale),
			(SELECT COUNT(1) FROM product),
			(SELECT COUNT(1) FROM incentive)
	`)
	if err := row.Scan(&c.Lojas, &c.Vendas, &c.Produtos, &c.Incentivos); err != nil {
		return StatusCounts{}, fmt.Errorf("query status failed: %w", err)
	}
	return c, nil
}
