package parser

import (
	"errors"
	"testing"
)

func tabelaVendas() *RawTable {
	return &RawTable{
		Headers: []string{"N_Doc", "Mês", "Consultor", "Código", "Descrição", "Quantidade", "Preço Unitário", "Valor Total", "Loja"},
		Rows: [][]string{
			{"OS-1", "2025-04-01", "Ana", "P1", "Filtro de óleo", "10", "10,00", "100,00", "Loja A - Castelo"},
			{"OS-2", "2025-04-01", "Bruno", "P2", "Pastilha", "5", "12,00", "60,00", "Loja B - Centro"},
		},
	}
}

func TestNormalize_TabelaCompleta(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(Options{})
	ms, err := n.Normalize(tabelaVendas())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms.Len() != 2 {
		t.Fatalf("want 2 records, got %d", ms.Len())
	}

	r := ms.Records[0]
	if r.Vendedor != "Ana" || r.Produto != "P1" {
		t.Fatalf("unexpected record: %+v", r)
	}
	if r.Quantidade != 10 || r.ValorTotal != 100 {
		t.Fatalf("numeric coercion failed: qtd=%v total=%v", r.Quantidade, r.ValorTotal)
	}
	if r.Periodo.Year != 2025 || r.Periodo.Month != 4 {
		t.Fatalf("unexpected period: %+v", r.Periodo)
	}
	if r.Inconsistente {
		t.Fatalf("10 x 10,00 = 100,00 should be consistent")
	}
}

func TestNormalize_SchemaMismatch(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(Options{})
	_, err := n.Normalize(&RawTable{
		Headers: []string{"Consultor", "Quantidade"},
		Rows:    [][]string{{"Ana", "1"}},
	})
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("want ErrSchemaMismatch, got %v", err)
	}
}

func TestNormalize_DescartaLinhasInvalidas(t *testing.T) {
	t.Parallel()

	raw := tabelaVendas()
	raw.Rows = append(raw.Rows,
		[]string{"OS-3", "2025-04-01", "", "P3", "x", "2", "1,00", "2,00", "Loja A"},     // sem vendedor
		[]string{"OS-4", "2025-04-01", "Caio", "", "x", "2", "1,00", "2,00", "Loja A"},   // sem produto
		[]string{"OS-5", "2025-04-01", "Caio", "P5", "x", "0", "1,00", "0,00", "Loja A"}, // quantidade zero
		[]string{"OS-6", "2025-04-01", "Caio", "P6", "x", "-3", "1,00", "0,00", "Loja A"},
	)

	n := NewNormalizer(Options{})
	ms, err := n.Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms.Len() != 2 {
		t.Fatalf("want 2 retained records, got %d", ms.Len())
	}
	if ms.Dropped.MissingRequired != 2 {
		t.Fatalf("want 2 missing-required drops, got %d", ms.Dropped.MissingRequired)
	}
	if ms.Dropped.InvalidQuantity != 2 {
		t.Fatalf("want 2 invalid-quantity drops, got %d", ms.Dropped.InvalidQuantity)
	}
}

func TestNormalize_FiltroLoja(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(Options{StoreFilter: "castelo"})
	ms, err := n.Normalize(tabelaVendas())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms.Len() != 1 || ms.Records[0].Vendedor != "Ana" {
		t.Fatalf("filter should keep only Loja A rows: %+v", ms.Records)
	}
}

func TestNormalize_FiltroSemMatch(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(Options{StoreFilter: "inexistente"})
	_, err := n.Normalize(tabelaVendas())
	if !errors.Is(err, ErrNoMatchingRows) {
		t.Fatalf("want ErrNoMatchingRows, got %v", err)
	}
}

func TestNormalize_CruzamentoForaDaTolerancia(t *testing.T) {
	t.Parallel()

	raw := &RawTable{
		Headers: []string{"Vendedor", "Produto", "Quantidade", "Valor_Unidade", "Valor_Total"},
		Rows: [][]string{
			// declarado 100,00 mas 9,00 x 10 = 90,00 (diff 10,00 > 0,10)
			{"Ana", "P1", "10", "9,00", "100,00"},
		},
	}

	n := NewNormalizer(Options{})
	ms, err := n.Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms.Len() != 1 {
		t.Fatalf("inconsistent row must be retained, got %d records", ms.Len())
	}
	if !ms.Records[0].Inconsistente {
		t.Fatalf("row should be flagged as inconsistent")
	}
}

func TestNormalize_PeriodoInvalidoMantemLinha(t *testing.T) {
	t.Parallel()

	raw := &RawTable{
		Headers: []string{"Vendedor", "Produto", "Quantidade", "Valor_Total", "Mes"},
		Rows:    [][]string{{"Ana", "P1", "1", "5,00", "data-quebrada"}},
	}

	n := NewNormalizer(Options{})
	ms, err := n.Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms.Len() != 1 {
		t.Fatalf("row with unparsable period must be retained")
	}
	if !ms.Records[0].Periodo.IsZero() {
		t.Fatalf("period should be zero, got %+v", ms.Records[0].Periodo)
	}
	if ms.Dropped.UnparsablePeriods != 1 {
		t.Fatalf("want 1 unparsable period, got %d", ms.Dropped.UnparsablePeriods)
	}
}

func TestNormalize_Idempotente(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(Options{})
	first, err := n.Normalize(tabelaVendas())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	canonical := TableFromRecords(first.Records, NumberFormatBrazil)
	second, err := n.Normalize(canonical)
	if err != nil {
		t.Fatalf("re-normalize error: %v", err)
	}

	if second.Len() != first.Len() {
		t.Fatalf("idempotence broken: %d != %d", second.Len(), first.Len())
	}
	for i := range first.Records {
		a, b := first.Records[i], second.Records[i]
		if *a != *b {
			t.Fatalf("record %d changed on re-normalize:\n %+v\n %+v", i, a, b)
		}
	}
}
