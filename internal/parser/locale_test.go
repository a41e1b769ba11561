package parser

import "testing"

func TestParseNumber_Brazil(t *testing.T) {
	t.Parallel()

	cases := map[string]float64{
		"1.234,56":    1234.56,
		"1234,5":      1234.5,
		"R$ 1.000,00": 1000,
		"10":          10,
		"":            0,
		"abc":         0, // coerção: não parseável vira 0
		"12.345":      12345,
	}
	for in, want := range cases {
		if got := NumberFormatBrazil.ParseNumber(in); got != want {
			t.Fatalf("ParseNumber(%q) want=%v got=%v", in, want, got)
		}
	}
}

func TestParseNumber_Plain(t *testing.T) {
	t.Parallel()

	cases := map[string]float64{
		"1,234.56": 1234.56,
		"1234.5":   1234.5,
		"10":       10,
		"x":        0,
	}
	for in, want := range cases {
		if got := NumberFormatPlain.ParseNumber(in); got != want {
			t.Fatalf("ParseNumber(%q) want=%v got=%v", in, want, got)
		}
	}
}

func TestFormatNumber_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{0, 10, 1234.56, 0.1} {
		s := NumberFormatBrazil.FormatNumber(v)
		if got := NumberFormatBrazil.ParseNumber(s); got != v {
			t.Fatalf("round trip %v -> %q -> %v", v, s, got)
		}
	}
}

func TestNormalizeColumnName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"  Preço Unitário ": "preco_unitario",
		"Valor\nTotal":      "valor_total",
		"DESCRIÇÃO":         "descricao",
		"Nº Doc":            "n_doc",
		"mes":               "mes",
	}
	for in, want := range cases {
		if got := NormalizeColumnName(in); got != want {
			t.Fatalf("NormalizeColumnName(%q) want=%q got=%q", in, want, got)
		}
	}
}

func TestMapColumns_DesconhecidasPassamIntactas(t *testing.T) {
	t.Parallel()

	mapped := MapColumns(&RawTable{Headers: []string{"Consultor", "Coluna Exótica"}})
	if mapped.Headers[0] != ColVendedor {
		t.Fatalf("want %q got %q", ColVendedor, mapped.Headers[0])
	}
	if mapped.Headers[1] != "Coluna Exótica" {
		t.Fatalf("unknown column must pass through, got %q", mapped.Headers[1])
	}
}
