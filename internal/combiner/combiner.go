package combiner

import (
	"errors"
	"fmt"

	"github.com/ArthurRLA/dashboard-px/internal/model"
	"github.com/ArthurRLA/dashboard-px/internal/parser"
)

// ErrNoData nenhuma fonte rendeu dados; é a única falha global do combinador
var ErrNoData = errors.New("sem dados para os filtros selecionados")

// SourceKind tipo da fonte de dados
type SourceKind string

const (
	KindCSV   SourceKind = "csv"
	KindXLSX  SourceKind = "xlsx"
	KindTable SourceKind = "table" // resultado SQL já carregado em memória
)

// Source descritor de uma fonte por loja
type Source struct {
	Kind     SourceKind
	Path     string           // arquivo, para csv/xlsx
	Sheet    string           // seletor de sheet, para xlsx
	Table    *parser.RawTable // tabela pré-carregada, para table
	NomeLoja string           // identidade da loja gravada nos registros
	Filtro   string           // filtro de substring sobre a coluna de loja/cliente

	// Locale sobrepõe a estratégia numérica base para esta fonte
	// (resultados SQL são "plain", arquivos brasileiros "pt-br")
	Locale parser.NumberFormat
}

// label nome da fonte para fins de warning. Fontes sem loja configurada
// (resultados SQL, que carregam a loja por coluna) são nomeadas pelo tipo.
func (s Source) label() string {
	if s.NomeLoja != "" {
		return s.NomeLoja
	}
	if s.Path != "" {
		return s.Path
	}
	return "fonte " + string(s.Kind)
}

// Warning fonte pulada e o motivo
type Warning struct {
	NomeLoja string `json:"nomeLoja"`
	Motivo   string `json:"motivo"`
}

// Combiner normaliza cada fonte de forma independente e concatena tudo em
// um conjunto mestre, preservando a ordem fonte a fonte. Nunca deduplica.
type Combiner struct {
	opts parser.Options
}

// New cria um combinador com as opções base de normalização
func New(opts parser.Options) *Combiner {
	return &Combiner{opts: opts}
}

// Combine carrega e normaliza as fontes na ordem dada. Fontes que falham
// (arquivo ausente, esquema inválido, filtro sem match) viram warnings;
// a operação só falha quando NENHUMA fonte rende dados.
func (c *Combiner) Combine(sources []Source) (*model.MasterSet, []Warning, error) {
	master := &model.MasterSet{}
	var warnings []Warning

	for _, src := range sources {
		ms, err := c.loadOne(src)
		if err != nil {
			warnings = append(warnings, Warning{NomeLoja: src.label(), Motivo: err.Error()})
			continue
		}
		if ms.Len() == 0 {
			warnings = append(warnings, Warning{NomeLoja: src.label(), Motivo: "fonte sem linhas aproveitáveis"})
			// contadores de descarte contam mesmo sem registros retidos
			master.Dropped.Add(ms.Dropped)
			continue
		}
		master.Append(ms)
	}

	if master.Len() == 0 {
		return nil, warnings, ErrNoData
	}
	return master, warnings, nil
}

// loadOne carrega e normaliza uma única fonte
func (c *Combiner) loadOne(src Source) (*model.MasterSet, error) {
	var (
		raw *parser.RawTable
		err error
	)
	switch src.Kind {
	case KindCSV:
		raw, err = parser.ReadCSV(src.Path)
	case KindXLSX:
		raw, err = parser.ReadXLSX(src.Path, src.Sheet)
	case KindTable:
		raw = src.Table
	default:
		return nil, fmt.Errorf("tipo de fonte desconhecido: %q", src.Kind)
	}
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, parser.ErrSourceUnavailable
	}

	opts := c.opts
	opts.StoreName = src.NomeLoja
	opts.StoreFilter = src.Filtro
	if src.Locale != "" {
		opts.Locale = src.Locale
	}
	return parser.NewNormalizer(opts).Normalize(raw)
}
