package api

import (
	"github.com/dekarrin/nfa2dfa/internal/render"
	"github.com/dekarrin/nfa2dfa/internal/table"
)

// note that these are *not* the internal table or automaton types. Rather these
// are the models that are received from and sent to the client.

// ConversionRequest is a raw NFA transition table sent for conversion. Either
// Symbols or SymbolCount must be given; if only SymbolCount is, the symbols are
// named a, b, c, and so on.
type ConversionRequest struct {
	Start       string     `json:"start,omitempty"`
	Symbols     []string   `json:"symbols,omitempty"`
	SymbolCount int        `json:"symbol_count,omitempty"`
	Rows        []RowModel `json:"rows"`
}

// RowModel is one row of a ConversionRequest. Moves has one cell per symbol
// followed by the epsilon cell.
type RowModel struct {
	State string   `json:"state"`
	Moves []string `json:"moves"`
}

// ConversionModel is a converted DFA along with the ID of the request that
// converted it.
type ConversionModel struct {
	RequestID string `json:"request_id,omitempty"`
	render.Model
}

// InfoModel holds version info on the API and server.
type InfoModel struct {
	Version struct {
		Server  string `json:"server"`
		NFA2DFA string `json:"nfa2dfa"`
	} `json:"version"`
	Limits struct {
		MaxStates int `json:"max_states"`
	} `json:"limits"`
}

// toTable gives the table described by req. Symbols are resolved from the
// symbol list or count.
func (req ConversionRequest) toTable() (table.Table, error) {
	symbols, err := table.ResolveSymbols(req.Symbols, req.SymbolCount)
	if err != nil {
		return table.Table{}, err
	}

	t := table.Table{
		Symbols: symbols,
		Start:   req.Start,
		Rows:    make([]table.Row, len(req.Rows)),
	}
	for i := range req.Rows {
		t.Rows[i] = table.Row{State: req.Rows[i].State, Cells: req.Rows[i].Moves}
	}

	return t, nil
}
