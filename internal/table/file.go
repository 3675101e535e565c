package table

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/nfa2dfa/internal/nfaerrors"
)

// FileInfo contains the header every table file must have. It can be obtained
// from a file by reading it into memory and calling ScanFileInfo on the bytes.
type FileInfo struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

// topLevelTable is the complete structure of a TABLE type file.
type topLevelTable struct {
	Format      string    `toml:"format"`
	Type        string    `toml:"type"`
	Start       string    `toml:"start"`
	Symbols     []string  `toml:"symbols"`
	SymbolCount int       `toml:"symbol_count"`
	Rows        []tomlRow `toml:"row"`
}

type tomlRow struct {
	State string   `toml:"state"`
	Moves []string `toml:"moves"`
}

// LoadFile reads a table from a TOML table file at the given path. The table
// is not normalized; call Normalize on the result to get an NFA.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("%q: reading from disk: %w", path, err)
	}

	t, err := Parse(data)
	if err != nil {
		return Table{}, fmt.Errorf("%q: %w", path, err)
	}
	return t, nil
}

// Parse reads a table from the bytes of a TOML table file. The file must begin
// with format = "NFA" and type = "TABLE", and give the alphabet with either a
// symbols list or a symbol_count (or both, if they agree). Each [[row]] gives a
// state and its moves, with the epsilon column last.
func Parse(data []byte) (Table, error) {
	info, err := ScanFileInfo(data)
	if err != nil {
		return Table{}, fmt.Errorf("detecting file type: %w", err)
	}
	if strings.ToUpper(info.Format) != "NFA" {
		return Table{}, fmt.Errorf("file does not have a 'format = \"NFA\"' entry")
	}
	if strings.ToUpper(info.Type) != "TABLE" {
		return Table{}, fmt.Errorf("unsupported file type %q; only \"TABLE\" is supported", info.Type)
	}

	var tl topLevelTable
	if _, err := toml.Decode(string(data), &tl); err != nil {
		return Table{}, nfaerrors.New(err.Error(), nfaerrors.ErrBadArgument)
	}

	symbols, err := ResolveSymbols(tl.Symbols, tl.SymbolCount)
	if err != nil {
		return Table{}, err
	}

	t := Table{
		Symbols: symbols,
		Start:   tl.Start,
		Rows:    make([]Row, len(tl.Rows)),
	}
	for i := range tl.Rows {
		t.Rows[i] = Row{
			State: tl.Rows[i].State,
			Cells: tl.Rows[i].Moves,
		}
	}

	return t, nil
}

// ScanFileInfo reads the common header from the given bytes of a table file.
// Only the top-level table, up to the first table or array-of-tables header,
// is parsed.
func ScanFileInfo(data []byte) (FileInfo, error) {
	var topLevelEnd int = -1
	onNewLine := true
	for b := range data {
		if onNewLine {
			if data[b] == '[' {
				topLevelEnd = b
				break
			}
		}

		if data[b] == '\n' {
			onNewLine = true
		} else if !unicode.IsSpace(rune(data[b])) {
			onNewLine = false
		}
	}

	scanData := data
	if topLevelEnd != -1 {
		scanData = data[:topLevelEnd]
	}

	var info FileInfo
	err := toml.Unmarshal(scanData, &info)
	return info, err
}
