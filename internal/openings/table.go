// Package openings maps ECO classification codes to opening names.
package openings

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// UnknownOpening labels games with neither an opening name nor a code.
const UnknownOpening = "Unknown Opening"

//go:embed data/eco.csv
var builtinCSV []byte

// Table is an immutable code -> name lookup. Build it once at startup and
// share it; nothing mutates it afterwards.
type Table struct {
	names map[string]string
}

// Builtin returns the table shipped with the binary.
func Builtin() (*Table, error) {
	return Parse(bytes.NewReader(builtinCSV))
}

// Load reads a table from a CSV file on disk. An empty path means Builtin.
func Load(path string) (*Table, error) {
	if path == "" {
		return Builtin()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open openings table: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads CSV with an "ECO Code" and a "Name" column. Rows missing
// either value are ignored; later rows win on duplicate codes.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read openings header: %w", err)
	}
	codeCol, nameCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "eco code", "eco", "code":
			codeCol = i
		case "name", "opening":
			nameCol = i
		}
	}
	if codeCol < 0 || nameCol < 0 {
		return nil, fmt.Errorf("openings table needs code and name columns, got %v", header)
	}

	names := map[string]string{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read openings row: %w", err)
		}
		if codeCol >= len(row) || nameCol >= len(row) {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(row[codeCol]))
		name := strings.TrimSpace(row[nameCol])
		if code != "" && name != "" {
			names[code] = name
		}
	}
	return &Table{names: names}, nil
}

// FromMap builds a table from literal pairs.
func FromMap(m map[string]string) *Table {
	names := make(map[string]string, len(m))
	for k, v := range m {
		names[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return &Table{names: names}
}

// Len returns the number of codes in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// Lookup returns the name registered for code.
func (t *Table) Lookup(code string) (string, bool) {
	if t == nil {
		return "", false
	}
	name, ok := t.names[strings.ToUpper(strings.TrimSpace(code))]
	return name, ok
}

// Identify names a game's opening: an explicit name wins, then the table,
// then a generic label for an unlisted code, then UnknownOpening.
func (t *Table) Identify(name, code string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || code == "?" {
		return UnknownOpening
	}
	if found, ok := t.Lookup(code); ok {
		return found
	}
	return "Opening ECO " + code
}
