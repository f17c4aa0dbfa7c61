// Package pdb reads atom coordinates from PDB files.
//
// Only ATOM and HETATM records of the first model are read. Every record
// becomes one atom, labeled by its element symbol.
package pdb

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/BurntSushi/calculate-rmsd/rmsd"
	"github.com/BurntSushi/calculate-rmsd/xyz"
)

// ErrFormat is matched (with errors.Is) by every *FormatError.
var ErrFormat = errors.New("pdb: malformed input")

// FormatError describes a record that could not be understood. Line numbers
// start at 1.
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("pdb: line %d: %s", e.Line, e.Msg)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// ReadFile reads the atoms of a PDB file. If the file name ends with ".gz",
// gzip decompression will be used.
func ReadFile(fileName string) (*xyz.Molecule, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.EqualFold(filepath.Ext(fileName), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	}
	return Read(reader)
}

// Read reads the atoms of the first model in a PDB file. The title of the
// molecule is the ID code of the HEADER record, if there is one.
//
// A *FormatError is returned if a record cannot be parsed or if the first
// model has no atoms at all.
func Read(r io.Reader) (*xyz.Molecule, error) {
	mol := &xyz.Molecule{}

	// Now traverse each line, and process it according to the record name.
	scanner := bufio.NewScanner(r)
	lineno := 0
records:
	for scanner.Scan() {
		lineno++
		line := scanner.Text()

		// The record name is always in the first six columns.
		switch strings.TrimSpace(column(line, 0, 6)) {
		case "HEADER":
			mol.Title = strings.TrimSpace(column(line, 62, 66))
		case "ATOM", "HETATM":
			atom, coords, err := parseAtom(line)
			if err != nil {
				return nil, &FormatError{lineno, err.Error()}
			}
			mol.Atoms = append(mol.Atoms, atom)
			mol.Coords = append(mol.Coords, coords)
		case "ENDMDL", "END":
			break records
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(mol.Coords) == 0 {
		return nil, &FormatError{lineno, "no ATOM or HETATM records"}
	}
	return mol, nil
}

// parseAtom reads the element and coordinates of an ATOM or HETATM record.
func parseAtom(line string) (string, rmsd.Coords, error) {
	var coords rmsd.Coords

	// X, Y and Z are in columns 31-38, 39-46 and 47-54.
	for i := 0; i < 3; i++ {
		start := 30 + 8*i
		field := strings.TrimSpace(column(line, start, start+8))
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return "", coords, fmt.Errorf(
				"could not parse coordinate '%s' in columns %d-%d",
				field, start+1, start+8)
		}
		coords[i] = f
	}

	// The element symbol is in columns 77-78. Older files leave it out, in
	// which case the atom name in columns 13-16 starts with the element.
	element := strings.TrimSpace(column(line, 76, 78))
	if element == "" {
		name := strings.TrimLeftFunc(column(line, 12, 16), func(r rune) bool {
			return !unicode.IsLetter(r)
		})
		if name == "" {
			return "", coords, fmt.Errorf("missing element and atom name")
		}
		element = name[:1]
	}
	return strings.ToUpper(element[:1]) + strings.ToLower(element[1:]),
		coords, nil
}

// column returns line[start:end], cut short if the line is.
func column(line string, start, end int) string {
	if start >= len(line) {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return line[start:end]
}
