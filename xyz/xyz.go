// Package xyz reads and writes molecules in the XYZ coordinate format.
//
// An XYZ file starts with the number of atoms on the first line and a free
// form title on the second. Each following line holds an atom label and
// three coordinates:
//
//	3
//	water
//	O   0.00000   0.00000   0.11779
//	H   0.00000   0.75545  -0.47116
//	H   0.00000  -0.75545  -0.47116
package xyz

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/calculate-rmsd/rmsd"
)

// DefaultPrecision is the number of decimals Write uses when given a
// precision below 1.
const DefaultPrecision = 5

// ErrFormat is matched (with errors.Is) by every *FormatError.
var ErrFormat = errors.New("xyz: malformed input")

var (
	// An atom label is the first run of letters on a line.
	labelPattern = regexp.MustCompile(`[A-Za-z]+`)

	// Coordinates must contain a decimal point, which lets integer columns
	// (atom indices, charges) sit next to them without being mistaken for
	// coordinates.
	numberPattern = regexp.MustCompile(`[-+]?\d+\.\d*(?:[eE][-+]?\d+)?`)
)

// FormatError describes a line of XYZ input that could not be understood.
// Line numbers start at 1.
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("xyz: line %d: %s", e.Line, e.Msg)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// Molecule is a titled list of atoms. Atoms and Coords are paired by index
// and always have the same length.
type Molecule struct {
	Title  string
	Atoms  []string
	Coords []rmsd.Coords
}

// ReadFile reads a molecule from the file at path. If the file name ends
// with ".gz", gzip decompression will be used.
func ReadFile(path string) (*Molecule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.EqualFold(filepath.Ext(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	}
	return Read(reader)
}

// Read reads a single molecule. Lines after the declared number of atoms are
// ignored.
//
// A *FormatError is returned if the atom count is not an integer, if the
// title line is missing, if an atom line does not have a label and exactly
// three coordinates, or if there are fewer atom lines than declared.
func Read(r io.Reader) (*Molecule, error) {
	scanner := bufio.NewScanner(r)
	lineno := 0
	next := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		lineno++
		return scanner.Text(), true
	}

	line, ok := next()
	if !ok {
		return nil, readErr(scanner, 1, "missing the number of atoms")
	}
	count, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || count < 0 {
		return nil, &FormatError{1, fmt.Sprintf(
			"could not obtain the number of atoms from '%s'",
			strings.TrimSpace(line))}
	}

	title, ok := next()
	if !ok {
		return nil, readErr(scanner, 2, "missing the title line")
	}

	// Don't trust a huge count with a huge allocation.
	capacity := count
	if capacity > 1<<16 {
		capacity = 1 << 16
	}
	mol := &Molecule{
		Title:  strings.TrimSpace(title),
		Atoms:  make([]string, 0, capacity),
		Coords: make([]rmsd.Coords, 0, capacity),
	}
	for len(mol.Coords) < count {
		line, ok := next()
		if !ok {
			return nil, readErr(scanner, lineno+1, fmt.Sprintf(
				"expected %d atoms but found %d", count, len(mol.Coords)))
		}
		atom, coords, err := parseAtom(line)
		if err != nil {
			return nil, &FormatError{lineno, err.Error()}
		}
		mol.Atoms = append(mol.Atoms, atom)
		mol.Coords = append(mol.Coords, coords)
	}
	return mol, nil
}

// readErr prefers an I/O error from the scanner over a format error about
// running out of input.
func readErr(scanner *bufio.Scanner, line int, msg string) error {
	if err := scanner.Err(); err != nil {
		return err
	}
	return &FormatError{line, msg}
}

func parseAtom(line string) (string, rmsd.Coords, error) {
	loc := labelPattern.FindStringIndex(line)
	if loc == nil {
		return "", rmsd.Coords{}, fmt.Errorf("missing atom label in '%s'",
			strings.TrimSpace(line))
	}
	atom := line[loc[0]:loc[1]]

	numbers := numberPattern.FindAllString(line[loc[1]:], -1)
	if len(numbers) != 3 {
		return "", rmsd.Coords{}, fmt.Errorf(
			"expected 3 coordinates but found %d in '%s'",
			len(numbers), strings.TrimSpace(line))
	}
	var coords rmsd.Coords
	for i, s := range numbers {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return "", rmsd.Coords{}, fmt.Errorf(
				"could not parse coordinate '%s': %s", s, err)
		}
		coords[i] = f
	}
	return atom, coords, nil
}

// Write writes mol in XYZ format with the given number of decimals per
// coordinate. A precision below 1 means DefaultPrecision, since Read needs
// a decimal point in every coordinate.
func Write(w io.Writer, mol *Molecule, precision int) error {
	if len(mol.Atoms) != len(mol.Coords) {
		return fmt.Errorf("xyz: %d atom labels for %d coordinates",
			len(mol.Atoms), len(mol.Coords))
	}
	if precision < 1 {
		precision = DefaultPrecision
	}

	// A newline in the title would shift every atom line by one.
	title := strings.Join(strings.Fields(mol.Title), " ")

	buf := bufio.NewWriter(w)
	fmt.Fprintf(buf, "%d\n%s\n", len(mol.Coords), title)
	for i, c := range mol.Coords {
		fmt.Fprintf(buf, "%-2s %15.*f %15.*f %15.*f\n", mol.Atoms[i],
			precision, c[0], precision, c[1], precision, c[2])
	}
	return buf.Flush()
}
