package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BurntSushi/calculate-rmsd/cmd/util"
	"github.com/BurntSushi/calculate-rmsd/pdb"
	"github.com/BurntSushi/calculate-rmsd/rmsd"
	"github.com/BurntSushi/calculate-rmsd/xyz"
)

const (
	exitFailure = 1
	exitUsage   = 2
	exitFormat  = 3
	exitShape   = 4
)

var (
	flagOutput    = false
	flagOptimizer = "descent"
	flagPrecision = xyz.DefaultPrecision
	flagFormat    = "auto"
)

// fitter is the signature shared by the translation searches.
type fitter func(p, q []rmsd.Coords) (*rmsd.FitResult, error)

var fitters = map[string]fitter{
	"descent": func(p, q []rmsd.Coords) (*rmsd.FitResult, error) {
		return rmsd.Fit(p, q)
	},
	"nelder-mead": rmsd.FitNelderMead,
}

var rootCmd = &cobra.Command{
	Use:   "calculate-rmsd [flags] structure_a.xyz structure_b.xyz",
	Short: "Compute the RMSD between two molecules in XYZ format",
	Long: `calculate-rmsd centers two molecules and prints their RMSD as given,
after optimal rotation (Kabsch) and after a search for the best translation.
With --output, the first molecule is printed superimposed onto the second.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(2)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	},
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVarP(&flagOutput, "output", "o", flagOutput,
		"Print the first structure superimposed onto the second\n"+
			"instead of the RMSD values.")
	flags.StringVar(&flagOptimizer, "optimizer", flagOptimizer,
		"The translation search used for the fitted RMSD:\n"+
			"'descent' or 'nelder-mead'.")
	flags.IntVar(&flagPrecision, "precision", flagPrecision,
		"The number of decimals per coordinate with --output.")
	flags.StringVarP(&flagFormat, "format", "f", flagFormat,
		"The format of both input files: 'xyz', 'pdb' or 'auto'.\n"+
			"'auto' reads files ending in .pdb or .ent (optionally\n"+
			"followed by .gz) as PDB and everything else as XYZ.")
	flags.BoolVarP(&util.FlagVerbose, "verbose", "v", util.FlagVerbose,
		"Log details about the computation to stderr.")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.As(err, &usageError{}) {
			fmt.Fprint(os.Stderr, rootCmd.UsageString())
		}
		util.Exitf(exitCode(err), "%s", err)
	}
}

// usageError marks errors caused by the command line itself.
type usageError struct {
	error
}

func (e usageError) Unwrap() error {
	return e.error
}

// exitCode maps an error returned by the command to a process exit code.
func exitCode(err error) int {
	switch {
	case errors.As(err, &usageError{}):
		return exitUsage
	case errors.Is(err, xyz.ErrFormat), errors.Is(err, pdb.ErrFormat):
		return exitFormat
	case errors.Is(err, rmsd.ErrLength), errors.Is(err, rmsd.ErrEmpty):
		return exitShape
	}
	return exitFailure
}

func run(cmd *cobra.Command, args []string) error {
	fit, ok := fitters[flagOptimizer]
	if !ok {
		return usageError{fmt.Errorf(
			"unknown optimizer '%s' (use 'descent' or 'nelder-mead')",
			flagOptimizer)}
	}
	if flagFormat != "auto" && flagFormat != "xyz" && flagFormat != "pdb" {
		return usageError{fmt.Errorf(
			"unknown format '%s' (use 'xyz', 'pdb' or 'auto')", flagFormat)}
	}
	if flagPrecision < 1 {
		return usageError{fmt.Errorf(
			"the precision must be at least 1, but %d was given",
			flagPrecision)}
	}

	fileA, fileB := args[0], args[1]
	molA, err := readMolecule(fileA)
	if err != nil {
		return fmt.Errorf("could not read '%s': %w", fileA, err)
	}
	molB, err := readMolecule(fileB)
	if err != nil {
		return fmt.Errorf("could not read '%s': %w", fileB, err)
	}
	if len(molA.Coords) != len(molB.Coords) {
		return fmt.Errorf("'%s' has %d atoms but '%s' has %d: %w",
			fileA, len(molA.Coords), fileB, len(molB.Coords),
			&rmsd.LengthError{Len1: len(molA.Coords), Len2: len(molB.Coords)})
	}
	checkAtoms(fileA, fileB, molA, molB)

	P, centroidA, err := rmsd.Center(molA.Coords)
	if err != nil {
		return fmt.Errorf("'%s': %w", fileA, err)
	}
	Q, centroidB, err := rmsd.Center(molB.Coords)
	if err != nil {
		return fmt.Errorf("'%s': %w", fileB, err)
	}
	util.Verbosef("Read %d atoms from each structure.", len(P))
	util.Verbosef("Centroid of '%s': %v", fileA, centroidA)
	util.Verbosef("Centroid of '%s': %v", fileB, centroidB)

	out := cmd.OutOrStdout()
	if flagOutput {
		V, err := rmsd.Rotate(P, Q)
		if err != nil {
			return err
		}
		return xyz.Write(out, &xyz.Molecule{
			Title:  molA.Title,
			Atoms:  molA.Atoms,
			Coords: rmsd.Translate(V, centroidB),
		}, flagPrecision)
	}

	normal, err := rmsd.RMSD(P, Q)
	if err != nil {
		return err
	}
	kabsch, err := rmsd.KabschRMSD(P, Q)
	if err != nil {
		return err
	}
	fitted, err := fit(P, Q)
	if err != nil {
		return err
	}
	util.Verbosef("Fitted translation %v after %d iterations (%s).",
		fitted.Offset, fitted.Iterations, flagOptimizer)

	fmt.Fprintln(out, "Normal RMSD:", normal)
	fmt.Fprintln(out, "Kabsch RMSD:", kabsch)
	fmt.Fprintln(out, "Fitted RMSD:", fitted.RMSD)
	return nil
}

// readMolecule reads a molecule in the format given by --format.
func readMolecule(path string) (*xyz.Molecule, error) {
	format := flagFormat
	if format == "auto" {
		format = "xyz"
		name := strings.TrimSuffix(strings.ToLower(path), ".gz")
		switch filepath.Ext(name) {
		case ".pdb", ".ent":
			format = "pdb"
		}
	}
	util.Verbosef("Reading '%s' as %s.", path, format)
	if format == "pdb" {
		return pdb.ReadFile(path)
	}
	return xyz.ReadFile(path)
}

// checkAtoms warns about input that can be computed with but is probably not
// what the user meant.
func checkAtoms(fileA, fileB string, molA, molB *xyz.Molecule) {
	if n := len(molA.Atoms); n > 0 && n < 3 {
		util.Warnf("WARNING: Only %d atoms were given, so the rotation is "+
			"not uniquely determined.", n)
	}
	for i := range molA.Atoms {
		if molA.Atoms[i] != molB.Atoms[i] {
			util.Warnf("WARNING: Atom %d is '%s' in '%s' but '%s' in '%s'. "+
				"Atoms are paired by order only.",
				i+1, molA.Atoms[i], fileA, molB.Atoms[i], fileB)
			return
		}
	}
}
