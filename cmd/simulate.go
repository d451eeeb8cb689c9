package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/regsim/regsim/sim"
)

var outDir string // Output directory for X.csv, Y.csv, beta.csv, truth.yaml

// truthSnapshot is the YAML snapshot of the derived population quantities
// written next to the sampled data, for downstream comparison.
type truthSnapshot struct {
	Variant             string      `yaml:"variant"`
	Seed                int64       `yaml:"seed"`
	Eigenvalues         []float64   `yaml:"eigenvalues"`
	ResponseEigenvalues []float64   `yaml:"response_eigenvalues"`
	RelevantPositions   [][]int     `yaml:"relevant_positions"`
	IrrelevantPositions []int       `yaml:"irrelevant_positions"`
	RSquared            []float64   `yaml:"r_squared"`
	MinError            []float64   `yaml:"min_error"`
	Beta                [][]float64 `yaml:"beta"`
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Draw a dataset and write it with its ground truth",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := buildSimulation()
		if err != nil {
			return err
		}
		x, y, err := s.Sample(s.N())
		if err != nil {
			return err
		}
		logrus.Infof("drew %d observations: p=%d m=%d variant=%s r2=%v minerror=%v",
			s.N(), s.P(), s.M(), s.Variant(), s.RSquared(), s.MinError())

		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
		if err := writeMatrixCSV(filepath.Join(outDir, "X.csv"), x, "X"); err != nil {
			return err
		}
		if err := writeMatrixCSV(filepath.Join(outDir, "Y.csv"), y, "Y"); err != nil {
			return err
		}
		if err := writeMatrixCSV(filepath.Join(outDir, "beta.csv"), s.Beta(), "beta"); err != nil {
			return err
		}
		if err := writeTruth(filepath.Join(outDir, "truth.yaml"), s); err != nil {
			return err
		}
		logrus.Infof("wrote X.csv, Y.csv, beta.csv, truth.yaml to %s", outDir)
		return nil
	},
}

func init() {
	addSimulationFlags(simulateCmd)
	simulateCmd.Flags().StringVar(&outDir, "out", "regsim-out", "Output directory")
	rootCmd.AddCommand(simulateCmd)
}

// writeMatrixCSV writes a matrix with a prefix1..prefixK header row.
func writeMatrixCSV(path string, m *mat.Dense, prefix string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	rows, cols := m.Dims()
	header := make([]string, cols)
	for j := range header {
		header[j] = prefix + strconv.Itoa(j+1)
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	record := make([]string, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			record[j] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

func writeTruth(path string, s *sim.Simulation) error {
	snap := truthSnapshot{
		Variant:             s.Variant().String(),
		Seed:                s.Seed(),
		Eigenvalues:         s.Eigenvalues(),
		ResponseEigenvalues: s.ResponseEigenvalues(),
		RelevantPositions:   s.RelevantPositions(),
		IrrelevantPositions: s.IrrelevantPositions(),
		RSquared:            s.RSquared(),
		MinError:            s.MinError(),
		Beta:                matrixRows(s.Beta()),
	}
	data, err := yaml.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("marshaling truth snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func matrixRows(m *mat.Dense) [][]float64 {
	rows, cols := m.Dims()
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}
