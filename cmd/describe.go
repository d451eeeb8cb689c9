package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Construct the instance and print its derived properties without sampling",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := buildSimulation()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "variant:              %s\n", s.Variant())
		fmt.Fprintf(out, "p, m:                 %d, %d\n", s.P(), s.M())
		fmt.Fprintf(out, "eigenvalues:          %.6g\n", s.Eigenvalues())
		fmt.Fprintf(out, "response eigenvalues: %.6g\n", s.ResponseEigenvalues())
		fmt.Fprintf(out, "relevant positions:   %v\n", s.RelevantPositions())
		fmt.Fprintf(out, "irrelevant positions: %v\n", s.IrrelevantPositions())
		fmt.Fprintf(out, "r-squared:            %.6g\n", s.RSquared())
		fmt.Fprintf(out, "minimum error:        %.6g\n", s.MinError())
		fmt.Fprintf(out, "beta (observed):\n%.4f\n", mat.Formatted(s.Beta(), mat.Prefix("")))
		return nil
	},
}

func init() {
	addSimulationFlags(describeCmd)
	rootCmd.AddCommand(describeCmd)
}
