package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	intakeCommodity string
	intakeKg        float64
)

var intakeCmd = &cobra.Command{
	Use:   "intake",
	Short: "Register a freshly received batch",
	RunE:  intake,
}

func init() {
	intakeCmd.Flags().StringVarP(&intakeCommodity, "commodity", "m", "cavendish", "commodity type")
	intakeCmd.Flags().Float64VarP(&intakeKg, "kg", "k", 0, "total mass in kg")
	rootCmd.AddCommand(intakeCmd)
}

func intake(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	b, err := svc.Intake(cmd.Context(), intakeCommodity, intakeKg)
	if err != nil {
		return err
	}
	fmt.Printf("registered %s: %s, %.2fkg\n", b.ID, b.Commodity, b.TotalKg)
	return nil
}
