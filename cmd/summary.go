package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print sales totals from the ledger",
	RunE:  summary,
}

var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "List batches currently on hand",
	RunE:  stock,
}

func init() {
	rootCmd.AddCommand(summaryCmd, stockCmd)
}

func summary(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	sum, err := svc.Engine.Summary(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("orders:  %d\n", sum.Orders)
	fmt.Printf("revenue: %.2f\n", sum.Revenue)
	fmt.Printf("profit:  %.2f\n", sum.Profit)
	return nil
}

func stock(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	batches := svc.Inventory.List()
	if len(batches) == 0 {
		fmt.Println("no stock on hand")
		return nil
	}
	for _, b := range batches {
		fmt.Printf("%-14s %-10s %8.2f/%8.2fkg  quality %.2f  shelf %dd  %s\n",
			b.ID, b.Commodity, b.RemainingKg, b.TotalKg, b.Quality(), b.ShelfLifeDays(), b.Status())
	}
	fmt.Printf("total: %.2fkg\n", svc.Inventory.TotalStockKg())
	return nil
}
