package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bananai/brokerage/app"
	"github.com/bananai/brokerage/config"
	"github.com/bananai/brokerage/core/model"
	"github.com/bananai/brokerage/core/order"
)

var (
	orderDest  string
	orderKg    float64
	orderTier  string
	orderBatch string
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Propose and place orders against current stock",
}

var proposeCmd = &cobra.Command{
	Use:   "propose",
	Short: "List batches able to fulfil an order",
	RunE:  propose,
}

var placeCmd = &cobra.Command{
	Use:   "place",
	Short: "Price and commit an order",
	RunE:  place,
}

func init() {
	for _, c := range []*cobra.Command{proposeCmd, placeCmd} {
		c.Flags().StringVarP(&orderDest, "dest", "d", "LOCAL", "destination route")
		c.Flags().Float64VarP(&orderKg, "kg", "k", 0, "requested mass in kg")
		c.Flags().StringVarP(&orderTier, "tier", "t", "standard", "quality tier")
	}
	placeCmd.Flags().StringVarP(&orderBatch, "batch", "b", "", "batch id (defaults to best match)")
	orderCmd.AddCommand(proposeCmd, placeCmd)
	rootCmd.AddCommand(orderCmd)
}

func propose(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	perfect, alternative := svc.Engine.Proposals(orderDest, orderKg, orderTier)
	if len(perfect) == 0 && len(alternative) == 0 {
		fmt.Println("no viable batches for this route")
		return nil
	}
	printBatches("matching tier", perfect)
	printBatches("alternatives", alternative)
	return nil
}

func place(cmd *cobra.Command, args []string) error {
	if orderKg <= 0 {
		return order.ErrInvalidMass
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	b, err := pickBatch(svc)
	if err != nil {
		return err
	}
	inv, err := svc.Engine.Price(b, orderKg, orderDest, orderTier)
	if err != nil {
		return err
	}
	inv, err = svc.Engine.Commit(cmd.Context(), inv, b)
	if err != nil {
		return err
	}
	fmt.Print(order.RenderManifest(inv))
	return nil
}

func pickBatch(svc *app.Service) (*model.Batch, error) {
	if orderBatch != "" {
		b, ok := svc.Inventory.Find(orderBatch)
		if !ok {
			return nil, fmt.Errorf("batch %s not found", orderBatch)
		}
		return b, nil
	}
	perfect, alternative := svc.Engine.Proposals(orderDest, orderKg, orderTier)
	if len(perfect) > 0 {
		return perfect[0], nil
	}
	if len(alternative) > 0 {
		return alternative[0], nil
	}
	return nil, errors.New("no viable batch for this route")
}

func printBatches(label string, batches []*model.Batch) {
	if len(batches) == 0 {
		return
	}
	fmt.Printf("%s:\n", label)
	for _, b := range batches {
		fmt.Printf("  %-14s %8.2fkg  quality %.2f  shelf %dd\n",
			b.ID, b.RemainingKg, b.Quality(), b.ShelfLifeDays())
	}
}

func newService() (*app.Service, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.New(cfg)
}
