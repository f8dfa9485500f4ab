package order

import (
	"fmt"
	"strings"

	"github.com/bananai/brokerage/core/model"
)

const manifestRule = "============================================================"
const manifestSep = "------------------------------------------------------------"

// RenderManifest produces the human-readable bill of lading for a
// committed invoice. Field order is fixed; the output is cosmetic and
// never machine-parsed.
func RenderManifest(inv model.Invoice) string {
	var sb strings.Builder
	sb.WriteString(manifestRule + "\n")
	sb.WriteString("                  BANANAI GLOBAL BROKERAGE\n")
	sb.WriteString("            Official Bill of Lading & Manifest\n")
	sb.WriteString(manifestRule + "\n")
	fmt.Fprintf(&sb, "ORDER ID:    %s\n", inv.OrderID)
	fmt.Fprintf(&sb, "TIMESTAMP:   %s\n", inv.Timestamp.Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&sb, "BATCH REF:   %s\n", inv.BatchID)
	sb.WriteString(manifestSep + "\n")
	fmt.Fprintf(&sb, "DESTINATION: %s\n", inv.Destination)
	fmt.Fprintf(&sb, "GRADE:       %s\n", strings.ToUpper(inv.Tier))
	fmt.Fprintf(&sb, "NET WEIGHT:  %.2f kg\n", inv.Kg)
	sb.WriteString(manifestSep + "\n")
	fmt.Fprintf(&sb, "UNIT PRICE:  $%.2f USD/kg\n", inv.UnitPrice)
	fmt.Fprintf(&sb, "SUBTOTAL:    $%.2f USD\n", inv.Revenue)
	fmt.Fprintf(&sb, "LOGISTICS:   $%.2f USD\n", inv.ShippingCost)
	fmt.Fprintf(&sb, "NET PROFIT:  $%.2f USD\n", inv.Profit)
	sb.WriteString(manifestSep + "\n")
	sb.WriteString("ROUTE:       COLD-CHAIN SECURE / SEALED\n")
	sb.WriteString("QUALITY:     VERIFIED BY COMPUTER VISION\n")
	sb.WriteString(manifestRule + "\n")
	return sb.String()
}
