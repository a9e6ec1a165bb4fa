package cli

import (
	"fmt"
	"strings"

	"github.com/mmynk/motoledger/internal/calculator"
)

// SummaryMarkdown renders the dashboard (from all bikes) and the analytics
// of the filtered bikes as a markdown document.
func SummaryMarkdown(all, filtered calculator.Summary) string {
	usd := calculator.FormatUSD
	var b strings.Builder

	b.WriteString("# Motorbike ledger\n\n")
	b.WriteString("| Total cost | Projected sale | Actual profit |\n")
	b.WriteString("|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %s | %s | %s |\n\n", usd(all.TotalCost), usd(all.ProjectedSale), usd(all.ActualProfit))

	fmt.Fprintf(&b, "## Analytics (%s)\n\n", filtered.Filter)
	if len(filtered.Bikes) == 0 {
		b.WriteString("No motorbikes match.\n")
		return b.String()
	}

	b.WriteString("| Motorbike | Bike buyer | Total cost | Tanya invested | Gerald invested | Status | Profit | Tanya share | Gerald share |\n")
	b.WriteString("|---|---|---:|---:|---:|---|---:|---:|---:|\n")
	for _, row := range filtered.Bikes {
		status := "unsold"
		profit, tanya, gerald := "-", "-", "-"
		if row.IsSold {
			status = "sold"
		}
		if row.HasProfit {
			profit, tanya, gerald = usd(row.Profit), usd(row.TanyaProfitShare), usd(row.GeraldProfitShare)
		}
		buyer := row.BikeBuyer
		if buyer == "" {
			buyer = "-"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			row.Name, buyer, usd(row.TotalCost), usd(row.TanyaInvestment), usd(row.GeraldInvestment),
			status, profit, tanya, gerald)
	}

	b.WriteString("\n### Totals\n\n")
	fmt.Fprintf(&b, "- Tanya invested %s, profit share %s\n", usd(filtered.TotalTanyaInvestment), usd(filtered.TotalTanyaProfitShare))
	fmt.Fprintf(&b, "- Gerald invested %s, profit share %s\n", usd(filtered.TotalGeraldInvestment), usd(filtered.TotalGeraldProfitShare))
	return b.String()
}
