package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/OntriDS/thegame-sub002/internal/calculator"
)

// money formats a native amount with two decimals.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func percent(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
}

// renderBreakdown prints the settlement matrix as aligned text.
func renderBreakdown(w io.Writer, b calculator.Breakdown) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Exchange rate:\t%s\n", b.ExchangeRate)
	fmt.Fprintf(tw, "Contract:\t%s\n", b.ContractSchema)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "SIDE\tCATEGORY\tCUR\tTOTAL\tSHARES\tSOURCE\tRETAINED\tCOMMISSION")
	rows := append(append([]calculator.SettlementRow{}, b.PrincipalRows...), b.AssociateRows...)
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s/%s\t%s\t%s\t%s\n",
			row.Side,
			row.Category,
			row.Currency,
			row.Total.String(),
			percent(row.Shares.CompanyShare),
			percent(row.Shares.AssociateShare),
			row.Shares.Source,
			money(row.ReferenceRetained),
			money(row.ReferenceCommission),
		)
	}
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "Gross sales:\t%s\n", money(b.GrossSales))
	fmt.Fprintf(tw, "Shared expense:\t%s (%s native, %s/%s)\n",
		b.SharedExpense.String(),
		money(b.SharedExpenseReference),
		percent(b.ExpenseShares.CompanyShare),
		percent(b.ExpenseShares.AssociateShare),
	)
	fmt.Fprintf(tw, "Principal net:\t%s\n", money(b.PrincipalNet))
	fmt.Fprintf(tw, "Associate net:\t%s\n", money(b.AssociateNet))
	if u := b.Unallocated(); !u.Round(2).IsZero() {
		fmt.Fprintf(tw, "Unallocated:\t%s\n", money(u))
	}

	return tw.Flush()
}

// renderIssues prints contract issues, one per line.
func renderIssues(w io.Writer, issues []calculator.ContractIssue) {
	if len(issues) == 0 {
		fmt.Fprintln(w, "no issues")
		return
	}
	for _, issue := range issues {
		where := "contract"
		if issue.Clause >= 0 {
			where = fmt.Sprintf("clause %d", issue.Clause)
		}
		fmt.Fprintf(w, "%s: %s: %s\n", issue.Severity, where, issue.Message)
	}
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
