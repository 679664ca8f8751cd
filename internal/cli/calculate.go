package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/OntriDS/thegame-sub002/internal/calculator"
)

func newCalculateCommand() *cobra.Command {
	var (
		file   string
		rate   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Compute a settlement from a YAML input file",
		Long: `Compute the settlement matrix for one day of booth sales.

The input file lists the principal's inventory lines, the associate's
entries, the contract (clauses or legacy terms), the shared expense and
the exchange rate.`,
		Example: `  # Print the settlement matrix
  settlectl calculate -f saturday.yaml

  # Override the exchange rate and print JSON
  settlectl calculate -f saturday.yaml --rate 520 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(file)
			if err != nil {
				return err
			}
			if rate != "" {
				r, err := decimal.NewFromString(rate)
				if err != nil {
					return fmt.Errorf("invalid --rate: %w", err)
				}
				in.ExchangeRate = r
			}

			if err := calculator.ValidateInput(in); err != nil {
				return fmt.Errorf("invalid input:\n%w", err)
			}

			b := calculator.Calculate(in)
			if asJSON {
				return renderJSON(cmd.OutOrStdout(), b)
			}
			return renderBreakdown(cmd.OutOrStdout(), b)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML input file")
	cmd.Flags().StringVar(&rate, "rate", "", "Exchange rate override (secondary units per native unit)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the breakdown as JSON")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
