package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OntriDS/thegame-sub002/internal/calculator"
)

func newContractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Inspect contracts",
	}
	cmd.AddCommand(newContractCheckCommand())
	return cmd
}

func newContractCheckCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:     "check",
		Short:   "Report data-quality issues of a contract",
		Example: `  settlectl contract check -f ana.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			contract, err := loadContract(file)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "schema: %s\n", contract.Schema)

			issues := calculator.ValidateContract(contract)
			renderIssues(out, issues)

			for _, issue := range issues {
				if issue.Severity == calculator.SeverityError {
					return fmt.Errorf("contract has errors")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML contract file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
