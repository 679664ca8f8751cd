package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OntriDS/thegame-sub002/internal/calculator"
	"github.com/OntriDS/thegame-sub002/internal/models"
)

const boothYAML = `associateId: ana
exchangeRate: 500
sharedExpense: 0
contract:
  clauses:
    - type: SALES_SERVICE
      itemCategory: Jewelry
      companyShare: 0.25
      associateShare: 0.75
principalLines:
  - kind: item
    itemType: Sticker
    quantity: 2
    unitPrice: 50
associateEntries:
  - associateId: ana
    category: Jewelry
    amount: "1000"
`

const legacyContractYAML = `name: Old arrangement
terms:
  principalProducts:
    principalShare: 0.6
    associateShare: 0.4
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// summaryValue returns the value printed after label in the breakdown summary.
func summaryValue(out, label string) string {
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, label) {
			return strings.TrimSpace(strings.TrimPrefix(line, label))
		}
	}
	return ""
}

func TestLoadInput(t *testing.T) {
	in, err := loadInput(writeFile(t, "booth.yaml", boothYAML))
	if err != nil {
		t.Fatalf("loadInput failed: %v", err)
	}

	if in.AssociateID != "ana" || in.ExchangeRate.String() != "500" {
		t.Errorf("unexpected header fields: %+v", in)
	}
	if in.Contract == nil || in.Contract.Schema != models.SchemaClauses {
		t.Fatalf("expected clause contract, got %+v", in.Contract)
	}
	if got := in.Contract.Clauses[0].CompanyShare.String(); got != "0.25" {
		t.Errorf("CompanyShare = %s, want 0.25", got)
	}
	if len(in.PrincipalLines) != 1 || in.PrincipalLines[0].Amount().String() != "100" {
		t.Errorf("unexpected principal lines: %+v", in.PrincipalLines)
	}
	if len(in.AssociateEntries) != 1 || in.AssociateEntries[0].Amount.String() != "1000" {
		t.Errorf("unexpected associate entries: %+v", in.AssociateEntries)
	}
}

func TestLoadInput_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown field", "exchangeRat: 5\n", "field exchangeRat not found"},
		{"bad decimal", "exchangeRate: lots\n", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadInput(writeFile(t, "bad.yaml", tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := loadInput(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCalculateCommand(t *testing.T) {
	path := writeFile(t, "booth.yaml", boothYAML)

	t.Run("table", func(t *testing.T) {
		out, err := run(t, "calculate", "-f", path)
		if err != nil {
			t.Fatalf("calculate failed: %v", err)
		}
		for _, want := range []string{"Sticker", "Jewelry", "scoped-clause"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
		if got := summaryValue(out, "Principal net:"); got != "100.50" {
			t.Errorf("principal net = %q, want 100.50", got)
		}
		if got := summaryValue(out, "Associate net:"); got != "1.50" {
			t.Errorf("associate net = %q, want 1.50", got)
		}
	})

	t.Run("json with rate override", func(t *testing.T) {
		out, err := run(t, "calculate", "-f", path, "--rate", "1000", "--json")
		if err != nil {
			t.Fatalf("calculate failed: %v", err)
		}

		var b calculator.Breakdown
		if err := json.Unmarshal([]byte(out), &b); err != nil {
			t.Fatalf("output is not a breakdown: %v", err)
		}
		if b.AssociateNet.String() != "0.75" {
			t.Errorf("AssociateNet = %s, want 0.75", b.AssociateNet)
		}
	})

	t.Run("invalid rate", func(t *testing.T) {
		if _, err := run(t, "calculate", "-f", path, "--rate", "0"); err == nil {
			t.Error("expected error for zero rate")
		}
	})

	t.Run("missing file flag", func(t *testing.T) {
		if _, err := run(t, "calculate"); err == nil {
			t.Error("expected error without --file")
		}
	})
}

func TestContractCheckCommand(t *testing.T) {
	t.Run("legacy terms", func(t *testing.T) {
		out, err := run(t, "contract", "check", "-f", writeFile(t, "legacy.yaml", legacyContractYAML))
		if err != nil {
			t.Fatalf("contract check failed: %v", err)
		}
		if !strings.Contains(out, "schema: legacy-terms") || !strings.Contains(out, "no issues") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("errors fail the command", func(t *testing.T) {
		content := "clauses:\n  - type: CONSIGNMENT\n    companyShare: 0.5\n    associateShare: 0.5\n"
		out, err := run(t, "contract", "check", "-f", writeFile(t, "bad.yaml", content))
		if err == nil {
			t.Fatal("expected error for unknown clause type")
		}
		if !strings.Contains(out, "error: clause 0") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})
}
