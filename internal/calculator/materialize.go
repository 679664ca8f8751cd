package calculator

import "github.com/OntriDS/thegame-sub002/internal/models"

// MaterializeLines turns a confirmed input into the sale lines that get persisted.
// Inventory lines are kept as they are; every associate entry becomes a service
// line of quantity 1 in the secondary currency, categorized by the entry label.
func MaterializeLines(in Input) []models.SaleLine {
	lines := make([]models.SaleLine, 0, len(in.PrincipalLines)+len(in.AssociateEntries))
	lines = append(lines, in.PrincipalLines...)

	for _, entry := range in.AssociateEntries {
		associateID := entry.AssociateID
		if associateID == "" {
			associateID = in.AssociateID
		}
		lines = append(lines, models.SaleLine{
			Kind:        models.LineKindService,
			Description: entry.Note,
			ItemType:    EntryLabel(entry),
			Quantity:    1,
			UnitPrice:   entry.Amount,
			Currency:    models.CurrencySecondary,
			AssociateID: associateID,
		})
	}

	return lines
}

// SplitLines is the inverse of MaterializeLines: it separates persisted lines
// back into inventory lines and associate entries so a saved settlement can be
// recomputed.
func SplitLines(lines []models.SaleLine) ([]models.SaleLine, []models.AssociateEntry) {
	var principal []models.SaleLine
	var entries []models.AssociateEntry

	for _, line := range lines {
		if line.Kind == models.LineKindService && line.LineCurrency() == models.CurrencySecondary {
			entries = append(entries, models.AssociateEntry{
				AssociateID: line.AssociateID,
				Category:    line.ItemType,
				Amount:      line.Amount(),
				Note:        line.Description,
			})
			continue
		}
		principal = append(principal, line)
	}

	return principal, entries
}

// RecomputeInput rebuilds the calculator input of a saved settlement.
func RecomputeInput(s *models.Settlement, contract *models.Contract) Input {
	principal, entries := SplitLines(s.Lines)
	return Input{
		AssociateID:      s.AssociateID,
		PrincipalLines:   principal,
		AssociateEntries: entries,
		Contract:         contract,
		SharedExpense:    s.SharedExpense,
		ExchangeRate:     s.ExchangeRate,
	}
}
