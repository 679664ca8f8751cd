package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/OntriDS/thegame-sub002/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(d(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func item(itemType string, qty int, price string) models.SaleLine {
	return models.SaleLine{
		Kind:      models.LineKindItem,
		ItemType:  itemType,
		Quantity:  qty,
		UnitPrice: d(price),
	}
}

func entry(category, amount string) models.AssociateEntry {
	return models.AssociateEntry{AssociateID: "ana", Category: category, Amount: d(amount)}
}

func clause(t models.ClauseType, category, company, associate string) models.Clause {
	return models.Clause{
		Type:           t,
		ItemCategory:   category,
		CompanyShare:   d(company),
		AssociateShare: d(associate),
	}
}
