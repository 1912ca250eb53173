package pricing

import "github.com/estampaviva/estampa-api/internal/models"

// CartTotals is the result of a cart aggregation.
type CartTotals struct {
	Subtotal  int             `json:"subtotal"`
	ItemCount int             `json:"itemCount"`
	Currency  models.Currency `json:"currency,omitempty"`
}

// CalculateCartTotals sums (unit price + customization extra cost) times
// quantity across all lines. Pure: an unchanged cart always yields the same
// result. Single-currency carts are enforced at the add boundary, so no
// mixing guard is needed here.
func CalculateCartTotals(cart *models.Cart) CartTotals {
	totals := CartTotals{Currency: cart.Currency()}
	for _, item := range cart.Items {
		extra := 0
		if item.Customization != nil {
			extra = item.Customization.ExtraCost
		}
		totals.Subtotal += (item.Price + extra) * item.Quantity
		totals.ItemCount += item.Quantity
	}
	return totals
}
