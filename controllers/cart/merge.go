package cartControllers

import (
	"math"
	"sync"

	"github.com/emonpappu17/mediBazaar-server-ass/models"
)

// finalUnitPrice applies the discount and rounds to cents. Stored on the
// line at merge time, never recomputed on read.
func finalUnitPrice(unitPrice, discountPercent float64) float64 {
	return math.Round(unitPrice*(1-discountPercent/100)*100) / 100
}

// cartTotals sums the stored line prices.
func cartTotals(items []models.CartLine) (totalPrice float64, totalQuantity int) {
	for _, item := range items {
		totalPrice += item.FinalUnitPrice * float64(item.Quantity)
		totalQuantity += item.Quantity
	}
	return math.Round(totalPrice*100) / 100, totalQuantity
}

// Cart mutation is a read-modify-write over the user's line set, so writes
// for the same user must not interleave. userLocks is the per-user
// serialization point.
var userLocks sync.Map // email -> *sync.Mutex

func lockUser(email string) func() {
	v, _ := userLocks.LoadOrStore(email, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
