package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bazaartech/inventory-ledger/internal/domain/inventory"
)

func TestClassify_ReglasBase(t *testing.T) {
	threshold := inventory.DefaultLowStockThreshold

	assert.Equal(t, inventory.StatusOutOfStock, inventory.Classify(0, threshold))
	assert.Equal(t, inventory.StatusLowStock, inventory.Classify(1, threshold))
	assert.Equal(t, inventory.StatusLowStock, inventory.Classify(threshold, threshold),
		"el límite del umbral es inclusivo: disponible == umbral es stock bajo")
	assert.Equal(t, inventory.StatusInStock, inventory.Classify(threshold+1, threshold))
}

// Disponible cero siempre es OUT_OF_STOCK, incluso con umbral 0.
func TestClassify_CeroGanaAlUmbral(t *testing.T) {
	assert.Equal(t, inventory.StatusOutOfStock, inventory.Classify(0, 0))
	assert.Equal(t, inventory.StatusInStock, inventory.Classify(1, 0))
}

// Umbral por producto distinto del global cambia la frontera LOW/IN.
func TestClassify_UmbralPersonalizado(t *testing.T) {
	assert.Equal(t, inventory.StatusLowStock, inventory.Classify(45, 50))
	assert.Equal(t, inventory.StatusInStock, inventory.Classify(45, 20))
}

// Los conteos agregados deben coincidir con la clasificación por ítem.
func TestSummarize_ConsistenteConClassify(t *testing.T) {
	positions := []inventory.Position{
		{OnHand: 0, Threshold: 20},   // out of stock
		{OnHand: 5, Threshold: 20},   // low
		{OnHand: 20, Threshold: 20},  // low (límite inclusivo)
		{OnHand: 100, Threshold: 20}, // in stock
		{OnHand: 30, Threshold: 50},  // low por umbral propio
	}

	s := inventory.Summarize(positions)

	assert.Equal(t, 5, s.TotalItems)
	assert.Equal(t, int64(155), s.TotalQuantity)
	assert.Equal(t, 3, s.LowStockCount)
	assert.Equal(t, 1, s.OutOfStockCount)
}

func TestSummarize_SinPosiciones(t *testing.T) {
	s := inventory.Summarize(nil)
	assert.Equal(t, 0, s.TotalItems)
	assert.Equal(t, int64(0), s.TotalQuantity)
	assert.Equal(t, 0, s.LowStockCount)
	assert.Equal(t, 0, s.OutOfStockCount)
}
