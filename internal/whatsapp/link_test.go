// internal/whatsapp/link_test.go
package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrewLicona/ShopyLink-sub001/internal/models"
)

func sp(s string) *string {
	return &s
}

func testStore() *models.Store {
	return &models.Store{
		Name:           "Cafe Rio",
		WhatsAppNumber: "+57 (300) 123-4567",
	}
}

func testOrder() *models.Order {
	variant := "Large"
	return &models.Order{
		CustomerName: "Ana",
		Total:        170,
		Items: []models.OrderItem{
			{ProductName: "Coffee Beans", VariantName: &variant, Quantity: 2, UnitPrice: 60},
			{ProductName: "Mug", Quantity: 1, UnitPrice: 50},
		},
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "573001234567", NormalizePhone("+57 (300) 123-4567"))
	assert.Equal(t, "573001234567", NormalizePhone("573001234567"))
	assert.Equal(t, "", NormalizePhone("no digits"))
}

func TestOrderMessage(t *testing.T) {
	msg := OrderMessage(testStore(), testOrder())

	assert.Contains(t, msg, "Hello Cafe Rio!")
	assert.Contains(t, msg, "2x Coffee Beans (Large) - $60.00")
	assert.Contains(t, msg, "1x Mug - $50.00")
	assert.Contains(t, msg, "Total: $170.00")
	assert.Contains(t, msg, "Name: Ana")
	assert.NotContains(t, msg, "Delivery address")
}

func TestOrderMessageWithDelivery(t *testing.T) {
	store := testStore()
	store.DeliveryEnabled = true
	store.DeliveryPriceLabel = "$5 flat rate"

	order := testOrder()
	order.CustomerAddress = sp("Calle 10 #4-20")

	msg := OrderMessage(store, order)

	assert.Contains(t, msg, "Delivery address: Calle 10 #4-20")
	assert.Contains(t, msg, "Delivery: $5 flat rate")
}

func TestOrderLink(t *testing.T) {
	link := OrderLink(testStore(), testOrder())

	assert.True(t, strings.HasPrefix(link, "https://wa.me/573001234567?text="))

	// The text parameter must decode back to the exact message.
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, OrderMessage(testStore(), testOrder()), parsed.Query().Get("text"))
}
