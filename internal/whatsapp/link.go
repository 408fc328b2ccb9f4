// internal/whatsapp/link.go

// Package whatsapp builds the wa.me deep link a finished order redirects to.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/AndrewLicona/ShopyLink-sub001/internal/models"
)

// NormalizePhone strips everything but digits so the number fits the
// wa.me/<digits> path segment.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// OrderLink renders the order summary message and wraps it in a
// https://wa.me/<number>?text=<encoded> URL. The message lists every line
// item with quantity and unit price, the total, the customer name and, when
// present, the delivery address.
func OrderLink(store *models.Store, order *models.Order) string {
	return fmt.Sprintf(
		"https://wa.me/%s?text=%s",
		NormalizePhone(store.WhatsAppNumber),
		url.QueryEscape(OrderMessage(store, order)),
	)
}

// OrderMessage is the plain-text order summary before URL encoding.
func OrderMessage(store *models.Store, order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hello %s! I would like to place an order:\n\n", store.Name)

	for _, item := range order.Items {
		name := item.ProductName
		if item.VariantName != nil {
			name = fmt.Sprintf("%s (%s)", item.ProductName, *item.VariantName)
		}
		fmt.Fprintf(&b, "%dx %s - $%.2f\n", item.Quantity, name, item.UnitPrice)
	}

	fmt.Fprintf(&b, "\nTotal: $%.2f\n", order.Total)
	fmt.Fprintf(&b, "Name: %s\n", order.CustomerName)

	if order.CustomerAddress != nil && *order.CustomerAddress != "" {
		fmt.Fprintf(&b, "Delivery address: %s\n", *order.CustomerAddress)
		if store.DeliveryPriceLabel != "" {
			fmt.Fprintf(&b, "Delivery: %s\n", store.DeliveryPriceLabel)
		}
	}

	return b.String()
}
