// Package whatsapp prepares the pre-filled order message the storefront
// opens through a wa.me deep link. Nothing is sent from the server; the
// handoff is fire-and-forget and delivery is never confirmed.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

type Line struct {
	Name     string
	Quantity int
	Amount   float64
}

type OrderSummary struct {
	RestaurantName string
	CustomerName   string
	CustomerPhone  string
	DeliveryType   string
	Address        string
	Landmark       string
	Lines          []Line
	Subtotal       float64
	DeliveryFee    float64
	Total          float64
}

// Handoff is returned to the client, which opens URL in a new browser
// context.
type Handoff struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

func BuildHandoff(ownerPhone string, summary OrderSummary) Handoff {
	phone := NormalizePhone(ownerPhone)
	message := BuildMessage(summary)
	return Handoff{
		Phone:   phone,
		Message: message,
		URL:     DeepLink(phone, message),
	}
}

// NormalizePhone strips everything except digits; wa.me links take the
// number in international format without the plus sign.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func DeepLink(phone, message string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + phone + "?text=" + encoded
}

func BuildMessage(s OrderSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "New Order from %s\n\n", s.RestaurantName)
	fmt.Fprintf(&b, "Customer: %s\n", s.CustomerName)
	fmt.Fprintf(&b, "Phone: %s\n", s.CustomerPhone)
	if s.DeliveryType == "delivery" {
		b.WriteString("Order Type: Delivery\n")
		fmt.Fprintf(&b, "Address: %s\n", s.Address)
		if s.Landmark != "" {
			fmt.Fprintf(&b, "Closest Landmark: %s\n", s.Landmark)
		}
	} else {
		b.WriteString("Order Type: Shop Pickup\n")
	}

	b.WriteString("\nItems:\n")
	for _, line := range s.Lines {
		fmt.Fprintf(&b, "%s x%d - ₦%s\n", line.Name, line.Quantity, FormatAmount(line.Amount))
	}

	fmt.Fprintf(&b, "\nSubtotal: ₦%s\n", FormatAmount(s.Subtotal))
	if s.DeliveryType == "delivery" && s.DeliveryFee > 0 {
		fmt.Fprintf(&b, "Delivery Fee: ₦%s\n", FormatAmount(s.DeliveryFee))
	}
	fmt.Fprintf(&b, "Total: ₦%s", FormatAmount(s.Total))

	return b.String()
}

// FormatAmount renders 12500 as "12,500" and 12500.5 as "12,500.50".
func FormatAmount(value float64) string {
	whole := int64(value)
	fraction := value - float64(whole)

	grouped := groupThousands(whole)
	if fraction > 0.004 {
		return fmt.Sprintf("%s.%02d", grouped, int(fraction*100+0.5))
	}
	return grouped
}

func groupThousands(value int64) string {
	digits := fmt.Sprintf("%d", value)
	if len(digits) <= 3 {
		return digits
	}

	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	return strings.Join(parts, ",")
}
