package whatsapp

import (
	"strings"
	"testing"
)

func deliverySummary() OrderSummary {
	return OrderSummary{
		RestaurantName: "De Helen's Taste",
		CustomerName:   "Ada",
		CustomerPhone:  "+2348000000000",
		DeliveryType:   "delivery",
		Address:        "12 Ganaja Road",
		Landmark:       "Ganaja Junction",
		Lines: []Line{
			{Name: "Shawarma Wrap", Quantity: 2, Amount: 4000},
			{Name: "Chapman", Quantity: 1, Amount: 500},
		},
		Subtotal:    4500,
		DeliveryFee: 1000,
		Total:       5500,
	}
}

func TestBuildMessageDelivery(t *testing.T) {
	message := BuildMessage(deliverySummary())

	for _, want := range []string{
		"New Order from De Helen's Taste",
		"Customer: Ada",
		"Phone: +2348000000000",
		"Order Type: Delivery",
		"Address: 12 Ganaja Road",
		"Closest Landmark: Ganaja Junction",
		"Shawarma Wrap x2 - ₦4,000",
		"Chapman x1 - ₦500",
		"Subtotal: ₦4,500",
		"Delivery Fee: ₦1,000",
		"Total: ₦5,500",
	} {
		if !strings.Contains(message, want) {
			t.Fatalf("expected message to contain %q, got:\n%s", want, message)
		}
	}
}

func TestBuildMessagePickupOmitsDeliveryBlock(t *testing.T) {
	summary := deliverySummary()
	summary.DeliveryType = "pickup"
	summary.DeliveryFee = 0
	summary.Total = summary.Subtotal

	message := BuildMessage(summary)

	if !strings.Contains(message, "Order Type: Shop Pickup") {
		t.Fatalf("expected pickup order type, got:\n%s", message)
	}
	for _, unwanted := range []string{"Address:", "Closest Landmark:", "Delivery Fee:"} {
		if strings.Contains(message, unwanted) {
			t.Fatalf("did not expect %q in pickup message:\n%s", unwanted, message)
		}
	}
}

func TestBuildMessageFreeDeliveryOmitsFeeLine(t *testing.T) {
	summary := deliverySummary()
	summary.DeliveryFee = 0
	summary.Total = summary.Subtotal

	message := BuildMessage(summary)
	if strings.Contains(message, "Delivery Fee:") {
		t.Fatalf("did not expect a fee line for free delivery:\n%s", message)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := map[string]string{
		"+2348106752355":    "2348106752355",
		"+234 810 675 2355": "2348106752355",
		"0810-675-2355":     "08106752355",
	}
	for input, want := range tests {
		if got := NormalizePhone(input); got != want {
			t.Fatalf("NormalizePhone(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestDeepLinkEncodesMessage(t *testing.T) {
	link := DeepLink("2348106752355", "New Order\n\nTotal: ₦5,500")

	if !strings.HasPrefix(link, "https://wa.me/2348106752355?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}
	if strings.ContainsAny(link, " \n") {
		t.Fatalf("link must not contain raw whitespace: %s", link)
	}
	if strings.Contains(link, "+") {
		t.Fatalf("spaces must encode as %%20, not +: %s", link)
	}
	if !strings.Contains(link, "%0A") {
		t.Fatalf("expected encoded newline in link: %s", link)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := map[float64]string{
		0:       "0",
		500:     "500",
		1000:    "1,000",
		12500:   "12,500",
		1234567: "1,234,567",
		1250.5:  "1,250.50",
	}
	for input, want := range tests {
		if got := FormatAmount(input); got != want {
			t.Fatalf("FormatAmount(%v) = %q, want %q", input, got, want)
		}
	}
}
