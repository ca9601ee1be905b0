package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

/* =========================
   REQUEST DTOs
========================= */

type checkoutItemRequest struct {
	ItemID   string  `json:"itemId" binding:"required"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type checkoutRequest struct {
	CustomerName    string                `json:"customerName" binding:"required"`
	CustomerPhone   string                `json:"customerPhone" binding:"required"`
	Items           []checkoutItemRequest `json:"items" binding:"required"`
	DeliveryType    string                `json:"deliveryType"`
	DeliveryAddress string                `json:"deliveryAddress"`
	Landmark        string                `json:"landmark"`
}

/* =========================
   CART NORMALIZATION
========================= */

// normalizeCartLines turns the submitted cart into order item snapshots.
// A zero quantity removes the line instead of persisting it; negative
// quantities and prices are rejected outright.
func normalizeCartLines(items []checkoutItemRequest) ([]models.OrderItem, error) {
	lines := make([]models.OrderItem, 0, len(items))

	for _, item := range items {
		if item.Quantity < 0 {
			return nil, fmt.Errorf("quantity must not be negative for item %q", item.Name)
		}
		if item.Quantity == 0 {
			continue
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("price must not be negative for item %q", item.Name)
		}

		itemID, err := primitive.ObjectIDFromHex(strings.TrimSpace(item.ItemID))
		if err != nil {
			return nil, errors.New("invalid itemId")
		}

		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, errors.New("item name is required")
		}

		lines = append(lines, models.OrderItem{
			ItemID:   itemID,
			Name:     name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	return lines, nil
}

func cartSubtotal(lines []models.OrderItem) float64 {
	subtotal := 0.0
	for _, line := range lines {
		subtotal += line.Price * float64(line.Quantity)
	}
	return subtotal
}

/* =========================
   ZONE MATCHING
========================= */

// resolveDeliveryZone scans the configured zones in order and returns the
// first one whose landmark list contains the selection. Zones are assumed
// non-overlapping by configuration convention; overlap resolves to the
// earlier zone. A missing match is reported distinctly rather than as a
// zero fee, so a legitimately free zone stays valid.
func resolveDeliveryZone(zones []models.DeliveryZone, landmark string) (models.DeliveryZone, bool) {
	for _, zone := range zones {
		for _, l := range zone.Landmarks {
			if l == landmark {
				return zone, true
			}
		}
	}
	return models.DeliveryZone{}, false
}

/* =========================
   BUILD ORDER
========================= */

// buildOrder runs the full checkout validation and pricing pass. Every
// failure blocks submission; nothing is silently coerced. The returned
// order always starts out pending, whatever the client sent.
func buildOrder(req checkoutRequest, zones []models.DeliveryZone) (models.Order, error) {
	lines, err := normalizeCartLines(req.Items)
	if err != nil {
		return models.Order{}, err
	}
	if len(lines) == 0 {
		return models.Order{}, errors.New("at least one item is required")
	}

	customerName := strings.TrimSpace(req.CustomerName)
	customerPhone := strings.TrimSpace(req.CustomerPhone)
	if customerName == "" || customerPhone == "" {
		return models.Order{}, errors.New("customerName and customerPhone are required")
	}

	deliveryType := "pickup"
	if req.DeliveryType == "delivery" {
		deliveryType = "delivery"
	}

	subtotal := cartSubtotal(lines)

	order := models.Order{
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		Items:         lines,
		DeliveryType:  deliveryType,
		Subtotal:      subtotal,
		Total:         subtotal,
		Status:        "pending",
		CreatedAt:     time.Now(),
	}

	if deliveryType != "delivery" {
		return order, nil
	}

	address := strings.TrimSpace(req.DeliveryAddress)
	if address == "" {
		return models.Order{}, errors.New("delivery address is required for delivery orders")
	}

	if len(zones) == 0 {
		return models.Order{}, errors.New("delivery zones are not configured yet")
	}

	landmark := strings.TrimSpace(req.Landmark)
	if landmark == "" {
		return models.Order{}, errors.New("landmark is required for delivery orders")
	}

	zone, ok := resolveDeliveryZone(zones, landmark)
	if !ok {
		return models.Order{}, fmt.Errorf("landmark %q does not match any delivery zone", landmark)
	}

	fee := zone.Fee
	order.DeliveryAddress = address
	order.Landmark = landmark
	order.DeliveryFee = &fee
	order.Total = subtotal + fee

	return order, nil
}
