package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
	"backend/pkg/whatsapp"
)

var validOrderStatuses = []string{"pending", "confirmed", "completed", "delivered", "cancelled"}

func isValidOrderStatus(status string) bool {
	for _, s := range validOrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

/* =========================
   CREATE ORDER (CHECKOUT)
========================= */

func CreateOrder(db *mongo.Database, ownerPhone string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		settings, err := fetchSettings(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to process order")
			return
		}

		order, err := buildOrder(req, settings.DeliveryZones)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		res, err := db.Collection("orders").InsertOne(ctx, order)
		if err != nil {
			log.Println("[ORDER] [ERROR] insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "failed to process order")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			order.ID = id
		}

		log.Printf("[ORDER] [INFO] order %s created: %s items=%d total=%.2f",
			order.ID.Hex(), order.DeliveryType, len(order.Items), order.Total)

		c.JSON(http.StatusCreated, gin.H{
			"order":    order,
			"whatsapp": orderHandoff(ownerPhone, settings.RestaurantName, order),
		})
	}
}

// orderHandoff maps the stored order onto the summary the messaging package
// renders. The client opens the link; the server never awaits delivery.
func orderHandoff(ownerPhone, restaurantName string, order models.Order) whatsapp.Handoff {
	lines := make([]whatsapp.Line, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, whatsapp.Line{
			Name:     item.Name,
			Quantity: item.Quantity,
			Amount:   item.Price * float64(item.Quantity),
		})
	}

	fee := 0.0
	if order.DeliveryFee != nil {
		fee = *order.DeliveryFee
	}

	return whatsapp.BuildHandoff(ownerPhone, whatsapp.OrderSummary{
		RestaurantName: restaurantName,
		CustomerName:   order.CustomerName,
		CustomerPhone:  order.CustomerPhone,
		DeliveryType:   order.DeliveryType,
		Address:        order.DeliveryAddress,
		Landmark:       order.Landmark,
		Lines:          lines,
		Subtotal:       order.Subtotal,
		DeliveryFee:    fee,
		Total:          order.Total,
	})
}

/* =========================
   LIST / GET
========================= */

func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders"
		defer handlePanic(c, route)

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		// Pagination only applies when both params are present; the admin
		// panel fetches everything by default.
		pageStr := c.Query("page")
		limitStr := c.Query("limit")
		if pageStr != "" && limitStr != "" {
			page, limit, err := parsePaginationParams(pageStr, limitStr)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
				return
			}
			findOptions.
				SetSkip((page - 1) * limit).
				SetLimit(limit)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(ctx, bson.M{}, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		log.Printf("[%s] returning %d orders", route, len(orders))
		c.JSON(http.StatusOK, orders)
	}
}

func GetOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": id}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

/* =========================
   STATUS UPDATE
========================= */

type orderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus accepts any of the five statuses from any current
// status; progression is an admin convention, not a store invariant.
func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/orders/:id"

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid order id")
			return
		}

		var req orderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		status := strings.TrimSpace(req.Status)
		if !isValidOrderStatus(status) {
			respondWithError(c, http.StatusBadRequest, route,
				"invalid status. Must be one of: "+strings.Join(validOrderStatuses, ", "))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		now := time.Now()
		result, err := db.Collection("orders").UpdateOne(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{
				"status":    status,
				"updatedAt": now,
			}},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}

		// Re-fetch to return the fresh record. Not atomic with concurrent
		// writers; a racing update (or delete) can show up here.
		var updated models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": id}).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found after update")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] order %s status set to %s", route, id.Hex(), status)
		c.JSON(http.StatusOK, updated)
	}
}
