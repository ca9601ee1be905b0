package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

/*
GET /admin/api/stats
- menu totals per category plus order counts and revenue for the dashboard
- revenue excludes cancelled orders
*/
func GetStats(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/stats"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		totalItems, err := db.Collection("menu").CountDocuments(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		availableItems, err := db.Collection("menu").CountDocuments(ctx, bson.M{"available": true})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		categories := gin.H{}
		for _, category := range menuCategories {
			count, err := db.Collection("menu").CountDocuments(ctx, bson.M{"category": category})
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
			categories[category] = count
		}

		byStatus, revenue, err := orderTotals(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		totalOrders := int64(0)
		for _, count := range byStatus {
			totalOrders += count
		}

		topItems, err := topSellingItems(ctx, db, 5)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"menu": gin.H{
				"totalItems":     totalItems,
				"availableItems": availableItems,
				"categories":     categories,
			},
			"orders": gin.H{
				"total":    totalOrders,
				"byStatus": byStatus,
				"revenue":  revenue,
			},
			"topItems": topItems,
		})
	}
}

func orderTotals(ctx context.Context, db *mongo.Database) (map[string]int64, float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":     "$status",
			"count":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$total"},
		}}},
	}

	cursor, err := db.Collection("orders").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var groups []struct {
		Status  string  `bson:"_id"`
		Count   int64   `bson:"count"`
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, 0, err
	}

	byStatus := make(map[string]int64, len(validOrderStatuses))
	for _, status := range validOrderStatuses {
		byStatus[status] = 0
	}

	revenue := 0.0
	for _, group := range groups {
		byStatus[group.Status] = group.Count
		if group.Status != "cancelled" {
			revenue += group.Revenue
		}
	}

	return byStatus, revenue, nil
}

type itemSales struct {
	Name     string  `bson:"_id" json:"name"`
	Quantity int64   `bson:"quantity" json:"quantity"`
	Revenue  float64 `bson:"revenue" json:"revenue"`
}

// topSellingItems ranks dishes by units sold across non-cancelled orders.
func topSellingItems(ctx context.Context, db *mongo.Database, limit int) ([]itemSales, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": bson.M{"$ne": "cancelled"}}}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$items.name",
			"quantity": bson.M{"$sum": "$items.quantity"},
			"revenue":  bson.M{"$sum": bson.M{"$multiply": bson.A{"$items.price", "$items.quantity"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "quantity", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := db.Collection("orders").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]itemSales, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
