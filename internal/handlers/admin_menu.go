package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

var menuCategories = []string{"shawama", "drinks", "food", "protein"}

func isValidMenuCategory(category string) bool {
	for _, c := range menuCategories {
		if c == category {
			return true
		}
	}
	return false
}

/* =======================
   REQUEST MODELS
======================= */

type menuItemCreateRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       *float64 `json:"price" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Image       string   `json:"image"`
	Available   *bool    `json:"available"`
}

type menuItemUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
	Available   *bool    `json:"available"`
}

/* =======================
   GET (ADMIN) – LIST
======================= */

// GetAllMenuItems returns every item, available or not; the admin panel
// manages unavailable dishes too.
func GetAllMenuItems(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/menu"
		defer handlePanic(c, route)

		filter := bson.M{}
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["category"] = category
		}
		if available := strings.TrimSpace(c.Query("available")); available != "" {
			filter["available"] = strings.EqualFold(available, "true")
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

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

		cursor, err := db.Collection("menu").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		items := make([]models.MenuItem, 0)
		if err := cursor.All(ctx, &items); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		log.Printf("[%s] returning %d items", route, len(items))
		c.JSON(http.StatusOK, items)
	}
}

/* =======================
   CREATE
======================= */

func CreateMenuItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/menu"
		defer handlePanic(c, route)

		var req menuItemCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		name := strings.TrimSpace(req.Name)
		description := strings.TrimSpace(req.Description)
		if name == "" || description == "" {
			respondWithError(c, http.StatusBadRequest, route, "name and description are required")
			return
		}

		// price 0 is a valid menu price; only negatives are rejected.
		if *req.Price < 0 {
			respondWithError(c, http.StatusBadRequest, route, "price must not be negative")
			return
		}

		category := strings.TrimSpace(req.Category)
		if !isValidMenuCategory(category) {
			respondWithError(c, http.StatusBadRequest, route,
				"invalid category. Must be one of: "+strings.Join(menuCategories, ", "))
			return
		}

		available := true
		if req.Available != nil {
			available = *req.Available
		}

		now := time.Now()
		item := models.MenuItem{
			Name:        name,
			Description: description,
			Price:       *req.Price,
			Category:    category,
			Image:       strings.TrimSpace(req.Image),
			Available:   available,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("menu").InsertOne(ctx, item)
		if err != nil {
			log.Println("[MENU] [ERROR] insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		item.ID = res.InsertedID.(primitive.ObjectID)
		log.Printf("[%s] created %s (%s)", route, item.ID.Hex(), item.Name)
		c.JSON(http.StatusCreated, item)
	}
}

/* =======================
   UPDATE
======================= */

func UpdateMenuItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/menu/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid menu item id")
			return
		}

		body, err := c.GetRawData()
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		var raw map[string]interface{}
		if err := json.Unmarshal(body, &raw); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		// The identifier is immutable; a body that tries to change it is
		// rejected rather than silently stripped.
		for _, key := range []string{"id", "_id"} {
			if value, ok := raw[key]; ok {
				str, _ := value.(string)
				if str != id.Hex() {
					respondWithError(c, http.StatusBadRequest, route, "id cannot be changed")
					return
				}
			}
		}

		var req menuItemUpdateRequest
		if err := json.Unmarshal(body, &req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		updateSet := bson.M{}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				respondWithError(c, http.StatusBadRequest, route, "name required")
				return
			}
			updateSet["name"] = name
		}
		if req.Description != nil {
			description := strings.TrimSpace(*req.Description)
			if description == "" {
				respondWithError(c, http.StatusBadRequest, route, "description required")
				return
			}
			updateSet["description"] = description
		}
		if req.Price != nil {
			if *req.Price < 0 {
				respondWithError(c, http.StatusBadRequest, route, "price must not be negative")
				return
			}
			updateSet["price"] = *req.Price
		}
		if req.Category != nil {
			category := strings.TrimSpace(*req.Category)
			if !isValidMenuCategory(category) {
				respondWithError(c, http.StatusBadRequest, route,
					"invalid category. Must be one of: "+strings.Join(menuCategories, ", "))
				return
			}
			updateSet["category"] = category
		}
		if req.Image != nil {
			updateSet["image"] = strings.TrimSpace(*req.Image)
		}
		if req.Available != nil {
			updateSet["available"] = *req.Available
		}

		if len(updateSet) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}
		updateSet["updatedAt"] = time.Now()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("menu").UpdateOne(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": updateSet},
		)
		if err != nil {
			log.Println("[MENU] [ERROR] update failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "menu item not found")
			return
		}

		var updated models.MenuItem
		err = db.Collection("menu").FindOne(ctx, bson.M{"_id": id}).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "menu item not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] updated %s fields=%v", route, id.Hex(), mapKeys(updateSet))
		c.JSON(http.StatusOK, updated)
	}
}

/* =======================
   DELETE (HARD)
======================= */

// DeleteMenuItem removes the document outright; orders keep their own
// name/price snapshots, so nothing dangles.
func DeleteMenuItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("menu").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}

		log.Println("[MENU] [INFO] deleted item:", id.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "menu item deleted"})
	}
}

func mapKeys(input bson.M) []string {
	keys := make([]string, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
