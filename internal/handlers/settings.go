package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

/* =========================
   REQUEST DTOs
========================= */

type deliveryZoneRequest struct {
	Name      string   `json:"name"`
	Landmarks []string `json:"landmarks"`
	Fee       float64  `json:"fee"`
}

// settingsRequest uses pointers throughout: a partial payload fills its gaps
// from the hardcoded defaults instead of failing validation.
type settingsRequest struct {
	RestaurantName      *string                `json:"restaurantName"`
	Email               *string                `json:"email"`
	Phone               *string                `json:"phone"`
	Address             *string                `json:"address"`
	Currency            *string                `json:"currency"`
	TaxRate             *float64               `json:"taxRate"`
	EnableNotifications *bool                  `json:"enableNotifications"`
	EnableEmailAlerts   *bool                  `json:"enableEmailAlerts"`
	DeliveryZones       *[]deliveryZoneRequest `json:"deliveryZones"`
}

/* =========================
   HELPERS
========================= */

// fetchSettings returns the singleton settings document, or the hardcoded
// defaults when none has been saved yet.
func fetchSettings(ctx context.Context, db *mongo.Database) (models.Settings, error) {
	var settings models.Settings
	err := db.Collection("settings").FindOne(ctx, bson.M{}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, err
	}
	if settings.DeliveryZones == nil {
		settings.DeliveryZones = []models.DeliveryZone{}
	}
	return settings, nil
}

func normalizeZones(zones []deliveryZoneRequest) ([]models.DeliveryZone, error) {
	out := make([]models.DeliveryZone, 0, len(zones))

	for _, zone := range zones {
		name := strings.TrimSpace(zone.Name)
		if name == "" {
			continue
		}
		if zone.Fee < 0 {
			return nil, errors.New("delivery zone fee must not be negative")
		}

		seen := map[string]struct{}{}
		landmarks := make([]string, 0, len(zone.Landmarks))
		for _, raw := range zone.Landmarks {
			landmark := strings.TrimSpace(raw)
			if landmark == "" {
				continue
			}
			if _, ok := seen[landmark]; ok {
				continue
			}
			seen[landmark] = struct{}{}
			landmarks = append(landmarks, landmark)
		}
		if len(landmarks) == 0 {
			continue
		}

		out = append(out, models.DeliveryZone{
			Name:      name,
			Landmarks: landmarks,
			Fee:       zone.Fee,
		})
	}

	return out, nil
}

// normalizeSettings merges a save payload over the defaults; only fields the
// request actually set override them.
func normalizeSettings(req settingsRequest) (models.Settings, error) {
	settings := models.DefaultSettings()

	if req.RestaurantName != nil && strings.TrimSpace(*req.RestaurantName) != "" {
		settings.RestaurantName = strings.TrimSpace(*req.RestaurantName)
	}
	if req.Email != nil {
		settings.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		settings.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		settings.Address = strings.TrimSpace(*req.Address)
	}
	if req.Currency != nil && strings.TrimSpace(*req.Currency) != "" {
		settings.Currency = strings.TrimSpace(*req.Currency)
	}
	if req.TaxRate != nil {
		if *req.TaxRate < 0 || *req.TaxRate > 100 {
			return models.Settings{}, errors.New("taxRate must be between 0 and 100")
		}
		settings.TaxRate = *req.TaxRate
	}
	if req.EnableNotifications != nil {
		settings.EnableNotifications = *req.EnableNotifications
	}
	if req.EnableEmailAlerts != nil {
		settings.EnableEmailAlerts = *req.EnableEmailAlerts
	}
	if req.DeliveryZones != nil {
		zones, err := normalizeZones(*req.DeliveryZones)
		if err != nil {
			return models.Settings{}, err
		}
		settings.DeliveryZones = zones
	}

	return settings, nil
}

/* =========================
   GET / SAVE
========================= */

func GetSettings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /settings"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		settings, err := fetchSettings(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to fetch settings")
			return
		}

		c.JSON(http.StatusOK, settings)
	}
}

func SaveSettings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/settings"
		defer handlePanic(c, route)

		var req settingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		settings, err := normalizeSettings(req)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		settings.UpdatedAt = time.Now()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		// Full-replace upsert against the singleton document.
		_, err = db.Collection("settings").UpdateOne(
			ctx,
			bson.M{},
			bson.M{"$set": settings},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			log.Println("[SETTINGS] [ERROR] upsert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "failed to save settings")
			return
		}

		log.Printf("[%s] settings saved, %d delivery zones", route, len(settings.DeliveryZones))
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Settings saved successfully",
			"settings": settings,
		})
	}
}
