package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeliveryZone groups landmark labels that share one flat delivery fee.
// Zone order matters: checkout scans the list and the first zone containing
// the selected landmark wins.
type DeliveryZone struct {
	Name      string   `bson:"name" json:"name"`
	Landmarks []string `bson:"landmarks" json:"landmarks"`
	Fee       float64  `bson:"fee" json:"fee"`
}

// Settings is a singleton document; at most one exists in the collection.
type Settings struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RestaurantName      string             `bson:"restaurantName" json:"restaurantName"`
	Email               string             `bson:"email" json:"email"`
	Phone               string             `bson:"phone" json:"phone"`
	Address             string             `bson:"address" json:"address"`
	Currency            string             `bson:"currency" json:"currency"`
	TaxRate             float64            `bson:"taxRate" json:"taxRate"`
	EnableNotifications bool               `bson:"enableNotifications" json:"enableNotifications"`
	EnableEmailAlerts   bool               `bson:"enableEmailAlerts" json:"enableEmailAlerts"`
	DeliveryZones       []DeliveryZone     `bson:"deliveryZones" json:"deliveryZones"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DefaultSettings is what GET /settings serves before an admin has saved
// anything, and what fills the gaps of a partial save.
func DefaultSettings() Settings {
	return Settings{
		RestaurantName:      "De Helen's Taste",
		Email:               "example@email.com",
		Phone:               "+64 958 248 966",
		Address:             "",
		Currency:            "NGN",
		TaxRate:             0,
		EnableNotifications: true,
		EnableEmailAlerts:   false,
		DeliveryZones: []DeliveryZone{
			{
				Name:      "Zone 8, Phase II",
				Landmarks: []string{"Zone 8", "Phase II", "Phase 2"},
				Fee:       500,
			},
			{
				Name:      "Crusher, Zango, Ganaja Junction Beyond",
				Landmarks: []string{"Crusher", "Zango", "Ganaja", "Ganaja Junction"},
				Fee:       1000,
			},
		},
	}
}
