package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is the name/price snapshot captured at checkout time. Later edits
// to the live menu item do not touch it.
type OrderItem struct {
	ItemID   primitive.ObjectID `bson:"itemId" json:"itemId"`
	Name     string             `bson:"name" json:"name"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Price    float64            `bson:"price" json:"price"`
}

// Order defines the persisted order document. DeliveryFee is absent for
// pickup orders, so a free delivery zone and "no fee" stay distinguishable.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerName    string             `bson:"customerName" json:"customerName"`
	CustomerPhone   string             `bson:"customerPhone" json:"customerPhone"`
	Items           []OrderItem        `bson:"items" json:"items"`
	DeliveryType    string             `bson:"deliveryType" json:"deliveryType"`
	DeliveryAddress string             `bson:"deliveryAddress,omitempty" json:"deliveryAddress,omitempty"`
	Landmark        string             `bson:"landmark,omitempty" json:"landmark,omitempty"`
	DeliveryFee     *float64           `bson:"deliveryFee,omitempty" json:"deliveryFee,omitempty"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	Total           float64            `bson:"total" json:"total"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
