package transport

import (
	"time"

	"github.com/google/uuid"

	"github.com/freshkart/shopapi/internal/models"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type DealerRegisterRequest struct {
	Name      string `json:"name"`
	Mobile    string `json:"mobile"`
	Email     string `json:"email"`
	StoreName string `json:"storeName"`
	GSTN      string `json:"gstn"`
	Location  string `json:"location"`
	Password  string `json:"password"`
}

type DealerLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  uint   `json:"quantity"`
}

type RateRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// UserView is the sanitized identity returned by auth and profile routes;
// the password hash never leaves the model layer.
type UserView struct {
	ID    uuid.UUID   `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

type DealerView struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Mobile    string      `json:"mobile,omitempty"`
	Email     string      `json:"email"`
	StoreName string      `json:"storeName"`
	GSTN      string      `json:"gstn,omitempty"`
	Location  string      `json:"location,omitempty"`
	Role      models.Role `json:"role"`
}

// ProductView mirrors the product record with Img replaced by a signed
// retrieval URL. Img is null when the product has no image or signing
// failed; the raw object key is never surfaced.
type ProductView struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	NewPrice        string    `json:"newPrice"`
	OldPrice        string    `json:"oldPrice,omitempty"`
	Discount        string    `json:"discount,omitempty"`
	Brand           string    `json:"brand,omitempty"`
	Category        string    `json:"category,omitempty"`
	Img             *string   `json:"img"`
	Description     string    `json:"description,omitempty"`
	NetWeight       string    `json:"netWeight,omitempty"`
	ProductFeatures string    `json:"productFeatures,omitempty"`
	DirectionToUse  string    `json:"directionToUse,omitempty"`
}

type LineItemView struct {
	Product  *ProductView `json:"product"`
	Quantity uint         `json:"quantity"`
}

type CartView struct {
	Products []LineItemView `json:"products"`
}

type OrderView struct {
	ID          uuid.UUID          `json:"id"`
	OrderStatus models.OrderStatus `json:"orderStatus"`
	Products    []LineItemView     `json:"products"`
	CreatedAt   time.Time          `json:"created_at"`
}

type RatingView struct {
	ID        uuid.UUID `json:"id"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review,omitempty"`
	UserName  string    `json:"userName"`
	CreatedAt time.Time `json:"created_at"`
}

type RatingsAggregate struct {
	Ratings       []RatingView `json:"ratings"`
	AverageRating float64      `json:"averageRating"`
	TotalRatings  int          `json:"totalRatings"`
}
