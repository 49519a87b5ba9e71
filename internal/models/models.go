package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is a closed set; login's role-gate branches switch over it.
type Role string

const (
	RoleUser   Role = "user"
	RoleAdmin  Role = "admin"
	RoleDealer Role = "dealer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleDealer:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"    json:"id"`
	Name         string    `gorm:"not null"                json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"    json:"email"`
	PasswordHash string    `gorm:"not null"                json:"-"`
	Role         Role      `gorm:"not null"                json:"role"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Dealer struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"    json:"id"`
	Name         string    `gorm:"not null"                json:"name"`
	Mobile       string    `gorm:"not null"                json:"mobile"`
	Email        string    `gorm:"uniqueIndex;not null"    json:"email"`
	StoreName    string    `gorm:"not null"                json:"storeName"`
	GSTN         string    `gorm:"not null"                json:"gstn"`
	Location     string    `gorm:"not null"                json:"location"`
	PasswordHash string    `gorm:"not null"                json:"-"`
	Role         Role      `gorm:"not null"                json:"role"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

func (d *Dealer) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Product.Img holds an opaque blob-store object key (or, for migrated
// legacy rows, a literal URL). It is resolved to a signed URL at read time
// and never served raw.
type Product struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string    `gorm:"not null"             json:"title"`
	NewPrice        string    `gorm:"not null"             json:"newPrice"`
	OldPrice        string    `json:"oldPrice,omitempty"`
	Discount        string    `json:"discount,omitempty"`
	Brand           string    `json:"brand,omitempty"`
	Category        string    `json:"category,omitempty"`
	Img             string    `json:"img,omitempty"`
	Description     string    `json:"description,omitempty"`
	NetWeight       string    `json:"netWeight,omitempty"`
	ProductFeatures string    `json:"productFeatures,omitempty"`
	DirectionToUse  string    `json:"directionToUse,omitempty"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Cart is unique per user. It is created lazily on the first add and only
// ever emptied, never deleted, when an order is placed.
type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"  json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                          json:"id"`
	CartID    uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_cart_product"  json:"cart_id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_product"        json:"product_id"`
	Quantity  uint      `gorm:"default:1;check:quantity>0"                    json:"quantity"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type OrderStatus string

const (
	// OrderStatusOpen is the implicit starting state of a just-created order.
	OrderStatusOpen   OrderStatus = "open"
	OrderStatusPlaced OrderStatus = "placed"
)

type Order struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"  json:"id"`
	UserID    uuid.UUID   `gorm:"type:uuid;index"       json:"user_id"`
	Status    OrderStatus `gorm:"not null"              json:"orderStatus"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"        json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"             json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"          json:"product_id"`
	Quantity  uint      `gorm:"default:1;check:quantity>0"  json:"quantity"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Rating is unique per (product, user); the index backs up the engine's
// check-then-write against concurrent duplicates.
type Rating struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                            json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_product_user;not null" json:"product_id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_product_user;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID"                               json:"-"`
	Rating    int       `gorm:"not null;check:rating BETWEEN 1 AND 5"           json:"rating"`
	Review    string    `json:"review,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// All returns every model for AutoMigrate.
func All() []any {
	return []any{
		&User{}, &Dealer{}, &Product{},
		&Cart{}, &CartItem{},
		&Order{}, &OrderItem{},
		&Rating{},
	}
}
