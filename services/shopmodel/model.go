package shopmodel

import "time"

// User owns its cart: all cart mutation goes through the methods below and is
// persisted as one entity, so a store transaction serializes cart changes.
type User struct {
	UID          string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-" datastore:",noindex"`
	Cart         []LineItem `json:"cart"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastOrderAt  *time.Time `json:"lastOrderAt,omitempty"`
}

type LineItem struct {
	ProductUID string `json:"productId"`
	Quantity   int    `json:"quantity"`
}

// UserSummary is the outward view of a user: never carries the password hash.
type UserSummary struct {
	UID         string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastOrderAt *time.Time `json:"lastOrderAt,omitempty"`
}

func (u User) Summary() UserSummary {
	return UserSummary{
		UID:         u.UID,
		Name:        u.Name,
		Email:       u.Email,
		CreatedAt:   u.CreatedAt,
		LastOrderAt: u.LastOrderAt,
	}
}

// AddToCart appends a line item for the product, or bumps the quantity when
// the product is already in the cart.
func (u *User) AddToCart(productUID string) {
	for i, item := range u.Cart {
		if item.ProductUID == productUID {
			u.Cart[i].Quantity++
			return
		}
	}
	u.Cart = append(u.Cart, LineItem{
		ProductUID: productUID,
		Quantity:   1,
	})
}

// RemoveFromCart drops the whole line for the product. Removing a product
// that is not in the cart is a no-op.
func (u *User) RemoveFromCart(productUID string) {
	kept := u.Cart[:0]
	for _, item := range u.Cart {
		if item.ProductUID != productUID {
			kept = append(kept, item)
		}
	}
	u.Cart = kept
}

type Product struct {
	UID          string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        int      `json:"price"` // in cents
	Image        string   `json:"image"`
	Category     string   `json:"category"`
	SubCategory  string   `json:"subCategory"`
	Rating       float64  `json:"rating"`
	Reviews      []Review `json:"reviews" datastore:",noindex"`
	InStock      bool     `json:"inStock"`
	FreeShipping bool     `json:"freeShipping"`
}

type Review struct {
	User    string `json:"user"`
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

type OrderStatus string

const (
	OrderStatusPlaced OrderStatus = "placed"
)

// Order is an immutable snapshot: prices are captured at checkout time and
// stay untouched by later catalog changes.
type Order struct {
	UID        string      `json:"id"`
	UserUID    string      `json:"userId"`
	Lines      []OrderLine `json:"items"`
	TotalPrice int         `json:"total"`
	Address    string      `json:"address"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
}

type OrderLine struct {
	ProductUID string `json:"productId"`
	Name       string `json:"name"`
	Price      int    `json:"price"` // captured at checkout, in cents
	Quantity   int    `json:"quantity"`
}

func (l OrderLine) TotalPrice() int {
	return l.Price * l.Quantity
}
