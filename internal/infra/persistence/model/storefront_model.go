package model

import "time"

// SpiceModel mirrors a document in the 'spices' collection.
type SpiceModel struct {
	Name        string  `firestore:"name"`
	Origin      string  `firestore:"origin,omitempty"`
	Description string  `firestore:"description,omitempty"`
	Price       float64 `firestore:"price"`
	Unit        string  `firestore:"unit,omitempty"`
	InStock     bool    `firestore:"inStock"`
}

// CartItemModel is one embedded line of a cart document.
type CartItemModel struct {
	ID       string  `firestore:"id"`
	SpiceID  string  `firestore:"spiceId"`
	Name     string  `firestore:"name"`
	Price    float64 `firestore:"price"`
	Quantity int     `firestore:"quantity"`
}

// CartModel mirrors a document in the 'carts' collection, keyed by user ID.
type CartModel struct {
	UserID    string          `firestore:"userId"`
	Items     []CartItemModel `firestore:"items"`
	UpdatedAt time.Time       `firestore:"updatedAt"`
}

// OrderModel mirrors a document in the 'orders' collection. All fields except
// PaymentStatus and UpdatedAt are frozen at creation.
type OrderModel struct {
	OrderNumber         string          `firestore:"orderNumber"`
	UserID              string          `firestore:"userId"`
	UserEmail           string          `firestore:"userEmail"`
	UserName            string          `firestore:"userName,omitempty"`
	Items               []CartItemModel `firestore:"items"`
	Subtotal            float64         `firestore:"subtotal"`
	Discount            float64         `firestore:"discount"`
	Total               float64         `firestore:"total"`
	LoyaltyPointsEarned int             `firestore:"loyaltyPointsEarned"`
	LoyaltyPointsUsed   int             `firestore:"loyaltyPointsUsed"`
	PaymentStatus       string          `firestore:"paymentStatus"`
	PaymentMethod       string          `firestore:"paymentMethod,omitempty"`
	CreatedAt           time.Time       `firestore:"createdAt"`
	UpdatedAt           time.Time       `firestore:"updatedAt"`
}

// PaymentModel mirrors a document in the 'payments' collection.
type PaymentModel struct {
	PaymentID     string    `firestore:"paymentId"`
	OrderID       string    `firestore:"orderId"`
	OrderNumber   string    `firestore:"orderNumber"`
	UserID        string    `firestore:"userId"`
	UserEmail     string    `firestore:"userEmail"`
	Amount        float64   `firestore:"amount"`
	Currency      string    `firestore:"currency"`
	PaymentMethod string    `firestore:"paymentMethod"`
	Status        string    `firestore:"status"`
	UPIID         string    `firestore:"upiId,omitempty"`
	TransactionID string    `firestore:"transactionId,omitempty"`
	CreatedAt     time.Time `firestore:"createdAt"`
	VerifiedAt    time.Time `firestore:"verifiedAt,omitempty"`
}
