package handler

import (
	"log/slog"
	"math"
	"net/http"
	"time"

	"muziris/config"
	"muziris/internal/delivery/http/middleware"
	"muziris/internal/delivery/http/response"
	"muziris/internal/domain/entity"
	"muziris/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type addItemRequest struct {
	SpiceID string `json:"spiceId" validate:"required"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

type checkoutRequest struct {
	RedeemPoints int `json:"redeemPoints" validate:"min=0"`
}

type spiceResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Origin      string  `json:"origin"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
	InStock     bool    `json:"inStock"`
}

type cartItemResponse struct {
	ID       string  `json:"id"`
	SpiceID  string  `json:"spiceId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type cartResponse struct {
	Items     []cartItemResponse `json:"items"`
	Subtotal  float64            `json:"subtotal"`
	Count     int                `json:"count"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type orderResponse struct {
	ID                  string             `json:"id"`
	OrderNumber         string             `json:"orderNumber"`
	Items               []cartItemResponse `json:"items"`
	Subtotal            float64            `json:"subtotal"`
	Discount            float64            `json:"discount"`
	Total               float64            `json:"total"`
	SecondaryTotal      float64            `json:"secondaryTotal,omitempty"`
	SecondaryCurrency   string             `json:"secondaryCurrency,omitempty"`
	LoyaltyPointsEarned int                `json:"loyaltyPointsEarned"`
	LoyaltyPointsUsed   int                `json:"loyaltyPointsUsed"`
	PaymentStatus       string             `json:"paymentStatus"`
	PaymentMethod       string             `json:"paymentMethod"`
	CreatedAt           time.Time          `json:"createdAt"`
}

type paymentResponse struct {
	ID          string  `json:"id"`
	PaymentID   string  `json:"paymentId"`
	OrderID     string  `json:"orderId"`
	OrderNumber string  `json:"orderNumber"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Status      string  `json:"status"`
	UPIID       string  `json:"upiId,omitempty"`
}

type checkoutResponse struct {
	Order         orderResponse   `json:"order"`
	Payment       paymentResponse `json:"payment"`
	PointsBalance int             `json:"pointsBalance"`
}

func toCartItemResponses(items []entity.CartItem) []cartItemResponse {
	out := make([]cartItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, cartItemResponse{
			ID:       item.ID,
			SpiceID:  item.SpiceID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	return out
}

func toCartResponse(cart *entity.UserCart) cartResponse {
	return cartResponse{
		Items:     toCartItemResponses(cart.Items),
		Subtotal:  cart.Subtotal(),
		Count:     cart.Count(),
		UpdatedAt: cart.UpdatedAt,
	}
}

func toPaymentResponse(payment *entity.Payment) paymentResponse {
	return paymentResponse{
		ID:          payment.ID,
		PaymentID:   payment.PaymentID,
		OrderID:     payment.OrderID,
		OrderNumber: payment.OrderNumber,
		Amount:      payment.Amount,
		Currency:    payment.Currency,
		Status:      string(payment.Status),
		UPIID:       payment.UPIID,
	}
}

// StorefrontHandler holds dependencies for the member storefront: catalog,
// cart, checkout and order history.
type StorefrontHandler struct {
	cartUC     usecase.CartUsecase
	checkoutUC usecase.CheckoutUsecase
	currency   *config.CurrencyConfig
	logger     *slog.Logger
}

// NewStorefrontHandler is the constructor for StorefrontHandler, injected by Fx.
func NewStorefrontHandler(cartUC usecase.CartUsecase, checkoutUC usecase.CheckoutUsecase, cfg *config.Config, logger *slog.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		cartUC:     cartUC,
		checkoutUC: checkoutUC,
		currency:   cfg.Currency,
		logger:     logger,
	}
}

// toOrderResponse attaches the secondary-currency display amount using the
// configured static exchange rate.
func (h *StorefrontHandler) toOrderResponse(order *entity.Order) orderResponse {
	out := orderResponse{
		ID:                  order.ID,
		OrderNumber:         order.OrderNumber,
		Items:               toCartItemResponses(order.Items),
		Subtotal:            order.Subtotal,
		Discount:            order.Discount,
		Total:               order.Total,
		LoyaltyPointsEarned: order.LoyaltyPointsEarned,
		LoyaltyPointsUsed:   order.LoyaltyPointsUsed,
		PaymentStatus:       string(order.PaymentStatus),
		PaymentMethod:       order.PaymentMethod,
		CreatedAt:           order.CreatedAt,
	}

	if h.currency != nil && h.currency.ExchangeRate > 0 && h.currency.Secondary != "" {
		out.SecondaryTotal = math.Round(order.Total*h.currency.ExchangeRate*100) / 100
		out.SecondaryCurrency = h.currency.Secondary
	}

	return out
}

func memberEmail(c echo.Context) (string, error) {
	email, ok := middleware.MemberEmail(c)
	if !ok {
		return "", response.Unauthorized(c, "INVALID_TOKEN", "Member identity missing")
	}

	return email, nil
}

// ListSpices returns the catalog.
func (h *StorefrontHandler) ListSpices(c echo.Context) error {
	spices, err := h.cartUC.ListSpices(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]spiceResponse, 0, len(spices))
	for _, spice := range spices {
		out = append(out, spiceResponse{
			ID:          spice.ID,
			Name:        spice.Name,
			Origin:      spice.Origin,
			Description: spice.Description,
			Price:       spice.Price,
			Unit:        spice.Unit,
			InStock:     spice.InStock,
		})
	}

	return response.Success(c, http.StatusOK, out, "Catalog retrieved")
}

// GetCart returns the member's cart.
func (h *StorefrontHandler) GetCart(c echo.Context) error {
	email, err := memberEmail(c)
	if err != nil {
		return err
	}

	cart, err := h.cartUC.GetCart(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(cart), "Cart retrieved")
}

// AddItem adds one unit of a spice to the cart.
func (h *StorefrontHandler) AddItem(c echo.Context) error {
	email, err := memberEmail(c)
	if err != nil {
		return err
	}

	var input addItemRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Spice ID is required")
	}

	cart, err := h.cartUC.AddItem(c.Request().Context(), email, input.SpiceID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(cart), "Item added")
}

// SetQuantity updates a cart line's quantity. Zero removes the line; a
// positive quantity for a spice not yet in the cart inserts one line.
func (h *StorefrontHandler) SetQuantity(c echo.Context) error {
	email, err := memberEmail(c)
	if err != nil {
		return err
	}

	spiceID := c.Param("spiceID")
	if spiceID == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Spice ID is required")
	}

	var input setQuantityRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quantity input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Quantity must be zero or positive")
	}

	cart, err := h.cartUC.SetQuantity(c.Request().Context(), email, spiceID, input.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(cart), "Cart updated")
}

// Checkout places an order from the member's cart.
func (h *StorefrontHandler) Checkout(c echo.Context) error {
	email, err := memberEmail(c)
	if err != nil {
		return err
	}

	var input checkoutRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Redeemed points must be zero or positive")
	}

	output, err := h.checkoutUC.Checkout(c.Request().Context(), &usecase.CheckoutInput{
		UserID:       email,
		UserName:     email,
		RedeemPoints: input.RedeemPoints,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, checkoutResponse{
		Order:         h.toOrderResponse(output.Order),
		Payment:       toPaymentResponse(output.Payment),
		PointsBalance: output.PointsBalance,
	}, "Order placed")
}

// ListOrders returns the member's order history, newest first.
func (h *StorefrontHandler) ListOrders(c echo.Context) error {
	email, err := memberEmail(c)
	if err != nil {
		return err
	}

	orders, err := h.checkoutUC.ListOrders(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, h.toOrderResponse(order))
	}

	return response.Success(c, http.StatusOK, out, "Orders retrieved")
}

// ConfirmPayment records the payer's "I've paid" signal for an order.
func (h *StorefrontHandler) ConfirmPayment(c echo.Context) error {
	email, err := memberEmail(c)
	if err != nil {
		return err
	}

	orderID := c.Param("orderID")
	if orderID == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Order ID is required")
	}

	if err := h.checkoutUC.ConfirmPayment(c.Request().Context(), email, orderID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Payment confirmed")
}

// PaymentQR streams the UPI payment QR PNG for an order.
func (h *StorefrontHandler) PaymentQR(c echo.Context) error {
	email, err := memberEmail(c)
	if err != nil {
		return err
	}

	orderID := c.Param("orderID")
	if orderID == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Order ID is required")
	}

	png, err := h.checkoutUC.PaymentQR(c.Request().Context(), email, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
