package mail

import (
	"testing"
	"time"

	"muziris/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestApprovalEmail_ContainsSetupLink(t *testing.T) {
	content := approvalEmail("Aparna", "https://houseofmuziris.com/member/setup?token=abc123")

	assert.Equal(t, "Welcome to House of Muziris — Membership Approved", content.Subject)
	assert.Contains(t, content.HTML, "Dear Aparna")
	assert.Contains(t, content.HTML, "https://houseofmuziris.com/member/setup?token=abc123")
	assert.Contains(t, content.HTML, "Set Up Your Account")
	assert.Contains(t, content.Text, "https://houseofmuziris.com/member/setup?token=abc123")
}

func TestRejectionEmail_ReasonIsOptional(t *testing.T) {
	withReason := rejectionEmail("Thomas", "incomplete business details")
	assert.Contains(t, withReason.HTML, "incomplete business details")
	assert.Contains(t, withReason.Text, "Reason: incomplete business details")

	withoutReason := rejectionEmail("Thomas", "")
	assert.NotContains(t, withoutReason.HTML, "Reason:")
	assert.NotContains(t, withoutReason.Text, "Reason:")
}

func TestLoginLinkEmail(t *testing.T) {
	content := loginLinkEmail("https://houseofmuziris.com/member/verify?token=xyz")

	assert.Contains(t, content.HTML, "Sign In to Your Account")
	assert.Contains(t, content.HTML, "token=xyz")
	assert.Contains(t, content.Text, "token=xyz")
}

func TestApplicationReceivedEmail(t *testing.T) {
	content := applicationReceivedEmail("Priya")

	assert.Contains(t, content.Subject, "Thank You for Applying")
	assert.Contains(t, content.HTML, "Dear Priya")
	assert.Contains(t, content.HTML, "currently reviewing")
}

func TestOrderConfirmationEmail(t *testing.T) {
	order := &entity.Order{
		OrderNumber: "HOM-20260829-deadbeef",
		Items: []entity.CartItem{
			{Name: "Tellicherry Pepper", Price: 12.5, Quantity: 2},
			{Name: "Green Cardamom", Price: 18, Quantity: 1},
		},
		Subtotal:            43,
		Discount:            3,
		Total:               40,
		LoyaltyPointsEarned: 40,
		CreatedAt:           time.Now(),
	}

	content := orderConfirmationEmail("Aparna", order)

	assert.Equal(t, "Order Confirmed #HOM-20260829-deadbeef — House of Muziris", content.Subject)
	assert.Contains(t, content.HTML, "HOM-20260829-deadbeef")
	assert.Contains(t, content.HTML, "Tellicherry Pepper")
	assert.Contains(t, content.HTML, "$25.00") // 12.5 x 2
	assert.Contains(t, content.HTML, "$40.00")
	assert.Contains(t, content.HTML, "+40 Points Earned")
	assert.Contains(t, content.Text, "You've earned 40 loyalty points")
}

func TestRenderShell_EscapesUserInput(t *testing.T) {
	content := rejectionEmail("<script>alert(1)</script>", "")

	assert.NotContains(t, content.HTML, "<script>")
	assert.Contains(t, content.HTML, "&lt;script&gt;")
}
