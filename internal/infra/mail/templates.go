package mail

import (
	"fmt"
	"html"
	"strings"
	"time"

	"muziris/internal/domain/entity"
)

// emailContent is a rendered message ready to hand to the provider.
type emailContent struct {
	Subject string
	HTML    string
	Text    string
}

// renderShell wraps message body HTML in the branded frame shared by every
// outgoing email. ctaText/ctaLink add a centered action button when non-empty.
func renderShell(body, ctaText, ctaLink string) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin: 0; padding: 0; font-family: 'Inter', Arial, sans-serif; background-color: #F0EFEA;">
<table role="presentation" width="100%" style="background-color: #F0EFEA; padding: 40px 20px;">
<tr><td align="center">
<table role="presentation" width="100%" style="max-width: 600px; background-color: #FFFFFF; border: 1px solid #E5E3DE;">
<tr>
<td style="padding: 40px 30px; text-align: center; background-color: #1A1A1A; border-bottom: 3px solid #C5A059;">
<h1 style="margin: 0; font-family: 'Playfair Display', Georgia, serif; font-size: 32px; color: #F0EFEA; letter-spacing: 1px;">House of Muziris</h1>
<p style="margin: 8px 0 0; font-size: 12px; color: #C5A059; letter-spacing: 2px; text-transform: uppercase;">Premium Spices from Kerala</p>
</td>
</tr>
<tr>
<td style="padding: 50px 40px; color: #1A1A1A; line-height: 1.8; font-size: 16px;">
`)
	b.WriteString(body)

	if ctaText != "" && ctaLink != "" {
		fmt.Fprintf(&b, `<div style="text-align: center;">
<a href="%s" style="display: inline-block; margin: 30px 0; padding: 16px 40px; background-color: #C5A059; color: #1A1A1A; text-decoration: none; font-weight: 500; font-size: 16px; border: 2px solid #1A1A1A;">%s</a>
</div>
`, html.EscapeString(ctaLink), html.EscapeString(ctaText))
	}

	fmt.Fprintf(&b, `</td>
</tr>
<tr>
<td style="padding: 30px 40px; background-color: #F0EFEA; border-top: 2px solid #1A1A1A; text-align: center; font-size: 13px; color: #666;">
<p style="margin: 0;">&copy; %d House of Muziris. All rights reserved.</p>
<p style="margin: 15px 0 0; font-size: 10px; color: #999;">Curating Heritage, One Spice at a Time</p>
</td>
</tr>
</table>
</td></tr>
</table>
</body>
</html>
`, time.Now().Year())

	return b.String()
}

func applicationReceivedEmail(name string) emailContent {
	safeName := html.EscapeString(name)
	body := fmt.Sprintf(`<p>Dear %s,</p>
<p>Thank you for your interest in joining the House of Muziris Guild!</p>
<p>We have received your Guild membership application and our team is currently reviewing it. You will receive an email notification once your application has been processed.</p>
<p>In the meantime, feel free to explore our premium spice collection and follow us for the latest updates on new releases and spice stories from Kerala.</p>
<p>We appreciate your patience and look forward to welcoming you to our exclusive Guild!</p>
`, safeName)

	text := fmt.Sprintf(`Dear %s,

Thank you for your interest in joining the House of Muziris Guild!

We have received your Guild membership application and our team is currently reviewing it. You will receive an email notification once your application has been processed.

We appreciate your patience and look forward to welcoming you to our exclusive Guild!

House of Muziris Team`, name)

	return emailContent{
		Subject: "Thank You for Applying to the House of Muziris Guild",
		HTML:    renderShell(body, "", ""),
		Text:    text,
	}
}

func approvalEmail(name, setupLink string) emailContent {
	safeName := html.EscapeString(name)
	body := fmt.Sprintf(`<p>Dear %s,</p>
<p>Congratulations! Your membership to House of Muziris has been approved.</p>
<p>We're delighted to welcome you to our exclusive community of spice connoisseurs. You now have access to our curated collection of rare and premium spices from master growers around the world.</p>
<p>To get started, click the button below to sign in and create your password. This secure link will expire in 1 hour.</p>
<ul style="line-height: 2; margin: 20px 0;">
<li>Premium spice collections before public release</li>
<li>Special member-only pricing on all products</li>
<li>Priority access to limited edition releases</li>
<li>Direct sourcing stories from Kerala's finest farms</li>
</ul>
`, safeName)

	text := fmt.Sprintf(`Dear %s,

Congratulations! Your membership to House of Muziris has been approved.

To get started, please use the link below to sign in and create your password:
%s

This secure link will expire in 1 hour.

Welcome to the family,
House of Muziris Team`, name, setupLink)

	return emailContent{
		Subject: "Welcome to House of Muziris — Membership Approved",
		HTML:    renderShell(body, "Set Up Your Account", setupLink),
		Text:    text,
	}
}

func rejectionEmail(name, reason string) emailContent {
	safeName := html.EscapeString(name)

	var b strings.Builder
	fmt.Fprintf(&b, `<p>Dear %s,</p>
<p>Thank you for your interest in joining the House of Muziris Guild.</p>
<p>After careful review, we regret to inform you that we are unable to approve your Guild membership application at this time.</p>
`, safeName)
	if reason != "" {
		fmt.Fprintf(&b, "<p><strong>Reason:</strong> %s</p>\n", html.EscapeString(reason))
	}
	b.WriteString(`<p>If you have any questions or would like to reapply in the future, please don't hesitate to contact us.</p>
<p>You can still shop our premium spice collection as a retail customer.</p>
`)

	text := fmt.Sprintf(`Dear %s,

Thank you for your interest in joining the House of Muziris Guild.

After careful review, we regret to inform you that we are unable to approve your Guild membership application at this time.`, name)
	if reason != "" {
		text += "\n\nReason: " + reason
	}
	text += "\n\nIf you have any questions or would like to reapply in the future, please contact us.\n\nHouse of Muziris Team"

	return emailContent{
		Subject: "Update on Your House of Muziris Guild Application",
		HTML:    renderShell(b.String(), "", ""),
		Text:    text,
	}
}

func loginLinkEmail(link string) emailContent {
	body := `<p>Welcome back to House of Muziris!</p>
<p>Click the button below to securely sign in to your account. This link will expire in 60 minutes for your security.</p>
`

	text := fmt.Sprintf(`Welcome back to House of Muziris!

Use the link below to securely sign in to your account. This link will expire in 60 minutes.

%s

House of Muziris Team`, link)

	return emailContent{
		Subject: "Your Sign-In Link for House of Muziris",
		HTML:    renderShell(body, "Sign In to Your Account", link),
		Text:    text,
	}
}

func orderConfirmationEmail(name string, order *entity.Order) emailContent {
	safeName := html.EscapeString(name)

	var rows strings.Builder
	var lines strings.Builder
	for _, item := range order.Items {
		lineTotal := item.Price * float64(item.Quantity)
		fmt.Fprintf(&rows, `<tr>
<td style="padding: 8px 0; border-bottom: 1px solid #E5E3DE;">%s <span style="font-size: 13px; color: #6B6B6B;">&times; %d</span></td>
<td style="padding: 8px 0; border-bottom: 1px solid #E5E3DE; text-align: right;">$%.2f</td>
</tr>
`, html.EscapeString(item.Name), item.Quantity, lineTotal)
		fmt.Fprintf(&lines, "- %s x %d — $%.2f\n", item.Name, item.Quantity, lineTotal)
	}

	body := fmt.Sprintf(`<h2 style="margin: 0 0 12px; font-family: 'Playfair Display', Georgia, serif; font-size: 22px;">Thank you, %s!</h2>
<p style="margin: 0 0 20px; font-size: 14px; color: #6B6B6B;">Your order has been confirmed.</p>
<div style="background-color: #F0EFEA; padding: 16px; margin-bottom: 20px;">
<p style="margin: 0 0 4px; font-size: 10px; color: #999; text-transform: uppercase;">Order Number</p>
<p style="margin: 0; font-family: monospace; font-size: 15px;">%s</p>
</div>
<table style="width: 100%%; margin-bottom: 20px;">
<thead>
<tr>
<th style="padding: 10px 0; border-bottom: 2px solid #C5A059; text-align: left; font-size: 10px; color: #6B6B6B; text-transform: uppercase;">Item</th>
<th style="padding: 10px 0; border-bottom: 2px solid #C5A059; text-align: right; font-size: 10px; color: #6B6B6B; text-transform: uppercase;">Price</th>
</tr>
</thead>
<tbody>
%s<tr>
<td style="padding: 12px 0 0; text-align: right; font-weight: 600;">Total</td>
<td style="padding: 12px 0 0; text-align: right; font-family: 'Playfair Display', Georgia, serif; font-size: 18px; color: #C5A059;">$%.2f</td>
</tr>
</tbody>
</table>
<div style="background-color: #C5A059; padding: 16px; margin-bottom: 20px; text-align: center;">
<p style="margin: 0 0 6px; font-size: 11px; color: #FFFFFF; text-transform: uppercase;">Loyalty Reward</p>
<p style="margin: 0; font-size: 22px; font-weight: 600; color: #FFFFFF;">+%d Points Earned</p>
<p style="margin: 6px 0 0; font-size: 10px; color: #F0EFEA;">10 points = $1 discount on your next order</p>
</div>
<p style="margin: 0; font-size: 13px; color: #6B6B6B;">Your order will be shipped within 2-3 business days.</p>
`, safeName, html.EscapeString(order.OrderNumber), rows.String(), order.Total, order.LoyaltyPointsEarned)

	text := fmt.Sprintf(`Dear %s,

Thank you for your order!

Order Number: %s
Total: $%.2f

Items Ordered:
%s
Loyalty Rewards:
You've earned %d loyalty points with this purchase!
(10 points = $1 discount on your next order)

Your order is being prepared and will be shipped within 2-3 business days.

Thank you for choosing House of Muziris!`, name, order.OrderNumber, order.Total, lines.String(), order.LoyaltyPointsEarned)

	return emailContent{
		Subject: fmt.Sprintf("Order Confirmed #%s — House of Muziris", order.OrderNumber),
		HTML:    renderShell(body, "", ""),
		Text:    text,
	}
}
