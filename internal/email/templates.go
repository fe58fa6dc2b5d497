package email

import (
	"fmt"
	"strings"

	"github.com/example/shopfront-gateway/internal/events"
)

// BuildNewOrderBody builds the HTML body of the new-order alert.
func BuildNewOrderBody(e events.OrderSubmitted) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); padding: 30px; border-radius: 10px 10px 0 0;">
		<h1 style="color: white; margin: 0; font-size: 24px;">New Order Received</h1>
	</div>

	<div style="background: #fff; padding: 30px; border: 1px solid #eee; border-top: none; border-radius: 0 0 10px 10px;">
		<div style="background: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px 0;">
			<p style="margin: 0; font-size: 14px; color: #666;">Order ID</p>
			<p style="margin: 5px 0 0 0; font-size: 18px; font-weight: bold; font-family: monospace;">%s</p>
		</div>

		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<tr>
				<td style="padding: 8px 12px; color: #666;">Customer</td>
				<td style="padding: 8px 12px; text-align: right; font-weight: 600;">%s</td>
			</tr>
			<tr>
				<td style="padding: 8px 12px; color: #666;">Delivery</td>
				<td style="padding: 8px 12px; text-align: right;">%s</td>
			</tr>
			<tr>
				<td style="padding: 8px 12px; color: #666;">Items</td>
				<td style="padding: 8px 12px; text-align: right;">%d</td>
			</tr>
		</table>

		<div style="text-align: right; padding: 20px; background: #f8f9fa; border-radius: 5px;">
			<span style="font-size: 14px; color: #666;">Total</span>
			<span style="font-size: 24px; font-weight: bold; color: #667eea; margin-left: 10px;">₦%s</span>
		</div>

		<p style="font-size: 12px; color: #999; margin-bottom: 0;">
			The customer has been asked to make a bank transfer and declare the payment.
		</p>
	</div>
</body>
</html>`, e.OrderID, e.CustomerName, e.DeliveryMethod, e.ItemCount, formatNumber(e.Total))
}

// BuildPaymentDeclaredBody builds the HTML body of the payment-declared alert.
func BuildPaymentDeclaredBody(e events.PaymentDeclared) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: linear-gradient(135deg, #11998e 0%%, #38ef7d 100%%); padding: 30px; border-radius: 10px 10px 0 0;">
		<h1 style="color: white; margin: 0; font-size: 24px;">Payment Declared</h1>
	</div>

	<div style="background: #fff; padding: 30px; border: 1px solid #eee; border-top: none; border-radius: 0 0 10px 10px;">
		<div style="background: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px 0;">
			<p style="margin: 0; font-size: 14px; color: #666;">Order ID</p>
			<p style="margin: 5px 0 0 0; font-size: 18px; font-weight: bold; font-family: monospace;">%s</p>
		</div>

		<p>The customer says they transferred from the account:</p>
		<p style="font-size: 20px; font-weight: bold;">%s</p>

		<p style="font-size: 12px; color: #999; margin-bottom: 0;">
			Check the bank statement and confirm the payment in the admin panel.
		</p>
	</div>
</body>
</html>`, e.OrderID, e.AccountName)
}

// formatNumber formats a number with comma separators
func formatNumber(n int) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	var result strings.Builder
	remainder := len(str) % 3
	if remainder > 0 {
		result.WriteString(str[:remainder])
		if len(str) > remainder {
			result.WriteString(",")
		}
	}

	for i := remainder; i < len(str); i += 3 {
		result.WriteString(str[i : i+3])
		if i+3 < len(str) {
			result.WriteString(",")
		}
	}

	return result.String()
}
