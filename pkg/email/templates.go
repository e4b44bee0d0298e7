package email

import (
	"fmt"
	"html"
)

func LeadNotificationSubject(lead Lead) string {
	return fmt.Sprintf("New lead at %s: %s", lead.TradeshowName, lead.ContactName)
}

// LeadNotificationTemplate renders the HTML body. Every lead-supplied value is escaped.
func LeadNotificationTemplate(lead Lead, dashboardURL string) string {
	brand := lead.BrandName
	if brand == "" {
		brand = "TradeShow SaaS"
	}
	color := lead.BrandColor
	if color == "" {
		color = "#2563eb"
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>New Lead Captured</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f4f4f4;">
    <table role="presentation" style="width: 100%%; border-collapse: collapse;">
        <tr>
            <td align="center" style="padding: 40px 0;">
                <table role="presentation" style="width: 600px; border-collapse: collapse; background-color: #ffffff; border-radius: 8px;">
                    <tr>
                        <td style="padding: 32px 30px; text-align: center; background-color: %s; border-radius: 8px 8px 0 0;">
                            <h1 style="margin: 0; color: #ffffff; font-size: 24px;">New lead at %s</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 32px 30px;">
                            <p style="margin: 0 0 16px; font-size: 16px; color: #333333;">Hi %s,</p>
                            <p style="margin: 0 0 16px; font-size: 16px; color: #333333;">
                                <strong>%s</strong> (%s) just submitted their badge through the <em>%s</em> form.
                            </p>
                            <p style="margin: 0 0 24px; font-size: 14px; color: #666666;">Captured %s</p>
                            <a href="%s" style="display: inline-block; padding: 12px 32px; background-color: %s; color: #ffffff; text-decoration: none; border-radius: 6px; font-weight: bold;">Open dashboard</a>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 24px; text-align: center; background-color: #f8f8f8; border-radius: 0 0 8px 8px;">
                            <p style="margin: 0; font-size: 12px; color: #999999;">Sent by %s</p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`,
		html.EscapeString(color),
		html.EscapeString(lead.TradeshowName),
		html.EscapeString(lead.RepName),
		html.EscapeString(lead.ContactName),
		html.EscapeString(lead.ContactEmail),
		html.EscapeString(lead.FormSource),
		lead.CapturedAt.UTC().Format("Jan 2, 2006 15:04 MST"),
		html.EscapeString(dashboardURL),
		html.EscapeString(color),
		html.EscapeString(brand),
	)
}
