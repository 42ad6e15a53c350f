package email

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict strips every tag and escapes entities so visitor input can be
// embedded in the HTML part without rendering anything.
var strict = bluemonday.StrictPolicy()

// ContactEmailData is the content of one contact-form relay.
type ContactEmailData struct {
	Name      string
	Email     string
	Message   string
	Recipient string
}

// BuildContactEmail creates the relay message sent to the site owner.
// Replies go to the visitor, never to the relay account.
func BuildContactEmail(data ContactEmailData) Message {
	subject := fmt.Sprintf("New contact form message from %s", oneLine(data.Name))

	textBody := fmt.Sprintf(`You have a new contact form submission.

Name: %s
Email: %s

Message:
%s
`, data.Name, data.Email, data.Message)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2563eb;">New contact form submission</h2>
    <p><strong>Name:</strong> %s</p>
    <p><strong>Email:</strong> %s</p>
    <p><strong>Message:</strong></p>
    <p style="background-color: #f3f4f6; padding: 10px 15px; border-radius: 4px;">%s</p>
</body>
</html>`,
		sanitize(data.Name), sanitize(data.Email), sanitize(data.Message))

	return Message{
		To:       []string{data.Recipient},
		ReplyTo:  data.Email,
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}

func sanitize(s string) string {
	return strings.ReplaceAll(strict.Sanitize(s), "\n", "<br>")
}

// oneLine keeps header values on a single line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
