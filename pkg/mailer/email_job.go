package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either set Template and Data, or the literal Subject/Text/HTML bodies.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "account_provisioned"
	Data     map[string]any `json:"data,omitempty"`
}
