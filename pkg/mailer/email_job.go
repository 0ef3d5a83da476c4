package mailer

import "errors"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (with Data) or a literal Subject plus Text/HTML is set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // templates.Welcome or templates.SubscriptionUpdated
	Data     map[string]any `json:"data,omitempty"`
}

func (j EmailJob) Validate() error {
	if j.To == "" {
		return errors.New("email job has no recipient")
	}
	if j.Template == "" && j.Subject == "" {
		return errors.New("email job has neither template nor subject")
	}
	return nil
}
