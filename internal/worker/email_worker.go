package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Misscott/LocationAPI/internal/infra"
	"github.com/rs/zerolog/log"
)

// WelcomeEmailPayload is the job envelope sent to QueueEmail after a
// successful self-registration.
type WelcomeEmailPayload struct {
	ToEmail  string `json:"to_email"`
	Username string `json:"username"`
}

// EmailWorker sends transactional emails via SMTP.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends the welcome email. An empty recipient is not an error: users
// may register without an email address.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload WelcomeEmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil // malformed payloads never succeed on retry
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return nil
	}

	body := fmt.Sprintf("Hi %s,\n\nYour account has been created. You can now sign in and start saving places.\n", payload.Username)
	if err := w.mailer.Send(payload.ToEmail, "Welcome", body); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		return err
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: welcome email sent")
	return nil
}
