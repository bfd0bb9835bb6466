package services

import (
	"errors"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/serigraph/quotebot/internal/config"
	"github.com/serigraph/quotebot/internal/logger"
	"github.com/serigraph/quotebot/internal/utils"
)

// ErrTwilioNotConfigured is returned when the Twilio credentials are missing.
var ErrTwilioNotConfigured = errors.New("missing Twilio credentials")

// messageAPI is the slice of the Twilio REST API used to send messages.
type messageAPI interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type TwilioService struct {
	api  messageAPI
	from string // Format: "whatsapp:+14155238886"
	log  *logger.Logger
}

// NewTwilioService creates a new Twilio service instance
func NewTwilioService(cfg config.TwilioConfig, log *logger.Logger) (*TwilioService, error) {
	if !cfg.Configured() {
		return nil, ErrTwilioNotConfigured
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return newTwilioService(client.Api, cfg.WhatsAppFrom, log), nil
}

func newTwilioService(api messageAPI, from string, log *logger.Logger) *TwilioService {
	if log == nil {
		log = logger.NewNop()
	}
	return &TwilioService{
		api:  api,
		from: utils.WhatsAppAddress(from),
		log:  log,
	}
}

// SendWhatsAppMessage sends a WhatsApp text message via Twilio
func (t *TwilioService) SendWhatsAppMessage(to string, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(utils.WhatsAppAddress(to))
	params.SetBody(message)

	return t.create(params, to)
}

// SendWhatsAppMedia sends a WhatsApp message with one attached media URL.
// Twilio fetches the media itself, so mediaURL must be publicly reachable.
func (t *TwilioService) SendWhatsAppMedia(to, caption, mediaURL string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(utils.WhatsAppAddress(to))
	params.SetBody(caption)
	params.SetMediaUrl([]string{mediaURL})

	return t.create(params, to)
}

func (t *TwilioService) create(params *twilioApi.CreateMessageParams, to string) error {
	resp, err := t.api.CreateMessage(params)
	if err != nil {
		t.log.Error("❌ Failed to send WhatsApp message", "to", to, "error", err.Error())
		return fmt.Errorf("send whatsapp message: %w", err)
	}

	if resp.ErrorCode != nil && *resp.ErrorCode != 0 {
		msg := ""
		if resp.ErrorMessage != nil {
			msg = *resp.ErrorMessage
		}
		return fmt.Errorf("twilio error %d: %s", *resp.ErrorCode, msg)
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	t.log.Info("✅ WhatsApp message sent", "to", to, "sid", sid)
	return nil
}
