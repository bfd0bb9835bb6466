package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/serigraph/quotebot/internal/logger"
	"github.com/serigraph/quotebot/internal/utils"
)

const (
	messageTimeout = 30 * time.Second
	fallbackReply  = "⚠️ Tuvimos un problema procesando tu mensaje. Inténtalo de nuevo más tarde."
)

// Conversation advances a user's dialog by one message.
type Conversation interface {
	HandleMessage(ctx context.Context, userID, text string) (string, error)
}

// ReplySender delivers a text reply over WhatsApp.
type ReplySender interface {
	SendWhatsAppMessage(to string, message string) error
}

// Deduper reports whether an inbound message id was already processed.
type Deduper interface {
	Seen(ctx context.Context, id string) (bool, error)
}

// WhatsAppHandler handles WhatsApp webhook requests
type WhatsAppHandler struct {
	conversation Conversation
	sender       ReplySender
	dedupe       Deduper
	region       string
	log          *logger.Logger
}

// NewWhatsAppHandler creates a new WhatsApp handler. sender and dedupe may be
// nil: replies are then only logged and retries are not filtered.
func NewWhatsAppHandler(conversation Conversation, sender ReplySender, dedupe Deduper, region string, log *logger.Logger) *WhatsAppHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &WhatsAppHandler{
		conversation: conversation,
		sender:       sender,
		dedupe:       dedupe,
		region:       region,
		log:          log,
	}
}

// TwilioWebhookPayload represents incoming WhatsApp message from Twilio
type TwilioWebhookPayload struct {
	MessageSid string `form:"MessageSid"`
	AccountSid string `form:"AccountSid"`
	From       string `form:"From"` // whatsapp:+5215512345678
	To         string `form:"To"`
	Body       string `form:"Body"`
	NumMedia   string `form:"NumMedia"`

	MessageStatus string `form:"MessageStatus"`
	SmsStatus     string `form:"SmsStatus"`
}

// IsStatusCallback reports whether Twilio is reporting on an outbound message
// rather than delivering an inbound one. Inbound messages carry "received".
func (p TwilioWebhookPayload) IsStatusCallback() bool {
	status := p.MessageStatus
	if status == "" {
		status = p.SmsStatus
	}
	return status != "" && status != "received"
}

// HandleWebhook processes incoming WhatsApp messages
func (h *WhatsAppHandler) HandleWebhook(c *fiber.Ctx) error {
	var payload TwilioWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		h.log.Warn("error parsing webhook", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook payload",
		})
	}

	if payload.From == "" || payload.IsStatusCallback() {
		return c.SendStatus(fiber.StatusOK)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), messageTimeout)
	defer cancel()

	if h.dedupe != nil && payload.MessageSid != "" {
		seen, err := h.dedupe.Seen(ctx, payload.MessageSid)
		if err != nil {
			h.log.Warn("dedupe lookup failed", "message_sid", payload.MessageSid, "error", err.Error())
		} else if seen {
			h.log.Info("🔁 Duplicate webhook delivery dropped", "message_sid", payload.MessageSid)
			return c.SendStatus(fiber.StatusOK)
		}
	}

	userID := utils.NormalizeUserID(payload.From, h.region)
	log := h.log.WithUserID(userID)
	log.Info("📱 WhatsApp message received", "message_sid", payload.MessageSid)

	reply := h.process(ctx, log, userID, payload.Body)

	if h.sender == nil {
		log.Info("📤 Reply not sent, Twilio not configured", "reply", reply)
		return c.SendStatus(fiber.StatusOK)
	}
	if err := h.sender.SendWhatsAppMessage(userID, reply); err != nil {
		log.Error("❌ Failed to send WhatsApp reply", "error", err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}

// TestWebhookPayload is the development payload for /test/whatsapp.
type TestWebhookPayload struct {
	From    string `json:"from"`
	Message string `json:"message"`
}

// HandleTestWebhook runs a message through the dialog and returns the reply
// in the response instead of sending it.
func (h *WhatsAppHandler) HandleTestWebhook(c *fiber.Ctx) error {
	var payload TestWebhookPayload
	if err := c.BodyParser(&payload); err != nil || payload.From == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid test payload",
		})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), messageTimeout)
	defer cancel()

	userID := utils.NormalizeUserID(payload.From, h.region)
	log := h.log.WithUserID(userID)
	log.Info("🧪 Test webhook received")

	reply := h.process(ctx, log, userID, payload.Message)

	return c.JSON(fiber.Map{
		"success":  true,
		"response": reply,
	})
}

func (h *WhatsAppHandler) process(ctx context.Context, log *logger.Logger, userID, body string) string {
	reply, err := h.conversation.HandleMessage(ctx, userID, strings.TrimSpace(body))
	if err != nil {
		log.Error("error processing message", "error", err.Error())
	}
	if reply == "" {
		reply = fallbackReply
	}
	return reply
}
