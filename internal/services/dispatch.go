package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/serigraph/quotebot/internal/quote"
	"github.com/serigraph/quotebot/internal/utils"
)

const pdfContentType = "application/pdf"

// MediaSender sends a WhatsApp message carrying a media URL.
type MediaSender interface {
	SendWhatsAppMedia(to, caption, mediaURL string) error
}

// WhatsAppDocumentSink publishes the document and sends it to the user as a
// WhatsApp media message.
type WhatsAppDocumentSink struct {
	media  MediaStore
	sender MediaSender
	now    func() time.Time
}

func NewWhatsAppDocumentSink(media MediaStore, sender MediaSender) *WhatsAppDocumentSink {
	return &WhatsAppDocumentSink{media: media, sender: sender, now: time.Now}
}

func (s *WhatsAppDocumentSink) Send(ctx context.Context, doc quote.Document) error {
	url, err := s.media.Put(ctx, utils.MediaKey(s.now(), doc.Filename), doc.Content, pdfContentType)
	if err != nil {
		return fmt.Errorf("publish document: %w", err)
	}
	if err := s.sender.SendWhatsAppMedia(doc.UserID, doc.Caption, url); err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

// FileDocumentSink writes documents to a local directory.
type FileDocumentSink struct {
	dir string
}

func NewFileDocumentSink(dir string) *FileDocumentSink {
	return &FileDocumentSink{dir: dir}
}

func (s *FileDocumentSink) Send(_ context.Context, doc quote.Document) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(s.dir, filepath.Base(doc.Filename))
	if err := os.WriteFile(path, doc.Content, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
