package services

import (
	"context"
	"fmt"
	"html"

	"github.com/devanpatel28/codegrin-backend/internal/logger"
	"github.com/devanpatel28/codegrin-backend/internal/mail"
	"github.com/devanpatel28/codegrin-backend/internal/services/dto"
	"github.com/devanpatel28/codegrin-backend/pkg/apperrors"
)

type ContactService interface {
	Submit(ctx context.Context, req dto.ContactRequest) error
}

type contactService struct {
	sender       mail.Sender
	contactEmail string
}

func NewContactService(sender mail.Sender, contactEmail string) ContactService {
	return &contactService{sender: sender, contactEmail: contactEmail}
}

// Submit forwards a contact-form message to the site inbox. Reply-To is set
// to the visitor so replies go straight back.
func (s *contactService) Submit(ctx context.Context, req dto.ContactRequest) error {
	body := fmt.Sprintf(
		"<h3>New contact form message</h3>"+
			"<p><b>Name:</b> %s</p>"+
			"<p><b>Email:</b> %s</p>"+
			"<p><b>Subject:</b> %s</p>"+
			"<p>%s</p>",
		html.EscapeString(req.Name),
		html.EscapeString(req.Email),
		html.EscapeString(req.Subject),
		html.EscapeString(req.Message),
	)

	subject := fmt.Sprintf("Contact form: %s", req.Subject)
	if err := s.sender.Send(s.contactEmail, subject, body, req.Email); err != nil {
		logger.CtxWithError(ctx, "failed to send contact mail", err, "from", req.Email)
		return apperrors.ErrMailDelivery(err, "failed to deliver message")
	}

	logger.CtxInfo(ctx, "contact mail delivered", "from", req.Email)
	return nil
}
