package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/NotFromFatec/Carometro-V2/internal/directory/domain"
	"github.com/NotFromFatec/Carometro-V2/internal/directory/mail"
	"github.com/NotFromFatec/Carometro-V2/internal/directory/store"
	"github.com/NotFromFatec/Carometro-V2/pkg/slogx"
)

var (
	ErrEmptyRecipients = errors.New("recipient list is empty")
	ErrEmptyMessage    = errors.New("subject or html body is empty")
)

// Fixed batch outcome messages. Exactly one appears in each report.
const (
	msgAllSent   = "All invite emails were processed for sending."
	msgNoneSent  = "Failed to process invite email sending."
	msgSomeSent  = "Invite emails processed with some errors."
	errSomeFails = "Some sends failed"
)

// SendError records a single failed delivery within a batch.
type SendError struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

// BatchReport aggregates a dispatch run. SuccessfulSends+FailedSends always
// equals the number of recipients, and every failure has an entry in Errors.
type BatchReport struct {
	Message         string
	Error           string
	SuccessfulSends int
	FailedSends     int
	Errors          []SendError
}

// AllFailed reports whether not a single email went out.
func (r BatchReport) AllFailed() bool {
	return r.SuccessfulSends == 0 && r.FailedSends > 0
}

// Partial reports a mixed outcome.
func (r BatchReport) Partial() bool {
	return r.SuccessfulSends > 0 && r.FailedSends > 0
}

type DispatchService struct {
	Store   store.Store
	Sender  mail.Sender
	BaseURL string
}

// Dispatch mints one invite per recipient and emails each a personalized
// registration link. Invites are committed before their send attempt, so a
// bounced email still leaves a usable code that can be handed out manually.
// Send failures never abort the batch; they are collected per recipient.
func (s *DispatchService) Dispatch(
	ctx context.Context,
	adminID string,
	recipients []string,
	subject string,
	htmlBody string,
	textBody string,
) (BatchReport, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate everything before the first side effect.
	if _, err := s.Store.Admins().GetAdminByID(ctx, adminID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("dispatch attempted by unknown admin",
				slog.String("admin_id", adminID),
			)
			return BatchReport{}, ErrAdminNotFound
		}
		log.Error("failed to fetch admin", slog.Any("error", err))
		return BatchReport{}, err
	}
	if len(recipients) == 0 {
		return BatchReport{}, ErrEmptyRecipients
	}
	if subject == "" || htmlBody == "" {
		return BatchReport{}, ErrEmptyMessage
	}

	// 2. Per recipient: mint, render, send.
	report := BatchReport{Errors: []SendError{}}
	for _, email := range recipients {
		invite, err := s.mintForDispatch(ctx, adminID)
		if err != nil {
			// Minting failures are infrastructure errors, not per-recipient
			// delivery outcomes; abort rather than mislabel them.
			return BatchReport{}, err
		}

		link := mail.InviteLink(s.BaseURL, invite.Code)
		html := mail.RenderBody(htmlBody, link)
		text := mail.RenderBody(textBody, link)
		if textBody == "" {
			text = mail.StripHTML(html)
		}

		err = s.Sender.Send(ctx, mail.Message{
			To:      email,
			Subject: subject,
			HTML:    html,
			Text:    text,
		})
		if err != nil {
			// The invite row stays; only the announcement failed.
			log.Warn("invite email delivery failed",
				slog.String("recipient", email),
				slog.String("code", invite.Code),
				slog.Any("error", err),
			)
			report.FailedSends++
			report.Errors = append(report.Errors, SendError{Email: email, Error: err.Error()})
			continue
		}
		report.SuccessfulSends++
	}

	// 3. Aggregate.
	switch {
	case report.FailedSends == 0:
		report.Message = msgAllSent
	case report.SuccessfulSends == 0:
		report.Message = msgNoneSent
		report.Error = errSomeFails
	default:
		report.Message = msgSomeSent
		report.Error = errSomeFails
	}

	log.Info("invite dispatch complete",
		slog.String("admin_id", adminID),
		slog.Int("successful", report.SuccessfulSends),
		slog.Int("failed", report.FailedSends),
	)

	return report, nil
}

// mintForDispatch is the collision-retry mint loop without the admin
// existence check, which Dispatch has already performed once for the batch.
func (s *DispatchService) mintForDispatch(ctx context.Context, adminID string) (domain.Invite, error) {
	var lastErr error
	for attempt := 0; attempt < maxMintAttempts; attempt++ {
		invite := domain.Invite{
			Code:      uuid.NewString(),
			Status:    domain.InviteActive,
			CreatedBy: adminID,
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}
		err := s.Store.Invites().CreateInvite(ctx, invite)
		if err == nil {
			return invite, nil
		}
		if errors.Is(err, store.ErrAlreadyExists) {
			lastErr = err
			continue
		}
		return domain.Invite{}, err
	}
	return domain.Invite{}, lastErr
}
