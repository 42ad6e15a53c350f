package contact

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Alijeyrad/contact_relay/config"
	"github.com/Alijeyrad/contact_relay/pkg/email"
	"github.com/Alijeyrad/contact_relay/pkg/mailcheck"
	"github.com/Alijeyrad/contact_relay/pkg/reqctx"
)

const meterName = "github.com/Alijeyrad/contact_relay/internal/service/contact"

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// Submission is one contact-form post. It lives for a single request.
type Submission struct {
	Name    string
	Email   string
	Message string
}

// Normalize trims surrounding whitespace from every field.
func (s Submission) Normalize() Submission {
	return Submission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Message: strings.TrimSpace(s.Message),
	}
}

type Config struct {
	Recipient string
	MinScore  float64
	// RequireSMTPCheck also rejects addresses whose mailbox check failed.
	RequireSMTPCheck bool
}

// ConfigFromCentral picks the relay settings out of the central config.
func ConfigFromCentral(c *config.Config) Config {
	return Config{
		Recipient:        c.Email.Recipient,
		MinScore:         c.Verification.MinScore,
		RequireSMTPCheck: c.Verification.RequireSMTPCheck,
	}
}

// ---------------------------------------------------------------------------
// Dependencies
// ---------------------------------------------------------------------------

type Verifier interface {
	Check(ctx context.Context, address string) (*mailcheck.Result, error)
}

type Mailer interface {
	Send(ctx context.Context, m email.Message) error
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	// Submit validates, verifies and relays s. A nil error means the message
	// was handed to the mail server.
	Submit(ctx context.Context, s Submission) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type contactService struct {
	cfg      Config
	verifier Verifier
	mailer   Mailer
	validate *validator.Validate
	log      *slog.Logger
	outcomes metric.Int64Counter
}

func New(cfg Config, verifier Verifier, mailer Mailer, log *slog.Logger) Service {
	if log == nil {
		log = slog.Default()
	}
	outcomes, err := otel.Meter(meterName).Int64Counter(
		"contact_submissions_total",
		metric.WithDescription("Contact form submissions by outcome"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		log.Warn("contact outcome counter unavailable", "error", err)
	}
	return &contactService{
		cfg:      cfg,
		verifier: verifier,
		mailer:   mailer,
		validate: newValidator(),
		log:      log,
		outcomes: outcomes,
	}
}

func (s *contactService) Submit(ctx context.Context, sub Submission) error {
	log := s.log.With(reqctx.LogAttrs(ctx)...)
	sub = sub.Normalize()

	if err := validateSubmission(s.validate, sub); err != nil {
		s.record(ctx, "rejected", err)
		log.Info("contact submission rejected", "reason", err)
		return err
	}

	if s.cfg.Recipient == "" {
		s.record(ctx, "failed", ErrNotConfigured)
		log.Error("contact recipient is not configured")
		return ErrNotConfigured
	}

	if err := s.verify(ctx, log, sub.Email); err != nil {
		return err
	}

	msg := email.BuildContactEmail(email.ContactEmailData{
		Name:      sub.Name,
		Email:     sub.Email,
		Message:   sub.Message,
		Recipient: s.cfg.Recipient,
	})
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.record(ctx, "failed", ErrDispatchFailed)
		log.Error("contact message dispatch failed", "error", err)
		return errors.Join(ErrDispatchFailed, err)
	}

	s.record(ctx, "sent", nil)
	log.Info("contact message relayed")
	return nil
}

// verify is strict: any failure to get a verdict blocks the send.
func (s *contactService) verify(ctx context.Context, log *slog.Logger, address string) error {
	res, err := s.verifier.Check(ctx, address)
	if err != nil {
		var apiErr *mailcheck.APIError
		switch {
		case errors.Is(err, mailcheck.ErrMissingKey):
			s.record(ctx, "failed", ErrNotConfigured)
			log.Error("email verification access key is not configured")
			return ErrNotConfigured
		case errors.As(err, &apiErr):
			s.record(ctx, "failed", ErrVerificationFailed)
			log.Error("email verification service returned an error",
				"code", apiErr.Code, "type", apiErr.Type, "info", apiErr.Info)
			return errors.Join(ErrVerificationFailed, err)
		default:
			s.record(ctx, "failed", ErrVerificationUnavailable)
			log.Error("email verification service unreachable", "error", err)
			return errors.Join(ErrVerificationUnavailable, err)
		}
	}

	log = log.With(
		"format_valid", res.FormatValid,
		"mx_found", res.MXFound,
		"smtp_check", res.SMTPCheck,
		"score", res.Score,
		"disposable", res.Disposable,
	)

	if err := Verdict(s.cfg, res); err != nil {
		s.record(ctx, "rejected", err)
		log.Info("email address rejected by verification", "reason", err, "min_score", s.cfg.MinScore)
		return err
	}
	if !res.SMTPCheck {
		log.Warn("email mailbox check failed; accepting on format, MX and score")
	}

	return nil
}

// Verdict applies the acceptance rules to a verification result: the address
// must be well formed with an MX record, and score at least cfg.MinScore. A
// failed mailbox check rejects only when cfg.RequireSMTPCheck is set.
func Verdict(cfg Config, res *mailcheck.Result) error {
	switch {
	case !res.FormatValid || !res.MXFound:
		return ErrUndeliverable
	case res.Score < cfg.MinScore:
		return ErrLowScore
	case !res.SMTPCheck && cfg.RequireSMTPCheck:
		return ErrUndeliverable
	}
	return nil
}

func (s *contactService) record(ctx context.Context, outcome string, reason error) {
	if s.outcomes == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String("outcome", outcome)}
	if reason != nil {
		attrs = append(attrs, attribute.String("reason", reason.Error()))
	}
	s.outcomes.Add(ctx, 1, metric.WithAttributes(attrs...))
}
