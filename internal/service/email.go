package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/mailer"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/queue"
)

const (
	subjectVerification    = "Verify Your Email - Bridal Shop"
	subjectPasswordReset   = "Reset Your Password - Bridal Shop"
	subjectEmployeeWelcome = "Welcome to Bridal Shop - Employee Account Created"
)

type MailSender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

type MessagePublisher interface {
	Publish(ctx context.Context, v interface{}) error
}

// EmailDispatcher hands a message off for delivery without blocking the
// caller. Delivery failures never reach the caller.
type EmailDispatcher interface {
	Dispatch(ctx context.Context, msg mailer.Message)
}

// AsyncDispatcher sends each message on its own goroutine. Wait drains the
// sends still in flight.
type AsyncDispatcher struct {
	sender  MailSender
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewAsyncDispatcher(sender MailSender, timeout time.Duration) *AsyncDispatcher {
	return &AsyncDispatcher{sender: sender, timeout: timeout}
}

func (d *AsyncDispatcher) Dispatch(ctx context.Context, msg mailer.Message) {
	ctx = ctxutil.Detach(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()
		deliver(sendCtx, d.sender, msg)
	}()
}

// Wait blocks until every dispatched send finishes or ctx is done
func (d *AsyncDispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// QueueDispatcher publishes messages to the broker. A consumer built with
// NewEmailQueueHandler performs the SMTP delivery.
type QueueDispatcher struct {
	publisher MessagePublisher
	fallback  EmailDispatcher
}

// NewQueueDispatcher returns a dispatcher that publishes to the broker and
// hands the message to fallback when publishing fails. fallback may be nil.
func NewQueueDispatcher(publisher MessagePublisher, fallback EmailDispatcher) *QueueDispatcher {
	return &QueueDispatcher{publisher: publisher, fallback: fallback}
}

func (d *QueueDispatcher) Dispatch(ctx context.Context, msg mailer.Message) {
	if err := d.publisher.Publish(ctx, msg); err != nil {
		logger.ErrorWithContext(ctx, "Failed to queue email").
			String("to", msg.To).
			String("subject", msg.Subject).
			Err(err).
			Log()
		if d.fallback != nil {
			d.fallback.Dispatch(ctx, msg)
		}
	}
}

// NewEmailQueueHandler decodes queued messages and delivers them with sender.
// Undecodable bodies are rejected; SMTP failures are logged and acknowledged.
func NewEmailQueueHandler(sender MailSender) queue.Handler {
	return func(ctx context.Context, body []byte) error {
		var msg mailer.Message
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("decode email message: %w", err)
		}
		deliver(ctx, sender, msg)
		return nil
	}
}

func deliver(ctx context.Context, sender MailSender, msg mailer.Message) {
	start := time.Now()
	if err := sender.Send(ctx, msg); err != nil {
		logger.ErrorWithContext(ctx, "Failed to send email").
			String("to", msg.To).
			String("subject", msg.Subject).
			Err(err).
			Log()
		return
	}
	logger.InfoWithContext(ctx, "Email sent").
		String("to", msg.To).
		String("subject", msg.Subject).
		Duration(time.Since(start)).
		Log()
}

type EmailLinks struct {
	VerificationURL string
	ResetURL        string
	LoginURL        string
}

// EmailService renders the transactional emails and dispatches them
type EmailService struct {
	dispatcher      EmailDispatcher
	links           EmailLinks
	verificationTTL time.Duration
	resetTTL        time.Duration
}

func NewEmailService(dispatcher EmailDispatcher, links EmailLinks, verificationTTL, resetTTL time.Duration) *EmailService {
	return &EmailService{
		dispatcher:      dispatcher,
		links:           links,
		verificationTTL: verificationTTL,
		resetTTL:        resetTTL,
	}
}

func (s *EmailService) SendVerification(ctx context.Context, to, token string) {
	s.send(ctx, to, subjectVerification, mailer.TemplateVerification, map[string]string{
		"Link":     withToken(s.links.VerificationURL, token),
		"ValidFor": humanDuration(s.verificationTTL),
	})
}

func (s *EmailService) SendPasswordReset(ctx context.Context, to, token string) {
	s.send(ctx, to, subjectPasswordReset, mailer.TemplatePasswordReset, map[string]string{
		"Link":     withToken(s.links.ResetURL, token),
		"ValidFor": humanDuration(s.resetTTL),
	})
}

func (s *EmailService) SendEmployeeWelcome(ctx context.Context, user *model.User, temporaryPassword string) {
	s.send(ctx, user.Email, subjectEmployeeWelcome, mailer.TemplateEmployeeWelcome, map[string]string{
		"FullName":          user.FullName,
		"Role":              string(user.Role),
		"Email":             user.Email,
		"TemporaryPassword": temporaryPassword,
		"LoginURL":          s.links.LoginURL,
	})
}

func (s *EmailService) send(ctx context.Context, to, subject, template string, data map[string]string) {
	body, err := mailer.Render(template, data)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to render email").
			String("template", template).
			Err(err).
			Log()
		return
	}
	s.dispatcher.Dispatch(ctx, mailer.Message{To: to, Subject: subject, Body: body})
}

func withToken(base, token string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?token=" + url.QueryEscape(token)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}

// humanDuration renders link lifetimes the way the emails phrase them,
// so 24h reads "24 hours" and 48h reads "2 days".
func humanDuration(d time.Duration) string {
	switch {
	case d > 24*time.Hour && d%(24*time.Hour) == 0:
		return plural(int(d/(24*time.Hour)), "day")
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute && d%time.Minute == 0:
		return plural(int(d/time.Minute), "minute")
	default:
		return d.String()
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
