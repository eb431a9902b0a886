package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/mailer"
)

type captureDispatcher struct {
	msgs []mailer.Message
}

func (d *captureDispatcher) Dispatch(_ context.Context, msg mailer.Message) {
	d.msgs = append(d.msgs, msg)
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, interface{}) error {
	return errors.New("broker down")
}

func newTestEmailService(d EmailDispatcher) *EmailService {
	return NewEmailService(d, EmailLinks{
		VerificationURL: "http://shop.test/verify-email",
		ResetURL:        "http://shop.test/reset-password",
		LoginURL:        "http://shop.test/login",
	}, 24*time.Hour, time.Hour)
}

func TestEmailService_RendersMessages(t *testing.T) {
	d := &captureDispatcher{}
	svc := newTestEmailService(d)

	svc.SendVerification(context.Background(), "bride@example.com", "abc")
	svc.SendPasswordReset(context.Background(), "bride@example.com", "xyz")
	svc.SendEmployeeWelcome(context.Background(), &model.User{
		FullName: "Kasun Silva",
		Email:    "staff@example.com",
		Role:     model.RoleEmployee,
	}, "Tmp@12345678")

	require.Len(t, d.msgs, 3)

	assert.Equal(t, "Verify Your Email - Bridal Shop", d.msgs[0].Subject)
	assert.Contains(t, d.msgs[0].Body, "http://shop.test/verify-email?token=abc")
	assert.Contains(t, d.msgs[0].Body, "24 hours")

	assert.Equal(t, "Reset Your Password - Bridal Shop", d.msgs[1].Subject)
	assert.Contains(t, d.msgs[1].Body, "http://shop.test/reset-password?token=xyz")
	assert.Contains(t, d.msgs[1].Body, "1 hour")

	assert.Equal(t, "Welcome to Bridal Shop - Employee Account Created", d.msgs[2].Subject)
	assert.Equal(t, "staff@example.com", d.msgs[2].To)
	assert.Contains(t, d.msgs[2].Body, "Tmp@12345678")
	assert.Contains(t, d.msgs[2].Body, "http://shop.test/login")
}

func TestAsyncDispatcher_DoesNotSurfaceFailures(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down"), done: make(chan struct{}, 1)}
	d := NewAsyncDispatcher(sender, time.Second)

	d.Dispatch(context.Background(), mailer.Message{To: "a@example.com", Subject: "s", Body: "b"})

	select {
	case <-sender.done:
	case <-time.After(2 * time.Second):
		t.Fatal("message was not sent")
	}
}

// gatedSender blocks every send until release is closed
type gatedSender struct {
	release chan struct{}
	sent    atomic.Int32
}

func (s *gatedSender) Send(context.Context, mailer.Message) error {
	<-s.release
	s.sent.Add(1)
	return nil
}

func TestAsyncDispatcher_WaitDrainsInFlightSends(t *testing.T) {
	sender := &gatedSender{release: make(chan struct{})}
	d := NewAsyncDispatcher(sender, time.Second)

	d.Dispatch(context.Background(), mailer.Message{To: "a@example.com"})
	d.Dispatch(context.Background(), mailer.Message{To: "b@example.com"})

	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Wait(short), context.DeadlineExceeded)

	close(sender.release)
	ctx, cancelWait := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancelWait()
	require.NoError(t, d.Wait(ctx))
	assert.Equal(t, int32(2), sender.sent.Load())
}

func TestQueueDispatcher_FallsBackWhenPublishFails(t *testing.T) {
	fallback := &captureDispatcher{}
	d := NewQueueDispatcher(failingPublisher{}, fallback)

	d.Dispatch(context.Background(), mailer.Message{To: "a@example.com"})
	require.Len(t, fallback.msgs, 1)
	assert.Equal(t, "a@example.com", fallback.msgs[0].To)
}

func TestEmailQueueHandler(t *testing.T) {
	sender := &fakeSender{}
	handle := NewEmailQueueHandler(sender)

	body, err := json.Marshal(mailer.Message{To: "a@example.com", Subject: "hi", Body: "there"})
	require.NoError(t, err)
	require.NoError(t, handle(context.Background(), body))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "hi", sender.sent[0].Subject)

	assert.Error(t, handle(context.Background(), []byte("{not json")))
}

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "24 hours", humanDuration(24*time.Hour))
	assert.Equal(t, "1 hour", humanDuration(time.Hour))
	assert.Equal(t, "2 days", humanDuration(48*time.Hour))
	assert.Equal(t, "30 minutes", humanDuration(30*time.Minute))
}
