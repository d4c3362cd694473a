package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"hotelbook/pkg/kafka"
	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"
)

func sampleBooking(code string) *model.Booking {
	return &model.Booking{
		ConfirmationCode: code,
		RoomID:           "R008",
		RoomType:         model.RoomDouble,
		GuestName:        "Ada Lovelace",
		GuestEmail:       "ada@example.com",
		CheckIn:          "2025-12-10",
		CheckOut:         "2025-12-13",
		Nights:           3,
		TotalPrice:       669,
		Status:           model.StatusConfirmed,
	}
}

func TestComposer(t *testing.T) {
	c := NewComposer("")
	room := model.Room{ID: "R008", NightlyPrice: 223, Amenities: []string{"wifi", "bathtub"}}

	created := c.Created(sampleBooking("CONF-AAAAAAAA"), room)
	if created.Event != model.EventReservationCreated || created.Recipient != "ada@example.com" {
		t.Errorf("unexpected created notification: %+v", created)
	}
	for _, want := range []string{"Dear Ada Lovelace", "CONF-AAAAAAAA", "Total Price: $669.00", "Nightly Rate: $223.00", "wifi, bathtub"} {
		if !strings.Contains(created.Body, want) {
			t.Errorf("created body missing %q", want)
		}
	}
	if !strings.HasSuffix(created.Subject, DefaultHotelName) {
		t.Errorf("subject = %q", created.Subject)
	}

	modified := c.Modified(sampleBooking("CONF-OLD00000"), sampleBooking("CONF-NEW00000"))
	if modified.ConfirmationCode != "CONF-NEW00000" {
		t.Errorf("modified should reference the new code, got %s", modified.ConfirmationCode)
	}
	if !strings.Contains(modified.Body, "Previous Confirmation Number: CONF-OLD00000") {
		t.Error("modified body should reference the previous code")
	}

	cancelled := c.Cancelled(sampleBooking("CONF-AAAAAAAA"))
	if cancelled.Event != model.EventReservationCancelled || !strings.Contains(cancelled.Body, "Original Total: $669.00") {
		t.Errorf("unexpected cancelled notification: %+v", cancelled)
	}
}

type mockPublisher struct {
	msgs []kafka.Message
	err  error
}

func (m *mockPublisher) Publish(_ context.Context, msg kafka.Message) error {
	m.msgs = append(m.msgs, msg)
	return m.err
}

func TestKafkaNotifier(t *testing.T) {
	pub := &mockPublisher{}
	n := NewKafkaNotifier(pub)
	note := model.Notification{
		Event:            model.EventReservationCreated,
		ConfirmationCode: "CONF-AAAAAAAA",
		Recipient:        "ada@example.com",
		Subject:          "hi",
		Body:             "body",
	}

	if err := n.Notify(context.Background(), note); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(pub.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(pub.msgs))
	}
	msg := pub.msgs[0]
	if msg.Key != "ada@example.com" {
		t.Errorf("key = %s", msg.Key)
	}
	if msg.Headers[kafka.HeaderEventType] != "reservation.created" || msg.Headers[kafka.HeaderCorrelationID] != "CONF-AAAAAAAA" {
		t.Errorf("headers = %v", msg.Headers)
	}
	var decoded model.Notification
	if err := json.Unmarshal(msg.Value, &decoded); err != nil || decoded != note {
		t.Errorf("payload = %s (%v)", msg.Value, err)
	}

	pub.err = errors.New("broker down")
	if err := n.Notify(context.Background(), note); err == nil {
		t.Error("expected publish error")
	}
}

func TestSMTPSender(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "mail.local", Port: 2525, From: "hotel@example.com"})

	var gotAddr string
	var gotTo []string
	var gotMsg []byte
	s.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, msg
		return nil
	}

	err := s.Send(context.Background(), model.Notification{
		Recipient: "ada@example.com",
		Subject:   "Hello\r\nBcc: evil@example.com",
		Body:      "line one\nline two",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotAddr != "mail.local:2525" || len(gotTo) != 1 || gotTo[0] != "ada@example.com" {
		t.Errorf("addr=%s to=%v", gotAddr, gotTo)
	}
	raw := string(gotMsg)
	if strings.Contains(raw, "\r\nBcc:") {
		t.Error("subject must not inject headers")
	}
	if !strings.Contains(raw, "line one\r\nline two") {
		t.Errorf("body should use CRLF line endings: %q", raw)
	}
}

func TestSMTPSender_Timeout(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "mail.local", Port: 25})
	block := make(chan struct{})
	defer close(block)
	s.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		<-block
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := s.Send(ctx, model.Notification{Recipient: "ada@example.com"}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

type mockSender struct {
	sent []model.Notification
	err  error
}

func (m *mockSender) Send(_ context.Context, n model.Notification) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, n)
	return nil
}

func TestDispatcher_Handle(t *testing.T) {
	valid, _ := json.Marshal(model.Notification{Recipient: "ada@example.com", ConfirmationCode: "CONF-AAAAAAAA"})
	noRecipient, _ := json.Marshal(model.Notification{ConfirmationCode: "CONF-AAAAAAAA"})

	tests := []struct {
		name          string
		value         []byte
		sendErr       error
		wantErr       bool
		wantTransient bool
	}{
		{name: "delivered", value: valid},
		{name: "garbage", value: []byte("{nope"), wantErr: true},
		{name: "no recipient", value: noRecipient, wantErr: true},
		{name: "send failure", value: valid, sendErr: errors.New("421 try later"), wantErr: true, wantTransient: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &mockSender{err: tt.sendErr}
			d := NewDispatcher(sender, logger.Discard())

			err := d.Handle(context.Background(), kafka.Message{Key: "k", Value: tt.value})
			if !tt.wantErr {
				if err != nil || len(sender.sent) != 1 {
					t.Fatalf("expected delivery, got err=%v sent=%d", err, len(sender.sent))
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			wantType := kafka.ErrorTypePermanent
			if tt.wantTransient {
				wantType = kafka.ErrorTypeTransient
			}
			if got := kafka.ClassifyError(err); got != wantType {
				t.Errorf("error type = %v, want %v", got, wantType)
			}
		})
	}
}

func TestLogNotifier(t *testing.T) {
	if err := NewLogNotifier(logger.Discard()).Notify(context.Background(), model.Notification{}); err != nil {
		t.Errorf("LogNotifier should never fail: %v", err)
	}
}
