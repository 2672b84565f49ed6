package helpers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

func TestNewJSONMessage(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	m := NewJSONMessage([]byte(`{"to":"a@b.c"}`), "catalog", now)

	if m.ContentType != "application/json" {
		t.Errorf("content type = %q", m.ContentType)
	}
	if m.DeliveryMode != amqp.Persistent {
		t.Errorf("delivery mode = %d, want persistent", m.DeliveryMode)
	}
	if _, err := uuid.Parse(m.MessageId); err != nil {
		t.Errorf("message id %q is not a uuid", m.MessageId)
	}
	if m.AppId != "catalog" || !m.Timestamp.Equal(now) || m.Timestamp.Location() != time.UTC {
		t.Errorf("app %q timestamp %v", m.AppId, m.Timestamp)
	}
}

func TestClosedPublisherRejectsPublish(t *testing.T) {
	p := &RabbitPublisher{Queue: "emails"}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := p.PublishJSON(context.Background(), map[string]string{"to": "a@b.c"}); !errors.Is(err, ErrPublisherClosed) {
		t.Fatalf("err = %v, want ErrPublisherClosed", err)
	}
	var nilPub *RabbitPublisher
	if err := nilPub.Close(); err != nil {
		t.Fatalf("nil Close: %v", err)
	}
}
