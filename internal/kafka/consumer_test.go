package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodedEvent(t *testing.T, event NotificationEvent) []byte {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return data
}

func TestConsumeMessage_DeliversValidEvent(t *testing.T) {
	event := NotificationEvent{
		Type:      "booking_created",
		BookingID: "SA1700000000000ABCD",
		FlightID:  "SA101",
		Seats:     []string{"12A"},
	}

	var received []NotificationEvent
	consumeMessage(context.Background(), encodedEvent(t, event), func(_ context.Context, e NotificationEvent) error {
		received = append(received, e)
		return nil
	})

	require.Len(t, received, 1)
	assert.Equal(t, "SA1700000000000ABCD", received[0].BookingID)
	assert.Equal(t, "booking_created", received[0].Type)
}

func TestConsumeMessage_SkipsUndecodable(t *testing.T) {
	called := false
	consumeMessage(context.Background(), []byte("{not json"), func(context.Context, NotificationEvent) error {
		called = true
		return nil
	})
	assert.False(t, called)
}

func TestConsumeMessage_SkipsInvalidEvent(t *testing.T) {
	called := false
	consumeMessage(context.Background(), encodedEvent(t, NotificationEvent{Type: "", BookingID: ""}), func(context.Context, NotificationEvent) error {
		called = true
		return nil
	})
	assert.False(t, called)
}

// A handler failure on one event must not stop delivery of the next.
func TestConsumeMessage_HandlerErrorDoesNotPropagate(t *testing.T) {
	broken := NotificationEvent{Type: "booking_teleported", BookingID: "SA1700000000000AAAA"}
	good := NotificationEvent{Type: "booking_created", BookingID: "SA1700000000000BBBB"}

	var delivered []string
	handler := func(_ context.Context, e NotificationEvent) error {
		if e.Type == "booking_teleported" {
			return errors.New("no email template")
		}
		delivered = append(delivered, e.BookingID)
		return nil
	}

	consumeMessage(context.Background(), encodedEvent(t, broken), handler)
	consumeMessage(context.Background(), encodedEvent(t, good), handler)

	assert.Equal(t, []string{"SA1700000000000BBBB"}, delivered)
}
