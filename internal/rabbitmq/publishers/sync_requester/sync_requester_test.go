package syncrequester

import (
	"context"
	"errors"
	"mealremind/internal/core/domain/durable"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/reminder"
	"mealremind/internal/schema"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	keys     []string
	messages []amqp091.Publishing
	err      error
}

func (p *fakePublisher) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp091.Publishing,
) error {
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, key)
	p.messages = append(p.messages, msg)
	return nil
}

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestRequestSyncPublishesSnapshot(t *testing.T) {
	// Setup ---
	channel := &fakePublisher{}
	requester := NewRabbitMQ(logging.NewFakeLogger(), channel, "", "reminders-sync", func() time.Time { return now })
	reminders := []reminder.Reminder{
		{
			ID:           "r-1",
			MealTime:     reminder.MealTimeLunch,
			ReminderTime: reminder.MustParseTimeOfDay("13:00"),
			Enabled:      false,
			Label:        "Lunch Time",
			Version:      2,
		},
	}

	// Exercise ---
	dismissedAt := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	err := requester.RequestSync(context.Background(), durable.Snapshot{
		Reminders: reminders,
		Dismissed: map[reminder.ID]time.Time{"r-1": dismissedAt},
	})

	// Verify ---
	require.Nil(t, err)
	require.Len(t, channel.messages, 1)
	assert.Equal(t, []string{"reminders-sync"}, channel.keys)
	assert.Equal(t, amqp091.Persistent, channel.messages[0].DeliveryMode)
	request := schema.SyncRequest{}
	require.Nil(t, request.Unmarshal(channel.messages[0].Body))
	assert.True(t, request.RequestedAt.Equal(now))
	require.Len(t, request.Reminders, 1)
	assert.Equal(t, "r-1", request.Reminders[0].ID)
	assert.False(t, request.Reminders[0].Enabled)
	require.Contains(t, request.Dismissed, "r-1")
	assert.True(t, request.Dismissed["r-1"].Equal(dismissedAt))
}

func TestRequestSyncReturnsPublishError(t *testing.T) {
	// Setup ---
	log := logging.NewFakeLogger()
	channel := &fakePublisher{err: errors.New("connection closed")}
	requester := NewRabbitMQ(log, channel, "", "reminders-sync", func() time.Time { return now })

	// Exercise ---
	err := requester.RequestSync(context.Background(), durable.Snapshot{})

	// Verify ---
	assert.NotNil(t, err)
	assert.Equal(t, 1, log.CountLevel(logging.ERROR))
}
