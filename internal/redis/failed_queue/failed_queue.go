package failedqueue

import (
	"context"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/notification"
	"mealremind/internal/schema"

	"github.com/go-redis/redis/v9"
)

const FIELD = "record"

// Stream is the failed notification queue backed by a Redis stream.
// Stream entry IDs are the queue IDs.
type Stream struct {
	client *redis.Client
	log    logging.Logger
	key    string
}

func New(client *redis.Client, log logging.Logger, key string) *Stream {
	if client == nil {
		panic(e.NewNilArgumentError("client"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if key == "" {
		panic(e.NewInvalidArgumentError("key", "must not be empty"))
	}
	return &Stream{client: client, log: log, key: key}
}

func (s *Stream) Push(ctx context.Context, f notification.Failed) (string, error) {
	record := schema.EncodeFailed(f)
	data, err := record.Marshal()
	if err != nil {
		return "", err
	}
	return s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.key,
		Values: map[string]interface{}{FIELD: data},
	}).Result()
}

// List returns every queued entry, oldest first. Undecodable entries are skipped.
func (s *Stream) List(ctx context.Context) ([]notification.Failed, error) {
	messages, err := s.client.XRange(ctx, s.key, "-", "+").Result()
	if err != nil {
		return nil, err
	}
	items := make([]notification.Failed, 0, len(messages))
	for _, message := range messages {
		data, _ := message.Values[FIELD].(string)
		record := schema.FailedNotification{}
		if err := record.Unmarshal([]byte(data)); err != nil {
			s.log.Warning(ctx, "Skipping malformed failed notification.", logging.Entry("id", message.ID))
			continue
		}
		item, err := record.Decode(message.ID)
		if err != nil {
			s.log.Warning(
				ctx,
				"Skipping invalid failed notification.",
				logging.Entry("id", message.ID),
				logging.Entry("err", err),
			)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Stream) Remove(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.client.XDel(ctx, s.key, ids...).Err()
}
