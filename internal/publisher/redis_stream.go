package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const answeredStream = "questions.answered.club"

// QuestionPublisher publishes answered-question events to Redis streams
// so downstream consumers (dashboards, audit log) can follow activity.
type QuestionPublisher struct {
	client *redis.Client
}

// NewQuestionPublisher creates a new publisher with its own connection
func NewQuestionPublisher(redisURL string) (*QuestionPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &QuestionPublisher{client: client}, nil
}

// NewQuestionPublisherFromClient reuses an existing Redis client
func NewQuestionPublisherFromClient(client *redis.Client) *QuestionPublisher {
	return &QuestionPublisher{client: client}
}

// Close closes the Redis connection
func (qp *QuestionPublisher) Close() error {
	return qp.client.Close()
}

// AnsweredEvent is the payload published for each answered question
type AnsweredEvent struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Confidence string `json:"confidence"`
	AskedAt    int64  `json:"asked_at"`
}

// PublishAnswered publishes an answered-question event to the stream
func (qp *QuestionPublisher) PublishAnswered(ctx context.Context, event AnsweredEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return qp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: answeredStream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
