package stream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gabrielchua/descriptive-theory/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Producer struct {
	client redis.Cmdable
	stream string
}

func NewProducer(client redis.Cmdable, stream string) *Producer {
	if stream == "" {
		stream = DefaultJobStream
	}
	return &Producer{client: client, stream: stream}
}

// Enqueue validates the job and appends it to the job stream, assigning a job id if missing.
func (p *Producer) Enqueue(ctx context.Context, job Job, maxTextLength int) (Job, string, error) {
	req := models.SimplifyRequest{Text: job.Text, Language: job.Language}
	req.SetDefaults()
	if err := req.Validate(maxTextLength); err != nil {
		return job, "", err
	}
	job.Language = req.Language

	if job.JobID == "" {
		job.JobID = uuid.New().String()
	}

	payload, err := json.Marshal(job)
	if err != nil {
		return job, "", err
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{payloadField: string(payload)},
	}).Result()
	if err != nil {
		return job, "", fmt.Errorf("failed to enqueue job %s: %w", job.JobID, err)
	}

	return job, id, nil
}
