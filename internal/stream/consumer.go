package stream

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gabrielchua/descriptive-theory/internal/models"
	"github.com/gabrielchua/descriptive-theory/internal/pipeline"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Consumer struct {
	client redis.Cmdable
	runner pipeline.Runner
	cfg    Config
	logger *zerolog.Logger

	inflight sync.Map // message id -> struct{}
}

func NewConsumer(client redis.Cmdable, runner pipeline.Runner, cfg Config, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client: client,
		runner: runner,
		cfg:    cfg,
		logger: logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.cfg.Stream, c.cfg.Group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

// Start reads jobs until ctx is cancelled. At most cfg.Concurrency jobs run at once, and
// in-flight jobs are drained before Start returns. Pending jobs left unacknowledged, by this
// consumer or a dead one, are reclaimed once they have been idle for cfg.ClaimMinIdle.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.cfg.Stream).
		Str("group", c.cfg.Group).
		Str("consumer", c.cfg.ConsumerName).
		Int("concurrency", c.cfg.Concurrency).
		Msg("Consumer started")

	var g errgroup.Group
	g.SetLimit(c.cfg.Concurrency)
	defer g.Wait()

	var lastClaim time.Time

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if time.Since(lastClaim) >= c.cfg.ClaimInterval {
			lastClaim = time.Now()
			claimed, err := c.claimStale(ctx)
			if err != nil && ctx.Err() == nil {
				c.logger.Error().Err(err).Msg("Failed to claim pending jobs")
			}
			c.dispatch(ctx, &g, claimed)
		}

		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.cfg.Group,
			Consumer: c.cfg.ConsumerName,
			Streams:  []string{c.cfg.Stream, ">"},
			Count:    int64(c.cfg.Concurrency),
			Block:    c.cfg.Block,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, s := range streams {
			c.dispatch(ctx, &g, s.Messages)
		}
	}
}

// claimStale takes ownership of pending jobs idle for at least ClaimMinIdle.
func (c *Consumer) claimStale(ctx context.Context) ([]redis.XMessage, error) {
	messages, _, err := c.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   c.cfg.Stream,
		Group:    c.cfg.Group,
		Consumer: c.cfg.ConsumerName,
		MinIdle:  c.cfg.ClaimMinIdle,
		Start:    "0-0",
		Count:    int64(c.cfg.Concurrency),
	}).Result()
	if err != nil {
		return nil, err
	}

	if len(messages) > 0 {
		c.logger.Warn().Int("count", len(messages)).Msg("Reclaimed pending jobs")
	}
	return messages, nil
}

// dispatch runs each message on g, skipping ids that are already being processed.
func (c *Consumer) dispatch(ctx context.Context, g *errgroup.Group, messages []redis.XMessage) {
	for _, msg := range messages {
		if _, busy := c.inflight.LoadOrStore(msg.ID, struct{}{}); busy {
			continue
		}
		g.Go(func() error {
			defer c.inflight.Delete(msg.ID)
			c.process(context.WithoutCancel(ctx), msg)
			return nil
		})
	}
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("Job received")

	job, err := decodeJob(msg)
	if err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Skipping malformed job")
		c.ack(ctx, msg.ID)
		return
	}

	result, err := c.runner.Run(ctx, models.SimplifyRequest{
		Text:      job.Text,
		Language:  job.Language,
		RequestID: job.JobID,
		Channel:   models.ChannelWorker,
	})
	jobResult := buildResult(job, result, err)

	if err := c.publish(ctx, jobResult); err != nil {
		// Left pending; claimStale picks it up once it has been idle for ClaimMinIdle.
		c.logger.Error().Err(err).Str("job_id", job.JobID).Msg("Failed to publish job result")
		return
	}

	c.logger.Info().
		Str("id", msg.ID).
		Str("job_id", job.JobID).
		Str("status", jobResult.Status).
		Int("code", jobResult.Code).
		Msg("Job complete")

	c.ack(ctx, msg.ID)
}

func (c *Consumer) publish(ctx context.Context, result JobResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.cfg.ResultStream,
		Values: map[string]any{payloadField: string(payload)},
	}).Err()
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.cfg.Stream, c.cfg.Group, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}
