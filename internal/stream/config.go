package stream

import "time"

const (
	DefaultJobStream    = "simplify-jobs"
	DefaultResultStream = "simplify-results"
	DefaultGroup        = "simplify-group"
)

type Config struct {
	Stream       string
	ResultStream string
	Group        string
	ConsumerName string
	Concurrency  int
	Block        time.Duration

	// Pending jobs idle longer than ClaimMinIdle are taken over, checked every ClaimInterval.
	ClaimMinIdle  time.Duration
	ClaimInterval time.Duration
}

func NewConfig(consumerName string, concurrency int) Config {
	if consumerName == "" {
		consumerName = "simplify-worker"
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return Config{
		Stream:       DefaultJobStream,
		ResultStream: DefaultResultStream,
		Group:        DefaultGroup,
		ConsumerName: consumerName,
		Concurrency:  concurrency,
		Block:        2 * time.Second,

		ClaimMinIdle:  5 * time.Minute,
		ClaimInterval: 30 * time.Second,
	}
}
