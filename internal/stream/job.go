package stream

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gabrielchua/descriptive-theory/internal/models"
	"github.com/redis/go-redis/v9"
)

const payloadField = "payload"

// Job statuses written to the result stream.
const (
	StatusCompleted = "completed"
	StatusRejected  = "rejected"
	StatusFailed    = "failed"
)

var ErrMissingPayload = errors.New("missing payload field")

type Job struct {
	JobID    string          `json:"job_id"`
	Text     string          `json:"text"`
	Language models.Language `json:"language,omitempty"`
}

type JobResult struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message any    `json:"message"`
}

func decodeJob(msg redis.XMessage) (Job, error) {
	payload, ok := msg.Values[payloadField].(string)
	if !ok {
		return Job{}, ErrMissingPayload
	}

	var job Job
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		return Job{}, fmt.Errorf("failed to decode job: %w", err)
	}
	if job.JobID == "" {
		job.JobID = msg.ID
	}
	return job, nil
}

func buildResult(job Job, result models.Result, err error) JobResult {
	envelope := models.NewEnvelope(result, err)

	status := StatusFailed
	switch envelope.Code {
	case models.CodeOK:
		status = StatusCompleted
	case models.CodeNotMedical:
		status = StatusRejected
	}

	return JobResult{
		JobID:   job.JobID,
		Status:  status,
		Code:    envelope.Code,
		Message: envelope.Message,
	}
}
