package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeLoginAudit records a login or logout event.
	TaskTypeLoginAudit = "audit:login"
	// TaskTypeAuditDigest summarizes and trims the recent-activity log.
	TaskTypeAuditDigest = "audit:digest"

	// AuditRecentKey is the Redis list holding recent auth events.
	AuditRecentKey = "audit:recent"
	// auditRecentMax bounds the recent-activity list.
	auditRecentMax = 500
)

// LoginAuditPayload describes one authentication event.
type LoginAuditPayload struct {
	ActorID string    `json:"actorId"`
	Email   string    `json:"email"`
	Role    string    `json:"role"`
	Event   string    `json:"event"`
	At      time.Time `json:"at"`
}

// NewLoginAuditTask constructs an Asynq task for an auth event.
func NewLoginAuditTask(payload LoginAuditPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeLoginAudit, data), nil
}

// NewAuditDigestTask constructs the scheduled digest task.
func NewAuditDigestTask() *asynq.Task {
	return asynq.NewTask(TaskTypeAuditDigest, nil)
}

// AuditHandlers processes audit tasks against the Redis activity log.
type AuditHandlers struct {
	logger *slog.Logger
	rdb    *redis.Client
}

// NewAuditHandlers constructs the audit task handlers.
func NewAuditHandlers(logger *slog.Logger, rdb *redis.Client) *AuditHandlers {
	return &AuditHandlers{logger: logger, rdb: rdb}
}

// HandleLoginAudit appends the event to the recent-activity list.
func (h *AuditHandlers) HandleLoginAudit(ctx context.Context, t *asynq.Task) error {
	var payload LoginAuditPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if h.logger != nil {
		h.logger.Info("auth event",
			slog.String("event", payload.Event),
			slog.String("actor", payload.ActorID),
			slog.String("role", payload.Role))
	}
	if h.rdb == nil {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return asynq.SkipRetry
	}
	pipe := h.rdb.TxPipeline()
	pipe.LPush(ctx, AuditRecentKey, data)
	pipe.LTrim(ctx, AuditRecentKey, 0, auditRecentMax-1)
	_, err = pipe.Exec(ctx)
	return err
}

// HandleAuditDigest logs the size of the activity log and re-trims it.
func (h *AuditHandlers) HandleAuditDigest(ctx context.Context, t *asynq.Task) error {
	if h.rdb == nil {
		return nil
	}
	size, err := h.rdb.LLen(ctx, AuditRecentKey).Result()
	if err != nil {
		return err
	}
	if h.logger != nil {
		h.logger.Info("audit digest", slog.Int64("events", size))
	}
	return h.rdb.LTrim(ctx, AuditRecentKey, 0, auditRecentMax-1).Err()
}
