package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"signops-backend/config"
	reports_services "signops-backend/reports/services"
	"signops-backend/stores/repositories"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const jobStatusTTL = 24 * time.Hour

// TaskProcessor executes background document jobs and publishes their status
// to Redis for the polling endpoint.
type TaskProcessor struct {
	StoreRepo   repositories.StoreRepository
	RedisClient *redis.Client
}

func NewTaskProcessor(storeRepo repositories.StoreRepository, redisClient *redis.Client) *TaskProcessor {
	return &TaskProcessor{StoreRepo: storeRepo, RedisClient: redisClient}
}

// Mux wires the task handlers for the asynq server.
func (p *TaskProcessor) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBulkPDF, p.HandleBulkPDF)
	mux.HandleFunc(TypeBulkDeck, p.HandleBulkDeck)
	return mux
}

func (p *TaskProcessor) setStatus(ctx context.Context, status JobStatus) {
	status.UpdatedAt = time.Now()
	data, err := json.Marshal(status)
	if err != nil {
		config.Logger.Error("Failed to marshal job status", zap.String("job_id", status.JobID), zap.Error(err))
		return
	}
	if err := p.RedisClient.Set(ctx, JobStatusKey(status.JobID), data, jobStatusTTL).Err(); err != nil {
		config.Logger.Error("Failed to persist job status", zap.String("job_id", status.JobID), zap.Error(err))
	}
}

// HandleBulkPDF generates one document containing the completion certificate
// of every requested store.
func (p *TaskProcessor) HandleBulkPDF(ctx context.Context, t *asynq.Task) error {
	return p.runBulkJob(ctx, t, func(payload BulkDocumentPayload) (string, error) {
		stores, err := p.StoreRepo.GetStoresByIDs(payload.StoreIDs)
		if err != nil {
			return "", err
		}
		if len(stores) == 0 {
			return "", fmt.Errorf("no stores found for the requested ids")
		}
		filename := fmt.Sprintf("certificates_%s.pdf", payload.JobID)
		return reports_services.GenerateBulkCertificates(stores, filename)
	})
}

// HandleBulkDeck generates a landscape presentation deck of the requested
// stores.
func (p *TaskProcessor) HandleBulkDeck(ctx context.Context, t *asynq.Task) error {
	return p.runBulkJob(ctx, t, func(payload BulkDocumentPayload) (string, error) {
		stores, err := p.StoreRepo.GetStoresByIDs(payload.StoreIDs)
		if err != nil {
			return "", err
		}
		if len(stores) == 0 {
			return "", fmt.Errorf("no stores found for the requested ids")
		}
		filename := fmt.Sprintf("deck_%s.pdf", payload.JobID)
		return reports_services.GenerateStoreDeck(stores, filename)
	})
}

func (p *TaskProcessor) runBulkJob(ctx context.Context, t *asynq.Task, generate func(BulkDocumentPayload) (string, error)) error {
	var payload BulkDocumentPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	p.setStatus(ctx, JobStatus{JobID: payload.JobID, Status: JobStatusRunning, RequestedBy: payload.RequestedBy})

	path, err := generate(payload)
	if err != nil {
		config.Logger.Error("Bulk document job failed",
			zap.String("job_id", payload.JobID),
			zap.String("task_type", t.Type()),
			zap.Error(err),
		)
		p.setStatus(ctx, JobStatus{JobID: payload.JobID, Status: JobStatusFailed, Error: err.Error(), RequestedBy: payload.RequestedBy})
		return err
	}

	p.setStatus(ctx, JobStatus{JobID: payload.JobID, Status: JobStatusCompleted, DownloadPath: path, RequestedBy: payload.RequestedBy})
	config.Logger.Info("Bulk document job completed",
		zap.String("job_id", payload.JobID),
		zap.String("task_type", t.Type()),
		zap.String("path", path),
	)
	return nil
}
