package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	TypeBulkPDF  = "documents:bulk_pdf"
	TypeBulkDeck = "documents:bulk_deck"
)

// JobStatus is what the polling endpoint reads back from Redis.
type JobStatus struct {
	JobID        string    `json:"job_id"`
	Status       string    `json:"status"`
	DownloadPath string    `json:"download_path,omitempty"`
	Error        string    `json:"error,omitempty"`
	RequestedBy  string    `json:"requested_by"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	JobStatusQueued    = "QUEUED"
	JobStatusRunning   = "RUNNING"
	JobStatusCompleted = "COMPLETED"
	JobStatusFailed    = "FAILED"
)

func JobStatusKey(jobID string) string {
	return fmt.Sprintf("job:%s", jobID)
}

// BulkDocumentPayload drives both bulk document task types.
type BulkDocumentPayload struct {
	JobID       string      `json:"job_id"`
	StoreIDs    []uuid.UUID `json:"store_ids"`
	RequestedBy string      `json:"requested_by"`
}

func NewBulkPDFTask(payload BulkDocumentPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bulk pdf payload: %w", err)
	}
	return asynq.NewTask(TypeBulkPDF, data, asynq.MaxRetry(3), asynq.Timeout(10*time.Minute)), nil
}

func NewBulkDeckTask(payload BulkDocumentPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bulk deck payload: %w", err)
	}
	return asynq.NewTask(TypeBulkDeck, data, asynq.MaxRetry(3), asynq.Timeout(10*time.Minute)), nil
}
