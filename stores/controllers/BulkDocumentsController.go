package controllers

import (
	"encoding/json"
	"errors"

	"signops-backend/config"
	"signops-backend/middleware"
	"signops-backend/tasks"
	"signops-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BulkDocumentsRequest selects the stores to include in a generated document.
type BulkDocumentsRequest struct {
	StoreIDs []uuid.UUID `json:"store_ids"`
}

// BulkPDFController queues generation of a combined completion-certificate
// PDF for the selected stores.
func (sc *StoreController) BulkPDFController(c *fiber.Ctx) error {
	return sc.enqueueBulkDocument(c, tasks.NewBulkPDFTask)
}

// BulkDeckController queues generation of a landscape presentation deck for
// the selected stores.
func (sc *StoreController) BulkDeckController(c *fiber.Ctx) error {
	return sc.enqueueBulkDocument(c, tasks.NewBulkDeckTask)
}

func (sc *StoreController) enqueueBulkDocument(c *fiber.Ctx, newTask func(tasks.BulkDocumentPayload) (*asynq.Task, error)) error {
	var req BulkDocumentsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body", "error": err.Error()})
	}
	if len(req.StoreIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "store_ids is required", "error": "missing_store_ids"})
	}

	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized", "error": "missing_user_context"})
	}

	jobID := uuid.New().String()
	task, err := newTask(tasks.BulkDocumentPayload{
		JobID:       jobID,
		StoreIDs:    req.StoreIDs,
		RequestedBy: currentUser.Email,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to build job", "error": err.Error()})
	}

	if _, err := sc.AsynqClient.Enqueue(task); err != nil {
		config.Logger.Error("Failed to enqueue bulk document job", zap.String("job_id", jobID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to queue job", "error": err.Error()})
	}

	status := tasks.JobStatus{JobID: jobID, Status: tasks.JobStatusQueued, RequestedBy: currentUser.Email}
	if data, err := json.Marshal(status); err == nil {
		sc.RedisClient.Set(sc.Ctx, tasks.JobStatusKey(jobID), data, 0)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Document generation queued",
		"job_id":  jobID,
	})
}

// DocumentJobStatusController reports the progress of a queued document job.
func (sc *StoreController) DocumentJobStatusController(c *fiber.Ctx) error {
	jobID := c.Params("id")

	data, err := sc.RedisClient.Get(sc.Ctx, tasks.JobStatusKey(jobID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Job not found", "error": "job_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to read job status", "error": err.Error()})
	}

	var status tasks.JobStatus
	if err := json.Unmarshal([]byte(data), &status); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Corrupt job status", "error": err.Error()})
	}

	response := fiber.Map{"data": status}
	if status.Status == tasks.JobStatusCompleted && status.DownloadPath != "" {
		response["download_link"] = utils.GetDownloadURL(c, status.DownloadPath)
	}
	return c.Status(fiber.StatusOK).JSON(response)
}
