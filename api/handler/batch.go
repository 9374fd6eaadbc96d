package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/orgname/batch"
	"github.com/use-agent/orgname/models"
	"github.com/use-agent/orgname/resolver"
	"github.com/use-agent/orgname/webhook"
)

// batchStore holds all in-flight and completed batch jobs.
var batchStore sync.Map

func init() {
	// Background goroutine to expire batch jobs older than 1 hour.
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-1 * time.Hour).Unix()
			batchStore.Range(func(key, value any) bool {
				job := value.(*trackedJob)
				if job.createdAt < cutoff {
					batchStore.Delete(key)
				}
				return true
			})
		}
	}()
}

// trackedJob wraps a running batch with its progress counter.
type trackedJob struct {
	id        string
	total     int
	completed atomic.Int32
	report    atomic.Pointer[models.BatchReport]
	createdAt int64
}

// PostBatch returns a handler for POST /api/v1/batch/extract.
// It validates the request, registers a job, and runs the coordinator in
// the background.
func PostBatch(r *resolver.Resolver, concurrency int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BatchExtractRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		req.Defaults()

		job := &trackedJob{
			id:        "batch-" + randomID(),
			total:     len(req.URLs),
			createdAt: time.Now().Unix(),
		}
		batchStore.Store(job.id, job)

		coord := batch.New(r, concurrency)
		coord.URLTimeout = time.Duration(req.Timeout) * time.Second
		coord.OnOutcome = func(models.ExtractionOutcome) {
			job.completed.Add(1)
		}

		go func() {
			report := coord.Run(context.Background(), req.URLs)
			job.report.Store(report)
			if req.WebhookURL != "" {
				webhook.DeliverAsync(req.WebhookURL, req.WebhookSecret, &webhook.Event{
					Type:      "batch.completed",
					JobID:     job.id,
					Timestamp: time.Now().Unix(),
					Data:      report,
				})
			}
		}()

		c.JSON(http.StatusOK, models.BatchResponse{
			ID:     job.id,
			Status: "processing",
			Total:  job.total,
		})
	}
}

// GetBatch returns a handler for GET /api/v1/batch/:id.
func GetBatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID := c.Param("id")
		val, ok := batchStore.Load(jobID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "batch job not found",
				},
			})
			return
		}

		job := val.(*trackedJob)
		resp := models.BatchStatusResponse{
			ID:        job.id,
			Status:    "processing",
			Completed: int(job.completed.Load()),
			Total:     job.total,
		}
		if report := job.report.Load(); report != nil {
			resp.Status = "completed"
			resp.Report = report
		}
		c.JSON(http.StatusOK, resp)
	}
}

// randomID generates a short random hex string for job IDs.
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
