package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/harsh-tr3010/excel-ai-interviewer/internal/config"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/model"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/report"
)

const (
	ReportBatchSize    = 20
	ReportBatchTimeout = 2 * time.Second
	ReportPollTimeout  = 1 * time.Second
)

// ReportWorker drains the report queue and renders PDF artifacts for
// finalized interviews. The master record is already durable before a
// payload reaches the queue, so a render failure never loses a result.
type ReportWorker struct {
	rdb *redis.Client
	dir string
	log zerolog.Logger
}

func NewReportWorker(rdb *redis.Client, reportDir string, log zerolog.Logger) *ReportWorker {
	return &ReportWorker{
		rdb: rdb,
		dir: reportDir,
		log: log.With().Str("component", "report_worker").Logger(),
	}
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *ReportWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ReportWorker started")

	batch := make([]*model.CandidateRecord, 0, ReportBatchSize)
	lastFlush := time.Now()

	for {
		// Should flush?
		if len(batch) > 0 &&
			(len(batch) >= ReportBatchSize || time.Since(lastFlush) >= ReportBatchTimeout) {

			w.flushSafe(batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, ReportPollTimeout, config.WorkerKey.RenderReportsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var rec model.CandidateRecord
			if err := json.Unmarshal([]byte(item[1]), &rec); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &rec)
		}
	}
}

// ----------------------------------------------------------------
// Render wrapper with requeue on failure
// ----------------------------------------------------------------

func (w *ReportWorker) flushSafe(batch []*model.CandidateRecord) {
	if len(batch) == 0 {
		return
	}

	for _, rec := range batch {
		path, err := report.Write(w.dir, rec)
		if err != nil {
			w.log.Error().Err(err).Str("candidate_email", rec.Email).Msg("Report render failed, requeueing")
			raw, _ := json.Marshal(rec)
			w.rdb.RPush(context.Background(), config.WorkerKey.RenderReportsQueue, raw)
			continue
		}
		w.log.Info().Str("candidate_email", rec.Email).Str("path", path).Msg("Report rendered")
	}
}
