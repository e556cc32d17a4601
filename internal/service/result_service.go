package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/harsh-tr3010/excel-ai-interviewer/internal/config"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/model"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/report"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/repository"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/response"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/session"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/summary"
)

// ErrDuplicateCandidate means the result store already holds a record for
// this candidate identity. Terminal for the attempt; surfaced to the
// candidate as "already completed".
var ErrDuplicateCandidate = errors.New("a result is already recorded for this candidate")

// RecordStore is the persistence boundary the engine writes through.
// The production implementation is CandidateRecordRepository.
type RecordStore interface {
	Save(ctx context.Context, rec *model.CandidateRecord) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*model.CandidateRecord, error)
	List(ctx context.Context, limit, offset int) ([]model.CandidateRecord, int, error)
}

// ResultService finalizes sessions: aggregation, durable persistence, and
// the per-candidate report artifact.
type ResultService struct {
	records   RecordStore
	builder   *summary.Builder
	rdb       *redis.Client
	reportDir string
	log       zerolog.Logger
}

// NewResultService creates a new ResultService.
func NewResultService(records RecordStore, builder *summary.Builder, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *ResultService {
	return &ResultService{
		records:   records,
		builder:   builder,
		rdb:       rdb,
		reportDir: cfg.ReportDir,
		log:       log.With().Str("component", "result_service").Logger(),
	}
}

// FinalizeResult is the outcome of persisting a completed session.
type FinalizeResult struct {
	Record     *model.CandidateRecord `json:"record"`
	ReportPath string                 `json:"report_path"`
}

// Persist aggregates a completed session and writes it to the result store.
// summary.ErrIncompleteSession passes through when the session is still in
// progress. The store's atomic insert-if-absent makes the duplicate check
// and the append one critical section; a lost race surfaces as
// ErrDuplicateCandidate. Storage failures are returned, never retried:
// retrying a non-idempotent append could double-record a result.
func (s *ResultService) Persist(ctx context.Context, sess *session.Session, candidateName, candidateEmail string) (*FinalizeResult, error) {
	sum, err := s.builder.Build(sess, candidateName, candidateEmail)
	if err != nil {
		return nil, err
	}

	rec := sum.Record()
	if err := s.records.Save(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateCandidate
		}
		return nil, fmt.Errorf("save record: %w", err)
	}

	return &FinalizeResult{
		Record:     rec,
		ReportPath: s.submitReport(ctx, rec),
	}, nil
}

// submitReport queues the PDF artifact render, falling back to an inline
// render when the queue is unavailable. The master record is already durable
// at this point, so artifact failures are logged rather than surfaced.
func (s *ResultService) submitReport(ctx context.Context, rec *model.CandidateRecord) string {
	path := report.PathFor(s.reportDir, rec.Email)

	if s.rdb != nil {
		payload, err := json.Marshal(rec)
		if err == nil {
			if err := s.rdb.RPush(ctx, config.WorkerKey.RenderReportsQueue, payload).Err(); err == nil {
				return path
			}
			s.log.Warn().Str("candidate_email", rec.Email).Msg("Report queue unavailable, rendering inline")
		}
	}

	if _, err := report.Write(s.reportDir, rec); err != nil {
		s.log.Error().Err(err).Str("candidate_email", rec.Email).Msg("Report render failed")
	}
	return path
}

// GetRecord retrieves one candidate's record with answers.
func (s *ResultService) GetRecord(ctx context.Context, email string) (*model.CandidateRecord, error) {
	return s.records.GetByEmail(ctx, email)
}

// ListRecords retrieves persisted records, newest first, with pagination.
func (s *ResultService) ListRecords(ctx context.Context, page, perPage int) ([]model.CandidateRecord, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	records, total, err := s.records.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if records == nil {
		records = []model.CandidateRecord{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return records, pagination, nil
}
