package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harsh-tr3010/excel-ai-interviewer/internal/model"
)

// ErrDuplicateEmail means a record already exists for this candidate
// identity (case-insensitive email). Terminal for the attempt.
var ErrDuplicateEmail = errors.New("a record already exists for this candidate email")

// CandidateRecordRepository handles candidate record data access. The store
// is append-only and write-once per identity: no update or delete exists.
type CandidateRecordRepository struct {
	pool *pgxpool.Pool
}

// NewCandidateRecordRepository creates a new CandidateRecordRepository.
func NewCandidateRecordRepository(pool *pgxpool.Pool) *CandidateRecordRepository {
	return &CandidateRecordRepository{pool: pool}
}

// Save inserts a record with its answers in one transaction. The
// duplicate-check-then-append critical section is a single atomic statement:
// ON CONFLICT DO NOTHING on the case-insensitive email index, so one of two
// concurrent saves for the same identity wins and the other gets
// ErrDuplicateEmail.
func (r *CandidateRecordRepository) Save(ctx context.Context, rec *model.CandidateRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO candidate_records (name, email, total_score, max_score, verdict, report)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT ((lower(email))) DO NOTHING
		 RETURNING id, created_at`,
		rec.Name, rec.Email, rec.TotalScore, rec.MaxScore, rec.Verdict, rec.Report,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert record: %w", err)
	}

	for pos, item := range rec.Answers {
		_, err = tx.Exec(ctx,
			`INSERT INTO candidate_answers
			   (record_id, position, question_index, prompt, expected_answer, answer, score, feedback)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			rec.ID, pos, item.QuestionIndex, item.Prompt, item.ExpectedAnswer,
			item.Answer, item.Score, item.Feedback,
		)
		if err != nil {
			return fmt.Errorf("insert answer %d: %w", pos, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ExistsByEmail reports whether a record exists for the given identity.
func (r *CandidateRecordRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM candidate_records WHERE lower(email) = lower($1))`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

// GetByEmail retrieves a record with its answers in asked order.
func (r *CandidateRecordRepository) GetByEmail(ctx context.Context, email string) (*model.CandidateRecord, error) {
	rec := &model.CandidateRecord{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, total_score, max_score, verdict, report, created_at
		 FROM candidate_records
		 WHERE lower(email) = lower($1)`, email,
	).Scan(&rec.ID, &rec.Name, &rec.Email, &rec.TotalScore, &rec.MaxScore, &rec.Verdict, &rec.Report, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT question_index, prompt, expected_answer, answer, score, feedback
		 FROM candidate_answers
		 WHERE record_id = $1
		 ORDER BY position`, rec.ID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.AnsweredItem
		if err := rows.Scan(&item.QuestionIndex, &item.Prompt, &item.ExpectedAnswer, &item.Answer, &item.Score, &item.Feedback); err != nil {
			return nil, err
		}
		rec.Answers = append(rec.Answers, item)
	}
	return rec, rows.Err()
}

// List retrieves records without answers, newest first, with pagination.
func (r *CandidateRecordRepository) List(ctx context.Context, limit, offset int) ([]model.CandidateRecord, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM candidate_records`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, total_score, max_score, verdict, created_at
		 FROM candidate_records
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []model.CandidateRecord
	for rows.Next() {
		var rec model.CandidateRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.TotalScore, &rec.MaxScore, &rec.Verdict, &rec.CreatedAt); err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}
