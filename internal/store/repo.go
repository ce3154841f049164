package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/recollect-cli/recollect/internal/knowledge"
	"github.com/recollect-cli/recollect/internal/scheduler"
)

// querier is satisfied by both *sql.DB and *sql.Tx so the same repository
// code runs inside and outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repo is the SQLite implementation of the scheduler and session ports.
type Repo struct {
	db *sql.DB // nil when q is already a transaction
	q  querier
}

const itemColumns = `id, title, content, review_count, frequency_coefficient,
	mastery_status, created_at, last_review_at, next_review_at, mastered_at`

// CreateItem inserts a new item. A missing id is assigned a fresh UUID and
// written back to the value.
func (r *Repo) CreateItem(ctx context.Context, item *knowledge.Item) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Status == "" {
		item.Status = knowledge.StatusLearning
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	_, err := r.q.ExecContext(ctx, `INSERT INTO knowledge_items
		(id, title, content, review_count, frequency_coefficient,
		 mastery_status, created_at, last_review_at, next_review_at, mastered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Title, item.Content, item.ReviewCount, item.FrequencyCoefficient,
		string(item.Status), fmtTime(item.CreatedAt),
		fmtTimePtr(item.LastReviewAt), fmtTimePtr(item.NextReviewAt), fmtTimePtr(item.MasteredAt),
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// DeleteItem removes an item and, via the foreign key, its records.
func (r *Repo) DeleteItem(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM knowledge_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", scheduler.ErrNotFound, id)
	}
	return nil
}

// LoadItem returns the item with the given id.
func (r *Repo) LoadItem(ctx context.Context, id string) (*knowledge.Item, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM knowledge_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", scheduler.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load item: %w", err)
	}
	return item, nil
}

// SaveReviewRecord appends a review record and returns its id.
func (r *Repo) SaveReviewRecord(ctx context.Context, rec *knowledge.ReviewRecord) (string, error) {
	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err := r.q.ExecContext(ctx, `INSERT INTO review_records
		(id, knowledge_id, rating, reviewed_at, next_review_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, rec.KnowledgeID, rec.Rating, fmtTime(rec.ReviewedAt), fmtTime(rec.NextReviewAt),
	)
	if err != nil {
		return "", fmt.Errorf("insert record: %w", err)
	}
	return id, nil
}

// UpdateItem applies a partial update. Status changes keep the
// masteredAt-iff-mastered invariant: moving to learning always clears
// mastered_at, moving to mastered stores the supplied time.
func (r *Repo) UpdateItem(ctx context.Context, id string, upd knowledge.ItemUpdate) error {
	var sets []string
	var args []any

	if upd.ReviewCount != nil {
		sets = append(sets, "review_count = ?")
		args = append(args, *upd.ReviewCount)
	}
	if upd.LastReviewAt != nil {
		sets = append(sets, "last_review_at = ?")
		args = append(args, fmtTime(*upd.LastReviewAt))
	}
	if upd.NextReviewAt != nil {
		sets = append(sets, "next_review_at = ?")
		args = append(args, fmtTime(*upd.NextReviewAt))
	}
	if upd.Status != nil {
		sets = append(sets, "mastery_status = ?")
		args = append(args, string(*upd.Status))
		if *upd.Status == knowledge.StatusMastered && upd.MasteredAt != nil {
			sets = append(sets, "mastered_at = ?")
			args = append(args, fmtTime(*upd.MasteredAt))
		} else {
			sets = append(sets, "mastered_at = NULL")
		}
	}
	if len(sets) == 0 {
		return nil
	}

	query := "UPDATE knowledge_items SET "
	for i, s := range sets {
		if i > 0 {
			query += ", "
		}
		query += s
	}
	query += " WHERE id = ?"
	args = append(args, id)

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", scheduler.ErrNotFound, id)
	}
	return nil
}

// ItemsDueBy returns items whose next review is at or before due, soonest
// first.
func (r *Repo) ItemsDueBy(ctx context.Context, due time.Time) ([]*knowledge.Item, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM knowledge_items
		 WHERE next_review_at IS NOT NULL AND next_review_at <= ?
		 ORDER BY next_review_at`, fmtTime(due))
	if err != nil {
		return nil, fmt.Errorf("query due items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// RecentRecords returns up to n records for an item, newest first.
func (r *Repo) RecentRecords(ctx context.Context, id string, n int) ([]knowledge.ReviewRecord, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, knowledge_id, rating, reviewed_at, next_review_at
		 FROM review_records WHERE knowledge_id = ?
		 ORDER BY reviewed_at DESC, rowid DESC LIMIT ?`, id, n)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var recs []knowledge.ReviewRecord
	for rows.Next() {
		var rec knowledge.ReviewRecord
		var reviewedAt, nextReviewAt string
		if err := rows.Scan(&rec.ID, &rec.KnowledgeID, &rec.Rating, &reviewedAt, &nextReviewAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if rec.ReviewedAt, err = parseTime(reviewedAt); err != nil {
			return nil, err
		}
		if rec.NextReviewAt, err = parseTime(nextReviewAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// AllItems returns every item, newest creation first.
func (r *Repo) AllItems(ctx context.Context) ([]*knowledge.Item, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM knowledge_items ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// InTx runs fn against a transaction-scoped repository. Calls nested inside
// an existing transaction reuse it.
func (r *Repo) InTx(ctx context.Context, fn func(scheduler.Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(&Repo{q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*knowledge.Item, error) {
	var item knowledge.Item
	var status, createdAt string
	var lastReviewAt, nextReviewAt, masteredAt sql.NullString
	err := row.Scan(&item.ID, &item.Title, &item.Content, &item.ReviewCount,
		&item.FrequencyCoefficient, &status, &createdAt,
		&lastReviewAt, &nextReviewAt, &masteredAt)
	if err != nil {
		return nil, err
	}
	item.Status = knowledge.MasteryStatus(status)
	if item.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if item.LastReviewAt, err = parseTimeNull(lastReviewAt); err != nil {
		return nil, err
	}
	if item.NextReviewAt, err = parseTimeNull(nextReviewAt); err != nil {
		return nil, err
	}
	if item.MasteredAt, err = parseTimeNull(masteredAt); err != nil {
		return nil, err
	}
	return &item, nil
}

func scanItems(rows *sql.Rows) ([]*knowledge.Item, error) {
	var items []*knowledge.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func fmtTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return fmtTime(*t)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}

func parseTimeNull(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
