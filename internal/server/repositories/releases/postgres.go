package releases

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const selectColumns = `SELECT id, description, month, year, user_id, amount, type, status, created_on, receipt_key FROM releases`

var (
	newID = uuid.NewString
	now   = time.Now
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRelease(row scanner) (*models.Release, error) {
	r := &models.Release{}
	var t, s string
	err := row.Scan(&r.ID, &r.Description, &r.Month, &r.Year, &r.UserID,
		&r.Amount, &t, &s, &r.CreatedOn, &r.ReceiptKey)
	if err != nil {
		return nil, err
	}
	r.Type = models.ReleaseType(t)
	r.Status = models.ReleaseStatus(s)
	return r, nil
}

// Save upserts r. On update the stored created_on is kept and returned.
func (p *PostgresRepository) Save(ctx context.Context, r *models.Release) (*models.Release, error) {
	saved := *r
	if saved.ID == "" {
		saved.ID = newID()
	}
	if saved.CreatedOn.IsZero() {
		saved.CreatedOn = now()
	}

	query :=
		`INSERT INTO releases (id, description, month, year, user_id, amount, type, status, created_on, receipt_key)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (id) DO UPDATE SET
			description = EXCLUDED.description,
			month = EXCLUDED.month,
			year = EXCLUDED.year,
			user_id = EXCLUDED.user_id,
			amount = EXCLUDED.amount,
			type = EXCLUDED.type,
			status = EXCLUDED.status,
			receipt_key = EXCLUDED.receipt_key
		 RETURNING created_on
		 `

	err := p.db.QueryRowContext(ctx, query,
		saved.ID, saved.Description, saved.Month, saved.Year, saved.UserID,
		saved.Amount, string(saved.Type), string(saved.Status), saved.CreatedOn, saved.ReceiptKey).
		Scan(&saved.CreatedOn)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &saved, nil
}

// SetReceiptKey changes only the receipt key of the release id.
func (p *PostgresRepository) SetReceiptKey(ctx context.Context, id, key string) error {
	res, err := p.db.ExecContext(ctx, `UPDATE releases SET receipt_key = $1 WHERE id = $2`, key, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}

	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (p *PostgresRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return common.ErrorMissingID
	}

	if _, err := p.db.ExecContext(ctx, `DELETE FROM releases WHERE id = $1`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (p *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Release, error) {
	r, err := scanRelease(p.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r, nil
}

// buildFind renders the filter as a conjunction of equality predicates.
func buildFind(f models.ReleaseFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	add := func(col string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if f.ID != "" {
		add("id", f.ID)
	}
	if f.Description != "" {
		add("description", f.Description)
	}
	if f.Month != 0 {
		add("month", f.Month)
	}
	if f.Year != 0 {
		add("year", f.Year)
	}
	if f.UserID != "" {
		add("user_id", f.UserID)
	}
	if !f.Amount.IsZero() {
		add("amount", f.Amount)
	}
	if f.Type != "" {
		add("type", string(f.Type))
	}
	if f.Status != "" {
		add("status", string(f.Status))
	}

	query := selectColumns
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	return query, args
}

func (p *PostgresRepository) Find(ctx context.Context, f models.ReleaseFilter) ([]*models.Release, error) {
	query, args := buildFind(f)

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Release, 0)
	for rows.Next() {
		r, err := scanRelease(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

func (p *PostgresRepository) SumAmount(ctx context.Context, userID string, t models.ReleaseType, s models.ReleaseStatus) (decimal.Decimal, error) {
	query :=
		`SELECT COALESCE(SUM(amount), 0) FROM releases
		 WHERE user_id = $1 AND type = $2 AND status = $3
		 `

	var sum decimal.Decimal
	if err := p.db.QueryRowContext(ctx, query, userID, string(t), string(s)).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("db error: %w", err)
	}

	return sum, nil
}
