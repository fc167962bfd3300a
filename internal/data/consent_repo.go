package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gameforge/ui-api/internal/domain/model"
	apperrors "github.com/gameforge/ui-api/internal/errors"
)

// ConsentRepo provides database operations for the append-only consent
// audit log. Records are only ever inserted; corrections append a new row.
type ConsentRepo struct {
	DB     *sql.DB
	logger *slog.Logger
}

// NewConsentRepo creates a new ConsentRepo with the given database connection.
func NewConsentRepo(db *sql.DB, logger *slog.Logger) *ConsentRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsentRepo{DB: db, logger: logger}
}

const consentColumns = `
  id,
  user_id,
  scope,
  granted,
  source,
  recorded_at
`

// Record inserts a consent decision. The record's ID and RecordedAt are
// assigned here when unset so callers only supply the decision itself.
func (r *ConsentRepo) Record(ctx context.Context, rec *model.ConsentRecord) error {
	if rec == nil {
		return apperrors.Validation("consent record cannot be nil")
	}
	if rec.UserID == "" {
		return apperrors.ValidationField("user_id", "user id cannot be empty")
	}
	if !rec.Scope.Valid() {
		return apperrors.ValidationField("scope", "unknown consent scope")
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}

	const query = `
    INSERT INTO consent_records (id, user_id, scope, granted, source, recorded_at)
    VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(ctx, query,
		rec.ID, rec.UserID, rec.Scope, rec.Granted, rec.Source, rec.RecordedAt)
	if err != nil {
		return r.mapWriteErr(err)
	}

	r.logger.InfoContext(ctx, "consent decision recorded",
		"user_id", rec.UserID,
		"scope", rec.Scope,
		"granted", rec.Granted)

	return nil
}

// ListByUser returns all consent records for a user, newest first.
func (r *ConsentRepo) ListByUser(ctx context.Context, userID string) ([]model.ConsentRecord, error) {
	if userID == "" {
		return nil, apperrors.ValidationField("user_id", "user id cannot be empty")
	}

	query := fmt.Sprintf(`
    SELECT %s FROM consent_records
    WHERE user_id = $1
    ORDER BY recorded_at DESC, id DESC`, consentColumns)

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "query consent records")
	}
	defer func() { _ = rows.Close() }()

	var records []model.ConsentRecord
	for rows.Next() {
		rec, scanErr := scanConsentRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "iterate consent records")
	}

	return records, nil
}

// LatestByScope returns the most recent decision per scope for a user.
// Scopes the user never decided on are absent from the map.
func (r *ConsentRepo) LatestByScope(ctx context.Context, userID string) (map[model.ConsentScope]model.ConsentRecord, error) {
	if userID == "" {
		return nil, apperrors.ValidationField("user_id", "user id cannot be empty")
	}

	query := fmt.Sprintf(`
    SELECT DISTINCT ON (scope) %s FROM consent_records
    WHERE user_id = $1
    ORDER BY scope, recorded_at DESC, id DESC`, consentColumns)

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "query latest consent records")
	}
	defer func() { _ = rows.Close() }()

	latest := make(map[model.ConsentScope]model.ConsentRecord)
	for rows.Next() {
		rec, scanErr := scanConsentRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		latest[rec.Scope] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "iterate latest consent records")
	}

	return latest, nil
}

func scanConsentRecord(rows *sql.Rows) (model.ConsentRecord, error) {
	var (
		rec    model.ConsentRecord
		source sql.NullString
	)
	if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Scope, &rec.Granted, &source, &rec.RecordedAt); err != nil {
		return model.ConsentRecord{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "scan consent record")
	}
	rec.Source = source.String
	return rec, nil
}

func (r *ConsentRepo) mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperrors.Wrap(err, apperrors.ErrCodeConflict, "consent record already exists")
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
			return apperrors.Wrap(err, apperrors.ErrCodeValidation, "consent record rejected by constraint")
		}
	}
	return apperrors.Wrap(err, apperrors.ErrCodeInternal, "insert consent record")
}
