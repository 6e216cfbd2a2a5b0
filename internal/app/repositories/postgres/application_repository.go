package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/csecl/interviewhub/internal/pkg/apperrors"
	"github.com/csecl/interviewhub/internal/pkg/dberrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationNumberConstraint = "applications_number_key"

var applicationColumns = []string{
	"id", "name", "number", "grade", "major", "phone_number", "email",
	"gaokao_math", "gaokao_english", "follow_direction", "good_at", "reason",
	"future", "experience", "other_lab", "value", "admin_remark", "book_time", "created_at",
}

// ApplicationRepository handles database operations for applications
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func scanApplication(row scanner) (*models.Application, error) {
	var app models.Application
	err := row.Scan(
		&app.ID, &app.Name, &app.Number, &app.Grade, &app.Major, &app.PhoneNumber, &app.Email,
		&app.GaokaoMath, &app.GaokaoEnglish, &app.FollowDirection, &app.GoodAt, &app.Reason,
		&app.Future, &app.Experience, &app.OtherLab, &app.Value, &app.AdminRemark, &app.BookTime, &app.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Create inserts an application. A duplicate student number yields ErrApplicationAlreadyExists.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) (int64, error) {
	insert := psql.Insert("applications").
		Columns("name", "number", "grade", "major", "phone_number", "email",
			"gaokao_math", "gaokao_english", "follow_direction", "good_at", "reason",
			"future", "experience", "other_lab", "book_time").
		Suffix("RETURNING id, book_time, created_at")

	bookTime := any(app.BookTime)
	if app.BookTime.IsZero() {
		bookTime = squirrel.Expr("NOW()")
	}
	insert = insert.Values(app.Name, app.Number, app.Grade, app.Major, app.PhoneNumber, app.Email,
		app.GaokaoMath, app.GaokaoEnglish, app.FollowDirection, app.GoodAt, app.Reason,
		app.Future, app.Experience, app.OtherLab, bookTime)

	sql, args, err := insert.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&app.ID, &app.BookTime, &app.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, applicationNumberConstraint) {
			return 0, apperrors.ErrApplicationAlreadyExists
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return app.ID, nil
}

func (r *ApplicationRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Application, error) {
	sql, args, err := psql.Select(applicationColumns...).From("applications").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	app, err := scanApplication(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return app, nil
}

// GetByID retrieves an application by ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByNumber retrieves an application by student number
func (r *ApplicationRepository) GetByNumber(ctx context.Context, number string) (*models.Application, error) {
	return r.getOne(ctx, squirrel.Eq{"number": number})
}

func applyApplicationFilter(q squirrel.SelectBuilder, f models.ApplicationFilter) squirrel.SelectBuilder {
	if f.Keyword != "" {
		q = q.Where(squirrel.Like{"number": "%" + f.Keyword + "%"})
	}
	if f.Direction != "" {
		q = q.Where(squirrel.ILike{"follow_direction": "%" + f.Direction + "%"})
	}
	if f.Grade != "" {
		q = q.Where(squirrel.Eq{"grade": f.Grade})
	}
	if f.Name != "" {
		q = q.Where(squirrel.ILike{"name": "%" + f.Name + "%"})
	}
	return q
}

// List retrieves applications matching the filter, newest submission first
func (r *ApplicationRepository) List(ctx context.Context, f models.ApplicationFilter, offset, limit uint64) ([]models.Application, error) {
	q := applyApplicationFilter(psql.Select(applicationColumns...).From("applications"), f).
		OrderBy("book_time DESC", "id DESC").
		Offset(offset).
		Limit(limit)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	apps := make([]models.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// Count counts applications matching the filter
func (r *ApplicationRepository) Count(ctx context.Context, f models.ApplicationFilter) (int64, error) {
	sql, args, err := applyApplicationFilter(psql.Select("COUNT(*)").From("applications"), f).ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return total, nil
}

func (r *ApplicationRepository) exec(ctx context.Context, q squirrel.UpdateBuilder) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, applicationNumberConstraint) {
			return apperrors.ErrApplicationAlreadyExists
		}
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// Update replaces the applicant-supplied fields. Score and remark are left untouched.
func (r *ApplicationRepository) Update(ctx context.Context, app *models.Application) error {
	q := psql.Update("applications").
		Set("name", app.Name).
		Set("number", app.Number).
		Set("grade", app.Grade).
		Set("major", app.Major).
		Set("phone_number", app.PhoneNumber).
		Set("email", app.Email).
		Set("gaokao_math", app.GaokaoMath).
		Set("gaokao_english", app.GaokaoEnglish).
		Set("follow_direction", app.FollowDirection).
		Set("good_at", app.GoodAt).
		Set("reason", app.Reason).
		Set("future", app.Future).
		Set("experience", app.Experience).
		Set("other_lab", app.OtherLab).
		Where(squirrel.Eq{"id": app.ID})
	if !app.BookTime.IsZero() {
		q = q.Set("book_time", app.BookTime)
	}
	return r.exec(ctx, q)
}

// UpdateScore sets the admin score
func (r *ApplicationRepository) UpdateScore(ctx context.Context, id int64, value string) error {
	return r.exec(ctx, psql.Update("applications").Set("value", value).Where(squirrel.Eq{"id": id}))
}

// UpdateRemark sets the admin remark
func (r *ApplicationRepository) UpdateRemark(ctx context.Context, id int64, remark string) error {
	return r.exec(ctx, psql.Update("applications").Set("admin_remark", remark).Where(squirrel.Eq{"id": id}))
}

// Delete deletes an application
func (r *ApplicationRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := psql.Delete("applications").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}
