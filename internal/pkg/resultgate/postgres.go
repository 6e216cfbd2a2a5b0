package resultgate

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresGate stores the flag as a row in app_settings so every instance
// sharing the database sees the same value.
type PostgresGate struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostgresGate creates a gate backed by the app_settings table.
func NewPostgresGate(db *pgxpool.Pool) *PostgresGate {
	return &PostgresGate{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Released reads the flag. A missing row means hidden.
func (g *PostgresGate) Released(ctx context.Context) (bool, error) {
	sql, args, err := g.sb.Select("value").From("app_settings").Where(squirrel.Eq{"key": SettingKey}).ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var value string
	if err := g.db.QueryRow(ctx, sql, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error reading result gate: %w", err)
	}

	released, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("corrupt result gate value %q: %w", value, err)
	}
	return released, nil
}

// SetReleased upserts the flag in a single statement.
func (g *PostgresGate) SetReleased(ctx context.Context, released bool) error {
	sql, args, err := g.sb.Insert("app_settings").
		Columns("key", "value").
		Values(SettingKey, strconv.FormatBool(released)).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := g.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error writing result gate: %w", err)
	}
	return nil
}
