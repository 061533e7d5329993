package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/domain"
)

// GetShiftRule returns the shift rule for one (org, shiftType), or nil when
// none is configured. Absence is not an error; callers fall back to a default
// net duration.
func (r *Repository) GetShiftRule(ctx context.Context, orgID, shiftType string) (*domain.ShiftRule, error) {
	query := `
		SELECT id, shift_start, shift_end, break_minutes, paid_break_minutes, created_at, version
		FROM shift_rules
		WHERE org_id = $1 AND shift_type = $2
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rule := &domain.ShiftRule{
		OrgID:     orgID,
		ShiftType: shiftType,
	}

	dst := []any{&rule.ID, &rule.ShiftStart, &rule.ShiftEnd, &rule.BreakMinutes, &rule.PaidBreakMinutes, &rule.CreatedAt, &rule.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, orgID, shiftType).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return rule, nil
}

func (r *Repository) GetAllShiftRules(ctx context.Context, orgID string) ([]*domain.ShiftRule, error) {
	query := `
		SELECT id, shift_type, shift_start, shift_end, break_minutes, paid_break_minutes, created_at, version
		FROM shift_rules
		WHERE org_id = $1
		ORDER BY shift_type
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := make([]*domain.ShiftRule, 0)
	for rows.Next() {
		rule := &domain.ShiftRule{OrgID: orgID}
		dst := []any{&rule.ID, &rule.ShiftType, &rule.ShiftStart, &rule.ShiftEnd, &rule.BreakMinutes, &rule.PaidBreakMinutes, &rule.CreatedAt, &rule.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rules, nil
}

// UpsertShiftRule creates or replaces the rule for (org, shiftType).
func (r *Repository) UpsertShiftRule(ctx context.Context, rule *domain.ShiftRule) error {
	query := `
		INSERT INTO shift_rules (org_id, shift_type, shift_start, shift_end, break_minutes, paid_break_minutes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (org_id, shift_type) DO UPDATE
		SET
			shift_start = EXCLUDED.shift_start,
			shift_end = EXCLUDED.shift_end,
			break_minutes = EXCLUDED.break_minutes,
			paid_break_minutes = EXCLUDED.paid_break_minutes,
			version = shift_rules.version + 1
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{rule.OrgID, rule.ShiftType, rule.ShiftStart, rule.ShiftEnd, rule.BreakMinutes, rule.PaidBreakMinutes}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &rule.CreatedAt, &rule.Version); err != nil {
		return err
	}

	return nil
}
