package repository

import (
	"context"
	"time"

	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/domain"
)

// ResolveEmployeeIDsByCode maps assignment employee codes to internal
// employee IDs, trying the employees table first and the legacy code mapping
// for whatever is left. Codes that resolve in neither are simply absent from
// the result.
func (r *Repository) ResolveEmployeeIDsByCode(ctx context.Context, orgID string, codes []string) (map[string]int64, error) {
	resolved := make(map[string]int64, len(codes))
	if len(codes) == 0 {
		return resolved, nil
	}

	primary := `
		SELECT code, id
		FROM employees
		WHERE org_id = $1 AND code = ANY($2)
	`

	queryCtx, cancel := r.queryContext(ctx)
	rows, err := r.dbpool.QueryContext(queryCtx, primary, orgID, codes)
	if err != nil {
		cancel()
		return nil, err
	}
	for rows.Next() {
		var code string
		var id int64
		if err := rows.Scan(&code, &id); err != nil {
			rows.Close()
			cancel()
			return nil, err
		}
		resolved[code] = id
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		cancel()
		return nil, err
	}
	rows.Close()
	cancel()

	remaining := make([]string, 0)
	for _, code := range codes {
		if _, ok := resolved[code]; !ok {
			remaining = append(remaining, code)
		}
	}
	if len(remaining) == 0 {
		return resolved, nil
	}

	legacy := `
		SELECT lec.code, lec.employee_id
		FROM legacy_employee_codes lec
		JOIN employees e ON e.id = lec.employee_id
		WHERE e.org_id = $1 AND lec.code = ANY($2)
	`

	queryCtx, cancel = r.queryContext(ctx)
	defer cancel()

	rows, err = r.dbpool.QueryContext(queryCtx, legacy, orgID, remaining)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var code string
		var id int64
		if err := rows.Scan(&code, &id); err != nil {
			return nil, err
		}
		resolved[code] = id
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return resolved, nil
}

func (r *Repository) GetEmployeeNames(ctx context.Context, orgID string, employeeIDs []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return names, nil
	}

	query := `
		SELECT id, full_name
		FROM employees
		WHERE org_id = $1 AND id = ANY($2)
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, orgID, employeeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return names, nil
}

// GetEmployeeCompetenceLevels returns one employee's levels for the given
// competences, restricted to records valid on the effective date. A missing
// record means level 0 and is simply absent from the map.
func (r *Repository) GetEmployeeCompetenceLevels(ctx context.Context, orgID string, employeeID int64, competenceIDs []int64, effectiveDate string) (map[int64]int, error) {
	levels := make(map[int64]int, len(competenceIDs))
	if len(competenceIDs) == 0 {
		return levels, nil
	}

	if effectiveDate == "" {
		effectiveDate = time.Now().Format("2006-01-02")
	}

	query := `
		SELECT ec.competence_id, ec.level
		FROM employee_competences ec
		JOIN employees e ON e.id = ec.employee_id
		WHERE e.org_id = $1
			AND ec.employee_id = $2
			AND ec.competence_id = ANY($3)
			AND ec.valid_from <= $4::date
			AND (ec.valid_to IS NULL OR ec.valid_to >= $4::date)
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, orgID, employeeID, competenceIDs, effectiveDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var competenceID int64
		var level int
		if err := rows.Scan(&competenceID, &level); err != nil {
			return nil, err
		}
		levels[competenceID] = level
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return levels, nil
}

func (r *Repository) GetAllEmployees(ctx context.Context, orgID string) ([]*domain.Employee, error) {
	query := `
		SELECT id, code, full_name, is_active
		FROM employees
		WHERE org_id = $1
		ORDER BY full_name
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee := &domain.Employee{OrgID: orgID}
		dst := []any{&employee.ID, &employee.Code, &employee.FullName, &employee.IsActive}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}
