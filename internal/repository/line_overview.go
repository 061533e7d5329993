package repository

import (
	"context"
	"database/sql"

	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/domain"
)

// GetLineOverview assembles the demand/assignment snapshot for one org, date
// and shift type across all lines. Machines keep their demand-table order;
// machines without assignments appear with an empty segment list.
func (r *Repository) GetLineOverview(ctx context.Context, orgID, date, shiftType string) (*domain.LineOverviewData, error) {
	query := `
		SELECT
			d.line,
			d.machine_code,
			d.machine_name,
			d.required_hours,
			a.employee_code,
			a.start_time,
			a.end_time
		FROM machine_demand d
		LEFT JOIN machine_assignments a
			ON a.org_id = d.org_id
			AND a.line = d.line
			AND a.machine_code = d.machine_code
			AND a.shift_date = d.shift_date
			AND a.shift_type = d.shift_type
		WHERE d.org_id = $1 AND d.shift_date = $2 AND d.shift_type = $3
		ORDER BY d.line, d.machine_code, a.id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, orgID, date, shiftType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overview := &domain.LineOverviewData{
		Date:      date,
		ShiftType: shiftType,
		Lines:     []domain.LineMachines{},
	}

	lineIndex := make(map[string]int)
	machineIndex := make(map[string]map[string]int) // line -> machineCode -> index

	for rows.Next() {
		var row struct {
			Line          string
			MachineCode   string
			MachineName   string
			RequiredHours float64

			EmployeeCode sql.NullString
			StartTime    sql.NullString
			EndTime      sql.NullString
		}

		dst := []any{&row.Line, &row.MachineCode, &row.MachineName, &row.RequiredHours, &row.EmployeeCode, &row.StartTime, &row.EndTime}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		li, ok := lineIndex[row.Line]
		if !ok {
			li = len(overview.Lines)
			lineIndex[row.Line] = li
			machineIndex[row.Line] = make(map[string]int)
			overview.Lines = append(overview.Lines, domain.LineMachines{Line: row.Line, Machines: []domain.MachineDemand{}})
		}

		mi, ok := machineIndex[row.Line][row.MachineCode]
		if !ok {
			mi = len(overview.Lines[li].Machines)
			machineIndex[row.Line][row.MachineCode] = mi
			overview.Lines[li].Machines = append(overview.Lines[li].Machines, domain.MachineDemand{
				MachineCode:   row.MachineCode,
				MachineName:   row.MachineName,
				RequiredHours: row.RequiredHours,
				Assignments:   []domain.AssignmentSegment{},
			})
		}

		// a NULL employee code means the machine has demand but no assignments
		if !row.EmployeeCode.Valid {
			continue
		}

		overview.Lines[li].Machines[mi].Assignments = append(overview.Lines[li].Machines[mi].Assignments, domain.AssignmentSegment{
			EmployeeCode: row.EmployeeCode.String,
			StartTime:    row.StartTime.String,
			EndTime:      row.EndTime.String,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return overview, nil
}
