// Package seed loads a small demonstration organization: one production line
// with a handful of stations, a competence catalog, employees with levels,
// day/night shift rules and a day of demand and assignments.
package seed

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/config"
	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/domain"
	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/repository"
	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/utils"
)

type Seeder struct {
	cfg    *config.Config
	dbpool *sql.DB
	repo   *repository.Repository
}

func NewSeeder(cfg *config.Config, dbpool *sql.DB, repo *repository.Repository) *Seeder {
	return &Seeder{cfg: cfg, dbpool: dbpool, repo: repo}
}

type demoCompetence struct {
	code string
	name string
}

var demoCompetences = []demoCompetence{
	{code: "SAFETY", name: "Machine Safety"},
	{code: "PRESS", name: "Press Operation"},
	{code: "QC", name: "Quality Inspection"},
	{code: "FORK", name: "Forklift License"},
}

type demoStation struct {
	code string
	name string
	// skill code -> (required level, mandatory)
	requirements map[string]struct {
		level     int
		mandatory bool
	}
}

var demoStations = []demoStation{
	{
		code: "M1",
		name: "Press 40T",
		requirements: map[string]struct {
			level     int
			mandatory bool
		}{
			"SAFETY": {level: 2, mandatory: true},
			"PRESS":  {level: 2, mandatory: true},
			"QC":     {level: 1, mandatory: false},
		},
	},
	{
		code: "M2",
		name: "Assembly East",
		requirements: map[string]struct {
			level     int
			mandatory bool
		}{
			"SAFETY": {level: 1, mandatory: true},
		},
	},
	{
		code: "M3",
		name: "Packing",
		// no requirements on record; the gap report stays neutral here
		requirements: nil,
	},
}

func (s *Seeder) Run(ctx context.Context, employeeCount int) error {
	orgID := s.cfg.Seed.OrgID

	competenceIDs := make(map[string]int64, len(demoCompetences))
	for _, c := range demoCompetences {
		var id int64
		err := s.dbpool.QueryRowContext(ctx, `
			INSERT INTO competences (org_id, name, code)
			VALUES ($1, $2, $3)
			ON CONFLICT (org_id, code) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, orgID, c.name, c.code).Scan(&id)
		if err != nil {
			return err
		}
		competenceIDs[c.code] = id
	}

	for _, st := range demoStations {
		var stationID int64
		err := s.dbpool.QueryRowContext(ctx, `
			INSERT INTO stations (org_id, line, code, name, is_active)
			VALUES ($1, 'L1', $2, $3, true)
			ON CONFLICT (org_id, line, code) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, orgID, st.code, st.name).Scan(&stationID)
		if err != nil {
			return err
		}

		for skillCode, req := range st.requirements {
			requirement := &domain.StationRoleRequirement{
				StationID:     stationID,
				SkillID:       competenceIDs[skillCode],
				RequiredLevel: req.level,
				IsMandatory:   req.mandatory,
			}
			if err := s.repo.CreateStationRoleRequirement(ctx, requirement); err != nil {
				return err
			}
		}
	}

	for _, rule := range []domain.ShiftRule{
		{OrgID: orgID, ShiftType: "DAY", ShiftStart: "07:00", ShiftEnd: "16:00", BreakMinutes: 60},
		{OrgID: orgID, ShiftType: "NIGHT", ShiftStart: "22:00", ShiftEnd: "06:00", BreakMinutes: 30, PaidBreakMinutes: 15},
	} {
		if err := s.repo.UpsertShiftRule(ctx, &rule); err != nil {
			return err
		}
	}

	today := time.Now().Format("2006-01-02")

	for i := 0; i < employeeCount; i++ {
		fullName := utils.GenerateRandomFullName()
		code := utils.GenerateEmployeeCode()

		var employeeID int64
		err := s.dbpool.QueryRowContext(ctx, `
			INSERT INTO employees (org_id, code, full_name, is_active)
			VALUES ($1, $2, $3, true)
			RETURNING id
		`, orgID, code, fullName).Scan(&employeeID)
		if err != nil {
			return err
		}

		// progressively stronger crews make the demo report interesting
		for _, c := range demoCompetences {
			level := (i + int(competenceIDs[c.code])) % 4
			if level == 0 {
				continue
			}
			_, err := s.dbpool.ExecContext(ctx, `
				INSERT INTO employee_competences (employee_id, competence_id, level, valid_from)
				VALUES ($1, $2, $3, $4)
			`, employeeID, competenceIDs[c.code], level, today)
			if err != nil {
				return err
			}
		}

		machine := demoStations[i%len(demoStations)]
		_, err = s.dbpool.ExecContext(ctx, `
			INSERT INTO machine_assignments (org_id, line, machine_code, employee_code, shift_date, shift_type, start_time, end_time)
			VALUES ($1, 'L1', $2, $3, $4, 'DAY', '07:00', '16:00')
		`, orgID, machine.code, code, today)
		if err != nil {
			return err
		}

		slog.Info("seeded employee", "code", code, "name", fullName)
	}

	for _, st := range demoStations {
		_, err := s.dbpool.ExecContext(ctx, `
			INSERT INTO machine_demand (org_id, line, machine_code, machine_name, shift_date, shift_type, required_hours)
			VALUES ($1, 'L1', $2, $3, $4, 'DAY', $5)
			ON CONFLICT (org_id, line, machine_code, shift_date, shift_type) DO UPDATE
			SET required_hours = EXCLUDED.required_hours
		`, orgID, st.code, st.name, today, 8.0)
		if err != nil {
			return err
		}
	}

	return s.seedUser(ctx, orgID)
}

// seedUser creates one planner account for the demo organization.
func (s *Seeder) seedUser(ctx context.Context, orgID string) error {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.Seed.UserPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	fullName := utils.GenerateRandomFullName()
	user := &domain.User{
		OrgID:        orgID,
		Username:     utils.GenerateUsernameFromFullName(fullName),
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        "planner@" + orgID + ".example",
		Role:         domain.RolePlanner,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return err
	}

	slog.Info("seeded planner account", "username", user.Username)
	return nil
}
