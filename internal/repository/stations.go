package repository

import (
	"context"

	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/domain"
)

// stationActiveColumn reports whether this deployment's stations table has the
// is_active column. Probed once against the information schema; a failed probe
// degrades to the reduced, unfiltered query.
func (r *Repository) stationActiveColumn(ctx context.Context) bool {
	r.probeActiveOnce.Do(func() {
		query := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = 'stations' AND column_name = 'is_active'
			)
		`

		ctx, cancel := r.queryContext(ctx)
		defer cancel()

		if err := r.dbpool.QueryRowContext(ctx, query).Scan(&r.hasStationActive); err != nil {
			r.hasStationActive = false
		}
	})

	return r.hasStationActive
}

func (r *Repository) GetStations(ctx context.Context, orgID, line string, activeOnly bool) ([]*domain.Station, error) {
	query := `
		SELECT id, code, name, is_active, created_at, version
		FROM stations
		WHERE org_id = $1 AND line = $2 AND is_active = true
		ORDER BY id
	`
	if !activeOnly || !r.stationActiveColumn(ctx) {
		query = `
			SELECT id, code, name, true, created_at, version
			FROM stations
			WHERE org_id = $1 AND line = $2
			ORDER BY id
		`
	}

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, orgID, line)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stations := make([]*domain.Station, 0)
	for rows.Next() {
		station := &domain.Station{OrgID: orgID, Line: line}
		dst := []any{&station.ID, &station.Code, &station.Name, &station.IsActive, &station.CreatedAt, &station.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		stations = append(stations, station)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stations, nil
}

func (r *Repository) GetStationRoleRequirements(ctx context.Context, orgID string, stationIDs []int64) ([]*domain.StationRoleRequirement, error) {
	if len(stationIDs) == 0 {
		return []*domain.StationRoleRequirement{}, nil
	}

	query := `
		SELECT srr.id, srr.station_id, srr.skill_id, srr.required_level, srr.is_mandatory
		FROM station_role_requirements srr
		JOIN stations s ON s.id = srr.station_id
		WHERE s.org_id = $1 AND srr.station_id = ANY($2)
		ORDER BY srr.station_id, srr.id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, orgID, stationIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requirements := make([]*domain.StationRoleRequirement, 0)
	for rows.Next() {
		req := &domain.StationRoleRequirement{}
		dst := []any{&req.ID, &req.StationID, &req.SkillID, &req.RequiredLevel, &req.IsMandatory}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		requirements = append(requirements, req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requirements, nil
}

func (r *Repository) CreateStationRoleRequirement(ctx context.Context, req *domain.StationRoleRequirement) error {
	query := `
		INSERT INTO station_role_requirements (station_id, skill_id, required_level, is_mandatory)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{req.StationID, req.SkillID, req.RequiredLevel, req.IsMandatory}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&req.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetCompetences(ctx context.Context, orgID string, skillIDs []int64) ([]*domain.Competence, error) {
	if len(skillIDs) == 0 {
		return []*domain.Competence{}, nil
	}

	query := `
		SELECT id, name, code
		FROM competences
		WHERE org_id = $1 AND id = ANY($2)
		ORDER BY id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, orgID, skillIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	competences := make([]*domain.Competence, 0)
	for rows.Next() {
		competence := &domain.Competence{OrgID: orgID}
		if err := rows.Scan(&competence.ID, &competence.Name, &competence.Code); err != nil {
			return nil, err
		}
		competences = append(competences, competence)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return competences, nil
}

func (r *Repository) GetAllCompetences(ctx context.Context, orgID string) ([]*domain.Competence, error) {
	query := `
		SELECT id, name, code
		FROM competences
		WHERE org_id = $1
		ORDER BY name
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	competences := make([]*domain.Competence, 0)
	for rows.Next() {
		competence := &domain.Competence{OrgID: orgID}
		if err := rows.Scan(&competence.ID, &competence.Name, &competence.Code); err != nil {
			return nil, err
		}
		competences = append(competences, competence)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return competences, nil
}
