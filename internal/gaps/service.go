package gaps

import (
	"context"

	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/domain"
)

// OverviewSource assembles the demand/assignment snapshot the engine works
// from.
type OverviewSource interface {
	GetLineOverview(ctx context.Context, orgID, date, shiftType string) (*domain.LineOverviewData, error)
}

// Service couples snapshot assembly with the gap engine so callers hand over
// identifiers only.
type Service struct {
	engine   *Engine
	overview OverviewSource
}

func NewService(src DataSource, overview OverviewSource) *Service {
	return &Service{
		engine:   NewEngine(src),
		overview: overview,
	}
}

func (s *Service) LineGaps(ctx context.Context, orgID, line, date, shiftType string) (*domain.LineGapReport, error) {
	data, err := s.overview.GetLineOverview(ctx, orgID, date, shiftType)
	if err != nil {
		return nil, err
	}

	return s.engine.ComputeLineGaps(ctx, Params{
		OrgID:     orgID,
		Line:      line,
		Date:      date,
		ShiftType: shiftType,
	}, data)
}

func (s *Service) LineOverview(ctx context.Context, orgID, date, shiftType string) (*domain.LineOverviewData, error) {
	return s.overview.GetLineOverview(ctx, orgID, date, shiftType)
}
