package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/config"
	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/domain"
	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/repository"
)

// LineGapService is the handler-side view of the gap engine.
type LineGapService interface {
	LineGaps(ctx context.Context, orgID, line, date, shiftType string) (*domain.LineGapReport, error)
	LineOverview(ctx context.Context, orgID, date, shiftType string) (*domain.LineOverviewData, error)
}

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	gapService  LineGapService
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, gapService LineGapService, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		gapService:  gapService,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a logged-in, org-scoped caller
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/lines/{line}", func(r chi.Router) {
			r.Get("/gaps", h.GetLineGaps)
			r.Get("/overview", h.GetLineOverview)
		})

		r.Route("/stations", func(r chi.Router) {
			r.Get("/", h.GetStations)
			r.Route("/{id}/requirements", func(r chi.Router) {
				r.Get("/", h.GetStationRequirements)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateStationRequirement)
			})
		})

		r.Route("/shift-rules", func(r chi.Router) {
			r.Get("/", h.GetAllShiftRules)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RolePlanner})).Put("/{shiftType}", h.UpsertShiftRule)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.GetAllEmployees)
			r.Get("/{id}/competences", h.GetEmployeeCompetences)
		})

		r.Get("/competences", h.GetAllCompetences)
	})
}
