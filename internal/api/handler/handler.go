package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cuongbtq/jobboard/internal/api/validation"
	"github.com/cuongbtq/jobboard/internal/board/domain"
	"github.com/cuongbtq/jobboard/internal/events"
	"github.com/gin-gonic/gin"
)

// Store is the board storage contract served by the memory and Postgres
// drivers. Not-found and unknown-company outcomes are reported through the
// domain sentinel errors.
type Store interface {
	GetCompany(ctx context.Context, id string) (*domain.Company, error)
	ListCompanies(ctx context.Context, filter domain.CompanyFilter) ([]domain.Company, error)
	CreateCompany(ctx context.Context, in domain.CompanyInput) (*domain.Company, error)
	UpdateCompany(ctx context.Context, id string, patch domain.CompanyPatch) (*domain.Company, error)
	DeleteCompany(ctx context.Context, id string) ([]string, error)
	FeaturedCompanies(ctx context.Context, limit int) ([]domain.Company, error)

	GetJob(ctx context.Context, id string) (*domain.Job, error)
	ListJobs(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error)
	CreateJob(ctx context.Context, in domain.JobInput) (*domain.Job, error)
	UpdateJob(ctx context.Context, id string, patch domain.JobPatch) (*domain.Job, error)
	DeleteJob(ctx context.Context, id string) error
	RecentJobs(ctx context.Context, limit int) ([]domain.Job, error)
	JobsByCompany(ctx context.Context, companyID string) ([]domain.Job, error)

	Stats(ctx context.Context) (*domain.Stats, error)
}

// HealthChecker reports whether a backing service is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger      *slog.Logger
	Store       Store
	Publisher   events.Publisher
	ServiceName string

	// Health is optional; nil means there is nothing external to probe.
	Health HealthChecker

	// Now defaults to time.Now
	Now func() time.Time

	// Zero values fall back to 4 featured companies and 6 recent jobs.
	FeaturedLimit  int
	RecentLimit    int
	PublishTimeout time.Duration
}

const (
	defaultFeaturedLimit = 4
	defaultRecentLimit   = 6
)

// base carries what every handler needs to answer and to announce changes
type base struct {
	logger         *slog.Logger
	store          Store
	publisher      events.Publisher
	now            func() time.Time
	featuredLimit  int
	recentLimit    int
	publishTimeout time.Duration
}

func newBase(deps *Dependencies) base {
	publisher := deps.Publisher
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return base{
		logger:         deps.Logger,
		store:          deps.Store,
		publisher:      publisher,
		now:            now,
		featuredLimit:  orDefault(deps.FeaturedLimit, defaultFeaturedLimit),
		recentLimit:    orDefault(deps.RecentLimit, defaultRecentLimit),
		publishTimeout: deps.PublishTimeout,
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// badRequest renders a binding failure with per-field messages
func (b base) badRequest(c *gin.Context, err error) {
	verr := validation.Translate(err)

	b.logger.Debug("Request rejected",
		slog.String("path", c.Request.URL.Path),
		slog.String("error", verr.Error()),
	)

	c.JSON(http.StatusBadRequest, gin.H{
		"error":  verr.Error(),
		"fields": verr.Fields,
	})
}

// fail maps store errors to responses. Anything unexpected is logged in
// full and answered with an opaque 500.
func (b base) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrCompanyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
	case errors.Is(err, domain.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
	case errors.Is(err, domain.ErrUnknownCompany):
		b.badRequest(c, validation.NewFieldError("companyId", "does not reference an existing company"))
	default:
		b.logger.Error("Failed to "+op,
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

// publish announces a committed change. Failures are logged and never
// reach the client.
func (b base) publish(c *gin.Context, eventType, entityID string, data any) {
	evt, err := events.New(eventType, entityID, data, b.now())
	if err != nil {
		b.logger.Warn("Failed to build board event",
			slog.String("type", eventType),
			slog.String("entity_id", entityID),
			slog.Any("error", err),
		)
		return
	}

	ctx := context.WithoutCancel(c.Request.Context())
	if b.publishTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.publishTimeout)
		defer cancel()
	}

	if err := b.publisher.Publish(ctx, evt); err != nil {
		b.logger.Warn("Failed to publish board event",
			slog.String("type", eventType),
			slog.String("entity_id", entityID),
			slog.Any("error", err),
		)
	}
}
