package storage

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/cuongbtq/jobboard/internal/board/domain"
	"github.com/google/uuid"
)

// MemoryStore keeps companies and jobs in process memory. Every operation
// holds the lock for its whole duration, so a company delete and its job
// cascade are observed atomically.
type MemoryStore struct {
	mu           sync.RWMutex
	companies    map[string]domain.Company
	companyOrder []string
	jobs         map[string]domain.Job
	jobOrder     []string

	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Option customizes a MemoryStore
type Option func(*MemoryStore)

// WithClock overrides the time source used for createdAt stamps
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// WithIDGenerator overrides the id generator (uuid v4 by default)
func WithIDGenerator(newID func() string) Option {
	return func(s *MemoryStore) {
		s.newID = newID
	}
}

// NewMemoryStore creates an empty store
func NewMemoryStore(logger *slog.Logger, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		companies: make(map[string]domain.Company),
		jobs:      make(map[string]domain.Job),
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.New().String() },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Seed loads records verbatim, keeping their ids and computed fields
func (s *MemoryStore) Seed(ctx context.Context, companies []domain.Company, jobs []domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range companies {
		if _, exists := s.companies[c.ID]; !exists {
			s.companyOrder = append(s.companyOrder, c.ID)
		}
		s.companies[c.ID] = c
	}

	for _, j := range jobs {
		if _, exists := s.jobs[j.ID]; !exists {
			s.jobOrder = append(s.jobOrder, j.ID)
		}
		s.jobs[j.ID] = j
	}

	s.logger.Info("Memory store seeded",
		slog.Int("companies", len(companies)),
		slog.Int("jobs", len(jobs)),
	)

	return nil
}

func (s *MemoryStore) GetCompany(ctx context.Context, id string) (*domain.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.companies[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	return &c, nil
}

func (s *MemoryStore) ListCompanies(ctx context.Context, filter domain.CompanyFilter) ([]domain.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Company, 0, len(s.companyOrder))
	for _, id := range s.companyOrder {
		if c := s.companies[id]; filter.Matches(c) {
			result = append(result, c)
		}
	}
	return result, nil
}

func (s *MemoryStore) CreateCompany(ctx context.Context, in domain.CompanyInput) (*domain.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := domain.NewCompany(s.newID(), in, s.now())
	s.companies[c.ID] = c
	s.companyOrder = append(s.companyOrder, c.ID)

	return &c, nil
}

func (s *MemoryStore) UpdateCompany(ctx context.Context, id string, patch domain.CompanyPatch) (*domain.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.companies[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}

	updated := existing.Apply(patch)
	s.companies[id] = updated

	return &updated, nil
}

// DeleteCompany soft-deletes the company's jobs, removes the company and
// returns the ids of the jobs it deactivated.
func (s *MemoryStore) DeleteCompany(ctx context.Context, id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.companies[id]; !ok {
		return nil, domain.ErrCompanyNotFound
	}

	deactivated := make([]string, 0)
	for _, jobID := range s.jobOrder {
		job := s.jobs[jobID]
		if job.CompanyID != id || !job.IsActive {
			continue
		}
		job.Deactivate()
		s.jobs[jobID] = job
		deactivated = append(deactivated, jobID)
	}

	delete(s.companies, id)
	s.companyOrder = slices.DeleteFunc(s.companyOrder, func(v string) bool { return v == id })

	return deactivated, nil
}

func (s *MemoryStore) FeaturedCompanies(ctx context.Context, limit int) ([]domain.Company, error) {
	companies, _ := s.ListCompanies(ctx, domain.CompanyFilter{})

	slices.SortStableFunc(companies, func(a, b domain.Company) int {
		return b.FollowersCount - a.FollowersCount
	})

	return truncate(companies, limit), nil
}

func (s *MemoryStore) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return &j, nil
}

func (s *MemoryStore) ListJobs(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.activeJobs(func(j domain.Job) bool { return filter.Matches(j) }), nil
}

func (s *MemoryStore) CreateJob(ctx context.Context, in domain.JobInput) (*domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.companies[in.CompanyID]; !ok {
		return nil, domain.ErrUnknownCompany
	}

	j := domain.NewJob(s.newID(), in, s.now())
	s.jobs[j.ID] = j
	s.jobOrder = append(s.jobOrder, j.ID)

	return &j, nil
}

func (s *MemoryStore) UpdateJob(ctx context.Context, id string, patch domain.JobPatch) (*domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}

	if patch.ChangesCompany(existing.CompanyID) {
		if _, ok := s.companies[*patch.CompanyID]; !ok {
			return nil, domain.ErrUnknownCompany
		}
	}

	updated := existing.Apply(patch)
	s.jobs[id] = updated

	return &updated, nil
}

func (s *MemoryStore) DeleteJob(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}

	j.Deactivate()
	s.jobs[id] = j

	return nil
}

func (s *MemoryStore) RecentJobs(ctx context.Context, limit int) ([]domain.Job, error) {
	jobs, _ := s.ListJobs(ctx, domain.JobFilter{})

	slices.SortStableFunc(jobs, func(a, b domain.Job) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return truncate(jobs, limit), nil
}

func (s *MemoryStore) JobsByCompany(ctx context.Context, companyID string) ([]domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.activeJobs(func(j domain.Job) bool { return j.CompanyID == companyID }), nil
}

func (s *MemoryStore) Stats(ctx context.Context) (*domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return &domain.Stats{
		Graduates: domain.GraduatesPlaceholder,
		Companies: len(s.companies),
		Jobs:      len(s.activeJobs(nil)),
	}, nil
}

// activeJobs must be called with the lock held
func (s *MemoryStore) activeJobs(keep func(domain.Job) bool) []domain.Job {
	result := make([]domain.Job, 0, len(s.jobOrder))
	for _, id := range s.jobOrder {
		j := s.jobs[id]
		if !j.IsActive {
			continue
		}
		if keep != nil && !keep(j) {
			continue
		}
		result = append(result, j)
	}
	return result
}

func truncate[T any](items []T, limit int) []T {
	if limit < 0 {
		limit = 0
	}
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
