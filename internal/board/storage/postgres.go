package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cuongbtq/jobboard/internal/board/domain"
	"github.com/cuongbtq/jobboard/shared/postgresql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	companyColumns = `id, name, description, sector, city, website, company_type, employee_count, followers_count, created_at`
	jobColumns     = `id, company_id, title, description, requirements, job_type, experience_level, city, sector, salary_range, is_active, applications_count, created_at`
)

const schema = `
CREATE TABLE IF NOT EXISTS companies (
	seq             BIGSERIAL,
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	description     TEXT NOT NULL,
	sector          TEXT NOT NULL,
	city            TEXT NOT NULL,
	website         TEXT,
	company_type    TEXT NOT NULL,
	employee_count  TEXT NOT NULL,
	followers_count INTEGER NOT NULL DEFAULT 0,
	created_at      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS jobs (
	seq                BIGSERIAL,
	id                 TEXT PRIMARY KEY,
	company_id         TEXT NOT NULL,
	title              TEXT NOT NULL,
	description        TEXT NOT NULL,
	requirements       TEXT NOT NULL,
	job_type           TEXT NOT NULL,
	experience_level   TEXT NOT NULL,
	city               TEXT NOT NULL,
	sector             TEXT NOT NULL,
	salary_range       TEXT,
	is_active          BOOLEAN NOT NULL DEFAULT TRUE,
	applications_count INTEGER NOT NULL DEFAULT 0,
	created_at         TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_jobs_company_id ON jobs (company_id);
CREATE INDEX IF NOT EXISTS idx_jobs_active_created_at ON jobs (is_active, created_at DESC);
`

// PostgresStore persists the board in PostgreSQL. jobs.company_id carries no
// foreign key: deleting a company leaves its deactivated jobs in place.
type PostgresStore struct {
	client *postgresql.Client
	db     *sqlx.DB
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewPostgresStore creates a store on top of an open client
func NewPostgresStore(pg *postgresql.Client, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{
		client: pg,
		db:     pg.GetDB(),
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() string { return uuid.New().String() },
	}
}

// EnsureSchema creates the board tables if they do not exist
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if err := s.client.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Seed inserts the fixtures only when the companies table is empty
func (s *PostgresStore) Seed(ctx context.Context, companies []domain.Company, jobs []domain.Job) error {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM companies`); err != nil {
		return fmt.Errorf("failed to count companies: %w", err)
	}

	if count > 0 {
		s.logger.Info("Skipping seed, board already has data", slog.Int("companies", count))
		return nil
	}

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, c := range companies {
			if _, err := tx.NamedExecContext(ctx, insertCompanyQuery, c); err != nil {
				return fmt.Errorf("failed to seed company %s: %w", c.ID, err)
			}
		}
		for _, j := range jobs {
			if _, err := tx.NamedExecContext(ctx, insertJobQuery, j); err != nil {
				return fmt.Errorf("failed to seed job %s: %w", j.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Postgres store seeded",
		slog.Int("companies", len(companies)),
		slog.Int("jobs", len(jobs)),
	)

	return nil
}

const insertCompanyQuery = `
	INSERT INTO companies (` + companyColumns + `)
	VALUES (:id, :name, :description, :sector, :city, :website, :company_type, :employee_count, :followers_count, :created_at)
`

const insertJobQuery = `
	INSERT INTO jobs (` + jobColumns + `)
	VALUES (:id, :company_id, :title, :description, :requirements, :job_type, :experience_level, :city, :sector, :salary_range, :is_active, :applications_count, :created_at)
`

func (s *PostgresStore) GetCompany(ctx context.Context, id string) (*domain.Company, error) {
	var c domain.Company
	err := s.db.GetContext(ctx, &c, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) ListCompanies(ctx context.Context, filter domain.CompanyFilter) ([]domain.Company, error) {
	query, args := companyListQuery(filter)

	companies := []domain.Company{}
	if err := s.db.SelectContext(ctx, &companies, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

func (s *PostgresStore) CreateCompany(ctx context.Context, in domain.CompanyInput) (*domain.Company, error) {
	c := domain.NewCompany(s.newID(), in, s.now())

	if _, err := s.db.NamedExecContext(ctx, insertCompanyQuery, c); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) UpdateCompany(ctx context.Context, id string, patch domain.CompanyPatch) (*domain.Company, error) {
	var updated domain.Company

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var existing domain.Company
		err := tx.GetContext(ctx, &existing, `SELECT `+companyColumns+` FROM companies WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrCompanyNotFound
			}
			return fmt.Errorf("failed to load company: %w", err)
		}

		updated = existing.Apply(patch)

		_, err = tx.NamedExecContext(ctx, `
			UPDATE companies
			SET name = :name,
			    description = :description,
			    sector = :sector,
			    city = :city,
			    website = :website,
			    company_type = :company_type,
			    employee_count = :employee_count
			WHERE id = :id
		`, updated)
		if err != nil {
			return fmt.Errorf("failed to update company: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *PostgresStore) DeleteCompany(ctx context.Context, id string) ([]string, error) {
	deactivated := []string{}

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var found string
		err := tx.GetContext(ctx, &found, `SELECT id FROM companies WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrCompanyNotFound
			}
			return fmt.Errorf("failed to load company: %w", err)
		}

		err = tx.SelectContext(ctx, &deactivated, `
			UPDATE jobs SET is_active = FALSE
			WHERE company_id = $1 AND is_active
			RETURNING id
		`, id)
		if err != nil {
			return fmt.Errorf("failed to deactivate company jobs: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete company: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deactivated, nil
}

func (s *PostgresStore) FeaturedCompanies(ctx context.Context, limit int) ([]domain.Company, error) {
	companies := []domain.Company{}
	err := s.db.SelectContext(ctx, &companies, `
		SELECT `+companyColumns+` FROM companies
		ORDER BY followers_count DESC, seq
		LIMIT $1
	`, max(limit, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to list featured companies: %w", err)
	}
	return companies, nil
}

func (s *PostgresStore) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	var j domain.Job
	err := s.db.GetContext(ctx, &j, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &j, nil
}

func (s *PostgresStore) ListJobs(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	query, args := jobListQuery(filter, "")

	jobs := []domain.Job{}
	if err := s.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

func (s *PostgresStore) CreateJob(ctx context.Context, in domain.JobInput) (*domain.Job, error) {
	j := domain.NewJob(s.newID(), in, s.now())

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := companyExists(ctx, tx, in.CompanyID); err != nil {
			return err
		}
		if _, err := tx.NamedExecContext(ctx, insertJobQuery, j); err != nil {
			return fmt.Errorf("failed to create job: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &j, nil
}

func (s *PostgresStore) UpdateJob(ctx context.Context, id string, patch domain.JobPatch) (*domain.Job, error) {
	var updated domain.Job

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var existing domain.Job
		err := tx.GetContext(ctx, &existing, `SELECT `+jobColumns+` FROM jobs WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrJobNotFound
			}
			return fmt.Errorf("failed to load job: %w", err)
		}

		if patch.ChangesCompany(existing.CompanyID) {
			if err := companyExists(ctx, tx, *patch.CompanyID); err != nil {
				return err
			}
		}

		updated = existing.Apply(patch)

		_, err = tx.NamedExecContext(ctx, `
			UPDATE jobs
			SET company_id = :company_id,
			    title = :title,
			    description = :description,
			    requirements = :requirements,
			    job_type = :job_type,
			    experience_level = :experience_level,
			    city = :city,
			    sector = :sector,
			    salary_range = :salary_range
			WHERE id = :id
		`, updated)
		if err != nil {
			return fmt.Errorf("failed to update job: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *PostgresStore) DeleteJob(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE jobs SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate job: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (s *PostgresStore) RecentJobs(ctx context.Context, limit int) ([]domain.Job, error) {
	jobs := []domain.Job{}
	err := s.db.SelectContext(ctx, &jobs, `
		SELECT `+jobColumns+` FROM jobs
		WHERE is_active
		ORDER BY created_at DESC, seq
		LIMIT $1
	`, max(limit, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to list recent jobs: %w", err)
	}
	return jobs, nil
}

func (s *PostgresStore) JobsByCompany(ctx context.Context, companyID string) ([]domain.Job, error) {
	query, args := jobListQuery(domain.JobFilter{}, companyID)

	jobs := []domain.Job{}
	if err := s.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list company jobs: %w", err)
	}
	return jobs, nil
}

func (s *PostgresStore) Stats(ctx context.Context) (*domain.Stats, error) {
	var counts struct {
		Companies int `db:"companies"`
		Jobs      int `db:"jobs"`
	}

	err := s.db.GetContext(ctx, &counts, `
		SELECT
			(SELECT COUNT(*) FROM companies) AS companies,
			(SELECT COUNT(*) FROM jobs WHERE is_active) AS jobs
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count board: %w", err)
	}

	return &domain.Stats{
		Graduates: domain.GraduatesPlaceholder,
		Companies: counts.Companies,
		Jobs:      counts.Jobs,
	}, nil
}

func (s *PostgresStore) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.client.BeginTx(ctx)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error("Failed to roll back transaction", slog.Any("error", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func companyExists(ctx context.Context, tx *sqlx.Tx, id string) error {
	var found string
	err := tx.GetContext(ctx, &found, `SELECT id FROM companies WHERE id = $1 FOR SHARE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrUnknownCompany
		}
		return fmt.Errorf("failed to check company: %w", err)
	}
	return nil
}

// conditions accumulates AND-ed WHERE clauses with positional arguments
type conditions struct {
	clauses []string
	args    []interface{}
}

func (c *conditions) raw(clause string) {
	c.clauses = append(c.clauses, clause)
}

func (c *conditions) eq(column, value string) {
	if value == "" {
		return
	}
	c.args = append(c.args, value)
	c.clauses = append(c.clauses, fmt.Sprintf("%s = $%d", column, len(c.args)))
}

func (c *conditions) search(value string, columns ...string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	c.args = append(c.args, "%"+escapeLike(value)+"%")

	parts := make([]string, len(columns))
	for i, column := range columns {
		parts[i] = fmt.Sprintf("%s ILIKE $%d", column, len(c.args))
	}
	c.clauses = append(c.clauses, "("+strings.Join(parts, " OR ")+")")
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

func companyListQuery(filter domain.CompanyFilter) (string, []interface{}) {
	var c conditions
	c.eq("city", filter.City)
	c.eq("sector", filter.Sector)
	c.eq("company_type", filter.CompanyType)
	c.search(filter.Query, "name", "description")

	return `SELECT ` + companyColumns + ` FROM companies` + c.where() + ` ORDER BY seq`, c.args
}

func jobListQuery(filter domain.JobFilter, companyID string) (string, []interface{}) {
	var c conditions
	c.raw("is_active")
	c.eq("company_id", companyID)
	c.eq("city", filter.City)
	c.eq("sector", filter.Sector)
	c.eq("job_type", filter.JobType)
	c.eq("experience_level", filter.ExperienceLevel)
	c.search(filter.Query, "title", "description")

	return `SELECT ` + jobColumns + ` FROM jobs` + c.where() + ` ORDER BY seq`, c.args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
