package domain

import (
	"strings"
	"time"
)

// Job is a posting published by a company
type Job struct {
	ID                string    `json:"id" db:"id"`
	CompanyID         string    `json:"companyId" db:"company_id"`
	Title             string    `json:"title" db:"title"`
	Description       string    `json:"description" db:"description"`
	Requirements      string    `json:"requirements" db:"requirements"`
	JobType           string    `json:"jobType" db:"job_type"`
	ExperienceLevel   string    `json:"experienceLevel" db:"experience_level"`
	City              string    `json:"city" db:"city"`
	Sector            string    `json:"sector" db:"sector"`
	SalaryRange       *string   `json:"salaryRange" db:"salary_range"`
	IsActive          bool      `json:"isActive" db:"is_active"`
	ApplicationsCount int       `json:"applicationsCount" db:"applications_count"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
}

// JobInput holds the client-settable fields of a job
type JobInput struct {
	CompanyID       string
	Title           string
	Description     string
	Requirements    string
	JobType         string
	ExperienceLevel string
	City            string
	Sector          string
	SalaryRange     *string
}

// JobPatch is a partial update; nil fields are left untouched
type JobPatch struct {
	CompanyID       *string
	Title           *string
	Description     *string
	Requirements    *string
	JobType         *string
	ExperienceLevel *string
	City            *string
	Sector          *string
	SalaryRange     *string
}

// ChangesCompany reports whether applying p would move the job to another company
func (p JobPatch) ChangesCompany(current string) bool {
	return p.CompanyID != nil && *p.CompanyID != current
}

// NewJob builds an active job with its server-computed fields zeroed
func NewJob(id string, in JobInput, now time.Time) Job {
	return Job{
		ID:                id,
		CompanyID:         in.CompanyID,
		Title:             in.Title,
		Description:       in.Description,
		Requirements:      in.Requirements,
		JobType:           in.JobType,
		ExperienceLevel:   in.ExperienceLevel,
		City:              in.City,
		Sector:            in.Sector,
		SalaryRange:       in.SalaryRange,
		IsActive:          true,
		ApplicationsCount: 0,
		CreatedAt:         now,
	}
}

// Apply merges p over j. ID, ApplicationsCount, CreatedAt and IsActive are never touched.
func (j Job) Apply(p JobPatch) Job {
	setString(&j.CompanyID, p.CompanyID)
	setString(&j.Title, p.Title)
	setString(&j.Description, p.Description)
	setString(&j.Requirements, p.Requirements)
	setString(&j.JobType, p.JobType)
	setString(&j.ExperienceLevel, p.ExperienceLevel)
	setString(&j.City, p.City)
	setString(&j.Sector, p.Sector)
	if p.SalaryRange != nil {
		salary := *p.SalaryRange
		j.SalaryRange = &salary
	}
	return j
}

// Deactivate soft-deletes the job. It is idempotent.
func (j *Job) Deactivate() {
	j.IsActive = false
}

// JobFilter narrows job listings. Zero values match everything; activity is
// enforced by the store, not the filter.
type JobFilter struct {
	Query           string
	City            string
	Sector          string
	JobType         string
	ExperienceLevel string
}

func (f JobFilter) Matches(j Job) bool {
	if f.City != "" && j.City != f.City {
		return false
	}
	if f.Sector != "" && j.Sector != f.Sector {
		return false
	}
	if f.JobType != "" && j.JobType != f.JobType {
		return false
	}
	if f.ExperienceLevel != "" && j.ExperienceLevel != f.ExperienceLevel {
		return false
	}
	return containsFold(f.Query, j.Title, j.Description)
}

func containsFold(query string, fields ...string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
