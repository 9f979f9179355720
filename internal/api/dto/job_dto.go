package dto

import "github.com/cuongbtq/jobboard/internal/board/domain"

type CreateJobRequest struct {
	CompanyID       string  `json:"companyId" binding:"required"`
	Title           string  `json:"title" binding:"required"`
	Description     string  `json:"description" binding:"required"`
	Requirements    string  `json:"requirements" binding:"required"`
	JobType         string  `json:"jobType" binding:"required,jobtype"`
	ExperienceLevel string  `json:"experienceLevel" binding:"required,experience"`
	City            string  `json:"city" binding:"required,city"`
	Sector          string  `json:"sector" binding:"required,sector"`
	SalaryRange     *string `json:"salaryRange"`
}

func (r CreateJobRequest) ToInput() domain.JobInput {
	return domain.JobInput{
		CompanyID:       r.CompanyID,
		Title:           r.Title,
		Description:     r.Description,
		Requirements:    r.Requirements,
		JobType:         r.JobType,
		ExperienceLevel: r.ExperienceLevel,
		City:            r.City,
		Sector:          r.Sector,
		SalaryRange:     emptyToNil(r.SalaryRange),
	}
}

// UpdateJobRequest is the partial form of CreateJobRequest. isActive,
// applicationsCount, createdAt and id are not bound.
type UpdateJobRequest struct {
	CompanyID       *string `json:"companyId" binding:"omitnil,min=1"`
	Title           *string `json:"title" binding:"omitnil,min=1"`
	Description     *string `json:"description" binding:"omitnil,min=1"`
	Requirements    *string `json:"requirements" binding:"omitnil,min=1"`
	JobType         *string `json:"jobType" binding:"omitnil,jobtype"`
	ExperienceLevel *string `json:"experienceLevel" binding:"omitnil,experience"`
	City            *string `json:"city" binding:"omitnil,city"`
	Sector          *string `json:"sector" binding:"omitnil,sector"`
	SalaryRange     *string `json:"salaryRange"`
}

func (r UpdateJobRequest) ToPatch() domain.JobPatch {
	return domain.JobPatch{
		CompanyID:       r.CompanyID,
		Title:           r.Title,
		Description:     r.Description,
		Requirements:    r.Requirements,
		JobType:         r.JobType,
		ExperienceLevel: r.ExperienceLevel,
		City:            r.City,
		Sector:          r.Sector,
		SalaryRange:     r.SalaryRange,
	}
}

type ListJobsRequest struct {
	Query           string `form:"q"`
	City            string `form:"city" binding:"omitempty,city"`
	Sector          string `form:"sector" binding:"omitempty,sector"`
	JobType         string `form:"jobType" binding:"omitempty,jobtype"`
	ExperienceLevel string `form:"experienceLevel" binding:"omitempty,experience"`
}

func (r ListJobsRequest) ToFilter() domain.JobFilter {
	return domain.JobFilter{
		Query:           r.Query,
		City:            r.City,
		Sector:          r.Sector,
		JobType:         r.JobType,
		ExperienceLevel: r.ExperienceLevel,
	}
}
