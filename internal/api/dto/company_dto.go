package dto

import "github.com/cuongbtq/jobboard/internal/board/domain"

type CreateCompanyRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description" binding:"required"`
	Sector        string  `json:"sector" binding:"required,sector"`
	City          string  `json:"city" binding:"required,city"`
	Website       *string `json:"website" binding:"omitnil,website"`
	CompanyType   string  `json:"companyType" binding:"required,companytype"`
	EmployeeCount string  `json:"employeeCount" binding:"required"`
}

func (r CreateCompanyRequest) ToInput() domain.CompanyInput {
	return domain.CompanyInput{
		Name:          r.Name,
		Description:   r.Description,
		Sector:        r.Sector,
		City:          r.City,
		Website:       emptyToNil(r.Website),
		CompanyType:   r.CompanyType,
		EmployeeCount: r.EmployeeCount,
	}
}

// UpdateCompanyRequest is the partial form of CreateCompanyRequest. Server
// computed fields (followersCount, createdAt, id) are not bound and are
// silently ignored when sent.
type UpdateCompanyRequest struct {
	Name          *string `json:"name" binding:"omitnil,min=1"`
	Description   *string `json:"description" binding:"omitnil,min=1"`
	Sector        *string `json:"sector" binding:"omitnil,sector"`
	City          *string `json:"city" binding:"omitnil,city"`
	Website       *string `json:"website" binding:"omitnil,website"`
	CompanyType   *string `json:"companyType" binding:"omitnil,companytype"`
	EmployeeCount *string `json:"employeeCount" binding:"omitnil,min=1"`
}

func (r UpdateCompanyRequest) ToPatch() domain.CompanyPatch {
	return domain.CompanyPatch{
		Name:          r.Name,
		Description:   r.Description,
		Sector:        r.Sector,
		City:          r.City,
		Website:       r.Website,
		CompanyType:   r.CompanyType,
		EmployeeCount: r.EmployeeCount,
	}
}

type ListCompaniesRequest struct {
	Query       string `form:"q"`
	City        string `form:"city" binding:"omitempty,city"`
	Sector      string `form:"sector" binding:"omitempty,sector"`
	CompanyType string `form:"companyType" binding:"omitempty,companytype"`
}

func (r ListCompaniesRequest) ToFilter() domain.CompanyFilter {
	return domain.CompanyFilter{
		Query:       r.Query,
		City:        r.City,
		Sector:      r.Sector,
		CompanyType: r.CompanyType,
	}
}

// LimitRequest binds the optional ?limit= of the featured/recent endpoints
type LimitRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

func (r LimitRequest) Or(def int) int {
	if r.Limit == 0 {
		return def
	}
	return r.Limit
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
