package domain

import "time"

// Company is an employer listed on the board
type Company struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description" db:"description"`
	Sector         string    `json:"sector" db:"sector"`
	City           string    `json:"city" db:"city"`
	Website        *string   `json:"website" db:"website"`
	CompanyType    string    `json:"companyType" db:"company_type"`
	EmployeeCount  string    `json:"employeeCount" db:"employee_count"`
	FollowersCount int       `json:"followersCount" db:"followers_count"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// CompanyInput holds the client-settable fields of a company
type CompanyInput struct {
	Name          string
	Description   string
	Sector        string
	City          string
	Website       *string
	CompanyType   string
	EmployeeCount string
}

// CompanyPatch is a partial update; nil fields are left untouched
type CompanyPatch struct {
	Name          *string
	Description   *string
	Sector        *string
	City          *string
	Website       *string
	CompanyType   *string
	EmployeeCount *string
}

// NewCompany builds a company with its server-computed fields zeroed
func NewCompany(id string, in CompanyInput, now time.Time) Company {
	return Company{
		ID:             id,
		Name:           in.Name,
		Description:    in.Description,
		Sector:         in.Sector,
		City:           in.City,
		Website:        in.Website,
		CompanyType:    in.CompanyType,
		EmployeeCount:  in.EmployeeCount,
		FollowersCount: 0,
		CreatedAt:      now,
	}
}

// Apply merges p over c. An empty website clears it. ID, FollowersCount and
// CreatedAt are never touched.
func (c Company) Apply(p CompanyPatch) Company {
	setString(&c.Name, p.Name)
	setString(&c.Description, p.Description)
	setString(&c.Sector, p.Sector)
	setString(&c.City, p.City)
	setString(&c.CompanyType, p.CompanyType)
	setString(&c.EmployeeCount, p.EmployeeCount)
	switch {
	case p.Website == nil:
	case *p.Website == "":
		c.Website = nil
	default:
		website := *p.Website
		c.Website = &website
	}
	return c
}

// CompanyFilter narrows company listings. Zero values match everything.
type CompanyFilter struct {
	Query       string
	City        string
	Sector      string
	CompanyType string
}

func (f CompanyFilter) Matches(c Company) bool {
	if f.City != "" && c.City != f.City {
		return false
	}
	if f.Sector != "" && c.Sector != f.Sector {
		return false
	}
	if f.CompanyType != "" && c.CompanyType != f.CompanyType {
		return false
	}
	return containsFold(f.Query, c.Name, c.Description)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
