package domain

import "slices"

// Cities served by the board.
var Cities = []string{
	"tripoli", "benghazi", "misrata", "zawiya", "bayda", "sabha", "gharyan", "zliten", "khoms",
	"sabratha", "zintan", "tarhuna", "surman", "derna", "tobruk", "marj", "ajdabiya",
}

// Sectors a company or job can belong to.
var Sectors = []string{
	"oil-gas", "technology", "education", "health", "engineering", "accounting-finance",
	"marketing-sales", "construction", "tourism-hospitality", "law", "media",
}

// Job types
const (
	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeInternship = "internship"
	JobTypeRemote     = "remote"
)

var JobTypes = []string{JobTypeFullTime, JobTypePartTime, JobTypeInternship, JobTypeRemote}

// Experience levels
const (
	ExperienceEntry        = "entry"
	ExperienceMid          = "mid"
	ExperienceExpert       = "expert"
	ExperienceProfessional = "professional"
)

var ExperienceLevels = []string{ExperienceEntry, ExperienceMid, ExperienceExpert, ExperienceProfessional}

// Company types
const (
	CompanyTypeGovernment = "government"
	CompanyTypePrivate    = "private"
	CompanyTypeMixed      = "mixed"
)

var CompanyTypes = []string{CompanyTypeGovernment, CompanyTypePrivate, CompanyTypeMixed}

func IsCity(v string) bool {
	return slices.Contains(Cities, v)
}

func IsSector(v string) bool {
	return slices.Contains(Sectors, v)
}

func IsJobType(v string) bool {
	return slices.Contains(JobTypes, v)
}

func IsExperienceLevel(v string) bool {
	return slices.Contains(ExperienceLevels, v)
}

func IsCompanyType(v string) bool {
	return slices.Contains(CompanyTypes, v)
}

// Lookups groups every enumeration consumed by filters and forms.
type Lookups struct {
	Cities           []string `json:"cities"`
	Sectors          []string `json:"sectors"`
	JobTypes         []string `json:"jobTypes"`
	ExperienceLevels []string `json:"experienceLevels"`
	CompanyTypes     []string `json:"companyTypes"`
}

func AllLookups() Lookups {
	return Lookups{
		Cities:           slices.Clone(Cities),
		Sectors:          slices.Clone(Sectors),
		JobTypes:         slices.Clone(JobTypes),
		ExperienceLevels: slices.Clone(ExperienceLevels),
		CompanyTypes:     slices.Clone(CompanyTypes),
	}
}
