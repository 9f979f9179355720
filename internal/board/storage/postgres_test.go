package storage

import (
	"strings"
	"testing"

	"github.com/cuongbtq/jobboard/internal/board/domain"
	"github.com/stretchr/testify/assert"
)

func TestJobListQuery(t *testing.T) {
	tests := []struct {
		name      string
		filter    domain.JobFilter
		companyID string
		wantWhere string
		wantArgs  []interface{}
	}{
		{
			name:      "no filter keeps the active guard",
			wantWhere: " WHERE is_active ORDER BY seq",
			wantArgs:  nil,
		},
		{
			name:      "company scoped",
			companyID: "company-1",
			wantWhere: " WHERE is_active AND company_id = $1 ORDER BY seq",
			wantArgs:  []interface{}{"company-1"},
		},
		{
			name: "enum filters and search",
			filter: domain.JobFilter{
				Query:           " engineer ",
				City:            "tripoli",
				JobType:         domain.JobTypeFullTime,
				ExperienceLevel: domain.ExperienceMid,
			},
			wantWhere: " WHERE is_active AND city = $1 AND job_type = $2 AND experience_level = $3 AND (title ILIKE $4 OR description ILIKE $4) ORDER BY seq",
			wantArgs:  []interface{}{"tripoli", domain.JobTypeFullTime, domain.ExperienceMid, "%engineer%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := jobListQuery(tt.filter, tt.companyID)

			assert.True(t, strings.HasPrefix(query, "SELECT "+jobColumns+" FROM jobs"))
			assert.True(t, strings.HasSuffix(query, tt.wantWhere), query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestCompanyListQuery(t *testing.T) {
	query, args := companyListQuery(domain.CompanyFilter{})
	assert.Equal(t, "SELECT "+companyColumns+" FROM companies ORDER BY seq", query)
	assert.Empty(t, args)

	query, args = companyListQuery(domain.CompanyFilter{
		Sector:      "technology",
		CompanyType: domain.CompanyTypePrivate,
		Query:       "50%_off",
	})
	assert.True(t, strings.HasSuffix(query,
		" WHERE sector = $1 AND company_type = $2 AND (name ILIKE $3 OR description ILIKE $3) ORDER BY seq"), query)
	assert.Equal(t, []interface{}{"technology", domain.CompanyTypePrivate, `%50\%\_off%`}, args)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `plain`, escapeLike("plain"))
	assert.Equal(t, `a\\b`, escapeLike(`a\b`))
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `snake\_case`, escapeLike("snake_case"))
}
