package storage

import (
	"context"
	"time"

	"github.com/cuongbtq/jobboard/internal/board/domain"
)

// Seeder is implemented by every store that can be loaded with fixtures
type Seeder interface {
	Seed(ctx context.Context, companies []domain.Company, jobs []domain.Job) error
}

// LoadFixtures seeds s with the startup data set, stamped relative to now
func LoadFixtures(ctx context.Context, s Seeder, now time.Time) error {
	return s.Seed(ctx, FixtureCompanies(now), FixtureJobs(now))
}

func optional(s string) *string {
	return &s
}

const day = 24 * time.Hour

// FixtureCompanies returns company-1..company-6
func FixtureCompanies(now time.Time) []domain.Company {
	return []domain.Company{
		{
			ID:             "company-1",
			Name:           "National Oil Corporation",
			Description:    "State-owned company managing the oil and gas sector. Founded in 1970 and one of the largest oil companies in the region.",
			Sector:         "oil-gas",
			City:           "tripoli",
			Website:        optional("https://noc.ly"),
			CompanyType:    domain.CompanyTypeGovernment,
			EmployeeCount:  "5000+",
			FollowersCount: 1320,
			CreatedAt:      now.Add(-85 * day),
		},
		{
			ID:             "company-2",
			Name:           "Central Bank of Libya",
			Description:    "The central bank responsible for monetary policy and supervision of the banking sector.",
			Sector:         "accounting-finance",
			City:           "tripoli",
			Website:        optional("https://cbl.gov.ly"),
			CompanyType:    domain.CompanyTypeGovernment,
			EmployeeCount:  "1000+",
			FollowersCount: 940,
			CreatedAt:      now.Add(-70 * day),
		},
		{
			ID:             "company-3",
			Name:           "Libya Telecom & Technology",
			Description:    "Leading telecom and IT company delivering technology solutions to businesses and individuals.",
			Sector:         "technology",
			City:           "benghazi",
			Website:        optional("https://ltt.ly"),
			CompanyType:    domain.CompanyTypePrivate,
			EmployeeCount:  "500-1000",
			FollowersCount: 1105,
			CreatedAt:      now.Add(-52 * day),
		},
		{
			ID:             "company-4",
			Name:           "Tripoli Central Hospital",
			Description:    "The largest hospital in the country, providing comprehensive and specialised care.",
			Sector:         "health",
			City:           "tripoli",
			CompanyType:    domain.CompanyTypeGovernment,
			EmployeeCount:  "2000+",
			FollowersCount: 610,
			CreatedAt:      now.Add(-40 * day),
		},
		{
			ID:             "company-5",
			Name:           "Almadar Aljadid",
			Description:    "Mobile and internet operator serving millions of subscribers with wide network coverage.",
			Sector:         "technology",
			City:           "misrata",
			Website:        optional("https://almadar.ly"),
			CompanyType:    domain.CompanyTypePrivate,
			EmployeeCount:  "1000-2000",
			FollowersCount: 1010,
			CreatedAt:      now.Add(-33 * day),
		},
		{
			ID:             "company-6",
			Name:           "University of Tripoli",
			Description:    "Public university offering programmes across many disciplines to thousands of students each year.",
			Sector:         "education",
			City:           "tripoli",
			Website:        optional("https://uot.edu.ly"),
			CompanyType:    domain.CompanyTypeGovernment,
			EmployeeCount:  "3000+",
			FollowersCount: 755,
			CreatedAt:      now.Add(-21 * day),
		},
	}
}

// FixtureJobs returns job-1..job-9, all active
func FixtureJobs(now time.Time) []domain.Job {
	jobs := []domain.Job{
		{
			ID:                "job-1",
			CompanyID:         "company-1",
			Title:             "Petroleum Engineer",
			Description:       "Plan and supervise drilling and production operations, analyse geological data and ensure safety compliance.",
			Requirements:      "- BSc in petroleum engineering\n- 3+ years in exploration and production\n- Fluent English\n- Simulation software experience",
			JobType:           domain.JobTypeFullTime,
			ExperienceLevel:   domain.ExperienceMid,
			City:              "tripoli",
			Sector:            "oil-gas",
			SalaryRange:       optional("3000-5000 LYD"),
			ApplicationsCount: 142,
			CreatedAt:         now.Add(-12 * day),
		},
		{
			ID:                "job-2",
			CompanyID:         "company-2",
			Title:             "Financial Accountant",
			Description:       "Prepare financial reports, manage accounts and support internal audit in line with international standards.",
			Requirements:      "- BSc in accounting or finance\n- 2-3 years of experience\n- ERP and advanced Excel",
			JobType:           domain.JobTypeFullTime,
			ExperienceLevel:   domain.ExperienceMid,
			City:              "tripoli",
			Sector:            "accounting-finance",
			SalaryRange:       optional("2000-3000 LYD"),
			ApplicationsCount: 87,
			CreatedAt:         now.Add(-9 * day),
		},
		{
			ID:                "job-3",
			CompanyID:         "company-3",
			Title:             "Full Stack Developer",
			Description:       "Design and build web applications across the front end and back end within a cross-functional team.",
			Requirements:      "- React, Node.js, PostgreSQL\n- Git and REST APIs\n- TypeScript is a plus",
			JobType:           domain.JobTypeFullTime,
			ExperienceLevel:   domain.ExperienceMid,
			City:              "benghazi",
			Sector:            "technology",
			SalaryRange:       optional("2500-4000 LYD"),
			ApplicationsCount: 131,
			CreatedAt:         now.Add(-3 * day),
		},
		{
			ID:                "job-4",
			CompanyID:         "company-4",
			Title:             "Emergency Nurse",
			Description:       "Provide emergency care and handle critical cases in the emergency department.",
			Requirements:      "- Accredited nursing certificate\n- 2 years in an emergency department\n- Shift availability",
			JobType:           domain.JobTypeFullTime,
			ExperienceLevel:   domain.ExperienceEntry,
			City:              "tripoli",
			Sector:            "health",
			SalaryRange:       optional("1500-2500 LYD"),
			ApplicationsCount: 64,
			CreatedAt:         now.Add(-15 * day),
		},
		{
			ID:                "job-5",
			CompanyID:         "company-5",
			Title:             "Network Engineer",
			Description:       "Design and maintain network infrastructure, troubleshoot incidents and keep the network secure.",
			Requirements:      "- BSc in computer or network engineering\n- CCNA or CCNP\n- 3-5 years of experience",
			JobType:           domain.JobTypeFullTime,
			ExperienceLevel:   domain.ExperienceExpert,
			City:              "misrata",
			Sector:            "technology",
			SalaryRange:       optional("3000-4500 LYD"),
			ApplicationsCount: 58,
			CreatedAt:         now.Add(-6 * day),
		},
		{
			ID:                "job-6",
			CompanyID:         "company-6",
			Title:             "Lecturer in Computer Science",
			Description:       "Teach programming and algorithms courses and supervise student research projects.",
			Requirements:      "- PhD in computer science\n- Teaching and research record\n- Arabic and English",
			JobType:           domain.JobTypeFullTime,
			ExperienceLevel:   domain.ExperienceProfessional,
			City:              "tripoli",
			Sector:            "education",
			SalaryRange:       optional("4000-6000 LYD"),
			ApplicationsCount: 23,
			CreatedAt:         now.Add(-20 * day),
		},
		{
			ID:                "job-7",
			CompanyID:         "company-3",
			Title:             "UI/UX Designer",
			Description:       "Design modern mobile and web interfaces and improve the user experience.",
			Requirements:      "- Figma, Adobe XD or Sketch\n- Strong portfolio\n- Works well with developers",
			JobType:           domain.JobTypePartTime,
			ExperienceLevel:   domain.ExperienceEntry,
			City:              "benghazi",
			Sector:            "technology",
			SalaryRange:       optional("1500-2500 LYD"),
			ApplicationsCount: 76,
			CreatedAt:         now.Add(-1 * day),
		},
		{
			ID:                "job-8",
			CompanyID:         "company-1",
			Title:             "Engineering Intern",
			Description:       "Six-month training programme for engineering students working alongside experienced engineers.",
			Requirements:      "- Final-year engineering student\n- GPA of 3.0 or higher\n- Eager to learn",
			JobType:           domain.JobTypeInternship,
			ExperienceLevel:   domain.ExperienceEntry,
			City:              "tripoli",
			Sector:            "oil-gas",
			SalaryRange:       optional("500-1000 LYD"),
			ApplicationsCount: 155,
			CreatedAt:         now.Add(-4 * day),
		},
		{
			ID:                "job-9",
			CompanyID:         "company-5",
			Title:             "Digital Marketing Specialist",
			Description:       "Run online campaigns and grow the subscriber base through digital channels.",
			Requirements:      "- 2+ years in digital marketing\n- Social media and analytics tools",
			JobType:           domain.JobTypeRemote,
			ExperienceLevel:   domain.ExperienceMid,
			City:              "misrata",
			Sector:            "marketing-sales",
			ApplicationsCount: 31,
			CreatedAt:         now.Add(-2 * day),
		},
	}

	for i := range jobs {
		jobs[i].IsActive = true
	}

	return jobs
}
