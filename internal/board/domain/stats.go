package domain

// GraduatesPlaceholder is reported as the graduate count. No entity backs it yet.
const GraduatesPlaceholder = 15000

// Stats are the headline counters shown on the landing page
type Stats struct {
	Graduates int `json:"graduates"`
	Companies int `json:"companies"`
	Jobs      int `json:"jobs"`
}
