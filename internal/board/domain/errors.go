package domain

import "errors"

var (
	// ErrCompanyNotFound is returned when a company id does not resolve
	ErrCompanyNotFound = errors.New("company not found")

	// ErrJobNotFound is returned when a job id does not resolve
	ErrJobNotFound = errors.New("job not found")

	// ErrUnknownCompany is returned when a job references a company that does not exist
	ErrUnknownCompany = errors.New("referenced company does not exist")
)
