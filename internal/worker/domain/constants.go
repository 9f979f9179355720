package domain

// Outcomes of handling one delivery, used in worker stats
const (
	OutcomeRecorded  = "recorded"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
	OutcomeRequeued  = "requeued"
	OutcomeDropped   = "dropped"
)
