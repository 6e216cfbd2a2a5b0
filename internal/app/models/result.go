package models

// ResultStatus is the outcome of a result query.
type ResultStatus string

const (
	ResultNotReleased ResultStatus = "not_released"
	ResultInProgress  ResultStatus = "in_progress"
	ResultPassed      ResultStatus = "passed"
	ResultFailed      ResultStatus = "failed"
)

// ResultOutcome is what a student sees when querying their interview result.
type ResultOutcome struct {
	Number  string       `json:"number"`
	Status  ResultStatus `json:"status"`
	Message string       `json:"message"`
}
