package domain

import "errors"

var (
	ErrAlreadyFunded      = errors.New("Project already funded")
	ErrInvestmentRejected = errors.New("Cannot invest into project")
	ErrProjectFunded      = errors.New("Cannot edit funded project.")
	ErrProjectNotFound    = errors.New("Project not found")
	ErrInvestorNotFound   = errors.New("Investor not found")
)

// Rejection reasons carried by InvestmentRejectedError.
const (
	ReasonAlreadyFunded     = "project already funded"
	ReasonExceedsIndividual = "amount exceeds individual limit"
	ReasonExceedsRemaining  = "amount exceeds remaining amount"
	ReasonDeadlineExceeded  = "deadline exceeded"
)

// InvestmentRejectedError is returned when an investor cannot fund a project.
// Nothing is persisted when it is returned.
type InvestmentRejectedError struct {
	Reason string
}

func (e *InvestmentRejectedError) Error() string {
	return ErrInvestmentRejected.Error() + ": " + e.Reason
}

// Is lets errors.Is(err, ErrInvestmentRejected) match any rejection.
func (e *InvestmentRejectedError) Is(target error) bool {
	return target == ErrInvestmentRejected
}

func rejected(reason string) error {
	return &InvestmentRejectedError{Reason: reason}
}
