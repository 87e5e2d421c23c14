package domain

// CheckInvestment validates that investor may fund project, in order:
// funding state, per-project limit, remaining capital, delivery deadline.
func CheckInvestment(investor *Investor, project *Project) error {
	if project.IsFunded() {
		return rejected(ReasonAlreadyFunded)
	}
	if investor.IndividualAmount.LessThan(project.Amount) {
		return rejected(ReasonExceedsIndividual)
	}
	if investor.RemainingAmount.LessThan(project.Amount) {
		return rejected(ReasonExceedsRemaining)
	}
	if investor.ProjectDeliveryDeadline.Before(project.DeliveryDate) {
		return rejected(ReasonDeadlineExceeded)
	}
	return nil
}

// Invest validates and applies an investment to the given values. On error
// neither value is modified. Persisting the change is the caller's job.
func Invest(investor *Investor, project *Project) error {
	if err := CheckInvestment(investor, project); err != nil {
		return err
	}
	id := investor.ID
	project.FundedByID = &id
	project.Funded = true
	investor.RemainingAmount = investor.RemainingAmount.Sub(project.Amount)
	return nil
}
