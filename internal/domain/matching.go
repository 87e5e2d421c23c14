package domain

// ProjectMatchesInvestor reports whether the investor could fund the project
// right now: the project is unfunded, delivered by the investor's deadline and
// no larger than the investor's MaxPerProject.
func ProjectMatchesInvestor(investor *Investor, project *Project) bool {
	if project.IsFunded() {
		return false
	}
	if project.DeliveryDate.After(investor.ProjectDeliveryDeadline) {
		return false
	}
	return project.Amount.LessThanOrEqual(investor.MaxPerProject())
}

// InvestorMatchesProject reports whether the investor's limits and deadline
// allow funding the project. Funding state of the project is not checked.
func InvestorMatchesProject(project *Project, investor *Investor) bool {
	return investor.IndividualAmount.GreaterThanOrEqual(project.Amount) &&
		investor.RemainingAmount.GreaterThanOrEqual(project.Amount) &&
		!investor.ProjectDeliveryDeadline.Before(project.DeliveryDate)
}

// MatchingProjects filters a snapshot of projects down to those the investor
// could fund. Input order is preserved.
func MatchingProjects(investor *Investor, projects []Project) []Project {
	out := make([]Project, 0, len(projects))
	for i := range projects {
		if ProjectMatchesInvestor(investor, &projects[i]) {
			out = append(out, projects[i])
		}
	}
	return out
}

// MatchingInvestors filters a snapshot of investors down to those able to fund
// the project. It returns ErrAlreadyFunded when the project is funded.
func MatchingInvestors(project *Project, investors []Investor) ([]Investor, error) {
	if project.IsFunded() {
		return nil, ErrAlreadyFunded
	}
	out := make([]Investor, 0, len(investors))
	for i := range investors {
		if InvestorMatchesProject(project, &investors[i]) {
			out = append(out, investors[i])
		}
	}
	return out, nil
}
