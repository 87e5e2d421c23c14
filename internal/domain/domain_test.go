package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProject(amount int64, delivery time.Time) Project {
	return Project{
		ID:           uuid.New(),
		Name:         "test_name",
		Description:  "test",
		Amount:       decimal.NewFromInt(amount),
		DeliveryDate: delivery,
	}
}

func newInvestor(total, individual int64, deadline time.Time) Investor {
	return Investor{
		ID:                      uuid.New(),
		Name:                    "test_name",
		TotalAmount:             decimal.NewFromInt(total),
		IndividualAmount:        decimal.NewFromInt(individual),
		RemainingAmount:         decimal.NewFromInt(total),
		ProjectDeliveryDeadline: deadline,
	}
}

func fixture() (Investor, Project) {
	in21 := time.Now().Add(21 * 24 * time.Hour)
	return newInvestor(100000, 500, in21), newProject(500, in21)
}

func TestMatchingProjects_ReturnsEligible(t *testing.T) {
	investor, project := fixture()
	got := MatchingProjects(&investor, []Project{project})
	require.Len(t, got, 1)
	assert.Equal(t, project.ID, got[0].ID)
}

func TestMatchingProjects_Exclusions(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Investor, *Project)
	}{
		{"deadline exceeded", func(_ *Investor, p *Project) { p.DeliveryDate = p.DeliveryDate.Add(24 * time.Hour) }},
		{"funded by set", func(i *Investor, p *Project) { id := i.ID; p.FundedByID = &id }},
		{"funded flag without funder", func(_ *Investor, p *Project) { p.Funded = true }},
		{"above individual amount", func(_ *Investor, p *Project) { p.Amount = p.Amount.Add(decimal.NewFromInt(10)) }},
		{"above remaining amount", func(i *Investor, _ *Project) { i.RemainingAmount = decimal.NewFromInt(499) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			investor, project := fixture()
			tc.mutate(&investor, &project)
			assert.Empty(t, MatchingProjects(&investor, []Project{project}))
		})
	}
}

func TestMatchingProjects_CapIsMinOfRemainingAndIndividual(t *testing.T) {
	deadline := time.Now().Add(30 * 24 * time.Hour)
	investor := newInvestor(1000, 800, deadline)
	investor.RemainingAmount = decimal.NewFromInt(600)
	projects := []Project{
		newProject(600, deadline),
		newProject(601, deadline),
		newProject(100, deadline),
	}
	got := MatchingProjects(&investor, projects)
	require.Len(t, got, 2)
	assert.Equal(t, projects[0].ID, got[0].ID)
	assert.Equal(t, projects[2].ID, got[1].ID)
	assert.True(t, investor.MaxPerProject().Equal(decimal.NewFromInt(600)))
}

func TestMatchingInvestors_ReturnsEligible(t *testing.T) {
	investor, project := fixture()
	got, err := MatchingInvestors(&project, []Investor{investor})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, investor.ID, got[0].ID)
}

func TestMatchingInvestors_Exclusions(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Investor)
	}{
		{"individual amount too low", func(i *Investor) { i.IndividualAmount = i.IndividualAmount.Sub(decimal.NewFromInt(100)) }},
		{"remaining amount too low", func(i *Investor) { i.RemainingAmount = decimal.Zero }},
		{"shorter deadline", func(i *Investor) { i.ProjectDeliveryDeadline = i.ProjectDeliveryDeadline.Add(-24 * time.Hour) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			investor, project := fixture()
			tc.mutate(&investor)
			got, err := MatchingInvestors(&project, []Investor{investor})
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestMatchingInvestors_FundedProjectFails(t *testing.T) {
	investor, project := fixture()
	id := investor.ID
	project.FundedByID = &id
	_, err := MatchingInvestors(&project, []Investor{investor})
	assert.ErrorIs(t, err, ErrAlreadyFunded)

	_, project = fixture()
	project.Funded = true
	_, err = MatchingInvestors(&project, nil)
	assert.ErrorIs(t, err, ErrAlreadyFunded)
}

func TestInvest_Success(t *testing.T) {
	investor, project := fixture()
	require.NoError(t, Invest(&investor, &project))

	assert.True(t, project.Funded)
	require.NotNil(t, project.FundedByID)
	assert.Equal(t, investor.ID, *project.FundedByID)
	assert.True(t, investor.RemainingAmount.Equal(decimal.NewFromInt(99500)), investor.RemainingAmount.String())
}

func TestInvest_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		reason string
		mutate func(*Investor, *Project)
	}{
		{"already funded", ReasonAlreadyFunded, func(i *Investor, p *Project) {
			id := i.ID
			p.FundedByID = &id
			p.Funded = true
		}},
		{"funded flag only", ReasonAlreadyFunded, func(_ *Investor, p *Project) { p.Funded = true }},
		{"individual amount", ReasonExceedsIndividual, func(i *Investor, p *Project) {
			i.IndividualAmount = p.Amount.Sub(decimal.NewFromInt(1))
		}},
		{"remaining amount", ReasonExceedsRemaining, func(i *Investor, _ *Project) {
			i.RemainingAmount = decimal.NewFromInt(100)
		}},
		{"deadline", ReasonDeadlineExceeded, func(i *Investor, p *Project) {
			i.ProjectDeliveryDeadline = p.DeliveryDate.Add(-24 * time.Hour)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			investor, project := fixture()
			tc.mutate(&investor, &project)
			beforeInvestor, beforeProject := investor, project

			err := Invest(&investor, &project)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvestmentRejected))

			var rejectedErr *InvestmentRejectedError
			require.True(t, errors.As(err, &rejectedErr))
			assert.Equal(t, tc.reason, rejectedErr.Reason)

			assert.Equal(t, beforeInvestor, investor)
			assert.Equal(t, beforeProject, project)
		})
	}
}

func TestInvest_ThenNoLongerMatches(t *testing.T) {
	investor, project := fixture()
	require.NoError(t, Invest(&investor, &project))
	assert.Empty(t, MatchingProjects(&investor, []Project{project}))
	_, err := MatchingInvestors(&project, []Investor{investor})
	assert.ErrorIs(t, err, ErrAlreadyFunded)
}

func TestNormalizeTime(t *testing.T) {
	loc := time.FixedZone("X", 3*3600)
	in := time.Date(2030, 1, 2, 3, 4, 5, 123456789, loc)
	got := NormalizeTime(in)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 123456000, got.Nanosecond())
	assert.True(t, got.Equal(in.Truncate(time.Microsecond)))
}
