package orderform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/pkg/ptr"
)

func sampleOrder() *domain.Order {
	return &domain.Order{
		ID:                    42,
		ClientName:            "Анна",
		ClientPhone:           "+79990001122",
		CarBrand:              &brandAudi,
		VIN:                   "WAUZZZ8K9BA000001",
		InfoSource:            &domain.InfoSource{ID: 1, Code: "AVITO", Name: "Авито", Active: true},
		ExecutionDate:         time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC),
		OrderCost:             5000,
		ExecutionTimeByMaster: ptr.Ptr("3 часа"),
		Status:                domain.StatusInProgress,
		Works: []domain.Work{
			{
				ID:       7,
				WorkType: wtFilm,
				Parts:    []domain.Part{partHood, partBumper},
				Comment:  "аккуратно",
				Cost:     3000,
				Assignments: []domain.MasterAssignment{
					{Master: masterIvan, SalaryPercent: 30},
				},
			},
		},
	}
}

func TestDraft_RoundTripUnmodified(t *testing.T) {
	o := sampleOrder()

	d := FromOrder(o)
	assert.Equal(t, o, d.ToOrder())
}

func TestDraft_WorkTypeCodesDeduplicated(t *testing.T) {
	d := FromOrder(sampleOrder())
	d.Works = append(d.Works,
		WorkDraft{WorkType: domain.Selected(wtFilm)},
		WorkDraft{WorkType: domain.Selected(wtWash)},
		WorkDraft{},
	)

	assert.Equal(t, []string{"PVC", "WASH"}, d.WorkTypeCodes())
}

func TestWorkDraft_Earnings(t *testing.T) {
	w := WorkDraft{
		Cost: ptr.Ptr(33.33),
		Assignments: []AssignmentDraft{
			{SalaryPercent: ptr.Ptr(33.0)},
			{SalaryPercent: nil},
		},
	}

	assert.Equal(t, 11.00, w.AssignmentEarning(0))
	assert.Equal(t, 0.0, w.AssignmentEarning(1))
	assert.Equal(t, 0.0, w.AssignmentEarning(5))
	assert.Equal(t, 11.00, w.TotalEarnings())
}

func TestNewDraft(t *testing.T) {
	d := NewDraft()
	assert.Equal(t, domain.StatusNew, d.Status)
	assert.False(t, d.CarBrand.IsSelected())
	assert.False(t, Validate(d, Dictionaries{}).Valid())
}
