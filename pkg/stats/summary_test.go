package stats

import (
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/diaodu/diaodu/pkg/model"
)

func TestDispatchSummary(t *testing.T) {
	opID := uuid.New()
	assignments := []*model.Assignment{
		{OperatorID: opID, TravelTimeHours: 0.5, SkillMatchPercentage: 100},
		{OperatorID: uuid.New(), TravelTimeHours: 1.5, SkillMatchPercentage: 50},
	}
	requests := []*model.ServiceRequest{{}, {}, {}, {}}

	summary := DispatchSummary(assignments, requests)

	if summary.TotalAssignments != 2 {
		t.Errorf("TotalAssignments = %d, want 2", summary.TotalAssignments)
	}
	if math.Abs(summary.AverageTravelTime-1.0) > 1e-9 {
		t.Errorf("AverageTravelTime = %v, want 1.0", summary.AverageTravelTime)
	}
	if math.Abs(summary.SkillMatchRate-75.0) > 1e-9 {
		t.Errorf("SkillMatchRate = %v, want 75", summary.SkillMatchRate)
	}
	if math.Abs(summary.CoverageRate-50.0) > 1e-9 {
		t.Errorf("CoverageRate = %v, want 50", summary.CoverageRate)
	}
}

func TestDispatchSummary_Empty(t *testing.T) {
	summary := DispatchSummary(nil, nil)

	if summary.TotalAssignments != 0 || summary.CoverageRate != 0 {
		t.Error("空输入应产生零值汇总")
	}
}

func TestScheduleSummary(t *testing.T) {
	best := model.NewScheduleCandidate(4)
	best.Assignees[0] = uuid.New()
	best.Assignees[1] = uuid.New()
	best.Assignees[2] = uuid.New()
	best.FitnessScore = 27.5
	best.ViolationCount = 1

	summary := ScheduleSummary(best, true)

	if summary.TotalAssignments != 3 {
		t.Errorf("TotalAssignments = %d, want 3", summary.TotalAssignments)
	}
	if math.Abs(summary.CoverageRate-75.0) > 1e-9 {
		t.Errorf("CoverageRate = %v, want 75", summary.CoverageRate)
	}
	if summary.FitnessScore != 27.5 {
		t.Errorf("FitnessScore = %v, want 27.5", summary.FitnessScore)
	}
	if !summary.Truncated {
		t.Error("截断标志应保留")
	}
}

func TestScheduleSummary_Nil(t *testing.T) {
	summary := ScheduleSummary(nil, false)
	if summary.TotalAssignments != 0 || summary.Truncated {
		t.Error("空方案应产生零值汇总")
	}
}

func TestOperatorLoad(t *testing.T) {
	opID := uuid.New()
	assignments := []*model.Assignment{
		{OperatorID: opID},
		{OperatorID: opID},
		{OperatorID: uuid.New()},
	}

	load := OperatorLoad(assignments)
	if load[opID] != 2 {
		t.Errorf("人员负载 = %d, want 2", load[opID])
	}
	if len(load) != 2 {
		t.Errorf("人员数 = %d, want 2", len(load))
	}
}

func TestEmployeeLoad(t *testing.T) {
	empID := uuid.New()
	cand := model.NewScheduleCandidate(3)
	cand.Assignees[0] = empID
	cand.Assignees[2] = empID

	load := EmployeeLoad(cand)
	if load[empID] != 2 {
		t.Errorf("员工负载 = %d, want 2", load[empID])
	}

	if got := EmployeeLoad(nil); len(got) != 0 {
		t.Error("空方案负载应为空")
	}
}
