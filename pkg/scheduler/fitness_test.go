package scheduler

import (
	"testing"

	"github.com/diaodu/diaodu/pkg/model"
	"github.com/diaodu/diaodu/pkg/scheduler/checker"
)

func makeEmployee(name string, skills model.SkillSet, maxHours float64) *model.Employee {
	return &model.Employee{
		BaseModel:       model.NewBaseModel(),
		Name:            name,
		Skills:          skills,
		MaxHoursPerWeek: maxHours,
	}
}

func makeSlot(date string) *model.ShiftSlot {
	return &model.ShiftSlot{
		BaseModel:    model.NewBaseModel(),
		Date:         date,
		StartTime:    "09:00",
		EndTime:      "17:00",
		AgentsNeeded: 1,
	}
}

func TestEvaluator_Evaluate(t *testing.T) {
	emp := makeEmployee("小王", nil, 80)
	slots := []*model.ShiftSlot{
		makeSlot("2026-03-02"),
		makeSlot("2026-03-03"),
	}
	snap := checker.NewSnapshot(slots, []*model.Employee{emp})
	evaluator := NewEvaluator(snap)

	// 全部分配且无违反：覆盖满分 50
	full := model.NewScheduleCandidate(2)
	full.Assignees[0] = emp.ID
	full.Assignees[1] = emp.ID
	evaluator.Evaluate(full)

	if full.FitnessScore != 50 {
		t.Errorf("满覆盖适应度 = %v, want 50", full.FitnessScore)
	}
	if full.ViolationCount != 0 {
		t.Errorf("违反数 = %d, want 0", full.ViolationCount)
	}

	// 半覆盖带一个未分配违反：25 - 10 = 15
	half := model.NewScheduleCandidate(2)
	half.Assignees[0] = emp.ID
	evaluator.Evaluate(half)

	if half.FitnessScore != 15 {
		t.Errorf("半覆盖适应度 = %v, want 15", half.FitnessScore)
	}
	if half.ViolationCount != 1 {
		t.Errorf("违反数 = %d, want 1", half.ViolationCount)
	}

	// 全空方案：0 - 20 截断到 0
	empty := model.NewScheduleCandidate(2)
	evaluator.Evaluate(empty)

	if empty.FitnessScore != 0 {
		t.Errorf("空方案适应度 = %v, want 0（下限截断）", empty.FitnessScore)
	}
}

func TestEvaluator_FitnessOrdering(t *testing.T) {
	// 违反更少的方案适应度不应更低
	emp := makeEmployee("小王", nil, 8) // 每周只允许一个班次
	slots := []*model.ShiftSlot{
		makeSlot("2026-03-02"),
		makeSlot("2026-03-03"),
	}
	snap := checker.NewSnapshot(slots, []*model.Employee{emp})
	evaluator := NewEvaluator(snap)

	overworked := model.NewScheduleCandidate(2)
	overworked.Assignees[0] = emp.ID
	overworked.Assignees[1] = emp.ID
	evaluator.Evaluate(overworked)

	moderate := model.NewScheduleCandidate(2)
	moderate.Assignees[0] = emp.ID
	evaluator.Evaluate(moderate)

	if overworked.ViolationCount <= moderate.ViolationCount &&
		overworked.FitnessScore > moderate.FitnessScore {
		t.Error("违反更多的方案适应度不应更高")
	}
}

func TestEvaluator_Register(t *testing.T) {
	emp := makeEmployee("小王", model.SkillSet{"电工"}, 80)
	slot := makeSlot("2026-03-02")
	slot.RequiredSkills = model.SkillSet{"水暖"}

	snap := checker.NewSnapshot([]*model.ShiftSlot{slot}, []*model.Employee{emp})
	evaluator := NewEvaluatorWithCheckers(snap, nil)
	evaluator.Register(checker.NewSkillRequiredChecker())

	cand := model.NewScheduleCandidate(1)
	cand.Assignees[0] = emp.ID
	evaluator.Evaluate(cand)

	if cand.ViolationCount != 1 {
		t.Errorf("追加检查器后违反数 = %d, want 1", cand.ViolationCount)
	}

	violations := evaluator.Violations(cand)
	if len(violations) != 1 || violations[0].CheckerName != "skill_required" {
		t.Errorf("违反详情 = %v, 期望来自 skill_required", violations)
	}
}
