// Package checker 定义排班约束检查接口和内置检查器
package checker

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/diaodu/diaodu/pkg/model"
)

// SkillRequiredChecker 槽位技能要求检查器
type SkillRequiredChecker struct{}

// NewSkillRequiredChecker 创建槽位技能要求检查器
func NewSkillRequiredChecker() *SkillRequiredChecker {
	return &SkillRequiredChecker{}
}

// Name 返回检查器名称
func (c *SkillRequiredChecker) Name() string {
	return "skill_required"
}

// Check 检查被分配员工是否具备槽位要求的全部技能
func (c *SkillRequiredChecker) Check(snap *Snapshot, cand *model.ScheduleCandidate) []Violation {
	var violations []Violation
	for i, empID := range cand.Assignees {
		if empID == uuid.Nil || i >= len(snap.Slots) {
			continue
		}
		slot := snap.Slots[i]
		emp := snap.Employee(empID)
		if emp == nil {
			violations = append(violations, Violation{
				CheckerName: c.Name(),
				SlotIndex:   i,
				EmployeeID:  empID,
				Message:     fmt.Sprintf("槽位 %s 分配了未知员工 %s", slot.Date, empID),
			})
			continue
		}
		if !emp.Skills.ContainsAll(slot.RequiredSkills) {
			violations = append(violations, Violation{
				CheckerName: c.Name(),
				SlotIndex:   i,
				EmployeeID:  empID,
				Message:     fmt.Sprintf("员工 %s 缺少槽位 %s 要求的技能", emp.Name, slot.Date),
			})
		}
	}
	return violations
}
