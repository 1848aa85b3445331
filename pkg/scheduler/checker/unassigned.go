// Package checker 定义排班约束检查接口和内置检查器
package checker

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/diaodu/diaodu/pkg/model"
)

// UnassignedSlotChecker 未分配槽位检查器
// 每个空槽位记一次违反
type UnassignedSlotChecker struct{}

// NewUnassignedSlotChecker 创建未分配槽位检查器
func NewUnassignedSlotChecker() *UnassignedSlotChecker {
	return &UnassignedSlotChecker{}
}

// Name 返回检查器名称
func (c *UnassignedSlotChecker) Name() string {
	return "unassigned_slot"
}

// Check 检查未分配的槽位
func (c *UnassignedSlotChecker) Check(snap *Snapshot, cand *model.ScheduleCandidate) []Violation {
	var violations []Violation
	for i, empID := range cand.Assignees {
		if empID != uuid.Nil {
			continue
		}
		message := fmt.Sprintf("槽位 %d 未分配", i)
		if i < len(snap.Slots) {
			slot := snap.Slots[i]
			message = fmt.Sprintf("槽位 %s %s-%s 未分配", slot.Date, slot.StartTime, slot.EndTime)
		}
		violations = append(violations, Violation{
			CheckerName: c.Name(),
			SlotIndex:   i,
			Message:     message,
		})
	}
	return violations
}
