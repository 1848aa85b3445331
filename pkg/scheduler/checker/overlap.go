// Package checker 定义排班约束检查接口和内置检查器
package checker

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/diaodu/diaodu/pkg/model"
)

// OverlappingShiftsChecker 同员工班次时段重叠检查器
// 需要多人的槽位展开后是同一时段的多个副本，同一员工重复占用必须记违反，
// 否则一人可同时填满全部席位
type OverlappingShiftsChecker struct{}

// NewOverlappingShiftsChecker 创建班次重叠检查器
func NewOverlappingShiftsChecker() *OverlappingShiftsChecker {
	return &OverlappingShiftsChecker{}
}

// Name 返回检查器名称
func (c *OverlappingShiftsChecker) Name() string {
	return "overlapping_shifts"
}

// Check 检查同一员工承担的班次之间是否存在时段重叠
func (c *OverlappingShiftsChecker) Check(snap *Snapshot, cand *model.ScheduleCandidate) []Violation {
	// 按员工收集其承担的槽位下标
	slotsByEmp := make(map[uuid.UUID][]int)
	for i, empID := range cand.Assignees {
		if empID == uuid.Nil || i >= len(snap.Slots) {
			continue
		}
		slotsByEmp[empID] = append(slotsByEmp[empID], i)
	}

	var violations []Violation
	for empID, indexes := range slotsByEmp {
		if len(indexes) < 2 {
			continue
		}
		sort.Slice(indexes, func(a, b int) bool {
			return snap.Slots[indexes[a]].StartDateTime().Before(snap.Slots[indexes[b]].StartDateTime())
		})

		// 跟踪已占用时段的最晚结束时间：后续班次在此之前开始即为重叠
		var maxEnd time.Time
		for k, idx := range indexes {
			slot := snap.Slots[idx]
			if k > 0 && slot.StartDateTime().Before(maxEnd) {
				emp := snap.Employee(empID)
				name := empID.String()
				if emp != nil {
					name = emp.Name
				}
				violations = append(violations, Violation{
					CheckerName: c.Name(),
					SlotIndex:   idx,
					EmployeeID:  empID,
					Message: fmt.Sprintf("员工 %s 在 %s %s-%s 的班次与已承担班次时段重叠",
						name, slot.Date, slot.StartTime, slot.EndTime),
				})
			}
			if end := slot.EndDateTime(); end.After(maxEnd) {
				maxEnd = end
			}
		}
	}
	return violations
}
