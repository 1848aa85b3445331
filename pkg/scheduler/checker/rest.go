// Package checker 定义排班约束检查接口和内置检查器
package checker

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/diaodu/diaodu/pkg/model"
)

// RestBetweenShiftsChecker 班次间最小休息检查器
type RestBetweenShiftsChecker struct {
	minRestHours float64
}

// NewRestBetweenShiftsChecker 创建班次间最小休息检查器
func NewRestBetweenShiftsChecker(minRestHours float64) *RestBetweenShiftsChecker {
	if minRestHours <= 0 {
		minRestHours = 11.0
	}
	return &RestBetweenShiftsChecker{minRestHours: minRestHours}
}

// Name 返回检查器名称
func (c *RestBetweenShiftsChecker) Name() string {
	return "rest_between_shifts"
}

// Check 检查同一员工相邻班次之间的休息时长
func (c *RestBetweenShiftsChecker) Check(snap *Snapshot, cand *model.ScheduleCandidate) []Violation {
	// 按员工收集其承担的槽位下标
	slotsByEmp := make(map[uuid.UUID][]int)
	for i, empID := range cand.Assignees {
		if empID == uuid.Nil || i >= len(snap.Slots) {
			continue
		}
		slotsByEmp[empID] = append(slotsByEmp[empID], i)
	}

	minRest := time.Duration(c.minRestHours * float64(time.Hour))

	var violations []Violation
	for empID, indexes := range slotsByEmp {
		if len(indexes) < 2 {
			continue
		}
		sort.Slice(indexes, func(a, b int) bool {
			return snap.Slots[indexes[a]].StartDateTime().Before(snap.Slots[indexes[b]].StartDateTime())
		})

		for k := 1; k < len(indexes); k++ {
			prev := snap.Slots[indexes[k-1]]
			next := snap.Slots[indexes[k]]
			gap := next.StartDateTime().Sub(prev.EndDateTime())
			if gap < minRest {
				emp := snap.Employee(empID)
				name := empID.String()
				if emp != nil {
					name = emp.Name
				}
				violations = append(violations, Violation{
					CheckerName: c.Name(),
					SlotIndex:   indexes[k],
					EmployeeID:  empID,
					Message: fmt.Sprintf("员工 %s 在 %s 与 %s 之间休息 %.1f 小时，少于 %.1f 小时",
						name, prev.Date, next.Date, gap.Hours(), c.minRestHours),
				})
			}
		}
	}
	return violations
}
