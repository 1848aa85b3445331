// Package checker 定义排班约束检查接口和内置检查器
package checker

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/diaodu/diaodu/pkg/model"
)

// MaxWeeklyHoursChecker 每周最大工时检查器
// 按固定的单班次工时假设折算，每个超限的员工-周记一次违反
type MaxWeeklyHoursChecker struct{}

// NewMaxWeeklyHoursChecker 创建每周最大工时检查器
func NewMaxWeeklyHoursChecker() *MaxWeeklyHoursChecker {
	return &MaxWeeklyHoursChecker{}
}

// Name 返回检查器名称
func (c *MaxWeeklyHoursChecker) Name() string {
	return "max_weekly_hours"
}

// Check 检查每位员工每周的累计工时
func (c *MaxWeeklyHoursChecker) Check(snap *Snapshot, cand *model.ScheduleCandidate) []Violation {
	// (员工, 周起始日期) -> 工时
	type empWeek struct {
		empID     uuid.UUID
		weekStart string
	}
	hours := make(map[empWeek]float64)

	for i, empID := range cand.Assignees {
		if empID == uuid.Nil || i >= len(snap.Slots) {
			continue
		}
		key := empWeek{empID: empID, weekStart: weekStart(snap.Slots[i].Date)}
		hours[key] += ShiftHours
	}

	var violations []Violation
	for key, total := range hours {
		emp := snap.Employee(key.empID)
		if emp == nil || emp.MaxHoursPerWeek <= 0 {
			continue
		}
		if total > emp.MaxHoursPerWeek {
			violations = append(violations, Violation{
				CheckerName: c.Name(),
				SlotIndex:   -1,
				EmployeeID:  key.empID,
				Message: fmt.Sprintf("员工 %s 在周 %s 工作 %.1f 小时，超过限制 %.1f 小时",
					emp.Name, key.weekStart, total, emp.MaxHoursPerWeek),
			})
		}
	}
	return violations
}

// weekStart 获取日期所在周的起始日期（周日）
func weekStart(dateStr string) string {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return dateStr
	}
	weekday := int(t.Weekday())
	return t.AddDate(0, 0, -weekday).Format("2006-01-02")
}
