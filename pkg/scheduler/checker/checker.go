// Package checker 定义排班约束检查接口和内置检查器
package checker

import (
	"github.com/google/uuid"

	"github.com/diaodu/diaodu/pkg/model"
)

// ShiftHours 单个班次的固定工时假设（小时）
const ShiftHours = 8.0

// Violation 约束违反详情
type Violation struct {
	CheckerName string    `json:"checker_name"`
	SlotIndex   int       `json:"slot_index"`
	EmployeeID  uuid.UUID `json:"employee_id,omitempty"`
	Message     string    `json:"message"`
}

// Checker 约束检查器接口
// 新增约束类型只需实现本接口并注册到评估器，无需改动评估循环
type Checker interface {
	// Name 返回检查器名称
	Name() string

	// Check 检查候选方案，返回全部违反详情
	Check(snap *Snapshot, c *model.ScheduleCandidate) []Violation
}

// Snapshot 排班输入快照
// 一次运行内只读，可被多个协程并发访问
type Snapshot struct {
	Slots     []*model.ShiftSlot
	Employees []*model.Employee

	employeeByID map[uuid.UUID]*model.Employee
}

// NewSnapshot 创建排班快照
func NewSnapshot(slots []*model.ShiftSlot, employees []*model.Employee) *Snapshot {
	snap := &Snapshot{
		Slots:        slots,
		Employees:    employees,
		employeeByID: make(map[uuid.UUID]*model.Employee, len(employees)),
	}
	for _, emp := range employees {
		snap.employeeByID[emp.ID] = emp
	}
	return snap
}

// Employee 按ID获取员工
func (s *Snapshot) Employee(id uuid.UUID) *model.Employee {
	return s.employeeByID[id]
}

// EligibleEmployees 返回可承担某槽位的员工
// 要求槽位技能 ⊆ 员工技能，且员工在该槽位的星期可上班
func (s *Snapshot) EligibleEmployees(slot *model.ShiftSlot) []*model.Employee {
	day := slot.Weekday()
	eligible := make([]*model.Employee, 0, len(s.Employees))
	for _, emp := range s.Employees {
		if emp.Skills.ContainsAll(slot.RequiredSkills) && emp.AvailableOn(day) {
			eligible = append(eligible, emp)
		}
	}
	return eligible
}

// DefaultCheckers 返回默认检查器集合
// 默认评估覆盖：周工时超限、未分配槽位、同员工班次重叠
func DefaultCheckers() []Checker {
	return []Checker{
		NewMaxWeeklyHoursChecker(),
		NewUnassignedSlotChecker(),
		NewOverlappingShiftsChecker(),
	}
}
