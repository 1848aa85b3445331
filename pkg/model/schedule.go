// Package model 定义调度优化引擎的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// Employee 排班员工
type Employee struct {
	BaseModel
	OrgID  uuid.UUID `json:"org_id" db:"org_id"`
	Name   string    `json:"name" db:"name"`
	Skills SkillSet  `json:"skills" db:"skills"`

	// 每周最大工时
	MaxHoursPerWeek float64 `json:"max_hours_per_week" db:"max_hours_per_week"`

	// 可上班的星期（空表示每天可用）
	AvailabilityDays []time.Weekday `json:"availability_days,omitempty" db:"availability_days"`
}

// AvailableOn 检查员工在某星期是否可上班
func (e *Employee) AvailableOn(day time.Weekday) bool {
	if len(e.AvailabilityDays) == 0 {
		return true
	}
	for _, d := range e.AvailabilityDays {
		if d == day {
			return true
		}
	}
	return false
}

// ShiftSlot 班次槽位
type ShiftSlot struct {
	BaseModel
	OrgID     uuid.UUID `json:"org_id" db:"org_id"`
	Date      string    `json:"date" db:"date"`             // YYYY-MM-DD
	StartTime string    `json:"start_time" db:"start_time"` // HH:MM
	EndTime   string    `json:"end_time" db:"end_time"`     // HH:MM

	RequiredSkills SkillSet `json:"required_skills,omitempty" db:"required_skills"`
	AgentsNeeded   int      `json:"agents_needed" db:"agents_needed"`
}

// Weekday 返回槽位日期对应的星期
func (s *ShiftSlot) Weekday() time.Weekday {
	t, err := time.Parse("2006-01-02", s.Date)
	if err != nil {
		return time.Sunday
	}
	return t.Weekday()
}

// StartDateTime 返回槽位开始时刻
func (s *ShiftSlot) StartDateTime() time.Time {
	t, err := time.Parse("2006-01-02 15:04", s.Date+" "+s.StartTime)
	if err != nil {
		return time.Time{}
	}
	return t
}

// EndDateTime 返回槽位结束时刻（跨夜班次顺延到次日）
func (s *ShiftSlot) EndDateTime() time.Time {
	end, err := time.Parse("2006-01-02 15:04", s.Date+" "+s.EndTime)
	if err != nil {
		return time.Time{}
	}
	if !end.After(s.StartDateTime()) {
		end = end.AddDate(0, 0, 1)
	}
	return end
}

// ScheduleCandidate 排班候选方案
// Assignees 与槽位列表按下标一一对应，uuid.Nil 表示未分配
type ScheduleCandidate struct {
	ID             uuid.UUID   `json:"id"`
	Assignees      []uuid.UUID `json:"assignees"`
	FitnessScore   float64     `json:"fitness_score"` // [0,100]
	ViolationCount int         `json:"violation_count"`
}

// NewScheduleCandidate 创建空白候选方案
func NewScheduleCandidate(slotCount int) *ScheduleCandidate {
	return &ScheduleCandidate{
		ID:        uuid.New(),
		Assignees: make([]uuid.UUID, slotCount),
	}
}

// Clone 深拷贝候选方案（分配新ID）
func (c *ScheduleCandidate) Clone() *ScheduleCandidate {
	clone := &ScheduleCandidate{
		ID:             uuid.New(),
		Assignees:      make([]uuid.UUID, len(c.Assignees)),
		FitnessScore:   c.FitnessScore,
		ViolationCount: c.ViolationCount,
	}
	copy(clone.Assignees, c.Assignees)
	return clone
}

// AssignedCount 返回已分配槽位数
func (c *ScheduleCandidate) AssignedCount() int {
	count := 0
	for _, id := range c.Assignees {
		if id != uuid.Nil {
			count++
		}
	}
	return count
}

// IsAssigned 检查某槽位是否已分配
func (c *ScheduleCandidate) IsAssigned(slot int) bool {
	return slot >= 0 && slot < len(c.Assignees) && c.Assignees[slot] != uuid.Nil
}
