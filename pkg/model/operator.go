// Package model 定义调度优化引擎的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// Operator 外勤服务人员
type Operator struct {
	BaseModel
	OrgID uuid.UUID `json:"org_id" db:"org_id"`
	Name  string    `json:"name" db:"name"`
	Code  string    `json:"code" db:"code"`

	// 技能
	PrimarySkills   SkillSet `json:"primary_skills" db:"primary_skills"`
	SecondarySkills SkillSet `json:"secondary_skills,omitempty" db:"secondary_skills"`

	// 位置与服务范围
	Location      Location `json:"location" db:"location"`
	CoverageZones []string `json:"coverage_zones,omitempty" db:"coverage_zones"`

	// 绩效评分 [0,1]
	PerformanceScore float64 `json:"performance_score" db:"performance_score"`

	// 可并行处理的任务数
	Capacity int `json:"capacity" db:"capacity"`
}

// AllSkills 返回主技能与辅技能的并集
func (o *Operator) AllSkills() SkillSet {
	return o.PrimarySkills.Union(o.SecondarySkills)
}

// ServiceRequest 服务请求
type ServiceRequest struct {
	BaseModel
	OrgID   uuid.UUID `json:"org_id" db:"org_id"`
	OrderNo string    `json:"order_no" db:"order_no"`

	Location       Location `json:"location" db:"location"`
	RequiredSkills SkillSet `json:"required_skills" db:"required_skills"`

	// 优先级 1-5（5 最高）
	Priority int `json:"priority" db:"priority"`

	// 服务时长（小时）
	DurationHours float64 `json:"duration_hours" db:"duration_hours"`

	TimeWindow  TimeRange `json:"time_window" db:"time_window"`
	SLADeadline time.Time `json:"sla_deadline" db:"sla_deadline"`

	CustomerTier string `json:"customer_tier,omitempty" db:"customer_tier"`
}

// Assignment 派单分配结果
type Assignment struct {
	BaseModel
	RunID      uuid.UUID `json:"run_id" db:"run_id"`
	OperatorID uuid.UUID `json:"operator_id" db:"operator_id"`
	RequestID  uuid.UUID `json:"request_id" db:"request_id"`

	ScheduledStart      time.Time `json:"scheduled_start" db:"scheduled_start"`
	TravelTimeHours     float64   `json:"travel_time_hours" db:"travel_time_hours"`
	EstimatedCompletion time.Time `json:"estimated_completion" db:"estimated_completion"`

	// 分配得分 (0,1]，1/(cost+1)
	AssignmentScore float64 `json:"assignment_score" db:"assignment_score"`

	// 技能匹配百分比 [0,100]
	SkillMatchPercentage float64 `json:"skill_match_percentage" db:"skill_match_percentage"`
}
