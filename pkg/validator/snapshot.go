// Package validator 提供输入快照的合法性校验
package validator

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/diaodu/diaodu/pkg/errors"
	"github.com/diaodu/diaodu/pkg/model"
)

// ValidateDispatchSnapshot 校验派单快照
// 校验失败快速返回，不做任何部分计算
func ValidateDispatchSnapshot(operators []*model.Operator, requests []*model.ServiceRequest) error {
	ve := &errors.ValidationErrors{}

	seen := make(map[uuid.UUID]bool, len(operators))
	for i, op := range operators {
		field := fmt.Sprintf("operators[%d]", i)
		if seen[op.ID] {
			ve.Add(field+".id", "人员ID重复")
		}
		seen[op.ID] = true

		if op.PerformanceScore < 0 || op.PerformanceScore > 1 {
			ve.Add(field+".performance_score", "必须在 [0,1] 范围内")
		}
		validateLocation(ve, field+".location", op.Location)
	}

	seen = make(map[uuid.UUID]bool, len(requests))
	for i, req := range requests {
		field := fmt.Sprintf("requests[%d]", i)
		if seen[req.ID] {
			ve.Add(field+".id", "请求ID重复")
		}
		seen[req.ID] = true

		if req.Priority < 1 || req.Priority > 5 {
			ve.Add(field+".priority", "必须在 [1,5] 范围内")
		}
		if req.DurationHours < 0 {
			ve.Add(field+".duration_hours", "不能为负数")
		}
		if !req.TimeWindow.Start.IsZero() && !req.TimeWindow.End.IsZero() &&
			req.TimeWindow.End.Before(req.TimeWindow.Start) {
			ve.Add(field+".time_window", "结束时间早于开始时间")
		}
		validateLocation(ve, field+".location", req.Location)
	}

	if ve.HasErrors() {
		return ve.ToAppError()
	}
	return nil
}

// ValidateScheduleSnapshot 校验排班快照
func ValidateScheduleSnapshot(employees []*model.Employee, slots []*model.ShiftSlot) error {
	ve := &errors.ValidationErrors{}

	seen := make(map[uuid.UUID]bool, len(employees))
	for i, emp := range employees {
		field := fmt.Sprintf("employees[%d]", i)
		if seen[emp.ID] {
			ve.Add(field+".id", "员工ID重复")
		}
		seen[emp.ID] = true

		if emp.MaxHoursPerWeek < 0 {
			ve.Add(field+".max_hours_per_week", "不能为负数")
		}
	}

	for i, slot := range slots {
		field := fmt.Sprintf("slots[%d]", i)
		if slot.AgentsNeeded <= 0 {
			ve.Add(field+".agents_needed", "必须为正整数")
		}
		if _, err := time.Parse("2006-01-02", slot.Date); err != nil {
			ve.Add(field+".date", "日期格式必须为 YYYY-MM-DD")
		}
		if _, err := time.Parse("15:04", slot.StartTime); err != nil {
			ve.Add(field+".start_time", "时间格式必须为 HH:MM")
		}
		if _, err := time.Parse("15:04", slot.EndTime); err != nil {
			ve.Add(field+".end_time", "时间格式必须为 HH:MM")
		}
	}

	if ve.HasErrors() {
		return ve.ToAppError()
	}
	return nil
}

// validateLocation 校验经纬度范围
func validateLocation(ve *errors.ValidationErrors, field string, loc model.Location) {
	if loc.Latitude < -90 || loc.Latitude > 90 {
		ve.Add(field+".latitude", "必须在 [-90,90] 范围内")
	}
	if loc.Longitude < -180 || loc.Longitude > 180 {
		ve.Add(field+".longitude", "必须在 [-180,180] 范围内")
	}
}
