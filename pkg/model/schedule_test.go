package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestEmployee_AvailableOn(t *testing.T) {
	tests := []struct {
		name string
		days []time.Weekday
		day  time.Weekday
		want bool
	}{
		{"空列表表示每天可用", nil, time.Saturday, true},
		{"在可用日列表中", []time.Weekday{time.Monday, time.Friday}, time.Friday, true},
		{"不在可用日列表中", []time.Weekday{time.Monday, time.Friday}, time.Sunday, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emp := &Employee{AvailabilityDays: tt.days}
			if got := emp.AvailableOn(tt.day); got != tt.want {
				t.Errorf("AvailableOn(%v) = %v, want %v", tt.day, got, tt.want)
			}
		})
	}
}

func TestShiftSlot_Weekday(t *testing.T) {
	slot := &ShiftSlot{Date: "2026-03-02"} // 星期一
	if got := slot.Weekday(); got != time.Monday {
		t.Errorf("Weekday() = %v, want Monday", got)
	}
}

func TestShiftSlot_EndDateTime(t *testing.T) {
	// 普通班次
	slot := &ShiftSlot{Date: "2026-03-02", StartTime: "09:00", EndTime: "17:00"}
	if slot.EndDateTime().Day() != 2 {
		t.Error("普通班次结束日期应为当天")
	}

	// 跨夜班次顺延到次日
	night := &ShiftSlot{Date: "2026-03-02", StartTime: "22:00", EndTime: "06:00"}
	if night.EndDateTime().Day() != 3 {
		t.Error("跨夜班次结束日期应为次日")
	}
	if !night.EndDateTime().After(night.StartDateTime()) {
		t.Error("结束时刻必须晚于开始时刻")
	}
}

func TestScheduleCandidate_Clone(t *testing.T) {
	cand := NewScheduleCandidate(3)
	empID := uuid.New()
	cand.Assignees[1] = empID
	cand.FitnessScore = 42.0
	cand.ViolationCount = 2

	clone := cand.Clone()

	if clone.ID == cand.ID {
		t.Error("克隆应分配新ID")
	}
	if clone.FitnessScore != cand.FitnessScore || clone.ViolationCount != cand.ViolationCount {
		t.Error("克隆应保留适应度与违反数")
	}

	// 深拷贝：修改克隆不影响原方案
	clone.Assignees[1] = uuid.Nil
	if cand.Assignees[1] != empID {
		t.Error("修改克隆不应影响原方案")
	}
}

func TestScheduleCandidate_AssignedCount(t *testing.T) {
	cand := NewScheduleCandidate(4)
	cand.Assignees[0] = uuid.New()
	cand.Assignees[2] = uuid.New()

	if got := cand.AssignedCount(); got != 2 {
		t.Errorf("AssignedCount() = %d, want 2", got)
	}
	if cand.IsAssigned(1) {
		t.Error("未分配槽位 IsAssigned 应为 false")
	}
	if !cand.IsAssigned(0) {
		t.Error("已分配槽位 IsAssigned 应为 true")
	}
}
