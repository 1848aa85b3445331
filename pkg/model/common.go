// Package model 定义调度优化引擎的核心数据模型
package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// BaseModel 基础模型（包含通用字段）
type BaseModel struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}

// NewBaseModel 创建新的基础模型
func NewBaseModel() BaseModel {
	now := time.Now()
	return BaseModel{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// JSONMap 用于存储 JSONB 数据
type JSONMap map[string]interface{}

// TimeRange 时间范围
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration 返回时间范围的持续时间
func (tr TimeRange) Duration() time.Duration {
	return tr.End.Sub(tr.Start)
}

// Overlaps 检查两个时间范围是否重叠
func (tr TimeRange) Overlaps(other TimeRange) bool {
	return tr.Start.Before(other.End) && other.Start.Before(tr.End)
}

// Contains 检查时间范围是否包含某个时间点
func (tr TimeRange) Contains(t time.Time) bool {
	return !t.Before(tr.Start) && t.Before(tr.End)
}

// Location 地理位置
type Location struct {
	Address   string  `json:"address,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city,omitempty"`
	District  string  `json:"district,omitempty"`
}

// Distance 计算两个位置之间的大圆距离（公里）
// 使用 Haversine 公式
func (l Location) Distance(other Location) float64 {
	const earthRadius = 6371.0 // 地球半径（公里）

	lat1Rad := l.Latitude * math.Pi / 180
	lat2Rad := other.Latitude * math.Pi / 180
	deltaLat := (other.Latitude - l.Latitude) * math.Pi / 180
	deltaLon := (other.Longitude - l.Longitude) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// SkillSet 技能集合（保持输入顺序，查询按集合语义）
type SkillSet []string

// Has 检查是否包含某技能
func (s SkillSet) Has(skill string) bool {
	for _, v := range s {
		if v == skill {
			return true
		}
	}
	return false
}

// ContainsAll 检查是否包含另一个集合的全部技能
func (s SkillSet) ContainsAll(required SkillSet) bool {
	for _, skill := range required {
		if !s.Has(skill) {
			return false
		}
	}
	return true
}

// Union 返回两个集合的并集
func (s SkillSet) Union(other SkillSet) SkillSet {
	result := make(SkillSet, 0, len(s)+len(other))
	result = append(result, s...)
	for _, skill := range other {
		if !result.Has(skill) {
			result = append(result, skill)
		}
	}
	return result
}

// MatchRatio 计算对需求技能的覆盖比例
// 需求为空时返回 1.0
func (s SkillSet) MatchRatio(required SkillSet) float64 {
	if len(required) == 0 {
		return 1.0
	}
	matched := 0
	for _, skill := range required {
		if s.Has(skill) {
			matched++
		}
	}
	return float64(matched) / float64(len(required))
}
