// Package geo 提供地理距离和行驶时间计算
package geo

import (
	"github.com/diaodu/diaodu/pkg/model"
)

// RoadFactor 大圆距离到道路距离的修正系数
const RoadFactor = 1.3

// Calculator 距离计算器
// 纯函数实现，无副作用
type Calculator struct {
	averageSpeedKmh float64
}

// NewCalculator 创建距离计算器
func NewCalculator(averageSpeedKmh float64) *Calculator {
	if averageSpeedKmh <= 0 {
		averageSpeedKmh = 40.0
	}
	return &Calculator{averageSpeedKmh: averageSpeedKmh}
}

// Distance 计算两点间道路距离（公里）
// 大圆距离乘以固定道路修正系数，相同点返回 0
func (c *Calculator) Distance(from, to model.Location) float64 {
	return from.Distance(to) * RoadFactor
}

// TravelTime 计算两点间行驶时间（小时）
func (c *Calculator) TravelTime(from, to model.Location) float64 {
	return c.Distance(from, to) / c.averageSpeedKmh
}

// TravelTimeForDistance 按已知距离计算行驶时间（小时）
func (c *Calculator) TravelTimeForDistance(distanceKm float64) float64 {
	return distanceKm / c.averageSpeedKmh
}
