// Package dispatcher 提供人员-请求的最优派单引擎
package dispatcher

import (
	"math"
)

// infeasibleSentinel 求解期间代替 +Inf 的有限大成本
// 匈牙利算法的势函数运算要求成本有限
const infeasibleSentinel = 1e12

// solveAssignment 求最小成本一对一匹配
// 返回每行匹配的列下标，未匹配的行为 -1
// 矩形矩阵按行列较少的一侧配满，多余的行或列保持未匹配
// 复杂度 O(min(N,M)^3)：适用于数百规模的人员/请求，
// 上万规模需要先按区域分片再分别求解
func solveAssignment(costs [][]float64) []int {
	n := len(costs)
	if n == 0 {
		return nil
	}
	m := len(costs[0])

	rowMatch := make([]int, n)
	for i := range rowMatch {
		rowMatch[i] = -1
	}
	if m == 0 {
		return rowMatch
	}

	if n <= m {
		return hungarian(costs, n, m)
	}

	// 行多于列时转置求解，再把列匹配映射回行匹配
	transposed := make([][]float64, m)
	for j := 0; j < m; j++ {
		transposed[j] = make([]float64, n)
		for i := 0; i < n; i++ {
			transposed[j][i] = costs[i][j]
		}
	}
	colMatch := hungarian(transposed, m, n)
	for j, i := range colMatch {
		if i >= 0 {
			rowMatch[i] = j
		}
	}
	return rowMatch
}

// hungarian 势函数法匈牙利算法，要求 n <= m
// 每行都会被配到一列；+Inf 成本在内部以有限哨兵值参与运算，
// 因此解中可能包含不可行对，调用方必须对照原始矩阵复查剔除
func hungarian(a [][]float64, n, m int) []int {
	// 下标从 1 开始，0 号位作虚拟起点
	u := make([]float64, n+1)
	v := make([]float64, m+1)
	p := make([]int, m+1)
	way := make([]int, m+1)

	cost := func(i, j int) float64 {
		c := a[i-1][j-1]
		if math.IsInf(c, 1) {
			return infeasibleSentinel
		}
		return c
	}

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, m+1)
		used := make([]bool, m+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}

		// 沿交错路径扩展，直到找到未匹配列
		for {
			used[j0] = true
			i0 := p[j0]
			delta := math.Inf(1)
			j1 := 0

			for j := 1; j <= m; j++ {
				if used[j] {
					continue
				}
				cur := cost(i0, j) - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			for j := 0; j <= m; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// 沿记录的路径回溯，翻转匹配
		for {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
			if j0 == 0 {
				break
			}
		}
	}

	rowMatch := make([]int, n)
	for i := range rowMatch {
		rowMatch[i] = -1
	}
	for j := 1; j <= m; j++ {
		if p[j] > 0 {
			rowMatch[p[j]-1] = j - 1
		}
	}
	return rowMatch
}
