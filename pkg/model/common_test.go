package model

import (
	"math"
	"testing"
	"time"
)

func TestSkillSet_MatchRatio(t *testing.T) {
	tests := []struct {
		name     string
		skills   SkillSet
		required SkillSet
		want     float64
	}{
		{
			name:     "需求为空，匹配率为1",
			skills:   SkillSet{"电工"},
			required: nil,
			want:     1.0,
		},
		{
			name:     "全部匹配",
			skills:   SkillSet{"电工", "水暖"},
			required: SkillSet{"电工", "水暖"},
			want:     1.0,
		},
		{
			name:     "部分匹配",
			skills:   SkillSet{"电工"},
			required: SkillSet{"电工", "水暖"},
			want:     0.5,
		},
		{
			name:     "完全不匹配",
			skills:   SkillSet{"木工"},
			required: SkillSet{"电工", "水暖"},
			want:     0.0,
		},
		{
			name:     "技能为空但需求非空",
			skills:   nil,
			required: SkillSet{"电工"},
			want:     0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.skills.MatchRatio(tt.required)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MatchRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSkillSet_ContainsAll(t *testing.T) {
	skills := SkillSet{"电工", "水暖", "空调"}

	if !skills.ContainsAll(SkillSet{"电工", "空调"}) {
		t.Error("期望包含子集")
	}
	if skills.ContainsAll(SkillSet{"电工", "木工"}) {
		t.Error("不应包含缺失技能")
	}
	if !skills.ContainsAll(nil) {
		t.Error("空需求恒为包含")
	}
}

func TestSkillSet_Union(t *testing.T) {
	primary := SkillSet{"电工", "水暖"}
	secondary := SkillSet{"水暖", "空调"}

	union := primary.Union(secondary)
	if len(union) != 3 {
		t.Fatalf("并集长度 = %d, want 3", len(union))
	}
	for _, skill := range []string{"电工", "水暖", "空调"} {
		if !union.Has(skill) {
			t.Errorf("并集缺少技能 %s", skill)
		}
	}
}

func TestLocation_Distance(t *testing.T) {
	// 上海人民广场到陆家嘴，大圆距离约 4 公里
	from := Location{Latitude: 31.2304, Longitude: 121.4737}
	to := Location{Latitude: 31.2397, Longitude: 121.4998}

	d := from.Distance(to)
	if d < 2.0 || d > 4.0 {
		t.Errorf("Distance() = %v, 期望在 2-4 公里之间", d)
	}

	// 相同点距离为 0
	if got := from.Distance(from); got != 0 {
		t.Errorf("相同点 Distance() = %v, want 0", got)
	}

	// 对称性
	if math.Abs(from.Distance(to)-to.Distance(from)) > 1e-9 {
		t.Error("距离应满足对称性")
	}
}

func TestTimeRange_Overlaps(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tr := TimeRange{Start: base, End: base.Add(4 * time.Hour)}

	tests := []struct {
		name  string
		other TimeRange
		want  bool
	}{
		{"完全重叠", TimeRange{Start: base, End: base.Add(4 * time.Hour)}, true},
		{"部分重叠", TimeRange{Start: base.Add(2 * time.Hour), End: base.Add(6 * time.Hour)}, true},
		{"相邻不重叠", TimeRange{Start: base.Add(4 * time.Hour), End: base.Add(8 * time.Hour)}, false},
		{"完全分离", TimeRange{Start: base.Add(10 * time.Hour), End: base.Add(12 * time.Hour)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOperator_AllSkills(t *testing.T) {
	op := &Operator{
		PrimarySkills:   SkillSet{"电工"},
		SecondarySkills: SkillSet{"水暖"},
	}

	all := op.AllSkills()
	if !all.Has("电工") || !all.Has("水暖") {
		t.Errorf("AllSkills() = %v, 期望包含主辅技能", all)
	}
}
