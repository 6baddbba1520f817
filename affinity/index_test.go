package affinity

import (
	"reflect"
	"testing"

	"github.com/rushteam/shoprec/core"
)

func catalogForTest() []*core.Item {
	newItem := func(id, category string) *core.Item {
		it := core.NewItem(id)
		it.Category = category
		return it
	}
	return []*core.Item{
		newItem("x1", "X"),
		newItem("x2", "X"),
		newItem("y1", "Y"),
		newItem("z1", "Z"),
	}
}

func TestBuildIndex(t *testing.T) {
	interactions := []core.Interaction{
		{UserID: "u1", ItemID: "x1"},
		{UserID: "u1", ItemID: "x2"}, // 同类目重复交互，binary 不加权
		{UserID: "u2", ItemID: "y1"},
		{UserID: "u2", ItemID: "x1"},
		{UserID: "u3", ItemID: "ghost"}, // 未知商品被跳过
		{UserID: "u3", ItemID: "z1"},
		{UserID: "", ItemID: "x1"}, // 空用户被跳过
	}

	idx, err := BuildIndex(interactions, catalogForTest())
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	// 行序 = 用户首次出现顺序
	if got := idx.Users(); !reflect.DeepEqual(got, []string{"u1", "u2", "u3"}) {
		t.Errorf("Users = %v", got)
	}
	// 列序 = 类目名升序
	if got := idx.Categories(); !reflect.DeepEqual(got, []string{"X", "Y", "Z"}) {
		t.Errorf("Categories = %v", got)
	}
}

func TestNeighbors(t *testing.T) {
	interactions := []core.Interaction{
		{UserID: "u1", ItemID: "x1"},
		{UserID: "u2", ItemID: "x1"}, // u2 与 u1 模式相同
		{UserID: "u2", ItemID: "x2"},
		{UserID: "u3", ItemID: "y1"}, // u3 与 u1 无重叠
		{UserID: "u4", ItemID: "x1"},
		{UserID: "u4", ItemID: "y1"}, // u4 与 u1 部分重叠
	}
	idx, err := BuildIndex(interactions, catalogForTest())
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	got := idx.Neighbors("u1", 3)
	// u2 距离 0（同模式），u4 距离 1-1/√2≈0.29，u3 距离 1
	want := []string{"u2", "u4", "u3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Neighbors(u1, 3) = %v, want %v", got, want)
	}

	// 不包含自身
	for _, u := range got {
		if u == "u1" {
			t.Error("Neighbors includes the queried user")
		}
	}

	// k 大于候选数时返回全部
	if got := idx.Neighbors("u1", 100); len(got) != 3 {
		t.Errorf("Neighbors(u1, 100) len = %d, want 3", len(got))
	}

	// k 截断
	if got := idx.Neighbors("u1", 1); !reflect.DeepEqual(got, []string{"u2"}) {
		t.Errorf("Neighbors(u1, 1) = %v, want [u2]", got)
	}
}

func TestNeighbors_UnknownUser(t *testing.T) {
	interactions := []core.Interaction{
		{UserID: "u1", ItemID: "x1"},
		{UserID: "u2", ItemID: "y1"},
	}
	idx, err := BuildIndex(interactions, catalogForTest())
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	// 未知用户：空序列，不是错误
	if got := idx.Neighbors("stranger", 5); got != nil {
		t.Errorf("Neighbors(stranger) = %v, want nil", got)
	}
	// k<=0：空序列
	if got := idx.Neighbors("u1", 0); got != nil {
		t.Errorf("Neighbors(u1, 0) = %v, want nil", got)
	}
}

func TestNeighbors_ZeroRowMaxDistance(t *testing.T) {
	// u3 只有指向未知商品的交互：行存在但全零，
	// 与任何用户的距离都是最大值，排在最后。
	interactions := []core.Interaction{
		{UserID: "u1", ItemID: "x1"},
		{UserID: "u2", ItemID: "x1"},
		{UserID: "u3", ItemID: "ghost"},
	}
	idx, err := BuildIndex(interactions, catalogForTest())
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	got := idx.Neighbors("u1", 2)
	want := []string{"u2", "u3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Neighbors = %v, want %v", got, want)
	}
}

func TestRankCategories(t *testing.T) {
	items := catalogForTest()
	interactions := []core.Interaction{
		{UserID: "u1", ItemID: "x1"},
		{UserID: "u1", ItemID: "x2"}, // u1 对 X 只贡献 1
		{UserID: "u1", ItemID: "y1"},
		{UserID: "u2", ItemID: "x1"},
		{UserID: "u2", ItemID: "z1"},
		{UserID: "outsider", ItemID: "z1"}, // 不在相似用户集内
	}

	tests := []struct {
		name         string
		similarUsers []string
		topN         int
		want         []string
	}{
		{
			name:         "scores and tie break",
			similarUsers: []string{"u1", "u2"},
			topN:         5,
			// X=2, Y=1, Z=1（平局 Y<Z 按名字升序）
			want: []string{"X", "Y", "Z"},
		},
		{
			name:         "topN truncation",
			similarUsers: []string{"u1", "u2"},
			topN:         2,
			want:         []string{"X", "Y"},
		},
		{
			name:         "empty similar users",
			similarUsers: nil,
			topN:         5,
			want:         nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RankCategories(tt.similarUsers, interactions, items, tt.topN)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RankCategories = %v, want %v", got, tt.want)
			}
		})
	}
}
