package core

import "github.com/rushteam/shoprec/pkg/utils"

// Item 是目录快照中的一件商品，也是推荐链路中的统一承载结构。
// 静态字段（Category/Price/Rating/Text/Embedding）来自外部元数据管线，
// Score 与 Labels 在链路中产生，用于排序决策与解释/观测。
type Item struct {
	ID       string
	Category string
	Price    float64
	Rating   float64

	// Text 是商品的描述文本（description + features 拼接），
	// 用于向外部嵌入服务换取 Embedding。
	Text string

	// Embedding 是外部嵌入服务产出的文本向量（黑盒输入）。
	// 完整特征向量 = Embedding ++ [price_scaled]，由 feature.Store 构建。
	Embedding []float64

	Score  float64
	Labels map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:     id,
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// Interaction 表示一次"用户购买/评分过某商品"的事实。
// 亲和度矩阵只关心存在性（binary），重复交互不会被加权。
type Interaction struct {
	UserID string
	ItemID string
}
