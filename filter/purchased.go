package filter

import (
	"context"

	"github.com/rushteam/shoprec/core"
)

// PurchasedFilter 过滤掉用户已经购买过的商品（不重复推荐）。
type PurchasedFilter struct {
	// ItemIDs 是内存中的已购商品 ID 集合
	ItemIDs map[string]struct{}

	// Store 用于从交互快照中读取已购列表（可选）
	Store PurchasedStore
}

// PurchasedStore 是已购商品查询接口，由 store.InteractionStore 实现。
type PurchasedStore interface {
	// GetUserItems 获取用户购买过的商品 ID 列表；未知用户返回空列表
	GetUserItems(ctx context.Context, userID string) ([]string, error)
}

// NewPurchasedFilter 根据已购 ID 列表创建过滤器。
func NewPurchasedFilter(itemIDs []string) *PurchasedFilter {
	set := make(map[string]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		set[id] = struct{}{}
	}
	return &PurchasedFilter{ItemIDs: set}
}

func (f *PurchasedFilter) Name() string {
	return "filter.purchased"
}

func (f *PurchasedFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	if _, ok := f.ItemIDs[item.ID]; ok {
		return true, nil
	}

	// 从 Store 检查
	if f.Store != nil && rctx != nil && rctx.UserID != "" {
		purchased, err := f.Store.GetUserItems(ctx, rctx.UserID)
		if err == nil {
			for _, id := range purchased {
				if item.ID == id {
					return true, nil
				}
			}
		}
	}

	return false, nil
}
