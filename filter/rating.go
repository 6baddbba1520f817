package filter

import (
	"context"

	"github.com/rushteam/shoprec/core"
)

// RatingFilter 过滤掉评分低于阈值的商品（质量闸门）。
type RatingFilter struct {
	// Threshold 评分阈值，保留 rating >= Threshold 的商品；<=0 时使用默认值 4.0
	Threshold float64
}

// NewRatingFilter 创建评分过滤器。
func NewRatingFilter(threshold float64) *RatingFilter {
	return &RatingFilter{Threshold: threshold}
}

func (f *RatingFilter) Name() string {
	return "filter.rating"
}

func (f *RatingFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	threshold := f.Threshold
	if threshold <= 0 {
		threshold = 4.0
	}
	return item.Rating < threshold, nil
}
