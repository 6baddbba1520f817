package feature

import (
	"context"
	"fmt"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/feast"
	"github.com/rushteam/shoprec/pkg/conv"
)

// 默认的 Feast 特征名
const (
	defaultEntityKey     = "item_id"
	defaultPriceFeature  = "item_stats:price"
	defaultRatingFeature = "item_stats:rating"
)

// MetadataLoader 在构建目录快照前，从 Feast 在线存储批量补齐商品元数据
// （价格、评分）。外部元数据管线把清洗后的特征物化进 Feast，
// 这里只做一次批量拉取，不做缺失值填补。
//
// 零值字段取默认特征名，可按 Feast 项目里的实际命名覆盖。
type MetadataLoader struct {
	Client  feast.Client
	Project string

	// EntityKey 实体键名，默认 "item_id"
	EntityKey string

	// PriceFeature / RatingFeature 特征全名，默认 "item_stats:price" / "item_stats:rating"
	PriceFeature  string
	RatingFeature string
}

// Hydrate 按 ID 批量拉取并就地填充 items 的 Price/Rating。
// Feast 返回缺失的特征保持原值不动，由 BuildStore 的契约校验兜底。
func (l *MetadataLoader) Hydrate(ctx context.Context, items []*core.Item) error {
	if l.Client == nil {
		return core.NewDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput, "feature: feast client is nil")
	}
	if len(items) == 0 {
		return nil
	}

	entityKey := l.EntityKey
	if entityKey == "" {
		entityKey = defaultEntityKey
	}
	priceFeature := l.PriceFeature
	if priceFeature == "" {
		priceFeature = defaultPriceFeature
	}
	ratingFeature := l.RatingFeature
	if ratingFeature == "" {
		ratingFeature = defaultRatingFeature
	}

	entityRows := make([]map[string]interface{}, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		entityRows = append(entityRows, map[string]interface{}{entityKey: it.ID})
	}

	resp, err := l.Client.GetOnlineFeatures(ctx, &feast.GetOnlineFeaturesRequest{
		Features:   []string{priceFeature, ratingFeature},
		EntityRows: entityRows,
		Project:    l.Project,
	})
	if err != nil {
		return fmt.Errorf("hydrate item metadata: %w", err)
	}

	byID := make(map[string]feast.FeatureVector, len(resp.FeatureVectors))
	for _, fv := range resp.FeatureVectors {
		id, _ := fv.EntityRow[entityKey].(string)
		if id != "" {
			byID[id] = fv
		}
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		fv, ok := byID[it.ID]
		if !ok {
			continue
		}
		if price, ok := conv.ToFloat64(fv.Values[priceFeature]); ok {
			it.Price = price
		}
		if rating, ok := conv.ToFloat64(fv.Values[ratingFeature]); ok {
			it.Rating = rating
		}
	}
	return nil
}
