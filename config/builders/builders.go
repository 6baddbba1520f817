// Package builders 注册内置 Node 的配置构建器。
// 入口处 import _ "github.com/rushteam/shoprec/config/builders" 即可启用配置驱动。
package builders

import (
	"fmt"
	"time"

	"github.com/rushteam/shoprec/config"
	"github.com/rushteam/shoprec/filter"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/pkg/conv"
	"github.com/rushteam/shoprec/recall"
	"github.com/rushteam/shoprec/rerank"
)

func init() {
	config.Register("recall.fanout", BuildFanoutNode)
	config.Register("recall.hot", BuildHotNode)
	config.Register("filter", BuildFilterNode)
	config.Register("rerank.quota", BuildQuotaNode)
	config.Register("rerank.topn", BuildTopNNode)
}

func BuildFanoutNode(cfg map[string]interface{}) (pipeline.Node, error) {
	sourcesConfig, ok := cfg["sources"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}
	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]interface{})
		if !ok {
			continue
		}
		sourceType := conv.ConfigGet(sourceMap, "type", "")
		switch sourceType {
		case "hot":
			ids := conv.SliceAnyToString(sourceMap["ids"])
			if ids == nil {
				ids = []string{}
			}
			sources = append(sources, &recall.Hot{IDs: ids})
		case "profile_ann":
			// ProfileANN 需 ProfileSource/VectorIndex，暂未从配置构建
			return nil, fmt.Errorf("profile_ann source requires programmatic assembly")
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
	}
	fanout := &recall.Fanout{
		Sources:       sources,
		Dedup:         conv.ConfigGet(cfg, "dedup", true),
		MergeStrategy: conv.ConfigGet(cfg, "merge_strategy", ""),
	}
	if sec := conv.ConfigGetInt(cfg, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	if n := conv.ConfigGetInt(cfg, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = n
	}
	return fanout, nil
}

func BuildHotNode(cfg map[string]interface{}) (pipeline.Node, error) {
	ids := conv.SliceAnyToString(cfg["ids"])
	if ids == nil {
		ids = []string{}
	}
	return &recall.Hot{
		IDs: ids,
		Key: conv.ConfigGet(cfg, "key", ""),
	}, nil
}

func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	node := &filter.FilterNode{}

	if ids := conv.SliceAnyToString(cfg["blacklist"]); len(ids) > 0 {
		node.Filters = append(node.Filters, filter.NewBlacklistFilter(ids, nil, ""))
	}
	if threshold := conv.ConfigGetFloat(cfg, "min_rating", 0); threshold > 0 {
		node.Filters = append(node.Filters, filter.NewRatingFilter(threshold))
	}
	if cats := conv.SliceAnyToString(cfg["categories"]); len(cats) > 0 {
		node.Filters = append(node.Filters, filter.NewCategoryFilter(cats))
	}
	if expr := conv.ConfigGet(cfg, "rule", ""); expr != "" {
		node.Filters = append(node.Filters, filter.NewRuleFilter(expr))
	}

	if len(node.Filters) == 0 {
		return nil, fmt.Errorf("filter node requires at least one of: blacklist, min_rating, categories, rule")
	}
	return node, nil
}

func BuildQuotaNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.Quota{
		TopN:           conv.ConfigGetInt(cfg, "top_n", 0),
		MinPerCategory: conv.ConfigGetInt(cfg, "min_per_category", 0),
	}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{N: conv.ConfigGetInt(cfg, "n", 0)}, nil
}
