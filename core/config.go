package core

import "time"

// EngineConfig 是推荐引擎的配置接口，用于提供默认值。
type EngineConfig interface {
	// DefaultSimilarUsers 返回候选类目计算时考虑的相似用户数
	DefaultSimilarUsers() int

	// DefaultTopCategories 返回候选类目数
	DefaultTopCategories() int

	// DefaultOverfetchFactor 返回向量检索的超取倍数（topK * factor）
	DefaultOverfetchFactor() int

	// DefaultRatingThreshold 返回候选商品的最低评分
	DefaultRatingThreshold() float64

	// DefaultEmbedTimeout 返回嵌入服务单次调用的超时时间
	DefaultEmbedTimeout() time.Duration
}

// DefaultEngineConfig 是默认的引擎配置实现。
//
// 超取倍数是可调参数而非正确性依赖：只要足够大，
// 过滤后极少出现候选枯竭即可。
type DefaultEngineConfig struct{}

func (c *DefaultEngineConfig) DefaultSimilarUsers() int {
	return 100
}

func (c *DefaultEngineConfig) DefaultTopCategories() int {
	return 5
}

func (c *DefaultEngineConfig) DefaultOverfetchFactor() int {
	return 10
}

func (c *DefaultEngineConfig) DefaultRatingThreshold() float64 {
	return 4.0
}

func (c *DefaultEngineConfig) DefaultEmbedTimeout() time.Duration {
	return 30 * time.Second
}
