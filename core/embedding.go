package core

import "context"

// EmbeddingService 是文本嵌入服务的领域接口（text → vector 黑盒函数）。
//
// 降级约定：嵌入是一次阻塞的外部调用，带超时，单次尝试、不重试。
// 任何失败（网络、超时、响应格式错误）都返回空向量而不是错误，
// 下游相似度检索遇到空向量时短路为空结果，绝不除零、绝不崩溃。
//
// 实现：
//   - embed.Client（HTTP /embed 端点）实现此接口
//   - 测试中可用固定映射的 fake 实现
type EmbeddingService interface {
	// Name 返回服务名称（用于日志/监控）
	Name() string

	// Embed 将文本映射为向量；失败时返回空向量（nil）。
	Embed(ctx context.Context, text string) []float64
}

// ProfileSource 是"档案向量"的统一抽象。
//
// 两条产出路径共用同一个最近邻检索契约：
//   - 购买历史路径：已购商品特征向量的算术平均（recommend.HistoryProfile）
//   - 文本路径：聚合会话文本的嵌入（recommend.TextProfile）
//
// 无法形成档案（无历史、嵌入失败）时返回空向量，调用方据此返回空推荐。
type ProfileSource interface {
	// ProfileVector 计算当前请求的档案向量；无信号时返回 nil。
	ProfileVector(ctx context.Context, rctx *RecommendContext) []float64
}
