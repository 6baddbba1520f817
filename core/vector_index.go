package core

import "context"

// VectorIndex 是最近邻检索的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（vector）实现
//   - Assembler/Recall 只依赖此接口；未来替换为近似索引（ANN）
//     不需要改动任何上层逻辑
//
// 状态机：Unbuilt → Built（不可变）→ Queryable。
// 没有 Updating 状态：底层数据变化必须丢弃旧实例、重新构建，
// 构建完成之前查询方不得观测到新索引（不允许读到半成品）。
// 构建完成后结构只读，可被任意并发查询，无需加锁。
type VectorIndex interface {
	// Name 返回索引实现名称（用于日志/监控）
	Name() string

	// Dim 返回索引向量的维度
	Dim() int

	// Len 返回已索引的向量数量
	Len() int

	// Search 返回与 query 最近的 k 个向量，按距离从近到远排列。
	// query 可以是索引中不存在的合成向量（例如多个商品向量的均值）。
	// query 维度与索引维度不一致是契约违反，返回 INVALID_INPUT 错误。
	// k >= Len() 时返回全部向量（仍按距离排序）。
	Search(ctx context.Context, query []float64, k int) ([]VectorSearchItem, error)
}

// VectorSearchItem 单个向量检索结果项。
type VectorSearchItem struct {
	// ID 物品 ID
	ID string

	// Distance 与查询向量的距离（度量由索引实现决定）
	Distance float64
}

// ErrDimensionMismatch 表示查询向量与索引维度不一致。
var ErrDimensionMismatch = NewDomainError(ModuleVector, ErrorCodeInvalidInput, "vector: query dimension mismatch")
