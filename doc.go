// Package shoprec 是一个电商混合推荐引擎（Shop Recommender）。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → ReRank → PostProcess）
// - 双路召回: 购买历史档案向量 + 会话文本嵌入（冷启动），共用同一套最近邻检索
// - 多样性兜底: 类目配额 + 回填两遍扫描，在相似度顺序内保证类目覆盖
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
package shoprec

import "github.com/rushteam/shoprec/pipeline"

// 轻量 facade：便于用户直接 import "shoprec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
