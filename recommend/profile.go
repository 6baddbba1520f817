package recommend

import (
	"context"
	"strings"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/feature"
)

// HistoryProfile 从购买历史产出档案向量：
// 用户购买过的所有商品特征向量的算术平均。
// 无历史、或历史商品都不在特征库里时返回 nil（无信号）。
type HistoryProfile struct {
	Features *feature.Store

	// ItemsOf 取用户的历史商品 ID；通常绑定 store.InteractionStore.GetUserItems
	ItemsOf func(ctx context.Context, userID string) ([]string, error)
}

func (p *HistoryProfile) Name() string { return "profile.history" }

// ProfileVector 实现 core.ProfileSource。
func (p *HistoryProfile) ProfileVector(ctx context.Context, rctx *core.RecommendContext) []float64 {
	if p.Features == nil || p.ItemsOf == nil || rctx == nil || rctx.UserID == "" {
		return nil
	}

	itemIDs, err := p.ItemsOf(ctx, rctx.UserID)
	if err != nil || len(itemIDs) == 0 {
		return nil
	}

	var sum []float64
	count := 0
	for _, id := range itemIDs {
		vec, ok := p.Features.VectorOf(id)
		if !ok {
			// 快照不一致：历史里有但目录里没有的商品直接跳过
			continue
		}
		if sum == nil {
			sum = make([]float64, len(vec))
		}
		for i, v := range vec {
			sum[i] += v
		}
		count++
	}
	if count == 0 {
		return nil
	}

	for i := range sum {
		sum[i] /= float64(count)
	}
	return sum
}

// TextProfile 从会话文本产出档案向量（冷启动路径）：
// 把 rctx.SessionTexts 拼接后交给嵌入服务。
// 无文本或嵌入失败时返回 nil，调用方据此返回空推荐。
type TextProfile struct {
	Service core.EmbeddingService
}

func (p *TextProfile) Name() string { return "profile.text" }

// ProfileVector 实现 core.ProfileSource。
func (p *TextProfile) ProfileVector(ctx context.Context, rctx *core.RecommendContext) []float64 {
	if p.Service == nil || rctx == nil || len(rctx.SessionTexts) == 0 {
		return nil
	}
	text := strings.TrimSpace(strings.Join(rctx.SessionTexts, " "))
	if text == "" {
		return nil
	}
	return p.Service.Embed(ctx, text)
}

// FallbackProfile 按顺序尝试多个档案来源，返回第一个非空档案。
// 典型组合：HistoryProfile 优先，TextProfile 兜底冷启动。
type FallbackProfile struct {
	Sources []core.ProfileSource
}

func (p *FallbackProfile) Name() string { return "profile.fallback" }

// ProfileVector 实现 core.ProfileSource。
func (p *FallbackProfile) ProfileVector(ctx context.Context, rctx *core.RecommendContext) []float64 {
	for _, src := range p.Sources {
		if src == nil {
			continue
		}
		if vec := src.ProfileVector(ctx, rctx); len(vec) > 0 {
			return vec
		}
	}
	return nil
}
