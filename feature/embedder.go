package feature

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/shoprec/core"
)

// Embedder 批量调用嵌入服务，为目录商品补齐文本向量。
// 构建索引前的一次性批处理：并发 fan-out、每条文本独立超时。
//
// 降级约定与单条调用一致：某条文本嵌入失败时该商品被丢弃
// （BuildStore 对缺嵌入的商品 fail-fast，与其让它带着零向量
// 污染最近邻检索，不如在构建期剔除）。
type Embedder struct {
	Service core.EmbeddingService

	// MaxConcurrent 最大并发数（0 表示默认 8）
	MaxConcurrent int

	// Timeout 单条文本的嵌入超时（0 表示默认 30s）
	Timeout time.Duration
}

// EmbedItems 为所有 Embedding 为空且 Text 非空的商品补齐嵌入，
// 返回嵌入齐全的商品子集（保持输入顺序）。
func (e *Embedder) EmbedItems(ctx context.Context, items []*core.Item) ([]*core.Item, error) {
	if e.Service == nil || len(items) == 0 {
		return items, nil
	}

	maxConcurrent := e.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	var (
		mu     sync.Mutex
		eg, _  = errgroup.WithContext(ctx)
		sem    = make(chan struct{}, maxConcurrent)
		filled = make(map[string][]float64, len(items))
	)

	for _, it := range items {
		if it == nil || len(it.Embedding) > 0 || it.Text == "" {
			continue
		}
		item := it
		eg.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			embedCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			vec := e.Service.Embed(embedCtx, item.Text)
			if len(vec) == 0 {
				// 嵌入服务降级为空向量；该商品将在下面被丢弃
				return nil
			}

			mu.Lock()
			filled[item.ID] = vec
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if len(it.Embedding) == 0 {
			vec, ok := filled[it.ID]
			if !ok {
				continue
			}
			it.Embedding = vec
		}
		out = append(out, it)
	}
	return out, nil
}
