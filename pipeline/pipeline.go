package pipeline

import (
	"context"

	"github.com/rushteam/shoprec/core"
)

// Pipeline 是 shoprec 的核心抽象：把推荐逻辑拆成可组合的 Node 链。
// 装配器（recommend.Engine）内部也是一条 Pipeline：
// 召回（档案向量最近邻）→ 过滤（类目/已购/评分）→ 重排（类目配额 + 回填）。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
