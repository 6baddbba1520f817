package recall

import (
	"context"
	"strconv"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/pkg/utils"
)

// ProfileANN 是档案向量最近邻召回源：
// 用 ProfileSource 产出档案向量，在 VectorIndex 中取 TopK 最近邻，
// 再通过 Lookup 把候选 ID 还原为完整商品。
//
// TopK 通常取最终结果数的若干倍（过采样），为下游过滤/配额留出余量。
// ProfileANN 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type ProfileANN struct {
	Profile core.ProfileSource
	Index   core.VectorIndex

	// Lookup 按 ID 还原商品；返回 nil 的 ID 被跳过（索引与目录快照短暂不一致时会出现）
	Lookup func(id string) *core.Item

	// TopK 检索数量，<=0 时默认 10
	TopK int
}

func (r *ProfileANN) Name() string        { return "recall.profile_ann" }
func (r *ProfileANN) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *ProfileANN) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
// 无档案向量（空历史、嵌入失败）时返回空结果，不返回错误。
func (r *ProfileANN) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Profile == nil || r.Index == nil || r.Lookup == nil {
		return nil, nil
	}

	profile := r.Profile.ProfileVector(ctx, rctx)
	if len(profile) == 0 {
		return nil, nil
	}

	topK := r.TopK
	if topK <= 0 {
		topK = 10
	}

	neighbors, err := r.Index.Search(ctx, profile, topK)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(neighbors))
	for _, nb := range neighbors {
		item := r.Lookup(nb.ID)
		if item == nil {
			continue
		}
		item.PutLabel("ann_distance", utils.Label{
			Value:  strconv.FormatFloat(nb.Distance, 'f', 6, 64),
			Source: r.Name(),
		})
		out = append(out, item)
	}
	return out, nil
}
