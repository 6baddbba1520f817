package textsim

import (
	"context"
	"sort"

	"github.com/rushteam/shoprec/core"
)

// epsilon 加在范数乘积上，保证除法永不为零。
const epsilon = 1e-10

// Search 返回与 query 余弦相似度最高的 k 条文本，相似度降序。
//
//   - 零范数 query（嵌入服务降级的典型产物）直接返回空结果
//   - k >= 语料规模时对全量做排序
//   - k < 语料规模时先做部分选择、再对选中子集排序，
//     纯粹是省一次全量排序的优化，两条路径共用同一比较器
//     （相似度降序、平局按文本升序），结果逐位一致
func (c *Corpus) Search(query []float64, k int) []string {
	if c == nil || len(c.entries) == 0 || k <= 0 {
		return nil
	}
	qnorm := vectorNorm(query)
	if qnorm == 0 {
		return nil
	}

	type scored struct {
		text string
		sim  float64
	}
	all := make([]scored, 0, len(c.entries))
	for _, e := range c.entries {
		if len(e.vector) != len(query) {
			continue
		}
		var dot float64
		for i, v := range e.vector {
			dot += v * query[i]
		}
		all = append(all, scored{text: e.text, sim: dot / (qnorm*e.norm + epsilon)})
	}

	better := func(a, b scored) bool {
		if a.sim != b.sim {
			return a.sim > b.sim
		}
		return a.text < b.text
	}

	if k >= len(all) {
		sort.Slice(all, func(i, j int) bool { return better(all[i], all[j]) })
		out := make([]string, 0, len(all))
		for _, s := range all {
			out = append(out, s.text)
		}
		return out
	}

	// 部分选择：把前 k 名换到前缀（k 趟选择，前缀即有序）
	for i := 0; i < k; i++ {
		best := i
		for j := i + 1; j < len(all); j++ {
			if better(all[j], all[best]) {
				best = j
			}
		}
		all[i], all[best] = all[best], all[i]
	}

	out := make([]string, 0, k)
	for _, s := range all[:k] {
		out = append(out, s.text)
	}
	return out
}

// Searcher 把自由文本查询接到语料检索上：
// 先经嵌入服务换向量，再走 Corpus.Search。
// 嵌入失败（空向量）时返回空结果，不传播故障。
type Searcher struct {
	Corpus   *Corpus
	Embedder core.EmbeddingService
}

// SearchText 对自由文本做相似检索。
func (s *Searcher) SearchText(ctx context.Context, query string, k int) []string {
	if s.Corpus == nil || s.Embedder == nil || query == "" {
		return nil
	}
	vec := s.Embedder.Embed(ctx, query)
	if len(vec) == 0 {
		return nil
	}
	return s.Corpus.Search(vec, k)
}
