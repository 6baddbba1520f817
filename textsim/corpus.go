// Package textsim 实现文本相似检索：对预计算的 (text, vector) 语料
// 做余弦相似度排序。这是无购买历史时的平行推荐路径，
// 与主链路只共享 查询/嵌入 契约。
package textsim

import (
	"context"
	"math"
	"strings"

	"github.com/rushteam/shoprec/core"
)

// Document 是语料中的一条持久化记录。
type Document struct {
	Text   string
	Vector []float64
}

// CorpusStore 是语料持久化的领域接口。
// normalized 元数据标记向量存的是原始值还是单位化值，两态互斥。
//
// 实现：
//   - SQLiteStore（本地文件，modernc 纯 Go 驱动）
//   - KVStore（基于 core.Store，内存/Redis 共享）
type CorpusStore interface {
	Name() string
	Load(ctx context.Context) (docs []Document, normalized bool, err error)
	Save(ctx context.Context, docs []Document, normalized bool) error
}

// LoadOptions 控制语料装载时的清洗与转换。
type LoadOptions struct {
	// Exclude 文本排除表：命中任一子串（大小写不敏感）的条目被丢弃
	Exclude []string

	// Normalize 把存活向量单位化（已单位化的语料再开启为无操作）
	Normalize bool

	// Persist 把转换后的语料写回存储。显式 opt-in 的覆盖，
	// 从不隐式发生；开启时 store 必须可写。
	Persist bool
}

type entry struct {
	text   string
	vector []float64
	norm   float64
}

// Corpus 是构建后只读的语料索引。
// 零范数向量在装载期被剔除（无法参与余弦归一），
// 查询期不可能再遇到除零。
type Corpus struct {
	entries    []entry
	normalized bool
}

// Load 装载持久化语料：排除表过滤、剔除零范数向量、
// 可选单位化、可选写回。
func Load(ctx context.Context, store CorpusStore, opts LoadOptions) (*Corpus, error) {
	if store == nil {
		return nil, core.NewDomainError(core.ModuleCorpus, core.ErrorCodeInvalidInput, "corpus: nil store")
	}

	docs, normalized, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}

	exclude := make([]string, 0, len(opts.Exclude))
	for _, term := range opts.Exclude {
		if term != "" {
			exclude = append(exclude, strings.ToLower(term))
		}
	}

	c := &Corpus{normalized: normalized}
	for _, doc := range docs {
		if excluded(doc.Text, exclude) {
			continue
		}
		norm := vectorNorm(doc.Vector)
		if norm == 0 {
			continue
		}
		vec := doc.Vector
		if opts.Normalize && !c.normalized {
			unit := make([]float64, len(vec))
			for i, v := range vec {
				unit[i] = v / norm
			}
			vec = unit
			norm = 1.0
		}
		c.entries = append(c.entries, entry{text: doc.Text, vector: vec, norm: norm})
	}
	if opts.Normalize {
		c.normalized = true
	}

	if opts.Persist {
		out := make([]Document, 0, len(c.entries))
		for _, e := range c.entries {
			out = append(out, Document{Text: e.text, Vector: e.vector})
		}
		if err := store.Save(ctx, out, c.normalized); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Len 返回存活条目数。
func (c *Corpus) Len() int { return len(c.entries) }

// Normalized 返回语料当前是否为单位化形态。
func (c *Corpus) Normalized() bool { return c.normalized }

func excluded(text string, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func vectorNorm(vec []float64) float64 {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	return math.Sqrt(sum)
}
