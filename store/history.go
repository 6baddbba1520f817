package store

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/rushteam/shoprec/core"
)

// 历史行为类型。
const (
	BehaviorSearch = "search" // 搜索文本
	BehaviorView   = "view"   // 浏览过的商品文本
)

// HistoryStore 是基于 core.Store 的用户历史适配器，
// 记录搜索/浏览文本，为无购买历史的用户提供冷启动信号。
//
// key 规划：{KeyPrefix}:{userID}:{behavior}（JSON 数组，新文本追加在尾部）
type HistoryStore struct {
	store core.Store
	mu    sync.Mutex

	// KeyPrefix 是存储 key 的前缀，默认 "history"
	KeyPrefix string

	// MaxEntries 单用户单行为保留的条数上限（0 表示默认 50）
	MaxEntries int
}

// NewHistoryStore 创建一个用户历史适配器。
func NewHistoryStore(s core.Store, keyPrefix string) *HistoryStore {
	if keyPrefix == "" {
		keyPrefix = "history"
	}
	return &HistoryStore{store: s, KeyPrefix: keyPrefix}
}

// Record 追加一条历史文本。
// 追加是对底层 Store 的读改写，同一 key 的并发写必须经过同一个
// HistoryStore 实例才能串行化；跨进程共享后端时需由外部保证互斥。
func (h *HistoryStore) Record(ctx context.Context, userID, behavior, text string) error {
	if userID == "" || text == "" {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	texts, err := h.Texts(ctx, userID, behavior)
	if err != nil {
		return err
	}
	texts = append(texts, text)

	maxEntries := h.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 50
	}
	if len(texts) > maxEntries {
		texts = texts[len(texts)-maxEntries:]
	}

	data, err := json.Marshal(texts)
	if err != nil {
		return err
	}
	return h.store.Set(ctx, h.key(userID, behavior), data)
}

// Texts 返回某行为下的历史文本（时间顺序）；无记录返回空集。
func (h *HistoryStore) Texts(ctx context.Context, userID, behavior string) ([]string, error) {
	data, err := h.store.Get(ctx, h.key(userID, behavior))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var texts []string
	if err := json.Unmarshal(data, &texts); err != nil {
		return nil, err
	}
	return texts, nil
}

// SessionText 把用户的搜索+浏览历史聚合为一段会话文本，
// 供嵌入服务产出冷启动档案向量。无任何历史时返回空串。
func (h *HistoryStore) SessionText(ctx context.Context, userID string) (string, error) {
	search, err := h.Texts(ctx, userID, BehaviorSearch)
	if err != nil {
		return "", err
	}
	view, err := h.Texts(ctx, userID, BehaviorView)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(search)+len(view))
	parts = append(parts, search...)
	parts = append(parts, view...)
	return strings.Join(parts, " "), nil
}

func (h *HistoryStore) key(userID, behavior string) string {
	return h.KeyPrefix + ":" + userID + ":" + behavior
}
