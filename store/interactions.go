package store

import (
	"context"
	"encoding/json"

	"github.com/rushteam/shoprec/core"
)

// InteractionStore 是基于 core.Store 的交互快照适配器。
//
// key 规划：
//   - 用户列表：{KeyPrefix}:users
//   - 用户交互：{KeyPrefix}:user:{userID}（JSON 数组，元素为 itemID）
//
// 快照整体写入、整体读出；亲和度索引从快照全量重建，不做增量修补。
type InteractionStore struct {
	store core.Store

	// KeyPrefix 是存储 key 的前缀，默认 "interactions"
	KeyPrefix string
}

// NewInteractionStore 创建一个交互快照适配器。
func NewInteractionStore(s core.Store, keyPrefix string) *InteractionStore {
	if keyPrefix == "" {
		keyPrefix = "interactions"
	}
	return &InteractionStore{store: s, KeyPrefix: keyPrefix}
}

// SaveSnapshot 全量写入交互快照（覆盖既有数据）。
func (a *InteractionStore) SaveSnapshot(ctx context.Context, interactions []core.Interaction) error {
	byUser := make(map[string][]string)
	users := make([]string, 0)
	for _, in := range interactions {
		if in.UserID == "" || in.ItemID == "" {
			continue
		}
		if _, ok := byUser[in.UserID]; !ok {
			users = append(users, in.UserID)
		}
		byUser[in.UserID] = append(byUser[in.UserID], in.ItemID)
	}

	kvs := make(map[string][]byte, len(users)+1)
	data, err := json.Marshal(users)
	if err != nil {
		return err
	}
	kvs[a.KeyPrefix+":users"] = data
	for user, itemIDs := range byUser {
		data, err := json.Marshal(itemIDs)
		if err != nil {
			return err
		}
		kvs[a.KeyPrefix+":user:"+user] = data
	}
	return a.store.BatchSet(ctx, kvs)
}

// LoadSnapshot 全量读出交互快照，保持用户写入顺序。
func (a *InteractionStore) LoadSnapshot(ctx context.Context) ([]core.Interaction, error) {
	users, err := a.userList(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(users))
	for _, user := range users {
		keys = append(keys, a.KeyPrefix+":user:"+user)
	}
	rows, err := a.store.BatchGet(ctx, keys)
	if err != nil {
		return nil, err
	}

	out := make([]core.Interaction, 0, len(users))
	for i, user := range users {
		data, ok := rows[keys[i]]
		if !ok {
			continue
		}
		var itemIDs []string
		if err := json.Unmarshal(data, &itemIDs); err != nil {
			return nil, err
		}
		for _, itemID := range itemIDs {
			out = append(out, core.Interaction{UserID: user, ItemID: itemID})
		}
	}
	return out, nil
}

// GetUserItems 返回单个用户交互过的商品 ID；未知用户返回空集（不是错误）。
func (a *InteractionStore) GetUserItems(ctx context.Context, userID string) ([]string, error) {
	data, err := a.store.Get(ctx, a.KeyPrefix+":user:"+userID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var itemIDs []string
	if err := json.Unmarshal(data, &itemIDs); err != nil {
		return nil, err
	}
	return itemIDs, nil
}

func (a *InteractionStore) userList(ctx context.Context) ([]string, error) {
	data, err := a.store.Get(ctx, a.KeyPrefix+":users")
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var users []string
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, err
	}
	return users, nil
}
