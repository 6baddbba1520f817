package textsim

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/shoprec/core"
)

// KVStore 基于 core.Store 的语料存储，整个语料序列化为一个 JSON 快照。
// 适合挂在 Redis / 内存存储上与其他在线数据共用一条连接。
type KVStore struct {
	store core.Store
	// Key 快照的存储键，默认 "textsim:corpus"
	Key string
}

type corpusSnapshot struct {
	Normalized bool       `json:"normalized"`
	Docs       []Document `json:"docs"`
}

func NewKVStore(store core.Store) *KVStore {
	return &KVStore{store: store, Key: "textsim:corpus"}
}

func (s *KVStore) Name() string { return "corpus.kv" }

func (s *KVStore) Load(ctx context.Context) ([]Document, bool, error) {
	if s.store == nil {
		return nil, false, core.NewDomainError(core.ModuleCorpus, core.ErrorCodeInvalidInput, "textsim: kv store is nil")
	}
	raw, err := s.store.Get(ctx, s.key())
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load corpus snapshot: %w", err)
	}
	var snap corpusSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, false, fmt.Errorf("decode corpus snapshot: %w", err)
	}
	return snap.Docs, snap.Normalized, nil
}

func (s *KVStore) Save(ctx context.Context, docs []Document, normalized bool) error {
	if s.store == nil {
		return core.NewDomainError(core.ModuleCorpus, core.ErrorCodeInvalidInput, "textsim: kv store is nil")
	}
	raw, err := json.Marshal(corpusSnapshot{Normalized: normalized, Docs: docs})
	if err != nil {
		return fmt.Errorf("encode corpus snapshot: %w", err)
	}
	return s.store.Set(ctx, s.key(), raw)
}

func (s *KVStore) key() string {
	if s.Key == "" {
		return "textsim:corpus"
	}
	return s.Key
}
