package textsim

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"

	_ "modernc.org/sqlite"
)

// SQLiteStore 是 SQLite 实现的 CorpusStore（modernc 纯 Go 驱动，无 cgo）。
// 语料以 (text, vector blob) 存储，normalized 标记在 meta 表里，
// 整个语料一次写入一次读出。
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore 打开（必要时创建）语料数据库。
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open corpus db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping corpus db: %w", err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS corpus_meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS corpus_docs (
	text   TEXT PRIMARY KEY,
	vector BLOB NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create corpus schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Name() string { return "corpus.sqlite" }

func (s *SQLiteStore) Load(ctx context.Context) ([]Document, bool, error) {
	normalized := false
	var flag string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM corpus_meta WHERE key = 'normalized'`).Scan(&flag)
	switch {
	case err == sql.ErrNoRows:
		// 无标记视为原始向量
	case err != nil:
		return nil, false, fmt.Errorf("load corpus meta: %w", err)
	default:
		normalized = flag == "1"
	}

	rows, err := s.db.QueryContext(ctx, `SELECT text, vector FROM corpus_docs ORDER BY text`)
	if err != nil {
		return nil, false, fmt.Errorf("load corpus docs: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var text string
		var blob []byte
		if err := rows.Scan(&text, &blob); err != nil {
			return nil, false, fmt.Errorf("scan corpus doc: %w", err)
		}
		docs = append(docs, Document{Text: text, Vector: decodeVector(blob)})
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate corpus docs: %w", err)
	}
	return docs, normalized, nil
}

func (s *SQLiteStore) Save(ctx context.Context, docs []Document, normalized bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin corpus tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM corpus_docs`); err != nil {
		return fmt.Errorf("clear corpus docs: %w", err)
	}
	for _, doc := range docs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO corpus_docs (text, vector) VALUES (?, ?)`,
			doc.Text, encodeVector(doc.Vector)); err != nil {
			return fmt.Errorf("insert corpus doc: %w", err)
		}
	}

	flag := "0"
	if normalized {
		flag = "1"
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO corpus_meta (key, value) VALUES ('normalized', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, flag); err != nil {
		return fmt.Errorf("save corpus meta: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// 向量编码为小端 float64 序列。
func encodeVector(vec []float64) []byte {
	buf := make([]byte, 8*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

func decodeVector(blob []byte) []float64 {
	vec := make([]float64, len(blob)/8)
	for i := range vec {
		vec[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return vec
}
