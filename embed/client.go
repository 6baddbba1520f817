// Package embed 提供文本嵌入服务的 HTTP 客户端。
//
// 协议：POST {endpoint}/embed，请求 {"text": "..."}，响应 {"embedding": [...]}。
// 嵌入服务是外部黑盒（如 SBERT 句向量服务），本包只做一次带超时的调用，
// 任何失败都降级为空向量，由下游短路为空结果。
package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// 默认单次调用超时
const defaultTimeout = 30 * time.Second

// Client 是 core.EmbeddingService 的 HTTP 实现。
//
// 零值不可用，必须通过 NewClient 创建。
type Client struct {
	endpoint string
	timeout  time.Duration
	client   *http.Client
}

// Option Client 的可选配置
type Option func(*Client)

// WithTimeout 设置单次调用超时（<=0 时使用默认值 30s）。
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient 替换底层 HTTP 客户端（测试或定制传输层时使用）。
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// NewClient 创建嵌入服务客户端。endpoint 形如 "http://localhost:8080"。
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		timeout:  defaultTimeout,
		client:   &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string {
	return "embed.http"
}

type embedRequest struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Embed 调用嵌入服务。单次尝试、不重试，失败降级为空向量：
// 网络错误、非 200 状态码、响应解析失败、超时，全部返回 nil。
func (c *Client) Embed(ctx context.Context, text string) []float64 {
	body, err := json.Marshal(embedRequest{Text: text})
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/embed", bytes.NewReader(body))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var out embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil
	}
	return out.Embedding
}
