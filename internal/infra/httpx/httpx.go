package httpx

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultUserAgent 用于所有外部 API 请求（调用方已设置 UA 时不覆盖）。
const DefaultUserAgent = "movieorigin/1.0 (+https://github.com/John-Robertt/movieorigin)"

// Transport 把“统一 UA + 每请求新连接”固化为外部 API 的网络策略。
//
// 约束：
// - 不重试、不设超时：失败直接交给上层折叠为“未找到”
// - 连接只服务一次请求/响应交换，不复用、不入池
type Transport struct {
	Base *http.Transport

	UserAgent string

	// DisableKeepAlives 决定是否对 Request 设置 Close=true（额外保险）。
	// 真正禁用 keep-alive 依赖 Base.DisableKeepAlives。
	DisableKeepAlives bool
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	if t.Base == nil {
		return nil, errors.New("nil base transport")
	}

	// Clone 会复制 Header 等，避免在 RoundTripper 内部“污染”调用方的 request。
	r := req.Clone(req.Context())
	if r.Header.Get("User-Agent") == "" {
		ua := t.UserAgent
		if ua == "" {
			ua = DefaultUserAgent
		}
		r.Header.Set("User-Agent", ua)
	}
	if t.DisableKeepAlives {
		r.Close = true
	}
	return t.Base.RoundTrip(r)
}

// NewAPIClient 构造访问 TMDB / REST Countries 的 HTTP client。
//
// 规则：
// - proxyURL 非空：所有请求走代理
// - 始终禁用 keep-alive（每请求新连接）
// - 不设置 Client.Timeout（由请求 ctx 决定生命周期）
func NewAPIClient(proxyURL string) (*http.Client, error) {
	base := &http.Transport{
		Proxy:               nil,
		DisableKeepAlives:   true,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	proxyURL = strings.TrimSpace(proxyURL)
	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, err
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, errors.New("proxy url 缺少 scheme 或 host")
		}
		base.Proxy = http.ProxyURL(u)
	}

	return &http.Client{
		Transport: &Transport{
			Base:              base,
			UserAgent:         DefaultUserAgent,
			DisableKeepAlives: true,
		},
	}, nil
}
