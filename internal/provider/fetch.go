package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// FetchBody 发起一次 GET 并把响应体完整读入内存。
//
// 错误归类：
// - 请求构造/传输/读取失败：*NetworkError
// - 非 2xx：*HTTPStatusError（响应体丢弃）
func FetchBody(ctx context.Context, c *http.Client, u string) ([]byte, error) {
	if c == nil {
		return nil, errors.New("http client 不能为空")
	}
	safe := Redact(u)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &NetworkError{URL: safe, Err: redactURLError(err)}
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: safe, Err: redactURLError(err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &HTTPStatusError{URL: safe, StatusCode: resp.StatusCode, Location: resp.Header.Get("Location")}
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: safe, Err: err}
	}
	return b, nil
}

// Redact 把 URL 中 api_key 的值替换掉，避免 key 进入日志与错误信息。
func Redact(s string) string {
	const k = "api_key="
	i := strings.Index(s, k)
	if i < 0 {
		return s
	}
	start := i + len(k)
	end := strings.IndexByte(s[start:], '&')
	if end < 0 {
		return s[:start] + "REDACTED"
	}
	return s[:start] + "REDACTED" + s[start+end:]
}

// redactURLError 处理 *url.Error：它的 Error() 会带上完整 URL。
func redactURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return &url.Error{Op: ue.Op, URL: Redact(ue.URL), Err: ue.Err}
	}
	return err
}

// DecodeJSON 把 body 解析到 v；失败统一为 *ParseError。
func DecodeJSON(u string, body []byte, v any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return &ParseError{URL: u, Err: errors.New("响应体为空")}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &ParseError{URL: u, Err: err}
	}
	return nil
}
