package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewAPIClient_ProxyAndKeepAlive(t *testing.T) {
	c, err := NewAPIClient("http://127.0.0.1:8080")
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	tr, ok := c.Transport.(*Transport)
	if !ok {
		t.Fatalf("期望 *Transport，实际 %T", c.Transport)
	}
	if tr.Base.Proxy == nil {
		t.Fatalf("期望启用代理，但 Proxy=nil")
	}
	if !tr.Base.DisableKeepAlives || !tr.DisableKeepAlives {
		t.Fatalf("期望禁用 keep-alive")
	}
	if c.Timeout != 0 {
		t.Fatalf("不应设置 client 超时，实际 %v", c.Timeout)
	}
}

func TestNewAPIClient_NoProxy(t *testing.T) {
	c, err := NewAPIClient("  ")
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	tr := c.Transport.(*Transport)
	if tr.Base.Proxy != nil {
		t.Fatalf("不期望启用代理，但 Proxy!=nil")
	}
	if !tr.Base.DisableKeepAlives {
		t.Fatalf("无代理时同样应禁用 keep-alive")
	}
}

func TestNewAPIClient_InvalidProxyURL(t *testing.T) {
	for _, p := range []string{"http://[::1", "127.0.0.1:8080"} {
		if _, err := NewAPIClient(p); err == nil {
			t.Fatalf("proxy=%q 期望错误，但得到 nil", p)
		}
	}
}

func TestTransport_SetsUserAgentAndClose(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c, err := NewAPIClient("")
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	resp, err := c.Get(srv.URL)
	if err != nil {
		t.Fatalf("请求失败：%v", err)
	}
	resp.Body.Close()
	if gotUA != DefaultUserAgent {
		t.Fatalf("UA 不符合预期：%q", gotUA)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	req.Header.Set("User-Agent", "custom")
	resp, err = c.Do(req)
	if err != nil {
		t.Fatalf("请求失败：%v", err)
	}
	resp.Body.Close()
	if gotUA != "custom" {
		t.Fatalf("调用方设置的 UA 不应被覆盖：%q", gotUA)
	}
	if req.Close {
		t.Fatalf("RoundTrip 不应修改调用方的 request")
	}
}
