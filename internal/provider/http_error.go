package provider

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound 表示上游响应格式正确，但没有可用结果（例如搜索结果为空）。
var ErrNotFound = errors.New("not found")

// NetworkError 表示连接/传输层失败（请求根本没拿到响应）。
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	if e == nil || e.Err == nil {
		return "network error"
	}
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPStatusError 表示上游返回了非 2xx 的 HTTP 状态码。
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Location   string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "HTTP status error"
	}
	loc := strings.TrimSpace(e.Location)
	if loc == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d location=%s", e.StatusCode, loc)
}

// ParseError 表示响应体不是预期的 JSON 结构。
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	if e == nil || e.Err == nil {
		return "parse error"
	}
	return "parse error: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError 表示调用方输入为空/不合法（不会发出网络请求）。
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "validation error"
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Error 是 provider 阶段的可追溯错误。
type Error struct {
	Provider string // "tmdb" / "restcountries"
	Stage    string // "search" / "detail" / "lookup"
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider=%s stage=%s: %v", e.Provider, e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

const (
	KindNetwork    = "network"
	KindStatus     = "status"
	KindParse      = "parse"
	KindValidation = "validation"
	KindNotFound   = "not_found"
	KindUnknown    = "unknown"
)

// Kind 把 error 归类（仅用于日志；对用户统一呈现为“未找到”）。
func Kind(err error) string {
	if err == nil {
		return ""
	}
	var (
		ne *NetworkError
		se *HTTPStatusError
		pe *ParseError
		ve *ValidationError
	)
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.As(err, &se):
		return KindStatus
	case errors.As(err, &pe):
		return KindParse
	case errors.As(err, &ve):
		return KindValidation
	case errors.As(err, &ne):
		return KindNetwork
	default:
		return KindUnknown
	}
}
