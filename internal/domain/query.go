package domain

import "strings"

// SearchQuery 是一次搜索请求的输入（仅 title）。
type SearchQuery struct {
	Title string
}

// NewSearchQuery 只做首尾空白裁剪；不做其它清洗。
func NewSearchQuery(raw string) SearchQuery {
	return SearchQuery{Title: strings.TrimSpace(raw)}
}

func (q SearchQuery) Empty() bool { return q.Title == "" }
