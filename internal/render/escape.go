package render

import (
	"fmt"
	"strings"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Escape 把任意标量转成文本后替换 & < > "，其余字符原样保留。
//
// 注意：不是幂等的（实体本身含 &），重复调用会再次转义。
func Escape(v any) string {
	return escaper.Replace(fmt.Sprint(v))
}
