package render

import (
	"strconv"
	"strings"

	"github.com/John-Robertt/movieorigin/internal/domain"
)

const (
	appTitle     = "Movie Origin Explorer"
	notAvailable = "N/A"
)

// 各分支的固定提示语（文案是对外契约）。
const (
	MsgEmptyTitle      = "Please enter a movie title."
	MsgNoCountryInfo   = "Movie found but has no production country info."
	MsgCountryNotFound = "Could not load country info."
	MsgNotFound        = "404 Not Found"
	MsgServerError     = "Server error"
)

// ResultPage 组合电影与国家信息为完整 HTML 文档。
// 所有来自用户/上游的文本都会先 Escape；缺失值统一显示 N/A。
func ResultPage(m domain.MovieRecord, c domain.CountryRecord) string {
	var b strings.Builder
	b.WriteString("<h1>" + appTitle + "</h1>\n\n")

	b.WriteString("<h2>Movie Info</h2>\n")
	field(&b, "Title", orNA(m.Title))
	field(&b, "Release Date", orNA(m.ReleaseDate))
	field(&b, "Overview", orNA(m.Overview))

	b.WriteString("\n<h2>Country Info</h2>\n")
	field(&b, "Name", orNA(c.CommonName))
	field(&b, "Capital", orNA(c.Capital))
	field(&b, "Region", orNA(c.Region))
	field(&b, "Population", population(c.Population))
	if flag := strings.TrimSpace(c.FlagImageURL); flag != "" {
		b.WriteString(`<img src="` + Escape(flag) + `" width="200">` + "\n")
	}

	b.WriteString("\n" + `<p><a href="/">Search again</a></p>` + "\n")
	return document(b.String())
}

// MessagePage 渲染单条提示语 + 返回链接。msg 会被转义。
func MessagePage(msg string) string {
	return messageHTML(Escape(msg))
}

// NoMovieFoundPage 的 title 来自用户输入，必须转义后再插入。
func NoMovieFoundPage(title string) string {
	return messageHTML(`No movie found for "` + Escape(title) + `".`)
}

func messageHTML(safe string) string {
	return document("<h1>" + safe + `</h1><a href="/">Back</a>` + "\n")
}

func NotFoundPage() string { return document("<h1>" + MsgNotFound + "</h1>\n") }

func ServerErrorPage() string { return document("<h1>" + MsgServerError + "</h1>\n") }

func field(b *strings.Builder, label, value string) {
	b.WriteString("<p><strong>" + label + ":</strong> " + Escape(value) + "</p>\n")
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func population(n int64) string {
	if n == 0 {
		return notAvailable
	}
	return strconv.FormatInt(n, 10)
}

func document(body string) string {
	return "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>" + appTitle +
		"</title>\n</head>\n<body>\n" + body + "</body>\n</html>\n"
}
