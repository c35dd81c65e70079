package server

import (
	"context"
	"os"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/John-Robertt/movieorigin/internal/app/explore"
	"github.com/John-Robertt/movieorigin/internal/infra/logx"
	"github.com/John-Robertt/movieorigin/internal/render"
)

const appName = "Movie Origin Explorer"

// Searcher 是 POST /search 依赖的能力（*explore.Explorer 实现它）。
type Searcher interface {
	Search(ctx context.Context, rawTitle string) explore.Result
}

// Options 是构造 HTTP 服务所需的全部依赖。
type Options struct {
	// HomePage 是 GET / 返回的静态表单页路径（每次请求都重新读取）。
	HomePage string
	Searcher Searcher
	Log      logrus.FieldLogger
}

// New 构造 fiber app：
//   - GET /        静态表单页（读失败 => 500）
//   - POST /search 搜索（所有分支均 200）
//   - 其它         404
func New(opts Options) *fiber.App {
	log := opts.Log
	if log == nil {
		log = logx.Discard()
	}
	h := &handlers{homePage: opts.HomePage, searcher: opts.Searcher, log: log}

	app := fiber.New(fiber.Config{
		AppName:       appName,
		StrictRouting: true,
		CaseSensitive: true,
		ErrorHandler:  h.onError,
	})

	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))
	app.Use(recover.New())
	app.Use(func(c fiber.Ctx) error {
		logx.WithRequest(log, c).Info("Request")
		return c.Next()
	})

	app.Get("/", h.home)
	app.Post("/search", h.search)
	app.Use(h.notFound)

	return app
}

type handlers struct {
	homePage string
	searcher Searcher
	log      logrus.FieldLogger
}

func (h *handlers) home(c fiber.Ctx) error {
	b, err := os.ReadFile(h.homePage)
	if err != nil {
		logx.WithRequest(h.log, c).WithError(err).Error("Error loading home page")
		return sendHTML(c, fiber.StatusInternalServerError, render.ServerErrorPage())
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).Send(b)
}

func (h *handlers) search(c fiber.Ctx) error {
	res := h.searcher.Search(c.Context(), c.FormValue("title"))
	logx.WithRequest(h.log, c).WithFields(logrus.Fields{
		"title":   res.Query.Title,
		"outcome": string(res.Outcome),
	}).Info("Search finished")
	return sendHTML(c, fiber.StatusOK, res.HTML)
}

func (h *handlers) notFound(c fiber.Ctx) error {
	return sendHTML(c, fiber.StatusNotFound, render.NotFoundPage())
}

// onError 兜底：handler 返回的 error / recover 捕获的 panic 一律渲染为 HTML。
func (h *handlers) onError(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	page := render.ServerErrorPage()
	if e, ok := err.(*fiber.Error); ok && e.Code == fiber.StatusNotFound {
		code = fiber.StatusNotFound
		page = render.NotFoundPage()
	}
	logx.WithRequest(h.log, c).WithError(err).WithField("status", code).Error("Request error")
	return sendHTML(c, code, page)
}

func sendHTML(c fiber.Ctx, status int, html string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).SendString(html)
}
