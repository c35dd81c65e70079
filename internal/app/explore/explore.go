package explore

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/John-Robertt/movieorigin/internal/domain"
	"github.com/John-Robertt/movieorigin/internal/infra/logx"
	"github.com/John-Robertt/movieorigin/internal/provider"
	"github.com/John-Robertt/movieorigin/internal/render"
)

// Outcome 是一次搜索的终态（每个终态对应一种页面）。
type Outcome string

const (
	OutcomeEmptyTitle      Outcome = "empty_title"
	OutcomeMovieNotFound   Outcome = "movie_not_found"
	OutcomeNoCountryInfo   Outcome = "no_country_info"
	OutcomeCountryNotFound Outcome = "country_not_found"
	OutcomeFound           Outcome = "found"
)

// Result 是 Search 的完整输出；HTML 总是完整文档。
type Result struct {
	Outcome Outcome
	Query   domain.SearchQuery
	Movie   domain.MovieRecord
	Country domain.CountryRecord
	// Err 是导致“未找到”终态的原始错误（只用于日志，不呈现给用户）。
	Err  error
	HTML string
}

// Explorer 串联“电影查找 -> 取第一个出品国家 -> 国家查找 -> 渲染”。
//
// 约束：
// - 严格串行：任一时刻最多一个外部请求在途
// - 不重试：任何 provider 错误都折叠为对应分支的“未找到”页面
// - 无共享可变状态：同一个 Explorer 可被多个请求并发使用
type Explorer struct {
	Movies    provider.MovieFinder
	Countries provider.CountryFinder
	Log       logrus.FieldLogger
}

var errNoFinder = errors.New("explorer 未配置 finder")

// Search 执行一次搜索。rawTitle 只做首尾空白裁剪。
func (e *Explorer) Search(ctx context.Context, rawTitle string) Result {
	q := domain.NewSearchQuery(rawTitle)
	log := e.logger().WithField("title", q.Title)

	if q.Empty() {
		return Result{Outcome: OutcomeEmptyTitle, Query: q, HTML: render.MessagePage(render.MsgEmptyTitle)}
	}

	log.Info("Searching TMDB")
	movie, err := e.findMovie(ctx, q.Title)
	if err != nil {
		log.WithError(err).WithField("kind", provider.Kind(err)).Info("movie lookup failed")
		return Result{Outcome: OutcomeMovieNotFound, Query: q, Err: err, HTML: render.NoMovieFoundPage(q.Title)}
	}

	code, ok := movie.PrimaryCountryCode()
	if !ok {
		log.WithField("movie_id", movie.ID).Info("movie has no production country")
		return Result{Outcome: OutcomeNoCountryInfo, Query: q, Movie: movie, HTML: render.MessagePage(render.MsgNoCountryInfo)}
	}
	log = log.WithField("country_code", code)
	log.Info("Country code resolved")

	country, err := e.findCountry(ctx, code)
	if err != nil {
		log.WithError(err).WithField("kind", provider.Kind(err)).Info("country lookup failed")
		return Result{Outcome: OutcomeCountryNotFound, Query: q, Movie: movie, Err: err, HTML: render.MessagePage(render.MsgCountryNotFound)}
	}

	return Result{
		Outcome: OutcomeFound,
		Query:   q,
		Movie:   movie,
		Country: country,
		HTML:    render.ResultPage(movie, country),
	}
}

func (e *Explorer) findMovie(ctx context.Context, title string) (domain.MovieRecord, error) {
	if e.Movies == nil {
		return domain.MovieRecord{}, errNoFinder
	}
	return e.Movies.FindMovieByTitle(ctx, title)
}

func (e *Explorer) findCountry(ctx context.Context, code string) (domain.CountryRecord, error) {
	if e.Countries == nil {
		return domain.CountryRecord{}, errNoFinder
	}
	return e.Countries.FindCountryByCode(ctx, code)
}

func (e *Explorer) logger() logrus.FieldLogger {
	if e.Log == nil {
		return logx.Discard()
	}
	return e.Log
}
