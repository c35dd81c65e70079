package tmdb

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/John-Robertt/movieorigin/internal/domain"
	providerx "github.com/John-Robertt/movieorigin/internal/provider"
)

const (
	Name           = "tmdb"
	DefaultBaseURL = "https://api.themoviedb.org"
)

// Client 实现 TMDB 的“搜索 -> 详情”两段查找。
//
// 约束：
// - 搜索结果只取第一个 id，不做匹配/打分
// - 两次请求严格串行：详情请求依赖搜索结果
// - 不做缓存/重试（APIKey 为空时照常请求，由上游返回 401）
type Client struct {
	// BaseURL 为空时使用 https://api.themoviedb.org（测试时指向 httptest）。
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Log     logrus.FieldLogger
}

var _ providerx.MovieFinder = (*Client)(nil)

func (c *Client) baseURL() string {
	u := strings.TrimSpace(c.BaseURL)
	if u == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(u, "/")
}

type searchResponse struct {
	Results []struct {
		ID int64 `json:"id"`
	} `json:"results"`
}

type detailResponse struct {
	ID                  int64  `json:"id"`
	Title               string `json:"title"`
	OriginalTitle       string `json:"original_title"`
	ReleaseDate         string `json:"release_date"`
	Overview            string `json:"overview"`
	ProductionCountries []struct {
		ISO31661 string `json:"iso_3166_1"`
		Name     string `json:"name"`
	} `json:"production_countries"`
}

// FindMovieByTitle 先搜索再取详情。
func (c *Client) FindMovieByTitle(ctx context.Context, title string) (domain.MovieRecord, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.MovieRecord{}, &providerx.Error{Provider: Name, Stage: "search", Err: &providerx.ValidationError{Field: "title", Reason: "不能为空"}}
	}

	id, err := c.search(ctx, title)
	if err != nil {
		return domain.MovieRecord{}, &providerx.Error{Provider: Name, Stage: "search", Err: err}
	}
	m, err := c.detail(ctx, id)
	if err != nil {
		return domain.MovieRecord{}, &providerx.Error{Provider: Name, Stage: "detail", Err: err}
	}
	return m, nil
}

func (c *Client) search(ctx context.Context, title string) (int64, error) {
	path := "/3/search/movie?api_key=" + url.QueryEscape(c.APIKey) +
		"&query=" + url.QueryEscape(title) + "&include_adult=false"
	c.logRequest("TMDB search request", path)

	u := c.baseURL() + path
	b, err := providerx.FetchBody(ctx, c.HTTP, u)
	if err != nil {
		return 0, err
	}
	var sr searchResponse
	if err := providerx.DecodeJSON(providerx.Redact(u), b, &sr); err != nil {
		return 0, err
	}
	if len(sr.Results) == 0 {
		return 0, providerx.ErrNotFound
	}
	return sr.Results[0].ID, nil
}

func (c *Client) detail(ctx context.Context, id int64) (domain.MovieRecord, error) {
	path := "/3/movie/" + strconv.FormatInt(id, 10) + "?api_key=" + url.QueryEscape(c.APIKey)
	c.logRequest("TMDB details request", path)

	u := c.baseURL() + path
	b, err := providerx.FetchBody(ctx, c.HTTP, u)
	if err != nil {
		return domain.MovieRecord{}, err
	}
	var dr detailResponse
	if err := providerx.DecodeJSON(providerx.Redact(u), b, &dr); err != nil {
		return domain.MovieRecord{}, err
	}
	return toRecord(id, dr), nil
}

func toRecord(id int64, dr detailResponse) domain.MovieRecord {
	title := strings.TrimSpace(dr.Title)
	if title == "" {
		title = strings.TrimSpace(dr.OriginalTitle)
	}
	if dr.ID != 0 {
		id = dr.ID
	}
	codes := make([]string, 0, len(dr.ProductionCountries))
	for _, pc := range dr.ProductionCountries {
		codes = append(codes, pc.ISO31661)
	}
	return domain.MovieRecord{
		ID:                     id,
		Title:                  title,
		ReleaseDate:            dr.ReleaseDate,
		Overview:               dr.Overview,
		ProductionCountryCodes: codes,
	}
}

func (c *Client) logRequest(msg, path string) {
	if c.Log == nil {
		return
	}
	c.Log.WithField("path", providerx.Redact(path)).Info(msg)
}
