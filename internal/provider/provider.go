package provider

import (
	"context"

	"github.com/John-Robertt/movieorigin/internal/domain"
)

// MovieFinder 把电影库的“搜索 -> 详情”两段请求收敛为一次查找。
//
// 约束：
// - 只取搜索结果的第一个条目，不做排序/打分
// - 不做缓存、不做重试、不做限速
// - 任何失败都返回 error（由上层统一折叠为“未找到”）
type MovieFinder interface {
	FindMovieByTitle(ctx context.Context, title string) (domain.MovieRecord, error)
}

// CountryFinder 按 ISO 3166-1 代码查找国家信息。
type CountryFinder interface {
	FindCountryByCode(ctx context.Context, code string) (domain.CountryRecord, error)
}
