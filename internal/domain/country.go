package domain

// CountryRecord 是国家信息接口返回的最小可用集。
//
// 约束：
// - Capital 只取上游 capital 序列的第一个
// - Population 为 0 视为缺失（渲染为 "N/A"）
// - FlagImageURL 为空时不渲染图片
type CountryRecord struct {
	Code         string
	CommonName   string
	Capital      string
	Region       string
	Population   int64
	FlagImageURL string
}
