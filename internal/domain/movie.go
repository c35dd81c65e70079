package domain

// MovieRecord 是电影库详情接口解析得到的最小可用集。
//
// 约束：
// - 文本字段缺失时保持空串，由渲染层统一回退为 "N/A"
// - ProductionCountryCodes 保持上游顺序；只有第一个会被使用，不做排序/去重
type MovieRecord struct {
	ID          int64
	Title       string
	ReleaseDate string // ISO date, e.g. "2019-05-30"
	Overview    string

	ProductionCountryCodes []string
}

// PrimaryCountryCode 返回第一个出品国家代码；没有时 ok=false。
func (m MovieRecord) PrimaryCountryCode() (string, bool) {
	if len(m.ProductionCountryCodes) == 0 {
		return "", false
	}
	return m.ProductionCountryCodes[0], true
}
