package restcountries

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/John-Robertt/movieorigin/internal/domain"
	providerx "github.com/John-Robertt/movieorigin/internal/provider"
)

const (
	Name           = "restcountries"
	DefaultBaseURL = "https://restcountries.com"

	fields = "name,capital,region,population,flags"
)

// Client 按 ISO 3166-1 代码查询 REST Countries（v3.1）。
type Client struct {
	// BaseURL 为空时使用 https://restcountries.com。
	BaseURL string
	HTTP    *http.Client
	Log     logrus.FieldLogger
}

var _ providerx.CountryFinder = (*Client)(nil)

func (c *Client) baseURL() string {
	u := strings.TrimSpace(c.BaseURL)
	if u == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(u, "/")
}

type country struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Capital    []string `json:"capital"`
	Region     string   `json:"region"`
	Population int64    `json:"population"`
	Flags      struct {
		PNG string `json:"png"`
	} `json:"flags"`
}

// FindCountryByCode 查询一次；响应可能是对象，也可能是数组（取第一个）。
func (c *Client) FindCountryByCode(ctx context.Context, code string) (domain.CountryRecord, error) {
	rec, err := c.find(ctx, code)
	if err != nil {
		return domain.CountryRecord{}, &providerx.Error{Provider: Name, Stage: "lookup", Err: err}
	}
	return rec, nil
}

func (c *Client) find(ctx context.Context, code string) (domain.CountryRecord, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.CountryRecord{}, &providerx.ValidationError{Field: "code", Reason: "不能为空"}
	}

	path := "/v3.1/alpha/" + url.PathEscape(code) + "?fields=" + fields
	if c.Log != nil {
		c.Log.WithField("path", path).Info("REST Countries request")
	}

	u := c.baseURL() + path
	b, err := providerx.FetchBody(ctx, c.HTTP, u)
	if err != nil {
		return domain.CountryRecord{}, err
	}

	obj, err := firstObject(u, b)
	if err != nil {
		return domain.CountryRecord{}, err
	}
	var ct country
	if err := providerx.DecodeJSON(u, obj, &ct); err != nil {
		return domain.CountryRecord{}, err
	}
	return toRecord(code, ct), nil
}

// firstObject 统一“对象 / 数组”两种响应形态；空数组与 null 视为未找到。
func firstObject(u string, body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, &providerx.ParseError{URL: u, Err: errEmptyBody}
	}
	switch trimmed[0] {
	case '[':
		var arr []json.RawMessage
		if err := providerx.DecodeJSON(u, trimmed, &arr); err != nil {
			return nil, err
		}
		if len(arr) == 0 || isNull(arr[0]) {
			return nil, providerx.ErrNotFound
		}
		return arr[0], nil
	case '{':
		return json.RawMessage(trimmed), nil
	default:
		if isNull(trimmed) {
			return nil, providerx.ErrNotFound
		}
		return nil, &providerx.ParseError{URL: u, Err: errNotObject}
	}
}

func isNull(b []byte) bool { return string(bytes.TrimSpace(b)) == "null" }

func toRecord(code string, ct country) domain.CountryRecord {
	capital := ""
	if len(ct.Capital) > 0 {
		capital = ct.Capital[0]
	}
	return domain.CountryRecord{
		Code:         code,
		CommonName:   ct.Name.Common,
		Capital:      capital,
		Region:       ct.Region,
		Population:   ct.Population,
		FlagImageURL: strings.TrimSpace(ct.Flags.PNG),
	}
}
