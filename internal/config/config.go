package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/John-Robertt/movieorigin/internal/infra/logx"
)

const (
	// ErrCodeInvalid 表示环境变量/.env 无法解析，或字段不合法。
	ErrCodeInvalid = "config_invalid"
	// ErrCodeCredentials 表示凭据文件无法读取/解析。
	ErrCodeCredentials = "credentials_invalid"
)

const (
	DefaultAddress         = ":3000"
	DefaultHomePage        = "html/index.html"
	DefaultCredentialsPath = "auth/credentials.json"
)

// CLIArgs 只包含 CLI 暴露的三项入口，并保留“是否显式指定”的信息。
type CLIArgs struct {
	Address    string
	AddressSet bool

	CredentialsPath string
	CredentialsSet  bool

	HomePage    string
	HomePageSet bool
}

// FileConfig 对应环境变量（以及 <cwd>/.env）的解析结构。
type FileConfig struct {
	Address          string `env:"MOVIEORIGIN_ADDRESS" envDefault:":3000"`
	HomePage         string `env:"MOVIEORIGIN_HOME_PAGE" envDefault:"html/index.html"`
	CredentialsPath  string `env:"MOVIEORIGIN_CREDENTIALS_PATH" envDefault:"auth/credentials.json"`
	TMDBBaseURL      string `env:"MOVIEORIGIN_TMDB_BASE_URL" envDefault:"https://api.themoviedb.org"`
	CountriesBaseURL string `env:"MOVIEORIGIN_COUNTRIES_BASE_URL" envDefault:"https://restcountries.com"`
	ProxyURL         string `env:"MOVIEORIGIN_PROXY_URL"`

	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"text"`
	LogFile       string `env:"LOG_FILE"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE" envDefault:"100"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"7"`
	LogMaxAgeDays int    `env:"LOG_MAX_AGE" envDefault:"7"`
	LogCompress   bool   `env:"LOG_COMPRESS" envDefault:"true"`
}

// EffectiveConfig 是合并并做最小规范化后的最终配置（实现层直接消费）。
type EffectiveConfig struct {
	Address         string `validate:"required"`
	HomePage        string `validate:"required"`
	CredentialsPath string `validate:"required"`

	TMDBBaseURL      string `validate:"required,url,startswith=http"`
	CountriesBaseURL string `validate:"required,url,startswith=http"`
	ProxyURL         string `validate:"omitempty,url"`

	Log logx.Config
}

// Credentials 对应 auth/credentials.json。
type Credentials struct {
	TMDBAPIKey string `json:"tmdb_api_key"`
}

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s：%q：%v", e.Code, e.Path, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s：%v", e.Code, e.Err)
	default:
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

var validate = validator.New()

// LoadEffective 读取 <cwd>/.env（可选）与环境变量，然后与 CLI 参数合并为最终配置。
//
// 覆盖优先级（固定）：
// - address / credentials / home：CLI > 环境变量（含 .env）> 默认
// - 其他字段：仅由环境变量控制（CLI 不暴露）
// - 相对路径一律以 cwd 为基准转为绝对路径
func LoadEffective(cwd string, cli CLIArgs) (EffectiveConfig, error) {
	cwdAbs, err := filepath.Abs(cwd)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cwd, Err: err}
	}

	dotenv := filepath.Join(cwdAbs, ".env")
	if _, err := os.Stat(dotenv); err == nil {
		// godotenv 不覆盖已存在的环境变量：显式 export 优先于 .env。
		if err := godotenv.Load(dotenv); err != nil {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: dotenv, Err: err}
		}
	}

	var fc FileConfig
	if err := env.Parse(&fc); err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Err: err}
	}
	return merge(cwdAbs, cli, fc)
}

func merge(cwdAbs string, cli CLIArgs, fc FileConfig) (EffectiveConfig, error) {
	address := strings.TrimSpace(fc.Address)
	if cli.AddressSet {
		address = strings.TrimSpace(cli.Address)
	}
	home := fc.HomePage
	if cli.HomePageSet {
		home = cli.HomePage
	}
	creds := fc.CredentialsPath
	if cli.CredentialsSet {
		creds = cli.CredentialsPath
	}

	eff := EffectiveConfig{
		Address:          address,
		HomePage:         absCleanFrom(cwdAbs, home),
		CredentialsPath:  absCleanFrom(cwdAbs, creds),
		TMDBBaseURL:      strings.TrimRight(strings.TrimSpace(fc.TMDBBaseURL), "/"),
		CountriesBaseURL: strings.TrimRight(strings.TrimSpace(fc.CountriesBaseURL), "/"),
		ProxyURL:         strings.TrimSpace(fc.ProxyURL),
		Log: logx.Config{
			Level:      strings.ToLower(strings.TrimSpace(fc.LogLevel)),
			Format:     strings.ToLower(strings.TrimSpace(fc.LogFormat)),
			File:       absCleanFrom(cwdAbs, fc.LogFile),
			MaxSizeMB:  fc.LogMaxSizeMB,
			MaxBackups: fc.LogMaxBackups,
			MaxAgeDays: fc.LogMaxAgeDays,
			Compress:   fc.LogCompress,
		},
	}
	if err := validate.Struct(eff); err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Err: err}
	}
	return eff, nil
}

// LoadCredentials 读取凭据 JSON。调用方决定失败时是否继续（服务端只记录日志）。
func LoadCredentials(path string) (Credentials, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, &Error{Code: ErrCodeCredentials, Path: path, Err: err}
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return Credentials{}, &Error{Code: ErrCodeCredentials, Path: path, Err: err}
	}
	c.TMDBAPIKey = strings.TrimSpace(c.TMDBAPIKey)
	return c, nil
}

// absCleanFrom 以 base 为基准，把 p 变为 clean + absolute；空串保持为空。
func absCleanFrom(base, p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = filepath.Clean(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(base, p))
}
