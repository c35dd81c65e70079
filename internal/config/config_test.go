package config

import (
	"os"
	"path/filepath"
	"testing"
)

var envKeys = []string{
	"MOVIEORIGIN_ADDRESS",
	"MOVIEORIGIN_HOME_PAGE",
	"MOVIEORIGIN_CREDENTIALS_PATH",
	"MOVIEORIGIN_TMDB_BASE_URL",
	"MOVIEORIGIN_COUNTRIES_BASE_URL",
	"MOVIEORIGIN_PROXY_URL",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"LOG_FILE",
}

// clearEnv 让每个用例从“未设置”开始；t.Setenv 负责在结束时还原。
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("unset %s 失败：%v", k, err)
		}
	}
}

func TestLoadEffective_Defaults(t *testing.T) {
	clearEnv(t)
	cwd := t.TempDir()

	eff, err := LoadEffective(cwd, CLIArgs{})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if eff.Address != DefaultAddress {
		t.Fatalf("期望 address=%q，实际=%q", DefaultAddress, eff.Address)
	}
	if want := filepath.Join(cwd, DefaultHomePage); eff.HomePage != want {
		t.Fatalf("期望 home=%q，实际=%q", want, eff.HomePage)
	}
	if want := filepath.Join(cwd, DefaultCredentialsPath); eff.CredentialsPath != want {
		t.Fatalf("期望 credentials=%q，实际=%q", want, eff.CredentialsPath)
	}
	if eff.TMDBBaseURL != "https://api.themoviedb.org" || eff.CountriesBaseURL != "https://restcountries.com" {
		t.Fatalf("默认 base url 不符合预期：%+v", eff)
	}
	if eff.Log.Level != "info" || eff.Log.Format != "text" || eff.Log.File != "" {
		t.Fatalf("默认日志配置不符合预期：%+v", eff.Log)
	}
}

func TestLoadEffective_EnvThenCLI(t *testing.T) {
	clearEnv(t)
	cwd := t.TempDir()
	t.Setenv("MOVIEORIGIN_ADDRESS", "127.0.0.1:8081")
	t.Setenv("MOVIEORIGIN_CREDENTIALS_PATH", "/etc/movieorigin/creds.json")
	t.Setenv("MOVIEORIGIN_TMDB_BASE_URL", "http://127.0.0.1:9999/")

	eff, err := LoadEffective(cwd, CLIArgs{})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if eff.Address != "127.0.0.1:8081" || eff.CredentialsPath != "/etc/movieorigin/creds.json" {
		t.Fatalf("环境变量未生效：%+v", eff)
	}
	if eff.TMDBBaseURL != "http://127.0.0.1:9999" {
		t.Fatalf("base url 应去掉末尾 /：%q", eff.TMDBBaseURL)
	}

	// CLI 显式指定，则覆盖环境变量。
	eff2, err := LoadEffective(cwd, CLIArgs{
		Address:         ":9000",
		AddressSet:      true,
		CredentialsPath: "c.json",
		CredentialsSet:  true,
	})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if eff2.Address != ":9000" || eff2.CredentialsPath != filepath.Join(cwd, "c.json") {
		t.Fatalf("CLI 未覆盖环境变量：%+v", eff2)
	}
}

func TestLoadEffective_DotEnv(t *testing.T) {
	clearEnv(t)
	cwd := t.TempDir()
	writeFile(t, filepath.Join(cwd, ".env"), []byte("MOVIEORIGIN_HOME_PAGE=static/form.html\nLOG_FORMAT=json\n"))

	eff, err := LoadEffective(cwd, CLIArgs{})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if want := filepath.Join(cwd, "static", "form.html"); eff.HomePage != want {
		t.Fatalf("期望 home=%q，实际=%q", want, eff.HomePage)
	}
	if eff.Log.Format != "json" {
		t.Fatalf("期望 .env 中的 LOG_FORMAT 生效，实际=%q", eff.Log.Format)
	}
}

func TestLoadEffective_InvalidURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("MOVIEORIGIN_COUNTRIES_BASE_URL", "restcountries.com")

	_, err := LoadEffective(t.TempDir(), CLIArgs{})
	if Code(err) != ErrCodeInvalid {
		t.Fatalf("期望 %q，实际 err=%v (code=%q)", ErrCodeInvalid, err, Code(err))
	}
}

func TestLoadEffective_InvalidProxyURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("MOVIEORIGIN_PROXY_URL", "not a url")

	_, err := LoadEffective(t.TempDir(), CLIArgs{})
	if Code(err) != ErrCodeInvalid {
		t.Fatalf("期望 %q，实际 err=%v (code=%q)", ErrCodeInvalid, err, Code(err))
	}
}

func TestLoadEffective_EmptyCLIAddress(t *testing.T) {
	clearEnv(t)
	_, err := LoadEffective(t.TempDir(), CLIArgs{Address: "  ", AddressSet: true})
	if Code(err) != ErrCodeInvalid {
		t.Fatalf("期望 %q，实际 err=%v (code=%q)", ErrCodeInvalid, err, Code(err))
	}
}

func TestLoadCredentials(t *testing.T) {
	dir := t.TempDir()
	ok := filepath.Join(dir, "credentials.json")
	writeFile(t, ok, []byte(`{"tmdb_api_key":" abc123 "}`))

	c, err := LoadCredentials(ok)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if c.TMDBAPIKey != "abc123" {
		t.Fatalf("期望 key=abc123，实际=%q", c.TMDBAPIKey)
	}

	if _, err := LoadCredentials(filepath.Join(dir, "missing.json")); Code(err) != ErrCodeCredentials {
		t.Fatalf("缺失文件应返回 %q，实际 err=%v", ErrCodeCredentials, err)
	}

	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, []byte(`{`))
	if _, err := LoadCredentials(bad); Code(err) != ErrCodeCredentials {
		t.Fatalf("非法 JSON 应返回 %q，实际 err=%v", ErrCodeCredentials, err)
	}
}

func writeFile(t *testing.T, path string, b []byte) {
	t.Helper()
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("写入文件失败 %q：%v", path, err)
	}
}
