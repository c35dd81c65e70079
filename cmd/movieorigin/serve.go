package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/John-Robertt/movieorigin/internal/app/explore"
	"github.com/John-Robertt/movieorigin/internal/config"
	"github.com/John-Robertt/movieorigin/internal/infra/httpx"
	"github.com/John-Robertt/movieorigin/internal/infra/logx"
	"github.com/John-Robertt/movieorigin/internal/provider/restcountries"
	"github.com/John-Robertt/movieorigin/internal/provider/tmdb"
	"github.com/John-Robertt/movieorigin/internal/server"
)

const shutdownGrace = 5 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务",
		Long: `启动 HTTP 服务：
  GET  /        返回搜索表单页
  POST /search  按 title 搜索并渲染结果

配置优先级：命令行参数 > 环境变量（含 ./.env）> 默认值。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			eff, err := config.LoadEffective(cwd, cliArgs(cmd))
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), eff)
		},
	}
	cmd.Flags().String("addr", config.DefaultAddress, "监听地址")
	cmd.Flags().String("credentials", config.DefaultCredentialsPath, "凭据 JSON 文件（含 tmdb_api_key）")
	cmd.Flags().String("home", config.DefaultHomePage, "首页 HTML 文件")
	return cmd
}

// cliArgs 只把“显式指定”的参数标记为 Set，保证环境变量能在未指定时生效。
func cliArgs(cmd *cobra.Command) config.CLIArgs {
	fs := cmd.Flags()
	addr, _ := fs.GetString("addr")
	creds, _ := fs.GetString("credentials")
	home, _ := fs.GetString("home")
	return config.CLIArgs{
		Address:         addr,
		AddressSet:      fs.Changed("addr"),
		CredentialsPath: creds,
		CredentialsSet:  fs.Changed("credentials"),
		HomePage:        home,
		HomePageSet:     fs.Changed("home"),
	}
}

func runServe(ctx context.Context, eff config.EffectiveConfig) error {
	log, err := logx.New(eff.Log)
	if err != nil {
		return err
	}

	app, err := buildApp(eff, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.WithField("addr", eff.Address).Info("Server running")
		serveErr <- app.Listen(eff.Address, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		log.Info("Shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := app.ShutdownWithContext(sctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return nil
	}
}

// buildApp 装配 clients -> explorer -> fiber app。
// 凭据读取失败只记录日志：服务照常启动，TMDB 请求将因空 key 失败并落到“未找到”。
func buildApp(eff config.EffectiveConfig, log *logrus.Logger) (*fiber.App, error) {
	creds, err := config.LoadCredentials(eff.CredentialsPath)
	if err != nil {
		log.WithError(err).Error("Unable to load TMDB API key")
	}

	client, err := httpx.NewAPIClient(eff.ProxyURL)
	if err != nil {
		return nil, err
	}

	e := &explore.Explorer{
		Movies: &tmdb.Client{
			BaseURL: eff.TMDBBaseURL,
			APIKey:  creds.TMDBAPIKey,
			HTTP:    client,
			Log:     log.WithField("provider", tmdb.Name),
		},
		Countries: &restcountries.Client{
			BaseURL: eff.CountriesBaseURL,
			HTTP:    client,
			Log:     log.WithField("provider", restcountries.Name),
		},
		Log: log,
	}
	return server.New(server.Options{HomePage: eff.HomePage, Searcher: e, Log: log}), nil
}
