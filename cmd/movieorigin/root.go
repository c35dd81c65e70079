package main

import (
	"github.com/spf13/cobra"
)

const version = "1.0.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "movieorigin",
		Short: "Movie Origin Explorer",
		Long: `Movie Origin Explorer 是一个最小 Web 服务：
按片名在 TMDB 搜索电影，取其第一个出品国家，再查询 REST Countries，
最后把两者合成一个 HTML 页面。`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("movieorigin version {{.Version}}\n")
	root.AddCommand(newServeCmd())
	return root
}
