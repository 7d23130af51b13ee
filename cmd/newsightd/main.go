package main

import (
	"github.com/spf13/cobra"

	"github.com/avaldezm/newsight/config"
	srv "github.com/avaldezm/newsight/internal/server"
)

func main() {
	var root = &cobra.Command{Use: "newsightd"}

	root.AddCommand(serveCMD())
	_ = root.Execute()
}

func serveCMD() *cobra.Command {
	var cfgPath string
	var serve = &cobra.Command{
		Use:   "serve",
		Short: "Run HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			return srv.Run(cfg)
		},
	}
	serve.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return serve
}
