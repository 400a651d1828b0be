package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"miniroom/common/config"
	"miniroom/common/metrics"
	"miniroom/framework/game"
	"miniroom/game/app"
)

var (
	configFile    string
	gameConfigDir string
	serverId      string
	noMetrics     bool
)

var rootCmd = &cobra.Command{
	Use:   "miniroom",
	Short: "miniroom 交易 个人商店 五子棋 翻牌等小房间",
	Long:  `miniroom 交易 个人商店 五子棋 翻牌等小房间的权威服务 一个进程对应一个serverId`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config.InitConfig(configFile)
		game.InitConfig(gameConfigDir)
		if !noMetrics {
			go func() {
				if err := metrics.Serve(fmt.Sprintf("0.0.0.0:%d", config.Conf.MetricPort)); err != nil {
					log.Printf("metrics serve err:%v", err)
				}
			}()
		}
		return app.Run(cmd.Context(), serverId)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "application.yml", "app config yml file")
	rootCmd.Flags().StringVar(&gameConfigDir, "gameDir", "../config", "dir of fields.json")
	rootCmd.Flags().StringVar(&serverId, "serverId", "", "nats subject of this node, required")
	rootCmd.Flags().BoolVar(&noMetrics, "noMetrics", false, "do not serve statsviz")
	_ = rootCmd.MarkFlagRequired("serverId")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
