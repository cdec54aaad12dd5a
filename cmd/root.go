package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matthewelijahlogan/mirror/internal/config"
)

var (
	configFile string
	cfg        *config.Config
)

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Mirror 占卜镜服务",
	Long:  `Mirror 是一个基于性格问卷与星座的占卜服务,支持规则式与生成式两种占卜方式。`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "配置文件路径")
}
