package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matthewelijahlogan/mirror/internal/memory"
)

var (
	memoryOutputType string
	purgeBefore      string
	purgeDays        int
	exportFile       string
)

// memoryCmd 记忆管理命令组
var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "管理占卜记忆",
	Long:  `查看、导出、清理占卜镜的历史记忆。`,
}

// openStore 打开命令行用的记忆存储,不带 Redis
func openStore() *memory.Store {
	return memory.NewStore(cfg.Memory.Path, cfg.Memory.KeepHistory, nil)
}

// memorySummaryCmd 查看某用户的记忆摘要
var memorySummaryCmd = &cobra.Command{
	Use:   "summary <name>",
	Short: "查看用户记忆摘要",
	Long:  `查看指定用户的占卜历史摘要,包括条数、主导语气与主题。`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		store := openStore()

		summary := store.Summarize(name)
		if summary == nil || summary.Count == 0 {
			fmt.Printf("No memory for user %q\n", name)
			return nil
		}

		if memoryOutputType == "json" {
			data, _ := json.MarshalIndent(summary, "", "  ")
			fmt.Println(string(data))
			return nil
		}

		rows := [][]string{}
		for _, e := range summary.Recent {
			rows = append(rows, []string{
				e.Timestamp,
				e.Zodiac,
				e.Tone,
				e.Theme,
			})
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
			Headers("Timestamp", "Zodiac", "Tone", "Theme").
			Rows(rows...)

		fmt.Println(t)
		fmt.Println()
		logx.Info("User %s, entries %d, common tone %s, common theme %s",
			name, summary.Count, summary.MostCommonTone, summary.MostCommonTheme)

		return nil
	},
}

// memoryExportCmd 导出全部记忆为 CSV
var memoryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "导出全部记忆",
	Long:  `将全部占卜记忆导出为 CSV 文件。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()

		if err := store.ExportCSV(exportFile); err != nil {
			return fmt.Errorf("failed to export memory: %w", err)
		}

		logx.Info("Memory exported, file %s", exportFile)
		return nil
	},
}

// memoryPurgeCmd 清除指定日期之前的记忆
var memoryPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "清除过期记忆",
	Long:  `清除指定时间之前的全部占卜记忆,时间戳无法解析的条目一并清除。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var cutoff time.Time
		switch {
		case purgeDays > 0:
			cutoff = time.Now().AddDate(0, 0, -purgeDays)
		case purgeBefore != "":
			t, err := time.Parse("2006-01-02", purgeBefore)
			if err != nil {
				return fmt.Errorf("invalid --before date: %w", err)
			}
			cutoff = t
		default:
			return fmt.Errorf("either --days or --before is required, e.g. --days 30")
		}

		store := openStore()
		removed := store.Purge(cutoff)

		logx.Info("Purge completed, removed %d entries before %s", removed, cutoff.Format("2006-01-02"))
		return nil
	},
}

// memoryCleanCmd 清理记忆中的重复与劣化内容
var memoryCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "清理劣化记忆",
	Long:  `清理记忆中的重复条目、复读文本与超长文本,清理前自动备份。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()

		stats, err := store.Clean()
		if err != nil {
			return fmt.Errorf("failed to clean memory: %w", err)
		}

		logx.Info("Clean completed, removed %d, duplicates %d, truncated %d",
			stats.Removed, stats.Duplicates, stats.Truncated)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(memoryCmd)

	memoryCmd.AddCommand(memorySummaryCmd)
	memoryCmd.AddCommand(memoryExportCmd)
	memoryCmd.AddCommand(memoryPurgeCmd)
	memoryCmd.AddCommand(memoryCleanCmd)

	memorySummaryCmd.Flags().StringVarP(&memoryOutputType, "output", "o", "table", "输出格式 (table, json)")
	memoryExportCmd.Flags().StringVarP(&exportFile, "file", "f", "mirror_memory.csv", "导出文件路径")
	memoryPurgeCmd.Flags().IntVar(&purgeDays, "days", 0, "清除 N 天之前的记忆")
	memoryPurgeCmd.Flags().StringVar(&purgeBefore, "before", "", "清除此日期之前的记忆 (YYYY-MM-DD)")
}
