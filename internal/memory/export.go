package memory

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
)

// exportHeader CSV 导出列
var exportHeader = []string{"name", "timestamp", "zodiac", "tone", "theme", "fortune"}

// ExportCSV 将全部记忆导出为 CSV 文件,每条记录一行
func (s *Store) ExportCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := s.WriteCSV(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// WriteCSV 将全部记忆以 CSV 格式写入 w
// 用户按名称排序,保证导出结果可复现
func (s *Store) WriteCSV(w io.Writer) error {
	mem := s.Load()

	names := make([]string, 0, len(mem))
	for name := range mem {
		names = append(names, name)
	}
	sort.Strings(names)

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, name := range names {
		for _, e := range mem[name] {
			row := []string{name, e.Timestamp, e.Zodiac, e.Tone, e.Theme, e.Fortune}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
