// Package metrics 提供生成过程的运行时指标、Prometheus 指标和运行报告
package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// LatencyStats 单文件写入延迟统计
type LatencyStats struct {
	P50Ms float64
	P95Ms float64
	P99Ms float64
	AvgMs float64
	N     int
}

// FileRow 单文件 CSV 报告的一行
type FileRow struct {
	Index    int
	Path     string
	Elements int
	Bytes    int64
	WriteMs  float64
}

// Percentile 计算已升序排列切片的 p 分位数（0-100）
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	idx := int(float64(len(sorted)-1) * p / 100)
	return sorted[idx]
}

// LatencyStatsFromDurations 从耗时列表计算 P50/P95/P99 和均值
func LatencyStatsFromDurations(durations []time.Duration) LatencyStats {
	if len(durations) == 0 {
		return LatencyStats{}
	}
	ms := make([]float64, len(durations))
	var sum float64
	for i, d := range durations {
		ms[i] = float64(d.Nanoseconds()) / 1e6
		sum += ms[i]
	}
	sort.Float64s(ms)
	return LatencyStats{
		P50Ms: Percentile(ms, 50),
		P95Ms: Percentile(ms, 95),
		P99Ms: Percentile(ms, 99),
		AvgMs: sum / float64(len(ms)),
		N:     len(ms),
	}
}

// WriteFilesCSV 写出单文件 CSV 报告，自动创建父目录
func WriteFilesCSV(rows []FileRow, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	w.Write([]string{"Index", "Path", "Elements", "Bytes", "WriteMs"})
	for _, r := range rows {
		w.Write([]string{
			fmt.Sprintf("%d", r.Index),
			r.Path,
			fmt.Sprintf("%d", r.Elements),
			fmt.Sprintf("%d", r.Bytes),
			fmt.Sprintf("%.2f", r.WriteMs),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// WriteJSON 将 v 以缩进 JSON 写入文件，自动创建父目录
func WriteJSON(v interface{}, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}
