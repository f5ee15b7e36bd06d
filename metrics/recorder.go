package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder 在私有注册表上维护生成计数器；nil *Recorder 可用，不记录任何数据
type Recorder struct {
	reg *prometheus.Registry

	FilesWritten      prometheus.Counter
	BytesWritten      prometheus.Counter
	ElementsGenerated prometheus.Counter
	WriteDuration     prometheus.Histogram
	Runs              *prometheus.CounterVec
}

// NewRecorder 在新的注册表上注册生成指标
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		reg: reg,
		FilesWritten: f.NewCounter(prometheus.CounterOpts{
			Name: "npygen_files_written_total",
			Help: "Number of .npy files written",
		}),
		BytesWritten: f.NewCounter(prometheus.CounterOpts{
			Name: "npygen_bytes_written_total",
			Help: "Bytes written to .npy files, headers included",
		}),
		ElementsGenerated: f.NewCounter(prometheus.CounterOpts{
			Name: "npygen_elements_generated_total",
			Help: "Random values generated",
		}),
		WriteDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "npygen_file_write_seconds",
			Help:    "Time to generate and write one file",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		Runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "npygen_runs_total",
			Help: "Generation runs by outcome",
		}, []string{"status"}),
	}
}

// Registry 返回底层注册表
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.reg
}

// ObserveFile 记录一个已写入的文件
func (r *Recorder) ObserveFile(bytes int64, elements int, d time.Duration) {
	if r == nil {
		return
	}
	r.FilesWritten.Inc()
	r.BytesWritten.Add(float64(bytes))
	r.ElementsGenerated.Add(float64(elements))
	r.WriteDuration.Observe(d.Seconds())
}

// RunFinished 按结果统计一次运行
func (r *Recorder) RunFinished(err error) {
	if r == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.Runs.WithLabelValues(status).Inc()
}

// WriteTextfile 以文本格式写出注册表，供 node_exporter textfile collector 读取
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.reg)
}
