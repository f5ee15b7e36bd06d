// Package metrics 提供生成过程的运行时指标、Prometheus 指标和运行报告
package metrics

import (
	"runtime"
	"time"
)

// Snapshot 堆内存指标快照
type Snapshot struct {
	TS         time.Time
	HeapAlloc  uint64
	HeapInuse  uint64
	TotalAlloc uint64
	NumGC      uint32
}

// Take 采集当前运行时指标
func Take() Snapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Snapshot{
		TS:         time.Now(),
		HeapAlloc:  m.HeapAlloc,
		HeapInuse:  m.HeapInuse,
		TotalAlloc: m.TotalAlloc,
		NumGC:      m.NumGC,
	}
}

// Delta 两次快照之间的运行时变化
type Delta struct {
	Elapsed      time.Duration
	AllocRateBps float64 // 每秒分配字节数
	HeapGrowth   int64   // 存活堆的变化量，可能为负
	GCs          uint32
}

// Diff 计算两次快照间的分配速率、堆增长和 GC 次数差；顺序颠倒时返回零值
func Diff(before, after Snapshot) Delta {
	elapsed := after.TS.Sub(before.TS)
	if elapsed <= 0 {
		return Delta{}
	}
	d := Delta{
		Elapsed:    elapsed,
		HeapGrowth: int64(after.HeapAlloc) - int64(before.HeapAlloc),
	}
	if after.TotalAlloc >= before.TotalAlloc {
		d.AllocRateBps = float64(after.TotalAlloc-before.TotalAlloc) / elapsed.Seconds()
	}
	if after.NumGC >= before.NumGC {
		d.GCs = after.NumGC - before.NumGC
	}
	return d
}
