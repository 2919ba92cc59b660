// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	x509chain "github.com/cashapp/certifikit/src/internal/x509/chain"
)

const mb = 1024 * 1024

// ResourceUsageData is the report returned by get_resource_usage.
type ResourceUsageData struct {
	Timestamp      string         `json:"timestamp"`
	MemoryUsage    map[string]any `json:"memory_usage"`
	GCStats        map[string]any `json:"gc_stats"`
	SystemInfo     map[string]any `json:"system_info"`
	DetailedMemory map[string]any `json:"detailed_memory,omitempty"`
	IssuerCache    map[string]any `json:"issuer_cache,omitempty"`
}

// CollectResourceUsage reads runtime statistics and, when cache is set, the
// issuer cache metrics.
func CollectResourceUsage(detailed bool, cache *x509chain.Cache) *ResourceUsageData {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	data := &ResourceUsageData{
		Timestamp: now().UTC().Format(time.RFC3339),
		MemoryUsage: map[string]any{
			"heap_alloc_mb":    float64(m.HeapAlloc) / mb,
			"heap_sys_mb":      float64(m.HeapSys) / mb,
			"heap_idle_mb":     float64(m.HeapIdle) / mb,
			"heap_inuse_mb":    float64(m.HeapInuse) / mb,
			"heap_released_mb": float64(m.HeapReleased) / mb,
			"heap_objects":     m.HeapObjects,
			"stack_inuse_mb":   float64(m.StackInuse) / mb,
			"stack_sys_mb":     float64(m.StackSys) / mb,
		},
		GCStats: map[string]any{
			"num_gc":          m.NumGC,
			"num_forced_gc":   m.NumForcedGC,
			"gc_cpu_fraction": m.GCCPUFraction,
			"enable_gc":       m.EnableGC,
		},
		SystemInfo: map[string]any{
			"go_version":    runtime.Version(),
			"go_os":         runtime.GOOS,
			"go_arch":       runtime.GOARCH,
			"num_cpu":       runtime.NumCPU(),
			"num_goroutine": runtime.NumGoroutine(),
		},
	}

	if detailed {
		data.DetailedMemory = map[string]any{
			"alloc_mb":          float64(m.Alloc) / mb,
			"total_alloc_mb":    float64(m.TotalAlloc) / mb,
			"sys_mb":            float64(m.Sys) / mb,
			"mallocs":           m.Mallocs,
			"frees":             m.Frees,
			"gc_pause_total_ns": m.PauseTotalNs,
			"next_gc_mb":        float64(m.NextGC) / mb,
		}
	}

	if cache != nil {
		metrics := cache.Metrics()
		cfg := cache.Config()
		data.IssuerCache = map[string]any{
			"size":             metrics.Size,
			"max_size":         int64(cfg.MaxSize),
			"ttl_seconds":      int64(cfg.TTL / time.Second),
			"total_memory_mb":  float64(metrics.TotalMemory) / mb,
			"hits":             metrics.Hits,
			"misses":           metrics.Misses,
			"evictions":        metrics.Evictions,
			"expirations":      metrics.Expirations,
			"hit_rate_percent": calculateHitRate(metrics.Hits, metrics.Misses),
		}
	}

	return data
}

// FormatResourceUsageAsJSON returns data as indented JSON.
func FormatResourceUsageAsJSON(data *ResourceUsageData) (string, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal resource usage: %w", err)
	}
	return string(out), nil
}

// FormatResourceUsageAsMarkdown returns data as a markdown report with one
// table per section.
func FormatResourceUsageAsMarkdown(data *ResourceUsageData) string {
	var buf strings.Builder

	buf.WriteString("# Resource Usage Report\n\n")
	if t, err := time.Parse(time.RFC3339, data.Timestamp); err == nil {
		fmt.Fprintf(&buf, "**Generated:** %s\n\n", t.Format("January 2, 2006 at 3:04 PM MST"))
	} else {
		fmt.Fprintf(&buf, "**Generated:** %s\n\n", data.Timestamp)
	}

	writeSection(&buf, "System Information", data.SystemInfo, []string{
		"Go Version", "go_version",
		"Operating System", "go_os",
		"Architecture", "go_arch",
		"CPU Count", "num_cpu",
		"Goroutines", "num_goroutine",
	})
	writeSection(&buf, "Memory Usage", data.MemoryUsage, []string{
		"Heap Allocated", "heap_alloc_mb",
		"Heap System", "heap_sys_mb",
		"Heap In Use", "heap_inuse_mb",
		"Heap Idle", "heap_idle_mb",
		"Heap Released", "heap_released_mb",
		"Heap Objects", "heap_objects",
		"Stack In Use", "stack_inuse_mb",
		"Stack System", "stack_sys_mb",
	})
	writeSection(&buf, "Garbage Collection", data.GCStats, []string{
		"GC Cycles", "num_gc",
		"Forced GC", "num_forced_gc",
		"GC CPU Fraction", "gc_cpu_fraction",
		"GC Enabled", "enable_gc",
	})
	if data.DetailedMemory != nil {
		writeSection(&buf, "Detailed Memory Statistics", data.DetailedMemory, []string{
			"Current Alloc", "alloc_mb",
			"Total Alloc", "total_alloc_mb",
			"System Memory", "sys_mb",
			"Mallocs", "mallocs",
			"Frees", "frees",
			"GC Pause Total", "gc_pause_total_ns",
			"Next GC", "next_gc_mb",
		})
	}
	if data.IssuerCache != nil {
		writeSection(&buf, "Issuer Cache", data.IssuerCache, []string{
			"Cache Size", "size",
			"Max Size", "max_size",
			"TTL", "ttl_seconds",
			"Total Memory", "total_memory_mb",
			"Cache Hits", "hits",
			"Cache Misses", "misses",
			"Evictions", "evictions",
			"Expirations", "expirations",
			"Hit Rate", "hit_rate_percent",
		})
	}

	return buf.String()
}

// writeSection renders the label/key pairs of fields present in values.
func writeSection(buf *strings.Builder, title string, values map[string]any, fields []string) {
	fmt.Fprintf(buf, "## %s\n\n", title)

	var rows [][]string
	for i := 0; i+1 < len(fields); i += 2 {
		if v, ok := values[fields[i+1]]; ok {
			rows = append(rows, []string{fields[i], formatValue(v, fields[i+1])})
		}
	}

	table := tablewriter.NewTable(buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"Metric", "Value"})
	table.Bulk(rows)
	table.Render()
	buf.WriteString("\n")
}

func formatValue(value any, key string) string {
	switch v := value.(type) {
	case int64:
		switch key {
		case "size", "max_size":
			return fmt.Sprintf("%d entries", v)
		case "ttl_seconds":
			return (time.Duration(v) * time.Second).String()
		}
		return fmt.Sprintf("%d", v)
	case uint64:
		if key == "gc_pause_total_ns" {
			return fmt.Sprintf("%.2f ms", float64(v)/1e6)
		}
		return fmt.Sprintf("%d", v)
	case float64:
		switch {
		case key == "gc_cpu_fraction":
			return fmt.Sprintf("%.4f", v)
		case key == "hit_rate_percent":
			return fmt.Sprintf("%.2f%%", v)
		case strings.HasSuffix(key, "_mb"):
			return fmt.Sprintf("%.2f MB", v)
		}
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func calculateHitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}
