package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	analysisSubmittedTotal atomic.Uint64
	analysisCompletedTotal atomic.Uint64
	analysisFailedTotal    atomic.Uint64
	analysisDeletedTotal   atomic.Uint64
	reportGeneratedTotal   atomic.Uint64
	rateLimitedTotal       atomic.Uint64

	inferenceDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncAnalysisSubmitted increments the submitted counter.
func IncAnalysisSubmitted() {
	analysisSubmittedTotal.Add(1)
}

// IncAnalysisCompleted increments the completed counter.
func IncAnalysisCompleted() {
	analysisCompletedTotal.Add(1)
}

// IncAnalysisFailed increments the failed counter.
func IncAnalysisFailed() {
	analysisFailedTotal.Add(1)
}

// IncAnalysisDeleted increments the deleted counter.
func IncAnalysisDeleted() {
	analysisDeletedTotal.Add(1)
}

// IncReportGenerated increments the PDF report counter.
func IncReportGenerated() {
	reportGeneratedTotal.Add(1)
}

// IncRateLimited increments the rejected-by-rate-limit counter.
func IncRateLimited() {
	rateLimitedTotal.Add(1)
}

// ObserveInferenceDurationMs records an inference round-trip in milliseconds.
func ObserveInferenceDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	inferenceDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "analysis_submitted_total", "Total analyses submitted to the inference endpoint", analysisSubmittedTotal.Load())
	writeCounter(&buf, "analysis_completed_total", "Total analyses stored", analysisCompletedTotal.Load())
	writeCounter(&buf, "analysis_failed_total", "Total analysis submissions that failed", analysisFailedTotal.Load())
	writeCounter(&buf, "analysis_deleted_total", "Total analyses deleted", analysisDeletedTotal.Load())
	writeCounter(&buf, "report_generated_total", "Total PDF reports generated", reportGeneratedTotal.Load())
	writeCounter(&buf, "rate_limited_total", "Total requests rejected by the rate limiter", rateLimitedTotal.Load())
	writeHistogram(&buf, "inference_duration_ms", "Inference round-trip in milliseconds", inferenceDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	// counts are already cumulative: Observe bumps every bucket whose bound is >= value.
	for i, bound := range snap.buckets {
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), snap.counts[i])
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// SinceMillis returns the elapsed time since start in milliseconds.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
