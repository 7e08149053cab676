package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "gallery_cache_hits_total",
}, []string{"cache"})
var CacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "gallery_cache_misses_total",
}, []string{"cache"})
var CacheEvictions = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "gallery_cache_evictions_total",
}, []string{"cache", "reason"})
var CacheNumItems = prometheus.NewGaugeVec(prometheus.GaugeOpts{
	Name: "gallery_cache_num_items",
}, []string{"cache"})
var CacheNumKb = prometheus.NewGaugeVec(prometheus.GaugeOpts{
	Name: "gallery_cache_num_kb_used",
}, []string{"cache"})
var ImagesDecoded = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "gallery_images_decoded_total",
}, []string{"kind", "result"})
var StaleResults = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "gallery_stale_results_total",
})
var QueuePending = prometheus.NewGaugeVec(prometheus.GaugeOpts{
	Name: "gallery_queue_pending_tasks",
}, []string{"queue"})
var QueueRunning = prometheus.NewGaugeVec(prometheus.GaugeOpts{
	Name: "gallery_queue_running_workers",
}, []string{"queue"})
var ImagesIndexed = prometheus.NewGaugeVec(prometheus.GaugeOpts{
	Name: "gallery_images_indexed",
}, []string{"index"})
var S3Operations = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "gallery_s3_operations_total",
}, []string{"operation"})

func init() {
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(CacheMisses)
	prometheus.MustRegister(CacheEvictions)
	prometheus.MustRegister(CacheNumItems)
	prometheus.MustRegister(CacheNumKb)
	prometheus.MustRegister(ImagesDecoded)
	prometheus.MustRegister(StaleResults)
	prometheus.MustRegister(QueuePending)
	prometheus.MustRegister(QueueRunning)
	prometheus.MustRegister(ImagesIndexed)
	prometheus.MustRegister(S3Operations)
}
