package monitor

import "github.com/prometheus/client_golang/prometheus"

var (
	// StreamUpdatesReceived 流入口相关
	StreamUpdatesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stream_updates_received_total",
			Help: "Total number of updates received from the geyser stream.",
		},
		[]string{"type"},
	)
	StreamRecvErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stream_recv_errors_total",
			Help: "Total number of stream receive errors.",
		},
	)

	// DecodeErrors 解码相关
	DecodeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "instruction_decode_errors_total",
			Help: "Total number of instruction payloads that failed to decode.",
		},
		[]string{"instruction"},
	)
	OpportunitiesFound = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "opportunities_found_total",
			Help: "Total number of mint+buy opportunities extracted.",
		},
	)

	// FilterRejections 过滤链相关
	FilterRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filter_rejections_total",
			Help: "Total number of opportunities rejected, by filter.",
		},
		[]string{"filter"},
	)

	// OrdersSubmitted 下单相关
	OrdersSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_submitted_total",
			Help: "Total number of buy orders handed to the submitter.",
		},
	)
	TaskDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "opportunity_task_duration_seconds",
			Help:    "Time taken to filter and dispatch one opportunity.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0},
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		// 流指标
		StreamUpdatesReceived,
		StreamRecvErrors,

		// 管线指标
		DecodeErrors,
		OpportunitiesFound,
		FilterRejections,
		OrdersSubmitted,
		TaskDuration,
	)
}
