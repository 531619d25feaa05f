package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 结果标签取值
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
	OutcomeStale   = "stale"
)

var (
	// AssistantCommands 助手指令计数，按意图分类
	AssistantCommands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fashiopulse_assistant_commands_total",
			Help: "Total number of assistant commands handled",
		},
		[]string{"intent"},
	)

	// IntentQueryDuration 意图服务耗时
	IntentQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fashiopulse_intent_query_duration_seconds",
			Help:    "Duration of language-model intent queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	// Mutations 乐观变更计数
	Mutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fashiopulse_mutations_total",
			Help: "Total number of optimistic cart and wishlist mutations",
		},
		[]string{"kind", "outcome"},
	)

	// Reconciliations 对账结果计数
	Reconciliations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fashiopulse_reconciliations_total",
			Help: "Total number of reconciliation fetches by collection",
		},
		[]string{"collection", "outcome"},
	)

	// OrdersPlaced 下单计数
	OrdersPlaced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fashiopulse_orders_placed_total",
			Help: "Total number of order placements by mode",
		},
		[]string{"mode", "outcome"},
	)

	// OrderCancellations 取消订单计数
	OrderCancellations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fashiopulse_order_cancellations_total",
			Help: "Total number of order cancellations",
		},
		[]string{"outcome"},
	)

	// ActiveSessions 活跃助手会话数
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fashiopulse_assistant_active_sessions",
			Help: "Number of live assistant controllers",
		},
	)
)
