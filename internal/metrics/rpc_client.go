package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/provider/bitcoin"
)

var (
	nodeRPCCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "node_rpc",
		Name:      "calls_total",
		Help:      "Count of node RPC calls made while resolving transactions.",
	}, []string{"method", "coin", "network", "status"})
	nodeRPCCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "node_rpc",
		Name:      "call_duration_seconds",
		Help:      "Duration of node RPC calls made while resolving transactions.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"method", "coin", "network", "status"})
)

// NodeRPC tracks the RPC calls the bitcoin provider makes against a node.
type NodeRPC struct {
	coin    string
	network string
}

// NewNodeRPC constructs a collector labelled with the node's coin and network.
func NewNodeRPC(coin, network string) *NodeRPC {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &NodeRPC{coin: coin, network: network}
}

// Observe records a call's outcome and duration. The node's answer for an
// unknown transaction or block is counted as not_found, not as a failure.
func (m NodeRPC) Observe(method string, err error, started time.Time) {
	status := lookupStatus(err)
	if bitcoin.IsUnknownEntity(err) {
		status = "not_found"
	}
	nodeRPCCallsTotal.WithLabelValues(method, m.coin, m.network, status).Inc()
	nodeRPCCallDuration.WithLabelValues(method, m.coin, m.network, status).Observe(time.Since(started).Seconds())
}
