package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetrics(t *testing.T) {
	InitMetrics()

	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsInProgress)
	assert.NotNil(t, CartsCreatedTotal)
	assert.NotNil(t, OrdersCheckedOutTotal)
	assert.NotNil(t, OrdersCancelledTotal)
	assert.NotNil(t, CheckoutDuration)
	assert.NotNil(t, StockRejectionsTotal)
	assert.NotNil(t, CircuitBreakerState)
	assert.NotNil(t, CircuitBreakerRequests)
	assert.NotNil(t, MessagesPublishedTotal)
	assert.NotNil(t, MessagesConsumedTotal)
}

// TestInitMetrics_Idempotent 重复初始化不能panic（promauto重复注册会panic）
func TestInitMetrics_Idempotent(t *testing.T) {
	InitMetrics()
	assert.NotPanics(t, func() { InitMetrics() })
}

func TestCounter(t *testing.T) {
	InitMetrics()

	before := counterValue(t, CartsCreatedTotal)

	CartsCreatedTotal.Inc()
	CartsCreatedTotal.Inc()
	CartsCreatedTotal.Inc()

	assert.Equal(t, before+3, counterValue(t, CartsCreatedTotal))
}

func TestCounterVec(t *testing.T) {
	InitMetrics()

	StockRejectionsTotal.WithLabelValues("checkout").Inc()
	StockRejectionsTotal.WithLabelValues("checkout").Inc()
	StockRejectionsTotal.WithLabelValues("adjust").Inc()

	assert.Equal(t, float64(2), counterValue(t, StockRejectionsTotal.WithLabelValues("checkout")))
	assert.Equal(t, float64(1), counterValue(t, StockRejectionsTotal.WithLabelValues("adjust")))
}

func TestGauge(t *testing.T) {
	InitMetrics()

	HTTPRequestsInProgress.Set(0)
	HTTPRequestsInProgress.Inc()
	HTTPRequestsInProgress.Inc()
	assert.Equal(t, float64(2), gaugeValue(t, HTTPRequestsInProgress))

	HTTPRequestsInProgress.Dec()
	assert.Equal(t, float64(1), gaugeValue(t, HTTPRequestsInProgress))
}

func TestGaugeVec(t *testing.T) {
	InitMetrics()

	CircuitBreakerState.WithLabelValues("order-events").Set(1)
	assert.Equal(t, float64(1), gaugeValue(t, CircuitBreakerState.WithLabelValues("order-events")))

	CircuitBreakerState.WithLabelValues("order-events").Set(0)
	assert.Equal(t, float64(0), gaugeValue(t, CircuitBreakerState.WithLabelValues("order-events")))
}

func TestHistogram(t *testing.T) {
	InitMetrics()

	beforeCount, beforeSum := histogramValue(t, CheckoutDuration)

	CheckoutDuration.Observe(0.05)
	CheckoutDuration.Observe(0.1)
	CheckoutDuration.Observe(0.5)

	count, sum := histogramValue(t, CheckoutDuration)
	assert.Equal(t, beforeCount+3, count)
	assert.InDelta(t, beforeSum+0.65, sum, 1e-9)
}

func counterValue(t *testing.T, c interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.Counter.GetValue()
}

func gaugeValue(t *testing.T, g interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.Gauge.GetValue()
}

func histogramValue(t *testing.T, h interface{ Write(*dto.Metric) error }) (uint64, float64) {
	t.Helper()
	var m dto.Metric
	require.NoError(t, h.Write(&m))
	return m.Histogram.GetSampleCount(), m.Histogram.GetSampleSum()
}
