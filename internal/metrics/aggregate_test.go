package metrics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexarch/core/internal/models"
)

func makeSpan(latency float64, statusCode *int, errStr string) models.Span {
	return models.Span{
		TraceID:     "trace-1",
		SpanID:      "span-x",
		ServiceName: "checkout",
		Operation:   "POST /pay",
		Kind:        models.SpanKindServer,
		StartTime:   time.Now(),
		EndTime:     time.Now(),
		LatencyMS:   latency,
		StatusCode:  statusCode,
		Error:       errStr,
	}
}

func TestAggregate_Basic(t *testing.T) {
	code500 := 500
	spans := []models.Span{
		makeSpan(100, nil, ""),
		makeSpan(200, nil, ""),
		makeSpan(300, &code500, ""),
	}

	got := Aggregate(spans)
	require.Equal(t, 3, got.CallCount)
	assert.InDelta(t, 200.0, got.AvgLatencyMS, 0.0001)
	assert.InDelta(t, 1.0/3.0, got.ErrorRate, 0.0001)
}

func TestAggregate_ExplicitErrorString(t *testing.T) {
	spans := []models.Span{
		makeSpan(50, nil, "timeout"),
		makeSpan(50, nil, ""),
	}
	got := Aggregate(spans)
	assert.InDelta(t, 0.5, got.ErrorRate, 0.0001)
}

func TestAggregate_4xxIsNotError(t *testing.T) {
	code404 := 404
	spans := []models.Span{makeSpan(10, &code404, "")}
	got := Aggregate(spans)
	assert.Equal(t, 0.0, got.ErrorRate)
}

func TestAggregate_StableUnderReordering(t *testing.T) {
	code500 := 500
	spans := []models.Span{
		makeSpan(10, nil, ""),
		makeSpan(20, &code500, ""),
		makeSpan(30, nil, "boom"),
		makeSpan(40, nil, ""),
	}

	base := Aggregate(spans)

	shuffled := append([]models.Span{}, spans...)
	r := rand.New(rand.NewSource(7))
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	got := Aggregate(shuffled)
	assert.Equal(t, base, got)
}

func TestAggregate_Bounds(t *testing.T) {
	code500 := 500
	spans := []models.Span{makeSpan(5, &code500, "")}
	got := Aggregate(spans)
	assert.GreaterOrEqual(t, got.ErrorRate, 0.0)
	assert.LessOrEqual(t, got.ErrorRate, 1.0)
	assert.GreaterOrEqual(t, got.AvgLatencyMS, 0.0)
}
