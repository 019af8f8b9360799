package tracing

import (
	"context"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	// KeyOperation tags editor measurements with the composer operation
	KeyOperation = tag.MustNewKey("operation")
	// KeyOutcome is "ok", "noop" or "error"
	KeyOutcome = tag.MustNewKey("outcome")

	// MeasureDispatch counts commands applied to editing sessions
	MeasureDispatch = stats.Int64("mailcanvas/editor/dispatch", "Editor commands dispatched", stats.UnitDimensionless)
	// MeasureDecodeLatency is the time spent decoding a dropped image
	MeasureDecodeLatency = stats.Float64("mailcanvas/editor/decode_latency", "Dropped image decode latency", stats.UnitMilliseconds)
	// MeasureRenderLatency is the time spent serializing a document to HTML
	MeasureRenderLatency = stats.Float64("mailcanvas/render/latency", "Email serialization latency", stats.UnitMilliseconds)
)

var latencyBuckets = view.Distribution(1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000)

// EditorViews are registered alongside the metrics exporters
var EditorViews = []*view.View{
	{
		Name:        "mailcanvas/editor/dispatch_count",
		Description: "Editor commands dispatched by operation and outcome",
		Measure:     MeasureDispatch,
		TagKeys:     []tag.Key{KeyOperation, KeyOutcome},
		Aggregation: view.Count(),
	},
	{
		Name:        "mailcanvas/editor/decode_latency",
		Description: "Distribution of dropped image decode latency",
		Measure:     MeasureDecodeLatency,
		TagKeys:     []tag.Key{KeyOutcome},
		Aggregation: latencyBuckets,
	},
	{
		Name:        "mailcanvas/render/latency",
		Description: "Distribution of email serialization latency",
		Measure:     MeasureRenderLatency,
		TagKeys:     []tag.Key{KeyOperation},
		Aggregation: latencyBuckets,
	},
}

// RecordDispatch counts one applied command
func RecordDispatch(ctx context.Context, operation, outcome string) {
	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(KeyOperation, operation), tag.Upsert(KeyOutcome, outcome)},
		MeasureDispatch.M(1),
	)
}

// RecordDecode records how long an image decode took
func RecordDecode(ctx context.Context, started time.Time, outcome string) {
	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(KeyOutcome, outcome)},
		MeasureDecodeLatency.M(sinceMillis(started)),
	)
}

// RecordRender records how long a serialization took, tagged with the mode
func RecordRender(ctx context.Context, started time.Time, mode string) {
	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(KeyOperation, mode)},
		MeasureRenderLatency.M(sinceMillis(started)),
	)
}

func sinceMillis(t time.Time) float64 {
	return float64(time.Since(t)) / float64(time.Millisecond)
}
