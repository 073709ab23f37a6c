package metrics

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a custom registry and options", func() {
			reg := prometheus.NewRegistry()
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("board"),
				WithHistogramBuckets([]float64{0.1, 1}),
				WithPrometheusRegistry(reg),
			)

			Convey("Then metrics are registered under the namespace", func() {
				So(m, ShouldNotBeNil)
				m.storeOperations.WithLabelValues("matches", "insert", "ok").Inc()

				families, err := reg.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldEqual, 1)
				So(families[0].GetName(), ShouldEqual, "test_board_store_operations_total")
			})
		})

		Convey("When empty options are given", func() {
			m := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil), WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then defaults are kept", func() {
				So(m.namespace, ShouldEqual, "livescore")
				So(m.subsystem, ShouldEqual, "scoreboard")
				So(m.histogramBuckets, ShouldResemble, defaultBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a freshly initialized global manager", t, func() {
		Init(WithNamespace("rec"))
		m := current()

		Convey("When recording store operations", func() {
			RecordStoreOperation("matches", "insert", "ok", 0.02)
			RecordStoreOperation("matches", "insert", "ok", 0.03)
			RecordStoreOperation("matches", "insert", "conflict", 0.01)
			UpdateStoreEntities("matches", 2)

			Convey("Then counters and gauges reflect them", func() {
				So(testutil.ToFloat64(m.storeOperations.WithLabelValues("matches", "insert", "ok")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.storeOperations.WithLabelValues("matches", "insert", "conflict")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.storeEntities.WithLabelValues("matches")), ShouldEqual, 2)
			})
		})

		Convey("When recording lifecycle operations and summaries", func() {
			RecordLifecycleOperation("event", "add_goal", "ok")
			RecordSummary("event", 0.5, 3)

			Convey("Then they are visible", func() {
				So(testutil.ToFloat64(m.lifecycleOperations.WithLabelValues("event", "add_goal", "ok")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.activeMatches.WithLabelValues("event")), ShouldEqual, 3)
			})
		})

		Convey("When writing the text exposition", func() {
			RecordLifecycleOperation("snapshot", "update_score", "ok")
			var buf bytes.Buffer
			err := WriteText(&buf)

			Convey("Then the output contains the metric", func() {
				So(err, ShouldBeNil)
				So(buf.String(), ShouldContainSubstring, "rec_scoreboard_lifecycle_operations_total")
				So(buf.String(), ShouldContainSubstring, `variant="snapshot"`)
			})
		})
	})
}
