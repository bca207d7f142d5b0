package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a private registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom options", func() {
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHTTPBuckets([]float64{1, 10, 100}),
				WithLatencyBuckets([]float64{50, 500}),
				WithRegistry(registry),
			)

			Convey("Then collectors should use the custom names", func() {
				So(m, ShouldNotBeNil)
				m.searches.WithLabelValues(OutcomeSuccess).Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_unit_searches_total")
				So(m.httpBuckets, ShouldResemble, []float64{1, 10, 100})
				So(m.latencyBuckets, ShouldResemble, []float64{50, 500})
			})
		})

		Convey("When empty options are given", func() {
			m := NewManager(WithNamespace(""), WithSubsystem(""), WithHTTPBuckets(nil), WithLatencyBuckets(nil), WithRegistry(registry))

			Convey("Then defaults should be kept", func() {
				So(m.namespace, ShouldEqual, "moviefront")
				So(m.subsystem, ShouldEqual, "search")
				So(m.httpBuckets, ShouldResemble, defaultHTTPBuckets)
				So(m.latencyBuckets, ShouldResemble, defaultLatencyBuckets)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording searches", func() {
			before := testutil.ToFloat64(globalManager.searches.WithLabelValues(OutcomeNotFound))
			RecordSearch(OutcomeNotFound)

			So(testutil.ToFloat64(globalManager.searches.WithLabelValues(OutcomeNotFound)), ShouldEqual, before+1)
		})

		Convey("When recording fallbacks", func() {
			before := testutil.ToFloat64(globalManager.fallbacks.WithLabelValues("network"))
			RecordFallback("network")

			So(testutil.ToFloat64(globalManager.fallbacks.WithLabelValues("network")), ShouldEqual, before+1)
		})

		Convey("When updating gauges", func() {
			UpdateActiveSessions(7)
			UpdateBreakerState("engine", 2)

			So(testutil.ToFloat64(globalManager.activeSessions), ShouldEqual, 7)
			So(testutil.ToFloat64(globalManager.breakerState.WithLabelValues("engine")), ShouldEqual, 2)
		})

		Convey("When recording the remaining collectors", func() {
			So(func() {
				RecordUpstreamLatency("ok", 12)
				RecordMockLatency(1500)
				RecordSuggestions(3)
				RecordSessionEviction()
				RecordBreakerTransition("engine", "closed", "open")
				RecordHTTPRequest("search", "POST", "200")
				RecordHTTPRequestDuration("search", "POST", "200", 4)
				RecordErrorByEndpoint("search", "POST", "client_error")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(10)
			}, ShouldNotPanic)
		})

		Convey("Then the registry should gather without error", func() {
			_, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
		})
	})
}
