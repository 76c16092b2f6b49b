package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerRecording(t *testing.T) {
	Convey("Given an enabled metrics manager", t, func() {
		registry := prometheus.NewRegistry()
		manager := NewManager(WithRegistry(registry), WithNamespace("test"))

		Convey("When an HTTP request is observed", func() {
			manager.ObserveHTTPRequest("GET", "/convert", 200, 15*time.Millisecond)
			manager.ObserveHTTPRequest("GET", "/convert", 400, time.Millisecond)

			Convey("Then it is counted per status", func() {
				So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("GET", "/convert", "200")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("GET", "/convert", "400")), ShouldEqual, 1)
			})
		})

		Convey("When model calls are observed", func() {
			manager.ObserveModelCall("gemini-2.5-flash", nil, time.Second)
			manager.ObserveModelCall("gemini-2.5-flash", errors.New("boom"), time.Second)
			manager.ObserveModelCall("gemini-2.5-flash", nil, time.Second)

			Convey("Then outcomes are split", func() {
				So(testutil.ToFloat64(manager.modelRequests.WithLabelValues("gemini-2.5-flash", OutcomeSuccess)), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.modelRequests.WithLabelValues("gemini-2.5-flash", OutcomeError)), ShouldEqual, 1)
			})
		})

		Convey("When extraction failures are counted", func() {
			manager.IncExtractionFailure("NoJsonFound")

			Convey("Then the kind label carries the count", func() {
				So(testutil.ToFloat64(manager.extractionFailures.WithLabelValues("NoJsonFound")), ShouldEqual, 1)
			})
		})

		Convey("When the handler is scraped", func() {
			manager.ObserveModelCall("gemini-2.5-flash", nil, time.Second)

			recorder := httptest.NewRecorder()
			manager.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			body, _ := io.ReadAll(recorder.Body)

			Convey("Then the exposition contains the namespaced series", func() {
				So(recorder.Code, ShouldEqual, http.StatusOK)
				So(string(body), ShouldContainSubstring, "test_model_requests_total")
			})
		})
	})
}

func TestDisabledAndNilManager(t *testing.T) {
	Convey("Given a disabled manager", t, func() {
		manager := NewManager(WithMetricsEnabled(false))

		Convey("Then observations are ignored", func() {
			manager.ObserveModelCall("m", nil, time.Second)
			So(manager.Enabled(), ShouldBeFalse)
			So(testutil.ToFloat64(manager.modelRequests.WithLabelValues("m", OutcomeSuccess)), ShouldEqual, 0)
		})
	})

	Convey("Given a nil manager", t, func() {
		var manager *Manager

		Convey("Then every call is a no-op", func() {
			So(func() {
				manager.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)
				manager.ObserveModelCall("m", nil, time.Second)
				manager.IncExtractionFailure("MalformedJson")
			}, ShouldNotPanic)
			So(manager.Enabled(), ShouldBeFalse)
			So(manager.Registry(), ShouldBeNil)
			So(manager.Handler(), ShouldNotBeNil)
		})
	})
}
