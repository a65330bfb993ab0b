package prompush

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/metrics"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	require.NotNil(t, m.GetCounter())
	return m.GetCounter().GetValue()
}

func summaryCountSum(t *testing.T, v *prometheus.SummaryVec, labels ...string) (uint64, float64) {
	t.Helper()
	m := &dto.Metric{}
	metric, ok := v.WithLabelValues(labels...).(prometheus.Metric)
	require.True(t, ok)
	require.NoError(t, metric.Write(m))
	require.NotNil(t, m.GetSummary())
	return m.GetSummary().GetSampleCount(), m.GetSummary().GetSampleSum()
}

func TestNewBackend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		jobName     string
		gatewayURL  string
		wantErr     bool
		wantJobName string
	}{
		{name: "missing gateway URL", jobName: "informe", wantErr: true},
		{name: "default job name", gatewayURL: "http://pushgateway:9091", wantJobName: "informe"},
		{name: "explicit job name", jobName: "liga", gatewayURL: "http://pushgateway:9091", wantJobName: "liga"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := NewBackend(tt.jobName, tt.gatewayURL)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, b)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantJobName, b.jobName)
			require.Equal(t, tt.gatewayURL, b.gatewayURL)
		})
	}
}

func TestIncCounterAndObserve(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("informe", "http://unused")
	require.NoError(t, err)

	b.IncCounter(metrics.StepTotal, 1, metrics.Labels{"step": "group_sum", "status": "success"})
	b.IncCounter(metrics.StepTotal, 2, metrics.Labels{"step": "group_sum", "status": "success"})
	b.IncCounter(metrics.RecordsTotal, 10, metrics.Labels{"kind": "read"})
	b.IncCounter(metrics.BatchesTotal, 3, nil)
	b.IncCounter("unknown_metric", 99, nil)
	b.ObserveHistogram(metrics.StepDurationSeconds, 0.25, metrics.Labels{"step": "per90", "status": "success"})
	b.ObserveHistogram("unknown_metric", 1, nil)

	require.Equal(t, 3.0, counterValue(t, b.stepCounter.WithLabelValues("group_sum", "success")))
	require.Equal(t, 10.0, counterValue(t, b.recordCounter.WithLabelValues("read")))
	require.Equal(t, 3.0, counterValue(t, b.batchCounter))

	n, sum := summaryCountSum(t, b.stepDuration, "per90", "success")
	require.EqualValues(t, 1, n)
	require.InDelta(t, 0.25, sum, 1e-12)
}

func TestFlush_PushesWithGrouping(t *testing.T) {
	t.Parallel()

	type pushReq struct {
		method  string
		path    string
		bodyLen int
	}
	reqCh := make(chan pushReq, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		body, _ := io.ReadAll(r.Body)
		reqCh <- pushReq{method: r.Method, path: r.URL.Path, bodyLen: len(body)}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	b, err := NewBackend("informe", server.URL, WithGrouping("run", "abc"), WithGrouping("empty", ""))
	require.NoError(t, err)
	b.IncCounter(metrics.RecordsTotal, 1, metrics.Labels{"kind": "written"})

	require.NoError(t, b.Flush())

	got := <-reqCh
	require.Equal(t, http.MethodPut, got.method)
	require.Equal(t, "/metrics/job/informe/run/abc", got.path)
	require.Positive(t, got.bodyLen)
}

func TestFlush_ServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	b, err := NewBackend("informe", server.URL)
	require.NoError(t, err)
	require.Error(t, b.Flush())
}
