package telemetry

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestScopedAPI(t *testing.T) {
	inner := &RecordingAPI{}
	scoped := NewScopedAPI("extract", NewScopedAPI("gpa", inner))

	scoped.ReportWarning("record", 3, "bad points")
	scoped.ReportBroken("client.fetch")
	scoped.ReportCount("skipped", 2)
	scoped.ReportDebug("parsed")

	warnings := inner.Reports("warning")
	require.Len(t, warnings, 1)
	require.Equal(t, "gpa: extract: record", warnings[0].Id)
	require.Equal(t, []any{3, "bad points"}, warnings[0].Params)

	broken := inner.Reports("broken")
	require.Len(t, broken, 1)
	require.Equal(t, "gpa: extract: client.fetch", broken[0].Id)

	counts := inner.Reports("count")
	require.Len(t, counts, 1)
	require.Equal(t, int64(2), counts[0].Count)

	require.Len(t, inner.Reports("debug"), 1)
}

func TestShutdownWithoutProviders(t *testing.T) {
	require.NoError(t, Telemetry{}.Shutdown(context.Background()))
}

type otlpCollector struct {
	mutex  sync.Mutex
	bodies map[string][][]byte
}

func (c *otlpCollector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	c.mutex.Lock()
	c.bodies[r.URL.Path] = append(c.bodies[r.URL.Path], body)
	c.mutex.Unlock()
	w.Header().Set("Content-Type", "application/x-protobuf")
	w.WriteHeader(http.StatusOK)
}

func (c *otlpCollector) received(path string) [][]byte {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.bodies[path]
}

func TestSetupWithoutEndpoints(t *testing.T) {
	tel, err := Setup(context.Background(), "test:gpa", Config{})
	if err != nil {
		t.Fatal(err)
	}
	require.Nil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)
}

func TestSetupTracesOnly(t *testing.T) {
	collector := &otlpCollector{bodies: map[string][][]byte{}}
	server := httptest.NewServer(collector)
	defer server.Close()
	defer otel.SetTracerProvider(noop.NewTracerProvider())

	tel, err := Setup(context.Background(), "test:gpa", Config{
		Otlp: OtlpConfig{
			Traces: Endpoint{HttpEndpoint: server.URL + "/v1/traces"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	require.NotNil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)

	_, span := otel.Tracer("gpacalc/test").Start(context.Background(), "extract:records")
	span.End()

	err = tel.Shutdown(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	exported := collector.received("/v1/traces")
	require.Len(t, exported, 1)
	require.True(t, bytes.Contains(exported[0], []byte("extract:records")))
	require.Empty(t, collector.received("/v1/metrics"))
}
