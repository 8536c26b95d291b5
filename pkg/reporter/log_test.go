package reporter

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sternrassler/core-metrics/pkg/metrics"
)

// syncBuffer makes bytes.Buffer safe for the reporter goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestLogReporter_DumpsSnapshot(t *testing.T) {
	store := metrics.NewManager()
	reg := store.Registry("solr.core.collection1")
	reg.Counter("queries.total").Add(3)

	out := &syncBuffer{}
	logger := zerolog.New(out)

	rep, err := newLogReporter(FactoryConfig{
		PluginName:   "dump",
		RegistryName: "solr.core.collection1",
		Registry:     reg,
		Logger:       logger,
		Args:         map[string]string{"interval": "10ms"},
	})
	if err != nil {
		t.Fatalf("factory failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(out.String(), "queries_total") {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := rep.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	logged := out.String()
	if !strings.Contains(logged, "Metrics snapshot") {
		t.Errorf("log output missing snapshot message:\n%s", logged)
	}
	if !strings.Contains(logged, "queries_total") {
		t.Errorf("log output missing instrument:\n%s", logged)
	}
}

func TestLogReporter_RejectsBadInterval(t *testing.T) {
	store := metrics.NewManager()

	_, err := newLogReporter(FactoryConfig{
		PluginName: "dump",
		Registry:   store.Registry("solr.core.collection1"),
		Logger:     zerolog.Nop(),
		Args:       map[string]string{"interval": "not-a-duration"},
	})
	if err == nil {
		t.Error("factory accepted an unparseable interval")
	}

	_, err = newLogReporter(FactoryConfig{
		PluginName: "dump",
		Registry:   store.Registry("solr.core.collection1"),
		Logger:     zerolog.Nop(),
		Args:       map[string]string{"interval": "-5s"},
	})
	if err == nil {
		t.Error("factory accepted a negative interval")
	}
}
