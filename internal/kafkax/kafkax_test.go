package kafkax

import (
	"testing"

	"github.com/segmentio/kafka-go"
)

func TestSplitBrokers(t *testing.T) {
	got := SplitBrokers(" kafka-1:9092, ,kafka-2:9092 ")
	if len(got) != 2 || got[0] != "kafka-1:9092" || got[1] != "kafka-2:9092" {
		t.Fatalf("unexpected brokers: %v", got)
	}
	if SplitBrokers("") != nil {
		t.Fatal("empty input should yield no brokers")
	}
}

func TestHeaderValue(t *testing.T) {
	headers := []kafka.Header{{Key: "event_type", Value: []byte("x.v1")}}
	if got := HeaderValue(headers, "event_type"); got != "x.v1" {
		t.Fatalf("expected x.v1, got %q", got)
	}
	if got := HeaderValue(headers, "missing"); got != "" {
		t.Fatalf("expected empty for missing key, got %q", got)
	}
}
