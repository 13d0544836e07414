package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampJSONRoundTrip(t *testing.T) {
	orig := NewTimestamp(time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC))

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded Timestamp
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !decoded.Time().Equal(orig.Time()) {
		t.Errorf("round trip changed value: %v vs %v", decoded.Time(), orig.Time())
	}
}

func TestTimestampZeroAndOrder(t *testing.T) {
	var zero Timestamp
	if !zero.IsZero() {
		t.Error("zero value should report IsZero")
	}

	now := Now()
	if now.IsZero() {
		t.Error("Now should not be zero")
	}

	later := NewTimestamp(now.Time().Add(time.Second))
	if !now.Before(later) {
		t.Error("now should be before now+1s")
	}
	if !later.After(now) {
		t.Error("now+1s should be after now")
	}
}
