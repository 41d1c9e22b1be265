package metrics

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	t.Cleanup(func() { SetOutput(prev) })
	return &buf
}

func TestRecorder_FlushOutput(t *testing.T) {
	buf := captureOutput(t)
	fnOnce.Do(func() {})
	fnName = ""

	New("generateImage").
		Dimension("Model", "gemini-2.5-flash-image").
		Latency("GeminiApiLatencyMs", 1250*time.Millisecond).
		Count("GeminiApiCalls").
		Property("attachments", 2).
		Flush()

	var doc map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("failed to parse EMF output as JSON: %v\nOutput: %s", err, buf.String())
	}

	awsMap, ok := doc["_aws"].(map[string]interface{})
	if !ok {
		t.Fatal("missing _aws directive in EMF output")
	}
	if _, ok := awsMap["Timestamp"]; !ok {
		t.Error("missing Timestamp in _aws directive")
	}
	cwArr, ok := awsMap["CloudWatchMetrics"].([]interface{})
	if !ok || len(cwArr) != 1 {
		t.Fatal("CloudWatchMetrics should hold exactly one entry")
	}
	cw := cwArr[0].(map[string]interface{})
	if cw["Namespace"] != Namespace {
		t.Errorf("expected namespace %s, got %v", Namespace, cw["Namespace"])
	}
	dims := cw["Dimensions"].([]interface{})[0].([]interface{})
	if len(dims) != 2 || dims[0] != "Model" || dims[1] != "Operation" {
		t.Errorf("expected sorted dimensions [Model Operation], got %v", dims)
	}

	if doc["Operation"] != "generateImage" {
		t.Errorf("expected Operation=generateImage, got %v", doc["Operation"])
	}
	if doc["GeminiApiLatencyMs"] != float64(1250) {
		t.Errorf("expected GeminiApiLatencyMs=1250, got %v", doc["GeminiApiLatencyMs"])
	}
	if doc["GeminiApiCalls"] != float64(1) {
		t.Errorf("expected GeminiApiCalls=1, got %v", doc["GeminiApiCalls"])
	}
	if doc["attachments"] != float64(2) {
		t.Errorf("expected attachments=2, got %v", doc["attachments"])
	}
}

func TestRecorder_FlushEmpty(t *testing.T) {
	buf := captureOutput(t)
	New("noop").Flush()
	if buf.Len() != 0 {
		t.Errorf("expected no output for empty recorder, got: %s", buf.String())
	}
}

func TestRecorder_FunctionNameDimension(t *testing.T) {
	fnOnce.Do(func() {})
	fnName = "gallery-lambda"
	defer func() { fnName = "" }()

	rec := New("request")
	if rec.dimensions["FunctionName"] != "gallery-lambda" {
		t.Errorf("expected FunctionName dimension, got %v", rec.dimensions)
	}
}

func TestRecorder_Count(t *testing.T) {
	rec := New("test").Count("Errors")
	if v := rec.values["Errors"]; v != 1 {
		t.Errorf("expected Errors=1, got %v", v)
	}
	if m := rec.metrics["Errors"]; m.Unit != UnitCount {
		t.Errorf("expected unit Count, got %v", m.Unit)
	}
}
