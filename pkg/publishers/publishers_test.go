package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: http2
    type: http
    enabled: true
    http:
      url: https://example.com/2
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "http2" {
		t.Fatalf("expected only http2 enabled, got %#v", enabled)
	}
}

func TestLoadRegistryParsesAllSinkTypes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: queue
    type: sqs
    sqs:
      uri: https://sqs.us-east-1.amazonaws.com/1/q
      region: us-east-1
  - id: topic
    type: sns
    sns:
      topic_arn: arn:aws:sns:us-east-1:1:topic
      region: us-east-1
  - id: gcp
    type: gcppubsub
    gcppubsub:
      project_id: proj
      topic: feed-events
  - id: hook
    type: http
    http:
      url: https://example.com/hook
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if got := len(reg.All()); got != 4 {
		t.Fatalf("expected 4 publishers, got %d", got)
	}
	if cfg, ok := reg.ByID("topic"); !ok || cfg.SNS == nil || cfg.SNS.TopicARN == "" {
		t.Fatalf("sns config not materialized: %#v", cfg)
	}
}

func TestValidatePublisherConfigRejectsMissingHTTP(t *testing.T) {
	err := validatePublisherConfig(PublisherConfig{
		ID:   "h1",
		Type: TypeHTTP,
	})
	if err == nil {
		t.Fatalf("expected validation error for missing http block")
	}
}

func TestValidatePublisherConfigRejectsLopsidedSNSCreds(t *testing.T) {
	err := validatePublisherConfig(PublisherConfig{
		ID:   "s1",
		Type: TypeSNS,
		SNS: &SNSPublisherConfig{
			TopicARN:    "arn:aws:sns:::t",
			Region:      "us-east-1",
			AccessKeyID: "AKIA",
		},
	})
	if err == nil {
		t.Fatalf("expected validation error for access key without secret")
	}
}

func TestValidatePublisherConfigRejectsMissingRegion(t *testing.T) {
	err := validatePublisherConfig(PublisherConfig{
		ID:   "q1",
		Type: TypeSQS,
		SQS:  &SQSPublisherConfig{QueueURL: "https://example.com/q"},
	})
	if err == nil {
		t.Fatalf("expected validation error for missing sqs region")
	}
}
