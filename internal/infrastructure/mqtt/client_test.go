package mqtt

import (
	"strings"
	"testing"

	"github.com/hearthhome/hearth-core/internal/infrastructure/config"
)

func TestBuildClientOptions(t *testing.T) {
	cfg := config.MQTTConfig{
		Host:     "broker.example.com",
		Port:     1883,
		ClientID: "hearth-test",
		Username: "user",
		Password: "pass",
		QoS:      1,
	}

	opts := buildClientOptions(cfg)

	if len(opts.Servers) != 1 {
		t.Fatalf("expected 1 broker, got %d", len(opts.Servers))
	}

	broker := opts.Servers[0].String()
	if broker != "tcp://broker.example.com:1883" {
		t.Errorf("broker URL = %q, want tcp://broker.example.com:1883", broker)
	}

	if opts.ClientID != "hearth-test" {
		t.Errorf("ClientID = %q, want hearth-test", opts.ClientID)
	}

	if opts.Username != "user" {
		t.Errorf("Username = %q, want user", opts.Username)
	}

	if !opts.AutoReconnect {
		t.Error("expected AutoReconnect to be enabled")
	}

	if opts.WillTopic != TopicSystemStatus {
		t.Errorf("WillTopic = %q, want %q", opts.WillTopic, TopicSystemStatus)
	}

	if !strings.Contains(string(opts.WillPayload), "unexpected_disconnect") {
		t.Error("expected LWT payload to carry unexpected_disconnect reason")
	}
}

func TestBuildClientOptions_NoCredentials(t *testing.T) {
	cfg := config.MQTTConfig{
		Host:     "localhost",
		Port:     1883,
		ClientID: "hearth-test",
	}

	opts := buildClientOptions(cfg)

	if opts.Username != "" {
		t.Errorf("Username = %q, want empty", opts.Username)
	}
}

func TestClient_NotConnected(t *testing.T) {
	c := &Client{
		cfg:           config.MQTTConfig{QoS: 1},
		subscriptions: make(map[string]subscription),
	}

	if err := c.Publish("test/topic", []byte("{}"), false); err != ErrNotConnected {
		t.Errorf("Publish() error = %v, want ErrNotConnected", err)
	}

	if err := c.Subscribe("test/topic", func(string, []byte) error { return nil }); err != ErrNotConnected {
		t.Errorf("Subscribe() error = %v, want ErrNotConnected", err)
	}
}

func TestClient_CloseWithoutConnect(t *testing.T) {
	c := &Client{}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}
