package config

import (
	"testing"
)

func TestInitConfig(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Skipf("no config file available: %v", r)
		}
	}()
	cfg := InitConfig()
	t.Logf("cfg grpc: %+v", cfg.Grpc)
	t.Logf("cfg filter: %+v", cfg.Filter)
	t.Logf("cfg trade: %+v", cfg.Trade)
	t.Logf("cfg kafka: %+v", cfg.Kafka)
}
