package redis

import (
	"testing"

	"github.com/boticaviva/backend/pkg/config"
)

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}
}

func TestOptionsFromConfigParsesURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://localhost:6379/2", PoolSize: 5})
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("unexpected addr %s", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
	if opts.PoolSize != 5 {
		t.Fatalf("unexpected pool size %d", opts.PoolSize)
	}
}

func TestOptionsFromConfigRejectsBadURL(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{URL: "::bad::"}); err == nil {
		t.Fatal("expected error for malformed url")
	}
}

func TestKeyBuilders(t *testing.T) {
	c := &Client{}
	if got := c.CartKey("abc"); got != "bv:cart:abc" {
		t.Fatalf("unexpected cart key %s", got)
	}
	if got := c.SelectionKey("admin-1"); got != "bv:selection:admin-1" {
		t.Fatalf("unexpected selection key %s", got)
	}
}
