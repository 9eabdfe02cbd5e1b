package config

import (
	"errors"
	"testing"

	"alexandria-server/pkg/logger"
)

func TestContainer_Accessors(t *testing.T) {
	clearConfigEnv(t)
	cfg := NewConfig()
	log := logger.NewLogger("error")
	c := &Container{Config: cfg, Logger: log}

	if c.GetConfig() != cfg {
		t.Fatal("GetConfig returned a different config")
	}
	if c.GetLogger() != log {
		t.Fatal("GetLogger returned a different logger")
	}
}

func TestContainer_CloseReverseOrder(t *testing.T) {
	var order []string
	first := errors.New("archive close failed")
	c := &Container{closers: []func() error{
		func() error { order = append(order, "db"); return errors.New("db close failed") },
		func() error { order = append(order, "archive"); return first },
	}}

	err := c.Close()
	if !errors.Is(err, first) {
		t.Fatalf("expected first error from last closer, got %v", err)
	}
	if len(order) != 2 || order[0] != "archive" || order[1] != "db" {
		t.Fatalf("unexpected close order %v", order)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close should be a no-op, got %v", err)
	}
}
