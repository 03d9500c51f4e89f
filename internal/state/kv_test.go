package state

import (
	"context"
	"testing"
)

func TestKV_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv, err := OpenKV(ctx, t.TempDir())
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	defer kv.Close()

	if err := kv.Set(ctx, "session", `{"token":"tok123"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := kv.Get(ctx, "session")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != `{"token":"tok123"}` {
		t.Fatalf("got %q", got)
	}

	// Overwrite.
	if err := kv.Set(ctx, "session", "v2"); err != nil {
		t.Fatalf("set again: %v", err)
	}
	if got, _ := kv.Get(ctx, "session"); got != "v2" {
		t.Fatalf("after overwrite got %q", got)
	}

	if err := kv.Delete(ctx, "session"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := kv.Get(ctx, "session"); got != "" {
		t.Fatalf("after delete got %q", got)
	}
}

func TestKV_MissingKeyReadsEmpty(t *testing.T) {
	ctx := context.Background()
	kv, err := OpenKV(ctx, t.TempDir())
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	defer kv.Close()

	got, err := kv.Get(ctx, "nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestKV_PersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	kv, err := OpenKV(ctx, dir)
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	if err := kv.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	kv2, err := OpenKV(ctx, dir)
	if err != nil {
		t.Fatalf("reopen kv: %v", err)
	}
	defer kv2.Close()
	if got, _ := kv2.Get(ctx, "k"); got != "v" {
		t.Fatalf("after reopen got %q", got)
	}
}

func TestConfig_LoadMissingIsEmpty(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "" {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())
	if err := SaveConfig(&Config{APIURL: "https://tasks.example.com/api"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "https://tasks.example.com/api" {
		t.Fatalf("got %+v", cfg)
	}
}
