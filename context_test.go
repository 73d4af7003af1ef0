package heirloom

import (
	"context"
	"testing"
	"time"

	"github.com/heirloom-labs/heirloom/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextHeader(t *testing.T) {
	bg := context.Background()
	if _, ok := GetHeader(bg); ok {
		t.Fatal("header must not be present")
	}

	now := time.Unix(1550000000, 0).UTC()
	ctx := WithHeader(bg, abci.Header{Height: 7, Time: now})
	h, ok := GetHeader(ctx)
	if !ok || h.Height != 7 {
		t.Fatalf("unexpected header: %v", h)
	}

	got, err := BlockTime(ctx)
	if err != nil {
		t.Fatalf("cannot get block time: %s", err)
	}
	if !got.Equal(now) {
		t.Fatalf("want %s, got %s", now, got)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("overwriting a header must panic")
		}
	}()
	WithHeader(ctx, abci.Header{})
}

func TestBlockTimeMissing(t *testing.T) {
	if _, err := BlockTime(context.Background()); !errors.ErrHuman.Is(err) {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := WithHeader(context.Background(), abci.Header{Height: 1})
	if _, err := BlockNow(ctx); !errors.ErrHuman.Is(err) {
		t.Fatalf("zero time must fail: %v", err)
	}
}

func TestContextChainID(t *testing.T) {
	ctx := WithChainID(context.Background(), "heirloom-test")
	if got := GetChainID(ctx); got != "heirloom-test" {
		t.Fatalf("unexpected chain id: %q", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("invalid chain id must panic")
		}
	}()
	WithChainID(context.Background(), "a")
}

func TestContextLogger(t *testing.T) {
	bg := context.Background()
	if GetLogger(bg) != DefaultLogger {
		t.Fatal("default logger expected")
	}
	logger := log.NewNopLogger()
	ctx := WithLogger(bg, logger)
	if GetLogger(ctx) != logger {
		t.Fatal("logger not set")
	}
	ctx = WithLogInfo(ctx, "module", "will")
	if GetLogger(ctx) == nil {
		t.Fatal("logger lost")
	}
}
