package heirloom

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/heirloom-labs/heirloom/errors"
)

func TestUnixTimeUnmarshal(t *testing.T) {
	cases := map[string]struct {
		raw      string
		wantTime UnixTime
		wantErr  *errors.Error
	}{
		"zero time as number": {
			raw:      "0",
			wantTime: 0,
		},
		"zero time as string": {
			raw:      `"1970-01-01T01:00:00+01:00"`,
			wantTime: 0,
		},
		"a time as string": {
			raw:      `"2019-04-04T11:35:40.89181085+02:00"`,
			wantTime: 1554370540,
		},
		"a time as number": {
			raw:      "1554370540",
			wantTime: 1554370540,
		},
		"birth date before epoch": {
			raw:      `"1969-12-31T23:59:00Z"`,
			wantTime: -60,
		},
		"invalid string": {
			raw:     `"not a time string"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixTime
			err := json.Unmarshal([]byte(tc.raw), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %s", err)
			}
			if got != tc.wantTime {
				t.Fatalf("want %d time, got %d", tc.wantTime, got)
			}
		})
	}
}

func TestUnixTimeArithmetic(t *testing.T) {
	start := UnixTime(1000)
	if got := start.Add(90 * time.Second); got != 1090 {
		t.Fatalf("unexpected add result: %d", got)
	}
	if got := UnixTime(1090).Since(start); got != 90 {
		t.Fatalf("unexpected since result: %d", got)
	}
	if got := start.Since(1090); got != -90 {
		t.Fatalf("unexpected since result: %d", got)
	}

	got, err := start.AddSeconds(25)
	if err != nil || got != 1025 {
		t.Fatalf("unexpected result: %d, %v", got, err)
	}
	if _, err := UnixTime(math.MaxInt64 - 1).AddSeconds(10); !errors.ErrOverflow.Is(err) {
		t.Fatalf("want overflow, got %v", err)
	}
}
