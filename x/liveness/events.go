package liveness

import "github.com/heirloom-labs/heirloom"

// HeartbeatEvent is emitted when an owner proves to be alive.
type HeartbeatEvent struct {
	Owner heirloom.Address  `json:"owner"`
	At    heirloom.UnixTime `json:"at"`
}

func (HeartbeatEvent) Kind() string { return "liveness/heartbeat" }
