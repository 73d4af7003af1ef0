package liveness

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/gconf"
	"github.com/heirloom-labs/heirloom/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r heirloom.Registry, auth x.Authenticator) {
	r.Handle(pathUpdateConfigurationMsg, NewConfigHandler(auth))
}

// RegisterQuery will register the heartbeat bucket as "/heartbeats".
func RegisterQuery(qr heirloom.QueryRouter) {
	NewHeartbeatBucket().Register("heartbeats", qr)
}

// NewConfigHandler returns a handler of the configuration update message.
// Only the configuration owner can change it.
func NewConfigHandler(auth x.Authenticator) heirloom.Handler {
	return gconf.NewUpdateConfigurationHandler(packageName,
		func() gconf.OwnedConfig { return &Configuration{} },
		auth, nil)
}
