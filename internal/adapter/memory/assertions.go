package memory

import "github.com/fluxwatch/bufcore/internal/adapter"

var (
	_ adapter.EngineTransport = (*Engine)(nil)
	_ adapter.HostText        = (*Host)(nil)
	_ adapter.Timer           = (*Clock)(nil)
	_ adapter.Alerter         = (*Recorder)(nil)
)
