package remnawave

import (
	"github.com/IlyaGulya/ansible-collection-remnawave-panel/core"
)

type (
	PanelConfig   = core.PanelConfig
	Params        = core.Params
	Record        = core.Record
	RecordSet     = core.RecordSet
	Renderable    = core.Renderable
	Client        = core.Client
	RESTSession   = core.RESTSession
	ApiError      = core.ApiError
	NotFoundError = core.NotFoundError
)

func NewClient(config *PanelConfig) (*Client, error) {
	return core.NewClient(config)
}

func ClientVersion() string {
	return core.ClientVersion()
}
