package bridge

import (
	"context"

	"github.com/viant/mcpbridge/registry"
)

// InfoToolName is the bridge provided tool describing the bridged endpoint.
const InfoToolName = "bridge_info"

type (
	infoInput struct{}

	infoOutput struct {
		EndpointID      string `json:"endpointId"`
		Address         string `json:"address"`
		Identity        string `json:"identity"`
		Principal       string `json:"principal"`
		Version         string `json:"version"`
		MetadataVersion string `json:"metadataVersion"`
		Tools           int    `json:"tools"`
	}
)

func (s *Service) registerTools() error {
	return registry.RegisterTool(s.local, InfoToolName, "Describes the bridged endpoint and the identity used to call it", s.info)
}

func (s *Service) info(ctx context.Context, _ *infoInput) (*infoOutput, error) {
	ret := &infoOutput{
		EndpointID: s.config.EndpointID,
		Address:    s.config.Address,
		Identity:   s.config.Identity,
		Principal:  s.identity.Principal(),
		Version:    Version,
	}
	if s.translator != nil {
		ret.MetadataVersion = s.translator.Metadata().Version
		ret.Tools = len(s.translator.Tools())
	}
	return ret, nil
}
