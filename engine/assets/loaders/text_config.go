package loaders

import (
	"github.com/spaghettifunk/meshtext/engine/meshtext"
	"github.com/spaghettifunk/meshtext/engine/renderer/metadata"
)

// TextConfigLoader reads a text node configuration. The resource data is a
// *meshtext.Config whose Font and MaterialOverride are still unresolved.
type TextConfigLoader struct{}

func (tl *TextConfigLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	cfg, err := meshtext.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Name:     cfg.Text,
		FullPath: path,
		Type:     metadata.ResourceTypeTextConfig,
		Data:     cfg,
	}, nil
}

func (tl *TextConfigLoader) Unload(resource *metadata.Resource) error {
	if resource != nil {
		resource.Data = nil
	}
	return nil
}
