package connectors

import (
	"os"

	"gopkg.in/yaml.v3"
)

// SourcesConfig overrides the built-in source URLs. The UK list in particular
// publishes under a new asset URL with each update.
type SourcesConfig struct {
	URLs           map[string]string `yaml:"urls"`
	RefreshMinutes int               `yaml:"refreshMinutes"`
}

func ReadSourcesConfigFromFile(fileName string) (*SourcesConfig, error) {
	if fileName == "" {
		return &SourcesConfig{URLs: make(map[string]string)}, nil
	}
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	var config SourcesConfig
	if err = yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	if config.URLs == nil {
		config.URLs = make(map[string]string)
	}
	return &config, nil
}

// SourceFor resolves a named source, applying any configured URL override.
func (c *SourcesConfig) SourceFor(name string) (Source, error) {
	source, err := SourceByName(name)
	if err != nil {
		return Source{}, err
	}
	if url, ok := c.URLs[name]; ok && url != "" {
		source.URL = url
	}
	return source, nil
}
