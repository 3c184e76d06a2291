package config

import (
	"bytes"
	"errors"
	"os"

	"github.com/adrianliechti/mineru/pkg/extractor"
	"github.com/adrianliechti/mineru/pkg/extractor/mineru"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

// used when no config file is given; the environment is expanded the same
// way as for files
const defaultConfig = `
extractors:
  text:
    type: text

  mineru:
    type: mineru
    url: ${MINERU_BASE_URL}
    token: ${MINERU_API_KEY}
`

type Config struct {
	Address string

	extractor map[string]extractor.Provider

	mineru    map[string]*mineru.Client
	mineruIDs []string
}

// Parse loads the configuration file at path. An empty path configures the
// default extractors from MINERU_API_KEY and MINERU_BASE_URL.
func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	c := &Config{
		Address: ":8080",
	}

	if file.Address != "" {
		c.Address = file.Address
	}

	if err := c.registerExtractors(file); err != nil {
		return nil, err
	}

	return c, nil
}

// Close releases the connections held by configured clients.
func (cfg *Config) Close() error {
	var result error

	for _, c := range cfg.mineru {
		result = errors.Join(result, c.Close())
	}

	return result
}

type configFile struct {
	Address string `yaml:"address"`

	Extractors yaml.Node `yaml:"extractors"`
}

func parseFile(path string) (*configFile, error) {
	data := []byte(defaultConfig)

	if path != "" {
		val, err := os.ReadFile(path)

		if err != nil {
			return nil, err
		}

		data = val
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
