package config

import (
	"errors"
	"strings"
	"time"

	"github.com/adrianliechti/mineru/pkg/extractor"
	"github.com/adrianliechti/mineru/pkg/extractor/mineru"
	"github.com/adrianliechti/mineru/pkg/extractor/multi"
	"github.com/adrianliechti/mineru/pkg/extractor/text"
	"github.com/adrianliechti/mineru/pkg/limiter"
	"github.com/adrianliechti/mineru/pkg/otel"

	"golang.org/x/time/rate"
)

func (cfg *Config) RegisterExtractor(id string, p extractor.Provider) {
	if cfg.extractor == nil {
		cfg.extractor = make(map[string]extractor.Provider)
	}

	if _, ok := cfg.extractor[""]; !ok {
		cfg.extractor[""] = p
	}

	cfg.extractor[id] = p
}

func (cfg *Config) Extractor(id string) (extractor.Provider, error) {
	if cfg.extractor != nil {
		if c, ok := cfg.extractor[id]; ok {
			return c, nil
		}
	}

	return nil, errors.New("extractor not found: " + id)
}

// MinerU returns the undecorated client registered under id, or the first
// one for an empty id.
func (cfg *Config) MinerU(id string) (*mineru.Client, error) {
	if id == "" && len(cfg.mineruIDs) > 0 {
		id = cfg.mineruIDs[0]
	}

	if c, ok := cfg.mineru[id]; ok {
		return c, nil
	}

	return nil, errors.New("mineru client not found: " + id)
}

type extractorConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Language string `yaml:"language"`

	Interval time.Duration `yaml:"interval"`
	MaxWait  time.Duration `yaml:"max_wait"`
	Timeout  time.Duration `yaml:"timeout"`

	Proxy *proxyConfig `yaml:"proxy"`

	Limit *int `yaml:"limit"`
}

type extractorContext struct {
	Limiter *rate.Limiter
}

func (cfg *Config) registerExtractors(f *configFile) error {
	var configs map[string]extractorConfig
	var extractors []extractor.Provider

	if f.Extractors.Kind == 0 {
		cfg.RegisterExtractor("", multi.New())
		return nil
	}

	if err := f.Extractors.Decode(&configs); err != nil {
		return err
	}

	// mapping nodes alternate key and value; keys keep the file order
	for i := 0; i < len(f.Extractors.Content); i += 2 {
		id := f.Extractors.Content[i].Value

		config, ok := configs[id]

		if !ok {
			continue
		}

		context := extractorContext{
			Limiter: createLimiter(config.Limit),
		}

		extractor, err := cfg.createExtractor(id, config, context)

		if err != nil {
			return err
		}

		if _, ok := extractor.(limiter.Extractor); !ok {
			extractor = limiter.NewExtractor(context.Limiter, extractor)
		}

		if _, ok := extractor.(otel.Extractor); !ok {
			extractor = otel.NewExtractor(id, extractor)
		}

		extractors = append(extractors, extractor)

		cfg.RegisterExtractor(id, extractor)
	}

	cfg.RegisterExtractor("", multi.New(extractors...))

	return nil
}

func (cfg *Config) createExtractor(id string, c extractorConfig, context extractorContext) (extractor.Provider, error) {
	switch strings.ToLower(c.Type) {
	case "mineru":
		return cfg.mineruExtractor(id, c)

	case "text":
		return textExtractor(c)

	default:
		return nil, errors.New("invalid extractor type: " + c.Type)
	}
}

func (cfg *Config) mineruExtractor(id string, c extractorConfig) (extractor.Provider, error) {
	options := []mineru.Option{
		mineru.WithURL(c.URL),
		mineru.WithToken(c.Token),
		mineru.WithLanguage(c.Language),
		mineru.WithPollInterval(c.Interval),
		mineru.WithMaxWait(c.MaxWait),
		mineru.WithTimeout(c.Timeout),
	}

	timeout := c.Timeout

	if timeout <= 0 {
		timeout = mineru.DefaultTimeout
	}

	client, err := c.Proxy.proxyClient(timeout)

	if err != nil {
		return nil, err
	}

	if client != nil {
		options = append(options, mineru.WithClient(client))
	}

	p, err := mineru.New(options...)

	if err != nil {
		return nil, err
	}

	if cfg.mineru == nil {
		cfg.mineru = make(map[string]*mineru.Client)
	}

	cfg.mineru[id] = p
	cfg.mineruIDs = append(cfg.mineruIDs, id)

	return p, nil
}

func textExtractor(c extractorConfig) (extractor.Provider, error) {
	return text.New()
}
