package pipeline

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/seanjohnno/bitmapy/internal/pipeline/stage"
	"gopkg.in/yaml.v3"
)

// factory builds one stage from its YAML parameter map (the "type" key
// already stripped).
type factory func(params map[string]any) (Stage, error)

var factories = map[string]factory{
	"greyscale": func(_ map[string]any) (Stage, error) {
		return &stage.GreyscaleStage{}, nil
	},
	"invert": func(_ map[string]any) (Stage, error) {
		return &stage.InvertStage{}, nil
	},
	"resample": func(_ map[string]any) (Stage, error) {
		return &stage.ResampleStage{}, nil
	},
	"replace-color": func(params map[string]any) (Stage, error) {
		var cfg struct {
			Tolerance float64 `mapstructure:"tolerance"`
			From      string  `mapstructure:"from"`
			To        string  `mapstructure:"to"`
		}
		if err := mapstructure.Decode(params, &cfg); err != nil {
			return nil, err
		}
		from, err := parseHexColor(cfg.From)
		if err != nil {
			return nil, fmt.Errorf("bad 'from' color: %w", err)
		}
		to, err := parseHexColor(cfg.To)
		if err != nil {
			return nil, fmt.Errorf("bad 'to' color: %w", err)
		}
		return &stage.ReplaceColorStage{Tolerance: cfg.Tolerance, From: from, To: to}, nil
	},
	"gaussian-blur": func(params map[string]any) (Stage, error) {
		var cfg struct {
			Sigma float64 `mapstructure:"sigma"`
		}
		if err := mapstructure.Decode(params, &cfg); err != nil {
			return nil, err
		}
		return &stage.GaussianBlurStage{Sigma: cfg.Sigma}, nil
	},
	"brightness": func(params map[string]any) (Stage, error) {
		var cfg struct {
			Change float64 `mapstructure:"change"`
		}
		if err := mapstructure.Decode(params, &cfg); err != nil {
			return nil, err
		}
		return &stage.BrightnessStage{Change: cfg.Change}, nil
	},
}

// Load reads a YAML pipeline definition from path. An empty or absent
// stages list yields an empty pipeline, which Run treats as a no-op.
func Load(path string) ([]Stage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline file: %w", err)
	}
	return Parse(data)
}

// Parse builds a stage list from a YAML document of the form:
//
//	stages:
//	  - type: greyscale
//	  - type: replace-color
//	    tolerance: 50
//	    from: "#ffffff"
//	    to: "#000000"
func Parse(data []byte) ([]Stage, error) {
	var doc struct {
		Stages []map[string]any `yaml:"stages"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline definition: %w", err)
	}

	stages := make([]Stage, 0, len(doc.Stages))
	for i, params := range doc.Stages {
		kind, ok := params["type"].(string)
		if !ok {
			return nil, fmt.Errorf("stage %d: missing 'type'", i)
		}
		build, ok := factories[kind]
		if !ok {
			return nil, fmt.Errorf("stage %d: unknown stage type %q", i, kind)
		}
		delete(params, "type")
		s, err := build(params)
		if err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", i, kind, err)
		}
		stages = append(stages, s)
	}
	return stages, nil
}

// parseHexColor decodes "#rrggbb" (leading '#' optional) into RGB bytes.
func parseHexColor(s string) ([3]byte, error) {
	var rgb [3]byte
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return rgb, fmt.Errorf("expected rrggbb hex color, got %q", s)
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return rgb, fmt.Errorf("expected rrggbb hex color, got %q", s)
		}
		rgb[i] = byte(v)
	}
	return rgb, nil
}
