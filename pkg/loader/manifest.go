// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"fmt"
	"strings"

	"github.com/tfctl/clikit/pkg/schema"
)

// manifest is the on-disk YAML shape of one command declaration.
type manifest struct {
	Description string                 `yaml:"description"`
	Usage       string                 `yaml:"usage"`
	Examples    []string               `yaml:"examples"`
	Synonyms    []string               `yaml:"synonyms"`
	Handler     *bool                  `yaml:"handler"`
	Args        []argManifest          `yaml:"args"`
	Options     map[string]optManifest `yaml:"options"`
}

type argManifest struct {
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	Labels      []string `yaml:"labels"`
	Required    bool     `yaml:"required"`
	Variadic    bool     `yaml:"variadic"`
	Description string   `yaml:"description"`
}

type optManifest struct {
	Type        string   `yaml:"type"`
	Short       string   `yaml:"short"`
	Labels      []string `yaml:"labels"`
	Default     any      `yaml:"default"`
	Description string   `yaml:"description"`
}

func (m argManifest) toArg() (schema.Arg, error) {
	t, err := parseType(m.Type, m.Labels)
	if err != nil {
		return schema.Arg{}, err
	}
	if m.Variadic && t.Kind != schema.Strings {
		return schema.Arg{}, fmt.Errorf("variadic argument %q must have type strings", m.Name)
	}
	return schema.Arg{
		Name:        m.Name,
		Type:        t,
		Description: m.Description,
		Required:    m.Required,
		Variadic:    m.Variadic,
	}, nil
}

func (m optManifest) toOption(long string) (schema.Option, error) {
	t, err := parseType(m.Type, m.Labels)
	if err != nil {
		return schema.Option{}, err
	}
	var short rune
	switch runes := []rune(m.Short); len(runes) {
	case 0:
	case 1:
		short = runes[0]
	default:
		return schema.Option{}, fmt.Errorf("short form %q must be a single character", m.Short)
	}
	def := m.Default
	if t.Kind == schema.Bool && def == nil {
		def = false
	}
	return schema.Option{
		Long:        long,
		Short:       short,
		Type:        t,
		Default:     def,
		TakesValue:  t.Kind != schema.Bool,
		Description: m.Description,
	}, nil
}

// parseType maps a manifest type string ("string", "bool", "int",
// "int32", "uint8", "float", "float32", "enum", "strings") to its
// ValueType. Enumerations take their labels from the manifest.
func parseType(spec string, labels []string) (schema.ValueType, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		spec = "string"
	}

	switch spec {
	case "string":
		return schema.ValueType{Kind: schema.String}, nil
	case "bool":
		return schema.ValueType{Kind: schema.Bool}, nil
	case "strings":
		return schema.ValueType{Kind: schema.Strings}, nil
	case "enum":
		return schema.ValueType{Kind: schema.Enum, Labels: labels}, nil
	case "float":
		return schema.ValueType{Kind: schema.Float, Bits: 64}, nil
	}

	for _, numeric := range []struct {
		prefix string
		kind   schema.Kind
		widths []int
	}{
		{"int", schema.Int, []int{8, 16, 32, 64}},
		{"uint", schema.Uint, []int{8, 16, 32, 64}},
		{"float", schema.Float, []int{32, 64}},
	} {
		if spec == numeric.prefix {
			return schema.ValueType{Kind: numeric.kind, Bits: 64}, nil
		}
		if !strings.HasPrefix(spec, numeric.prefix) {
			continue
		}
		rest := strings.TrimPrefix(spec, numeric.prefix)
		for _, width := range numeric.widths {
			if rest == fmt.Sprintf("%d", width) {
				return schema.ValueType{Kind: numeric.kind, Bits: width}, nil
			}
		}
		return schema.ValueType{}, fmt.Errorf("unknown type %q", spec)
	}

	return schema.ValueType{}, fmt.Errorf("unknown type %q", spec)
}
