package config

import (
	"encoding/xml"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlParser adapts yaml.v3 to koanf.Parser.
type yamlParser struct{}

func (yamlParser) Unmarshal(b []byte) (map[string]any, error) {
	out := map[string]any{}
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (yamlParser) Marshal(o map[string]any) ([]byte, error) {
	return yaml.Marshal(o)
}

// checkstyleParser reads a checkstyle XML configuration. Leaf modules
// become entries of the modules table; container modules such as Checker
// and TreeWalker only contribute their children. When a module appears
// more than once the last occurrence wins.
type checkstyleParser struct{}

type xmlModule struct {
	Name       string        `xml:"name,attr"`
	Properties []xmlProperty `xml:"property"`
	Modules    []xmlModule   `xml:"module"`
}

type xmlProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

func (checkstyleParser) Unmarshal(b []byte) (map[string]any, error) {
	var root xmlModule
	if err := xml.Unmarshal(b, &root); err != nil {
		return nil, err
	}
	if root.Name == "" {
		return nil, errors.New("checkstyle config: root module has no name")
	}
	modules := map[string]any{}
	collectModules(root, modules)
	return map[string]any{"modules": modules}, nil
}

func collectModules(m xmlModule, into map[string]any) {
	if len(m.Modules) > 0 {
		for _, child := range m.Modules {
			collectModules(child, into)
		}
		return
	}
	props := make(map[string]any, len(m.Properties))
	for _, p := range m.Properties {
		props[p.Name] = p.Value
	}
	into[m.Name] = props
}

func (checkstyleParser) Marshal(map[string]any) ([]byte, error) {
	return nil, fmt.Errorf("checkstyle config: marshal not supported")
}
