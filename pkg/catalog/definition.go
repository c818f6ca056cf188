package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadDefinition reads a resource definition from a YAML or JSON file and
// returns it as a JSON body ready for CreateResource or UpdateResource.
func LoadDefinition(path string) (json.RawMessage, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("definition file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition file: %w", err)
	}
	return parseDefinition(raw, filepath.Ext(path))
}

func parseDefinition(data []byte, ext string) (json.RawMessage, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("definition file is empty")
	}

	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		ext string
		fn  func([]byte) (json.RawMessage, error)
	}{
		{ext: ".json", fn: decodeJSONDefinition},
		{ext: ".yaml", fn: decodeYAMLDefinition},
		{ext: ".yml", fn: decodeYAMLDefinition},
	}

	known := false
	for _, d := range decoders {
		if d.ext == ext {
			known = true
		}
	}

	var lastErr error
	for _, d := range decoders {
		if known && ext != d.ext {
			continue
		}
		body, err := d.fn(data)
		if err == nil {
			return body, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("definition file format not recognized (expected YAML or JSON): %w", lastErr)
}

func decodeJSONDefinition(data []byte) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, fmt.Errorf("decode json definition: %w", err)
	}
	return json.RawMessage(buf.Bytes()), nil
}

func decodeYAMLDefinition(data []byte) (json.RawMessage, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml definition: %w", err)
	}
	if _, ok := doc.(map[string]any); !ok {
		return nil, errors.New("decode yaml definition: top level must be a mapping")
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode yaml definition as json: %w", err)
	}
	return body, nil
}
