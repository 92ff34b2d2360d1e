package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/atlanticdynamic/scriptstep/internal/interpolation"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadFile reads inputs from a .toml, .yaml or .yml file. Keys are input names;
// scalar values are converted to strings and lists are joined with commas.
// ${VAR} references in interpolated inputs are expanded against lookup, or the
// process environment when lookup is nil.
func LoadFile(path string, lookup interpolation.LookupFunc) (*Inputs, error) {
	var ext string
	switch ext = strings.ToLower(filepath.Ext(path)); ext {
	case ".toml", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedExtension, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}

	in, err := LoadBytes(data, ext)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFailedToLoadConfig, path, err)
	}
	if err := interpolation.New(lookup).Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFailedToLoadConfig, path, err)
	}
	return in, nil
}

// LoadBytes decodes inputs from TOML (".toml") or YAML (".yaml", ".yml") data.
func LoadBytes(data []byte, ext string) (*Inputs, error) {
	raw := map[string]any{}
	switch ext {
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedExtension, ext)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	in := &Inputs{}
	var errs []error
	for _, k := range keys {
		value, err := stringify(raw[k])
		if err != nil {
			errs = append(errs, fmt.Errorf("input %s: %w", k, err))
			continue
		}
		if err := in.Set(k, value); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return in, nil
}

func stringify(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			s, err := stringify(item)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}
