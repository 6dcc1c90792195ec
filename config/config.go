/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package config loads the configuration of a schema build from YAML or JSON files and the
// environment.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/botobag/thriftql/compiler"
	"github.com/botobag/thriftql/idl"
	"github.com/botobag/thriftql/rpc"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes the environment variables read by LoadFromEnv.
const EnvPrefix = "THRIFTQL_"

// Config describes a schema build.
type Config struct {
	// IDLPath is the directory that relative service files are resolved against
	IDLPath string `json:"idl_path" yaml:"idl_path"`

	// Strict exposes only the methods listed for each service
	Strict bool `json:"strict" yaml:"strict"`

	// ConvertEnumToInt compiles enums to Int
	ConvertEnumToInt bool `json:"convert_enum_to_int" yaml:"convert_enum_to_int"`

	// QueryNameSeparator joins service and function names in root field names
	QueryNameSeparator string `json:"query_name_separator" yaml:"query_name_separator"`

	// Services maps the name a service is called by to its configuration
	Services map[string]ServiceConfig `json:"services" yaml:"services"`
}

// ServiceConfig describes one exposed service.
type ServiceConfig struct {
	// File is the IDL document that declares the service
	File string `json:"file" yaml:"file"`

	// Service is the name of the service in File; the first service is used when empty
	Service string `json:"service" yaml:"service"`

	// Servers are the addresses the service is reachable at
	Servers []string `json:"servers" yaml:"servers"`

	// Methods lists the exposed functions
	Methods []string `json:"methods" yaml:"methods"`
}

// DefaultConfig returns a configuration with no services.
func DefaultConfig() *Config {
	return &Config{
		IDLPath:            ".",
		Strict:             true,
		QueryNameSeparator: "_",
	}
}

// LoadFromFile loads configuration from a YAML or JSON file. Settings missing from the file keep
// their defaults.
func LoadFromFile(path string) (*Config, error) {
	const op = idl.Op("config.LoadFromFile")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, idl.NewError("failed to read config file", err, idl.ErrKindIO, idl.File(path), op)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, idl.NewError("failed to parse YAML config", err, idl.ErrKindConfig, idl.File(path), op)
		}
	case ".json":
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, cfg); err != nil {
			return nil, idl.NewError("failed to parse JSON config", err, idl.ErrKindConfig, idl.File(path), op)
		}
	default:
		return nil, idl.NewError(fmt.Sprintf("unsupported config file format: %s", ext), idl.ErrKindConfig,
			idl.File(path), op)
	}

	return cfg, nil
}

// LoadFromEnv overrides cfg with environment variables prefixed with EnvPrefix.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv(EnvPrefix + "IDL_PATH"); v != "" {
		cfg.IDLPath = v
	}
	if v := os.Getenv(EnvPrefix + "STRICT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Strict = b
		}
	}
	if v := os.Getenv(EnvPrefix + "CONVERT_ENUM_TO_INT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ConvertEnumToInt = b
		}
	}
	if v := os.Getenv(EnvPrefix + "QUERY_NAME_SEPARATOR"); v != "" {
		cfg.QueryNameSeparator = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	const op = idl.Op("config.Validate")

	if len(c.Services) == 0 {
		return idl.NewError("at least one service is required", idl.ErrKindConfig, op)
	}

	for _, r := range c.QueryNameSeparator {
		if r != '_' && !('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z') && !('0' <= r && r <= '9') {
			return idl.NewError(fmt.Sprintf("query_name_separator %q must only contain letters, digits and underscores",
				c.QueryNameSeparator), idl.ErrKindConfig, op)
		}
	}

	for _, name := range c.ServiceNames() {
		service := c.Services[name]
		if service.File == "" {
			return idl.NewError(fmt.Sprintf("services.%s.file is required", name), idl.ErrKindConfig,
				idl.Identifier(name), op)
		}
		if c.Strict && len(service.Methods) == 0 {
			return idl.NewError(fmt.Sprintf("services.%s.methods is required in strict mode", name),
				idl.ErrKindConfig, idl.Identifier(name), op)
		}

		seen := make(map[string]bool, len(service.Methods))
		for _, method := range service.Methods {
			if method == "" {
				return idl.NewError(fmt.Sprintf("services.%s.methods contains an empty name", name),
					idl.ErrKindConfig, idl.Identifier(name), op)
			}
			if seen[method] {
				return idl.NewError(fmt.Sprintf("services.%s.methods lists %s more than once", name, method),
					idl.ErrKindConfig, idl.Identifier(method), op)
			}
			seen[method] = true
		}
	}

	return nil
}

// ServiceNames returns the names of the configured services in sorted order.
func (c *Config) ServiceNames() []string {
	names := make([]string, 0, len(c.Services))
	for name := range c.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ServicePath returns the path of the document that declares the named service.
func (c *Config) ServicePath(name string) string {
	file := c.Services[name].File
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(c.IDLPath, file)
}

// ServicePaths returns the documents of every configured service.
func (c *Config) ServicePaths() []string {
	names := c.ServiceNames()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = c.ServicePath(name)
	}
	return paths
}

// CompilerConfig returns the session configuration.
func (c *Config) CompilerConfig(logger *log.Logger) compiler.Config {
	return compiler.Config{
		ConvertEnumToInt: c.ConvertEnumToInt,
		Logger:           logger,
	}
}

// AssembleConfig returns the assembly configuration. Methods are listed without hooks; callers may
// add them to the result.
func (c *Config) AssembleConfig(factory rpc.ClientFactory) *compiler.AssembleConfig {
	services := make(map[string]compiler.ServiceConfig, len(c.Services))
	for name, service := range c.Services {
		methods := make(map[string]rpc.Hooks, len(service.Methods))
		for _, method := range service.Methods {
			methods[method] = rpc.Hooks{}
		}
		services[name] = compiler.ServiceConfig{
			File:    c.ServicePath(name),
			Service: service.Service,
			Servers: service.Servers,
			Methods: methods,
		}
	}

	separator := c.QueryNameSeparator
	return &compiler.AssembleConfig{
		Services: services,
		Strict:   c.Strict,
		QueryNamer: func(service string, function string) string {
			return service + separator + function
		},
		ClientFactory: factory,
	}
}
