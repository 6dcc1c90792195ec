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

package main

import (
	"github.com/botobag/thriftql/compiler"
	"github.com/botobag/thriftql/config"
	"github.com/botobag/thriftql/graphql"
	"github.com/botobag/thriftql/idl"
	"github.com/botobag/thriftql/rpc"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
)

// loadConfig reads the configuration file (if any) and applies environment overrides.
func (env *environment) loadConfig() (*config.Config, error) {
	if len(env.envFile) > 0 {
		if err := godotenv.Load(env.envFile); err != nil {
			return nil, idl.NewError("failed to load environment file", err, idl.ErrKindIO, idl.File(env.envFile),
				idl.Op("thriftql.loadConfig"))
		}
	}

	cfg := config.DefaultConfig()
	if len(env.configPath) > 0 {
		var err error
		if cfg, err = config.LoadFromFile(env.configPath); err != nil {
			return nil, err
		}
	}
	config.LoadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildSchema loads the configured services and assembles their schema.
func (env *environment) buildSchema(cfg *config.Config, factory rpc.ClientFactory) (*graphql.Schema, error) {
	session := compiler.NewSession(cfg.CompilerConfig(env.logger()))
	if err := session.Load(cfg.ServicePaths()...); err != nil {
		return nil, err
	}
	return compiler.Assemble(session, cfg.AssembleConfig(factory))
}

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	// argsJSON decodes operation arguments. Numbers stay json.Number so that i64 values beyond 2^53
	// survive.
	argsJSON = jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
		UseNumber:              true,
	}.Froze()
)

func (env *environment) writeJSON(value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = env.stdout.Write(data)
	return err
}
