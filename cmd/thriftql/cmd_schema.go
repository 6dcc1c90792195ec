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
	"io"

	"github.com/botobag/thriftql/graphql"
	"github.com/botobag/thriftql/rpc"

	"github.com/spf13/pflag"
)

type cmdSchema struct {
	json bool
}

func (*cmdSchema) help() *commandHelp {
	return &commandHelp{
		usage:   "schema",
		summary: "Print the schema of the configured services",
	}
}

func (cmd *cmdSchema) flags(flags *pflag.FlagSet) {
	flags.BoolVar(&cmd.json, "json", false, "print the root operations as JSON instead of SDL")
}

type operationArg struct {
	Name         string      `json:"name"`
	Type         string      `json:"type"`
	DefaultValue interface{} `json:"defaultValue,omitempty"`
}

type operationInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Args        []operationArg `json:"args"`
	Type        string         `json:"type"`
}

func (cmd *cmdSchema) run(env *environment, args []string) error {
	cfg, err := env.loadConfig()
	if err != nil {
		return err
	}

	schema, err := env.buildSchema(cfg, rpc.FactoryOf(rpc.UnavailableClient))
	if err != nil {
		return err
	}

	if !cmd.json {
		_, err := io.WriteString(env.stdout, graphql.PrintSchema(schema))
		return err
	}

	fields := schema.Query().Fields().Sorted()
	operations := make([]operationInfo, 0, len(fields))
	for _, field := range fields {
		info := operationInfo{
			Name:        field.Name(),
			Description: field.Description(),
			Args:        []operationArg{},
			Type:        field.Type().String(),
		}
		fieldArgs := field.Args()
		for i := range fieldArgs {
			arg := &fieldArgs[i]
			info.Args = append(info.Args, operationArg{
				Name:         arg.Name(),
				Type:         arg.Type().String(),
				DefaultValue: arg.DefaultValue(),
			})
		}
		operations = append(operations, info)
	}

	return env.writeJSON(map[string]interface{}{
		"operations": operations,
	})
}
