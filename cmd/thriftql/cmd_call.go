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
	"context"
	"fmt"
	"log"
	"os"

	"github.com/botobag/thriftql/compiler"
	"github.com/botobag/thriftql/idl"
	"github.com/botobag/thriftql/rpc"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type cmdCall struct {
	fixture string
	args    string
}

func (*cmdCall) help() *commandHelp {
	return &commandHelp{
		usage:   "call OPERATION",
		summary: "Execute a root operation against canned responses",
		args:    cobra.ExactArgs(1),
	}
}

func (cmd *cmdCall) flags(flags *pflag.FlagSet) {
	flags.StringVar(&cmd.fixture, "fixture", "", "YAML file mapping service and method names to responses")
	flags.StringVar(&cmd.args, "args", "", "arguments of the operation as a JSON object")
}

// loadFixture reads the canned responses keyed by service and method.
func (cmd *cmdCall) loadFixture() (*rpc.StaticClient, error) {
	const op = idl.Op("thriftql.call")

	responses := map[string]map[string]interface{}{}
	if len(cmd.fixture) > 0 {
		data, err := os.ReadFile(cmd.fixture)
		if err != nil {
			return nil, idl.NewError("failed to read fixture", err, idl.ErrKindIO, idl.File(cmd.fixture), op)
		}
		if err := yaml.Unmarshal(data, &responses); err != nil {
			return nil, idl.NewError("failed to parse fixture", err, idl.ErrKindConfig, idl.File(cmd.fixture), op)
		}
	}
	return rpc.NewStaticClient(responses), nil
}

func (cmd *cmdCall) run(env *environment, args []string) error {
	cfg, err := env.loadConfig()
	if err != nil {
		return err
	}

	client, err := cmd.loadFixture()
	if err != nil {
		return err
	}

	var operationArgs map[string]interface{}
	if len(cmd.args) > 0 {
		if err := argsJSON.UnmarshalFromString(cmd.args, &operationArgs); err != nil {
			return idl.NewError("--args must be a JSON object", err, idl.ErrKindConfig, idl.Op("thriftql.call"))
		}
	}

	schema, err := env.buildSchema(cfg, rpc.FactoryOf(client))
	if err != nil {
		return err
	}

	result, err := compiler.Execute(context.Background(), schema, args[0], operationArgs)
	logCalls(env.logger(), client.Calls())
	if err != nil {
		return err
	}
	return env.writeJSON(result)
}

// logCalls logs the requests sent to the fixture.
func logCalls(logger *log.Logger, calls []rpc.RecordedCall) {
	for _, call := range calls {
		request, err := json.MarshalToString(call.Request)
		if err != nil {
			request = fmt.Sprintf("%+v", call.Request)
		}
		logger.Printf("rpc: called %s.%s with %s", call.Service, call.Method, request)
	}
}
