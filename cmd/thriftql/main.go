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

// Command thriftql compiles Thrift IDL services into a GraphQL schema.
//
//	thriftql schema -c thriftql.yaml
//	thriftql check api/*.thrift
//	thriftql call -c thriftql.yaml --fixture responses.yaml --args '{"value": 5}' Calculator_negate
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type command interface {
	help() *commandHelp
	flags(flags *pflag.FlagSet)
	run(env *environment, args []string) error
}

type commandHelp struct {
	usage   string
	summary string
	args    cobra.PositionalArgs
}

// environment carries the global options and the output streams to commands.
type environment struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	envFile    string
	verbose    bool
}

func (env *environment) logger() *log.Logger {
	if env.verbose {
		return log.New(env.stderr, "", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

func newRootCommand(stdout io.Writer, stderr io.Writer) *cobra.Command {
	env := &environment{
		stdout: stdout,
		stderr: stderr,
	}

	rootCmd := &cobra.Command{
		Use:           "thriftql [options] COMMAND",
		Short:         "Expose Thrift services as a GraphQL schema",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&env.configPath, "config", "c", "", "configuration file (YAML or JSON)")
	flags.StringVar(&env.envFile, "env-file", "", "load environment variables from a .env file")
	flags.BoolVarP(&env.verbose, "verbose", "v", false, "log progress to stderr")

	commands := []command{
		&cmdSchema{},
		&cmdCheck{},
		&cmdCall{},
	}
	for _, cmd := range commands {
		cmd := cmd
		help := cmd.help()
		cobraCmd := &cobra.Command{
			Use:   help.usage,
			Short: help.summary,
			Args:  help.args,
			RunE: func(_ *cobra.Command, args []string) error {
				return cmd.run(env, args)
			},
		}
		cmd.flags(cobraCmd.Flags())
		rootCmd.AddCommand(cobraCmd)
	}

	return rootCmd
}

func main() {
	rootCmd := newRootCommand(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "thriftql: %s\n", err)
		os.Exit(1)
	}
}
