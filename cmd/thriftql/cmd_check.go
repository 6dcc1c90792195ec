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
	"fmt"

	"github.com/botobag/thriftql/compiler"
	"github.com/botobag/thriftql/graphql"
	"github.com/botobag/thriftql/idl"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type cmdCheck struct {
	convertEnumToInt bool
}

func (*cmdCheck) help() *commandHelp {
	return &commandHelp{
		usage:   "check FILE...",
		summary: "Compile every declaration of the given IDL files",
		args:    cobra.MinimumNArgs(1),
	}
}

func (cmd *cmdCheck) flags(flags *pflag.FlagSet) {
	flags.BoolVar(&cmd.convertEnumToInt, "convert-enum-to-int", false, "compile enums to Int")
}

func (cmd *cmdCheck) run(env *environment, args []string) error {
	session := compiler.NewSession(compiler.Config{
		ConvertEnumToInt: cmd.convertEnumToInt,
		Logger:           env.logger(),
	})
	if err := session.Load(args...); err != nil {
		return err
	}

	numFunctions := 0
	for _, doc := range session.Documents().Documents() {
		for _, decl := range doc.Declarations {
			switch decl := decl.(type) {
			case *idl.Struct, *idl.Typedef:
				for _, direction := range []compiler.Direction{compiler.Output, compiler.Input} {
					if err := checkType(session.Compile(decl, doc.Path, direction)); err != nil {
						return err
					}
				}

			case *idl.Enum:
				if err := checkType(session.Compile(decl, doc.Path, compiler.Output)); err != nil {
					return err
				}

			case *idl.Service:
				for _, fn := range decl.Functions {
					op, err := session.CompileFunction(doc.Path, decl.Name, fn.Name)
					if err != nil {
						return err
					}
					for _, arg := range op.Args {
						if err := checkType(arg.Type, nil); err != nil {
							return err
						}
					}
					if err := checkType(op.Type, nil); err != nil {
						return err
					}
					numFunctions++
				}
			}
		}
	}

	_, err := fmt.Fprintf(env.stdout, "checked %d documents: %d types, %d functions\n",
		session.Documents().Len(), session.NumTypes(), numFunctions)
	return err
}

// checkType finalizes a compiled type so errors in its fields surface.
func checkType(t graphql.Type, err error) error {
	if err != nil {
		return err
	}
	return graphql.Finalize(t)
}
