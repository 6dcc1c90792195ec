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

package config_test

import (
	"os"
	"path/filepath"

	"github.com/botobag/thriftql/config"
	"github.com/botobag/thriftql/idl"
	. "github.com/botobag/thriftql/internal/testutil"
	"github.com/botobag/thriftql/rpc"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "config-test-")
		Expect(err).ShouldNot(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	writeFile := func(name string, content string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(content), 0644)).Should(Succeed())
		return path
	}

	It("has defaults", func() {
		cfg := config.DefaultConfig()
		Expect(cfg.Strict).Should(BeTrue())
		Expect(cfg.ConvertEnumToInt).Should(BeFalse())
		Expect(cfg.QueryNameSeparator).Should(Equal("_"))
		Expect(cfg.IDLPath).Should(Equal("."))
	})

	It("loads YAML files", func() {
		path := writeFile("thriftql.yaml", `
idl_path: /srv/idl
convert_enum_to_int: true
services:
  calc:
    file: calculator.thrift
    service: Calculator
    servers:
      - 127.0.0.1:9090
      - 127.0.0.1:9091
    methods:
      - add
      - negate
`)

		cfg, err := config.LoadFromFile(path)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(cfg.IDLPath).Should(Equal("/srv/idl"))
		Expect(cfg.Strict).Should(BeTrue())
		Expect(cfg.ConvertEnumToInt).Should(BeTrue())
		Expect(cfg.Services).Should(Equal(map[string]config.ServiceConfig{
			"calc": {
				File:    "calculator.thrift",
				Service: "Calculator",
				Servers: []string{"127.0.0.1:9090", "127.0.0.1:9091"},
				Methods: []string{"add", "negate"},
			},
		}))
		Expect(cfg.Validate()).Should(Succeed())
	})

	It("loads JSON files", func() {
		path := writeFile("thriftql.json", `{
			"strict": false,
			"query_name_separator": "__",
			"services": {"calc": {"file": "/idl/calculator.thrift"}}
		}`)

		cfg, err := config.LoadFromFile(path)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(cfg.Strict).Should(BeFalse())
		Expect(cfg.QueryNameSeparator).Should(Equal("__"))
		Expect(cfg.ServicePath("calc")).Should(Equal("/idl/calculator.thrift"))
		Expect(cfg.Validate()).Should(Succeed())
	})

	It("reports unreadable and malformed files", func() {
		_, err := config.LoadFromFile(filepath.Join(dir, "missing.yaml"))
		Expect(err).Should(MatchIDLError(
			KindIs(idl.ErrKindIO),
			FileHasSuffix("missing.yaml"),
		))

		_, err = config.LoadFromFile(writeFile("bad.yaml", "services: [1, 2"))
		Expect(err).Should(MatchIDLError(
			MessageEqual("failed to parse YAML config"),
			KindIs(idl.ErrKindConfig),
		))

		_, err = config.LoadFromFile(writeFile("config.toml", ""))
		Expect(err).Should(MatchIDLError(
			MessageEqual("unsupported config file format: .toml"),
			KindIs(idl.ErrKindConfig),
		))
	})

	It("reads overrides from the environment", func() {
		for key, value := range map[string]string{
			"THRIFTQL_IDL_PATH":             "/env/idl",
			"THRIFTQL_STRICT":               "false",
			"THRIFTQL_CONVERT_ENUM_TO_INT":  "1",
			"THRIFTQL_QUERY_NAME_SEPARATOR": "X",
		} {
			Expect(os.Setenv(key, value)).Should(Succeed())
			defer os.Unsetenv(key)
		}

		cfg := config.DefaultConfig()
		config.LoadFromEnv(cfg)
		Expect(cfg.IDLPath).Should(Equal("/env/idl"))
		Expect(cfg.Strict).Should(BeFalse())
		Expect(cfg.ConvertEnumToInt).Should(BeTrue())
		Expect(cfg.QueryNameSeparator).Should(Equal("X"))
	})

	It("ignores malformed boolean overrides", func() {
		Expect(os.Setenv("THRIFTQL_STRICT", "maybe")).Should(Succeed())
		defer os.Unsetenv("THRIFTQL_STRICT")

		cfg := config.DefaultConfig()
		config.LoadFromEnv(cfg)
		Expect(cfg.Strict).Should(BeTrue())
	})

	Describe("Validate", func() {
		var cfg *config.Config

		BeforeEach(func() {
			cfg = config.DefaultConfig()
			cfg.Services = map[string]config.ServiceConfig{
				"calc": {File: "calculator.thrift", Methods: []string{"add"}},
			}
		})

		It("accepts a complete configuration", func() {
			Expect(cfg.Validate()).Should(Succeed())
		})

		It("requires services", func() {
			cfg.Services = nil
			Expect(cfg.Validate()).Should(MatchIDLError(
				MessageEqual("at least one service is required"),
				KindIs(idl.ErrKindConfig),
			))
		})

		It("requires a file for every service", func() {
			cfg.Services["calc"] = config.ServiceConfig{Methods: []string{"add"}}
			Expect(cfg.Validate()).Should(MatchIDLError(
				MessageEqual("services.calc.file is required"),
				IdentifierEqual("calc"),
			))
		})

		It("requires methods in strict mode only", func() {
			cfg.Services["calc"] = config.ServiceConfig{File: "calculator.thrift"}
			Expect(cfg.Validate()).Should(MatchIDLError(
				MessageEqual("services.calc.methods is required in strict mode"),
			))

			cfg.Strict = false
			Expect(cfg.Validate()).Should(Succeed())
		})

		It("rejects repeated methods", func() {
			cfg.Services["calc"] = config.ServiceConfig{File: "calculator.thrift", Methods: []string{"add", "add"}}
			Expect(cfg.Validate()).Should(MatchIDLError(
				MessageEqual("services.calc.methods lists add more than once"),
				IdentifierEqual("add"),
			))
		})

		It("rejects separators that cannot appear in names", func() {
			cfg.QueryNameSeparator = "."
			Expect(cfg.Validate()).Should(MatchIDLError(KindIs(idl.ErrKindConfig)))
		})
	})

	It("builds compiler configurations", func() {
		cfg := config.DefaultConfig()
		cfg.IDLPath = "/idl"
		cfg.ConvertEnumToInt = true
		cfg.QueryNameSeparator = "__"
		cfg.Services = map[string]config.ServiceConfig{
			"calc": {
				File:    "math/calculator.thrift",
				Servers: []string{"127.0.0.1:9090"},
				Methods: []string{"add"},
			},
		}

		Expect(cfg.ServicePaths()).Should(Equal([]string{"/idl/math/calculator.thrift"}))
		Expect(cfg.CompilerConfig(nil).ConvertEnumToInt).Should(BeTrue())

		assemble := cfg.AssembleConfig(rpc.FactoryOf(rpc.UnavailableClient))
		Expect(assemble.Strict).Should(BeTrue())
		Expect(assemble.QueryNamer("Calculator", "add")).Should(Equal("Calculator__add"))
		Expect(assemble.Services["calc"].File).Should(Equal("/idl/math/calculator.thrift"))
		Expect(assemble.Services["calc"].Servers).Should(Equal([]string{"127.0.0.1:9090"}))
		Expect(assemble.Services["calc"].Methods).Should(HaveKey("add"))
	})
})
