package sink

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"github.com/bisonbyte/espenv/pkg/config"
	"github.com/bisonbyte/espenv/pkg/resolver"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"
)

// failingWriter simulates a closed output
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

var sampleDefines = []resolver.Define{
	{Name: resolver.WifiSSIDDefine, QuotedValue: resolver.Quote("Home Net")},
	{Name: resolver.WifiPassDefine, QuotedValue: resolver.Quote(`it's "secret"`), Secret: true},
	{Name: resolver.ServerURLDefine, QuotedValue: resolver.Quote(resolver.DefaultServerURL)},
}

var _ = Describe("New", func() {
	var (
		tempDir string
		out     *bytes.Buffer
	)

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "sink-test")
		Expect(err).NotTo(HaveOccurred())
		out = &bytes.Buffer{}
	})

	AfterEach(func() {
		_ = os.RemoveAll(tempDir)
	})

	It("should create a flags sink", func() {
		s, err := New(&config.Config{Sink: config.SinkFlags}, out)
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(BeAssignableToTypeOf(&Flags{}))
	})

	It("should create a report sink", func() {
		s, err := New(&config.Config{Sink: config.SinkYAML}, out)
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(BeAssignableToTypeOf(&YAMLReport{}))
	})

	It("should create a noop sink when disabled", func() {
		s, err := New(&config.Config{Sink: config.SinkNone}, out)
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(BeAssignableToTypeOf(Noop{}))
	})

	It("should create a header sink when the include directory exists", func() {
		Expect(os.Mkdir(filepath.Join(tempDir, "include"), 0755)).To(Succeed())
		s, err := New(&config.Config{Sink: config.SinkHeader, ProjectDir: tempDir, HeaderFile: "include/defines.h"}, out)
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(BeAssignableToTypeOf(&Header{}))
	})

	It("should fall back to noop when the include directory is missing", func() {
		s, err := New(&config.Config{Sink: config.SinkHeader, ProjectDir: tempDir, HeaderFile: "include/defines.h"}, out)
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(BeAssignableToTypeOf(Noop{}))
		Expect(s.Accept(sampleDefines)).To(Succeed())
		Expect(filepath.Join(tempDir, "include")).NotTo(BeADirectory())
	})

	It("should fail when the include path is a file", func() {
		Expect(os.WriteFile(filepath.Join(tempDir, "include"), nil, 0600)).To(Succeed())
		_, err := New(&config.Config{Sink: config.SinkHeader, ProjectDir: tempDir, HeaderFile: "include/defines.h"}, out)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("is not a directory"))
	})

	It("should reject an unknown sink", func() {
		_, err := New(&config.Config{Sink: "scons"}, out)
		Expect(err).To(MatchError(config.ErrUnknownSink))
	})
})

var _ = Describe("Flags", func() {
	It("should write one single-quoted flag per define", func() {
		out := &bytes.Buffer{}
		Expect(NewFlags(out).Accept(sampleDefines)).To(Succeed())
		Expect(out.String()).To(Equal(
			`'-DDEFAULT_WIFI_SSID="Home Net"'` + "\n" +
				`'-DDEFAULT_WIFI_PASS="it'\''s \"secret\""'` + "\n" +
				`'-DDEFAULT_SERVER_URL="https://proyecto.bisonbyte.io"'` + "\n"))
	})

	It("should write nothing for no defines", func() {
		out := &bytes.Buffer{}
		Expect(NewFlags(out).Accept(nil)).To(Succeed())
		Expect(out.Len()).To(BeZero())
	})

	It("should report write failures", func() {
		err := NewFlags(failingWriter{}).Accept(sampleDefines)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("DEFAULT_WIFI_SSID"))
	})
})

var _ = Describe("Header", func() {
	It("should render guarded defines", func() {
		content := string(RenderHeader("ESPENV_DEFINES_H", sampleDefines[:1]))
		Expect(content).To(Equal("// Code generated by espenv. DO NOT EDIT.\n\n" +
			"#ifndef ESPENV_DEFINES_H\n#define ESPENV_DEFINES_H\n" +
			"\n#ifndef DEFAULT_WIFI_SSID\n#define DEFAULT_WIFI_SSID \"Home Net\"\n#endif\n" +
			"\n#endif // ESPENV_DEFINES_H\n"))
	})

	It("should write the header file", func() {
		tempDir, err := os.MkdirTemp("", "header-test")
		Expect(err).NotTo(HaveOccurred())
		defer func() { _ = os.RemoveAll(tempDir) }()

		path := filepath.Join(tempDir, "espenv_defines.h")
		Expect(NewHeader(path).Accept(sampleDefines)).To(Succeed())

		content, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(content)).To(ContainSubstring(`#define DEFAULT_WIFI_PASS "it's \"secret\""`))
		Expect(string(content)).To(ContainSubstring("#ifndef ESPENV_DEFINES_H"))
	})

	DescribeTable("guard names",
		func(path, expected string) {
			Expect(guardName(path)).To(Equal(expected))
		},
		Entry("plain", "include/espenv_defines.h", "ESPENV_DEFINES_H"),
		Entry("dashes", "build-env.h", "BUILD_ENV_H"),
		Entry("leading digit", "1defs.h", "_1DEFS_H"),
		Entry("non ascii", "défs.h", "D_FS_H"),
	)
})

var _ = Describe("YAMLReport", func() {
	It("should write YAML with secrets masked", func() {
		out := &bytes.Buffer{}
		Expect(NewYAMLReport(out).Accept(sampleDefines)).To(Succeed())

		var parsed report
		Expect(yaml.Unmarshal(out.Bytes(), &parsed)).To(Succeed())
		Expect(parsed.Defines).To(Equal([]reportEntry{
			{Name: resolver.WifiSSIDDefine, Value: "Home Net"},
			{Name: resolver.WifiPassDefine, Value: Mask},
			{Name: resolver.ServerURLDefine, Value: resolver.DefaultServerURL},
		}))
		Expect(out.String()).NotTo(ContainSubstring("secret"))
	})

	It("should reject malformed quoted values", func() {
		err := NewYAMLReport(&bytes.Buffer{}).Accept([]resolver.Define{{Name: "X", QuotedValue: "unquoted"}})
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("malformed value"))
	})
})
