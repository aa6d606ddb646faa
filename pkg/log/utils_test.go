package log

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap/zapcore"
)

var _ = Describe("Startup banner", func() {
	It("lists what the service started with", func() {
		Expect(bannerLines(StartupInfo{
			Name:       "sequence-api",
			Version:    "0.3.0",
			ConfigPath: "conf/api.conf",
			Backend:    "template",
			Listen:     ":8080",
		})).To(Equal([]string{
			bannerRule,
			"sequence-api 0.3.0 starting",
			"  config   conf/api.conf",
			"  backend  template",
			"  listen   :8080",
			bannerRule,
		}))
	})

	It("leaves out what is unknown", func() {
		Expect(bannerLines(StartupInfo{Name: "sequence-api", Version: "dev"})).
			To(Equal([]string{bannerRule, "sequence-api dev starting", bannerRule}))
	})
})

var _ = Describe("Log level", func() {
	AfterEach(func() {
		SetLogLevel(zapcore.InfoLevel)
	})

	It("parses level names and keeps the level on unknown ones", func() {
		SetLogLevelName("DEBUG")
		Expect(GetLogLevel()).To(Equal(zapcore.DebugLevel))
		SetLogLevelName("loud")
		Expect(GetLogLevel()).To(Equal(zapcore.DebugLevel))
		SetLogLevelName("")
		Expect(GetLogLevel()).To(Equal(zapcore.DebugLevel))
	})
})
