package log

import "fmt"

const bannerRule = "=========================================================================="

// StartupInfo is what the service reports about itself when it comes up
type StartupInfo struct {
	Name       string
	Version    string
	ConfigPath string
	Backend    string
	Listen     string
}

// bannerLines renders info between two rules, skipping empty fields
func bannerLines(info StartupInfo) []string {
	lines := []string{bannerRule, fmt.Sprintf("%s %s starting", info.Name, info.Version)}
	for _, kv := range [][2]string{
		{"config", info.ConfigPath},
		{"backend", info.Backend},
		{"listen", info.Listen},
	} {
		if kv[1] != "" {
			lines = append(lines, fmt.Sprintf("  %-8s %s", kv[0], kv[1]))
		}
	}
	return append(lines, bannerRule)
}

// PrintStartupBanner marks a (re)start of the service in a long log
func PrintStartupBanner(info StartupInfo) {
	for _, line := range bannerLines(info) {
		Info(line)
	}
}
