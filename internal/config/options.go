package config

import "github.com/mithrel/confchat/pkg/chat"

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// This is the single source of truth for default values and generator output.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "http_addr", Default: ":8080", Comment: "HTTP listen address for the render server"},

		{Key: "auth.token", Default: "", Comment: "Bearer token required by the render server; empty disables auth"},

		{Key: "render.mode", Default: "styled", Comment: "Output mode: plain, pretty, styled, json, ndjson, tui, markdown"},
		{Key: "render.width", Default: 80, Comment: "Word wrap width; 0 uses the terminal width"},
		{Key: "render.style", Default: "dracula", Comment: "Glamour style used by pretty mode"},
		{Key: "render.flush_unterminated_fence", Default: false, Comment: "Emit an unclosed ``` region as a code block instead of dropping it"},
		{Key: "render.json_indent", Default: true, Comment: "Indent JSON output"},
		{Key: "render.headers", Default: true, Comment: "Print a header row in plain mode"},

		{Key: "cache.size", Default: 256, Comment: "Parsed messages kept in memory; 0 disables the cache"},

		{Key: "chat.greeting", Default: chat.DefaultGreeting, Comment: "First assistant message of a new session"},

		{Key: "search.limit", Default: 10, Comment: "Maximum transcript search results"},

		{Key: "log.verbose", Default: false, Comment: "Write diagnostic log lines to stderr"},
	}
}
