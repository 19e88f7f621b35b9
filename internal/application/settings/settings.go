// Package settings defines application-level configuration data.
package settings

import (
	"strings"
	"time"
)

// KeyMapConfig defines the configuration for keybindings.
type KeyMapConfig struct {
	Next     string `yaml:"next" kong:"help='Next field key',default='tab,down'"`
	Prev     string `yaml:"prev" kong:"help='Previous field key',default='shift+tab,up'"`
	Left     string `yaml:"left" kong:"help='Previous option key',default='left'"`
	Right    string `yaml:"right" kong:"help='Next option key',default='right'"`
	Submit   string `yaml:"submit" kong:"help='Generate plan key',default='enter'"`
	Back     string `yaml:"back" kong:"help='Back to form key',default='esc'"`
	Open     string `yaml:"open" kong:"help='Open exported PDF key',default='o'"`
	Quit     string `yaml:"quit" kong:"help='Quit key',default='ctrl+c'"`
	UpPage   string `yaml:"up_page" kong:"help='Page Up key',default='pgup,ctrl+u'"`
	DownPage string `yaml:"down_page" kong:"help='Page Down key',default='pgdown,ctrl+d'"`
}

// GroqConfig defines the chat-completion provider settings.
type GroqConfig struct {
	Heading        string  `yaml:"heading" kong:"help='Section heading',default='Groq Diet Plan'"`
	Model          string  `yaml:"model" kong:"help='Groq model',default='llama-3.3-70b-versatile'"`
	Temperature    float64 `yaml:"temperature" kong:"help='Sampling temperature',default='0.7'"`
	TimeoutSeconds int     `yaml:"timeout_seconds" kong:"help='Timeout in seconds',default='20'"`
	BaseURL        string  `yaml:"base_url" kong:"help='API base URL',default='https://api.groq.com/openai/v1'"`
	APIKeyEnv      string  `yaml:"api_key_env" kong:"help='Environment variable holding the API key',default='GROQ_API_KEY'"`
}

// GeminiConfig defines the generate-content provider settings.
type GeminiConfig struct {
	Heading        string  `yaml:"heading" kong:"help='Section heading',default='Gemini Diet Plan'"`
	Model          string  `yaml:"model" kong:"help='Gemini model',default='gemini-2.0-flash'"`
	Temperature    float64 `yaml:"temperature" kong:"help='Sampling temperature',default='0.7'"`
	TimeoutSeconds int     `yaml:"timeout_seconds" kong:"help='Timeout in seconds',default='20'"`
	BaseURL        string  `yaml:"base_url" kong:"help='API base URL',default='https://generativelanguage.googleapis.com'"`
	APIVersion     string  `yaml:"api_version" kong:"help='API version path segment',default='v1beta'"`
	APIKeyEnv      string  `yaml:"api_key_env" kong:"help='Environment variable holding the API key',default='GEMINI_API_KEY'"`
}

// AnthropicConfig defines the messages-API provider settings.
type AnthropicConfig struct {
	Heading        string  `yaml:"heading" kong:"help='Section heading',default='Claude Diet Plan'"`
	Model          string  `yaml:"model" kong:"help='Claude model',default='claude-3-5-haiku-latest'"`
	Temperature    float64 `yaml:"temperature" kong:"help='Sampling temperature',default='0.7'"`
	MaxTokens      int64   `yaml:"max_tokens" kong:"help='Maximum output tokens',default='2048'"`
	TimeoutSeconds int     `yaml:"timeout_seconds" kong:"help='Timeout in seconds',default='20'"`
	BaseURL        string  `yaml:"base_url" kong:"help='API base URL'"`
	APIKeyEnv      string  `yaml:"api_key_env" kong:"help='Environment variable holding the API key',default='ANTHROPIC_API_KEY'"`
}

// CodexConfig defines the local Codex CLI provider settings. It needs no API key.
type CodexConfig struct {
	Heading         string `yaml:"heading" kong:"help='Section heading',default='Codex Diet Plan'"`
	Command         string `yaml:"command" kong:"help='Codex executable',default='codex'"`
	Model           string `yaml:"model" kong:"help='Codex model'"`
	ReasoningEffort string `yaml:"reasoning_effort" kong:"help='Reasoning effort (low/medium/high)'"`
	Sandbox         string `yaml:"sandbox" kong:"help='Codex sandbox mode',default='read-only'"`
	TimeoutSeconds  int    `yaml:"timeout_seconds" kong:"help='Timeout in seconds',default='60'"`
}

// OutputConfig defines where and how plans are exported.
type OutputConfig struct {
	Path     string `yaml:"path" kong:"help='PDF output path',default='diet_plan.pdf'"`
	FontPath string `yaml:"font_path" kong:"help='TrueType font for non-ASCII text',default='/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf'"`
	Title    string `yaml:"title" kong:"help='PDF title',default='AI-Generated Diet Plan'"`
}

// LogConfig defines structured logging output.
type LogConfig struct {
	Level      string `yaml:"level" kong:"help='Log level (debug/info/warn/error)',default='info'"`
	Format     string `yaml:"format" kong:"help='Log format (text/json)',default='text'"`
	File       string `yaml:"file" kong:"help='Log file path (empty logs to stderr)'"`
	MaxSizeMB  int    `yaml:"max_size_mb" kong:"help='Rotate log file after this size',default='10'"`
	MaxBackups int    `yaml:"max_backups" kong:"help='Rotated log files to keep',default='3'"`
}

// ServerConfig defines the web form listener.
type ServerConfig struct {
	Addr              string `yaml:"addr" kong:"help='Listen address',default=':8501'"`
	RequestsPerMinute int    `yaml:"requests_per_minute" kong:"help='Plan requests per client per minute',default='6'"`
	AllowAllOrigins   bool   `yaml:"allow_all_origins" kong:"help='Allow cross-origin requests from anywhere',default='true'"`
	ShutdownSeconds   int    `yaml:"shutdown_seconds" kong:"help='Graceful shutdown timeout in seconds',default='5'"`
}

// Settings represents the application configuration.
type Settings struct {
	Providers   []string        `yaml:"providers" kong:"help='Providers queried in order (groq/gemini/anthropic/codex)',default='groq,gemini'"`
	MergePolicy string          `yaml:"merge_policy" kong:"help='Provider failure handling (inline/fail_fast)',default='inline'"`
	Groq        GroqConfig      `yaml:"groq" kong:"embed,prefix='groq.'"`
	Gemini      GeminiConfig    `yaml:"gemini" kong:"embed,prefix='gemini.'"`
	Anthropic   AnthropicConfig `yaml:"anthropic" kong:"embed,prefix='anthropic.'"`
	Codex       CodexConfig     `yaml:"codex" kong:"embed,prefix='codex.'"`
	Output      OutputConfig    `yaml:"output" kong:"embed,prefix='output.'"`
	KeyMap      KeyMapConfig    `yaml:"keymap" kong:"embed,prefix='keymap.'"`
	Log         LogConfig       `yaml:"log" kong:"embed,prefix='log.'"`
	Server      ServerConfig    `yaml:"server" kong:"embed,prefix='server.'"`
	HistoryFile string          `yaml:"history_file" kong:"help='Plan history database path'"`
}

// ProviderIDs returns the configured providers lower-cased, without blanks or duplicates.
func (s Settings) ProviderIDs() []string {
	seen := make(map[string]struct{}, len(s.Providers))
	ids := make([]string, 0, len(s.Providers))
	for _, raw := range s.Providers {
		id := strings.ToLower(strings.TrimSpace(raw))
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// Timeout converts a seconds setting into a duration; non-positive values yield zero.
func Timeout(seconds int) time.Duration {
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
