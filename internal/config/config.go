// Package config provides configuration loading.
//
// Values are kept as strings in a flat map. Precedence, lowest first:
// defaults, the config file, MSGSTACK_* environment variables, then explicit
// Set calls (command line flags).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/msgstack/internal/colors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables mapped onto config keys.
const EnvPrefix = "MSGSTACK_"

// File permission and extension constants.
const (
	FileModeDir  os.FileMode = 0755
	FileModeFile os.FileMode = 0644

	FileExtTOML = ".toml"
	FileExtYAML = ".yaml"
	FileExtYML  = ".yml"
)

var (
	config    map[string]string
	defaults  map[string]string
	overrides map[string]string
	loadedAt  string
	mu        sync.RWMutex
)

func init() {
	initValidators()
}

// Load initializes configuration. It can be called again to reload.
func Load() {
	mu.Lock()
	defer mu.Unlock()

	config = make(map[string]string)
	defaults = make(map[string]string)
	if overrides == nil {
		overrides = make(map[string]string)
	}
	loadedAt = ""

	setDefaults()
	// Env is applied before the file as well so MSGSTACK_CONFIG_DIR can move
	// the default file location.
	loadFromEnv()
	loadFromFile()
	loadFromEnv()
	for k, v := range overrides {
		config[k] = v
	}
	validate()
	computeDirs()
}

// Reset drops explicit overrides and reloads. Intended for tests.
func Reset() {
	mu.Lock()
	overrides = nil
	mu.Unlock()
	Load()
}

func setDefaults() {
	home, _ := os.UserHomeDir()
	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" {
		xdgConfigHome = filepath.Join(home, ".config")
	}
	xdgStateHome := os.Getenv("XDG_STATE_HOME")
	if xdgStateHome == "" {
		xdgStateHome = filepath.Join(home, ".local", "state")
	}

	setDefault("config_dir", filepath.Join(xdgConfigHome, "msgstack"))
	setDefault("state_dir", filepath.Join(xdgStateHome, "msgstack"))
	setDefault("hooks_dir", "")

	setDefault("stacking", "false")
	setDefault("autodismiss", "")
	setDefault("enter_duration", "250ms")
	setDefault("exit_duration", "200ms")
	setDefault("back_delay", "600ms")
	setDefault("status_ttl", "5s")

	setDefault("journal_enabled", "true")
	setDefault("cleanup_days", "30")
	setDefault("metrics_addr", "")

	setDefault("hooks_enabled", "true")
	setDefault("hooks_failure_mode", "warn")
	setDefault("hooks_async", "false")
	setDefault("hooks_async_timeout", "30")
	setDefault("max_hooks", "10")
	setDefault("hooks_enabled_message_enqueued", "true")
	setDefault("hooks_enabled_message_shown", "true")
	setDefault("hooks_enabled_message_dismissed", "true")

	setDefault("logging_enabled", "false")
	setDefault("logging_level", "info")
	setDefault("logging_max_files", "10")

	setDefault("debug", "false")
	setDefault("quiet", "false")
}

func setDefault(key, value string) {
	config[key] = value
	defaults[key] = value
}

// configFilePath returns the file to load: MSGSTACK_CONFIG_PATH, or the first
// config.{toml,yaml,yml} found in config_dir.
func configFilePath() string {
	if p := os.Getenv(EnvPrefix + "CONFIG_PATH"); p != "" {
		return p
	}
	dir := config["config_dir"]
	if dir == "" {
		return ""
	}
	for _, ext := range []string{FileExtTOML, FileExtYAML, FileExtYML} {
		p := filepath.Join(dir, "config"+ext)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func loadFromFile() {
	configPath := configFilePath()
	if configPath == "" {
		return
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		colors.Debug(fmt.Sprintf("unable to read config file %s: %v", configPath, err))
		return
	}

	raw, err := parseFile(configPath, data)
	if err != nil {
		colors.Warning(fmt.Sprintf("unable to parse config file %s: %v", configPath, err))
		return
	}

	for k, v := range raw {
		key := strings.ToLower(k)
		converted, ok := coerceConfigValue(v)
		if !ok {
			colors.Warning(fmt.Sprintf("unsupported config value type for %s: %T", key, v))
			continue
		}
		config[key] = converted
	}
	loadedAt = configPath
}

func parseFile(path string, data []byte) (map[string]any, error) {
	var raw map[string]any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case FileExtTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case FileExtYAML, FileExtYML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config file extension %q", ext)
	}
	return raw, nil
}

// coerceConfigValue converts a decoded file value to its string form.
func coerceConfigValue(value any) (string, bool) {
	switch typed := value.(type) {
	case string:
		return typed, true
	case int:
		return strconv.Itoa(typed), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(typed), true
	default:
		return "", false
	}
}

func loadFromEnv() {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, EnvPrefix) {
			continue
		}
		name, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
		if key == "config_path" {
			continue
		}
		config[key] = value
	}
}

func validate() {
	for key, value := range config {
		validator := getValidator(key)
		if validator == nil {
			continue
		}
		defaultValue := defaults[key]
		normalized, err := validator(key, value, defaultValue)
		if err != nil {
			colors.Warning(fmt.Sprintf("validation error for %s: %v, using default: %s", key, err, defaultValue))
			config[key] = defaultValue
			continue
		}
		config[key] = normalized
	}
}

// computeDirs fills directories derived from others.
func computeDirs() {
	if config["hooks_dir"] == "" && config["config_dir"] != "" {
		config["hooks_dir"] = filepath.Join(config["config_dir"], "hooks")
	}
}

// Get returns a configuration value or default.
func Get(key, defaultValue string) string {
	mu.RLock()
	defer mu.RUnlock()
	if val, ok := config[key]; ok {
		return val
	}
	return defaultValue
}

// GetInt returns a configuration value as integer, or default.
func GetInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(Get(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

// GetBool returns a configuration value as boolean, or default.
func GetBool(key string, defaultValue bool) bool {
	switch normalizeBool(Get(key, "")) {
	case "true":
		return true
	case "false":
		return false
	default:
		return defaultValue
	}
}

// GetDuration returns a configuration value as a duration, or default. The
// empty string reads as zero when the key is set.
func GetDuration(key string, defaultValue time.Duration) time.Duration {
	mu.RLock()
	val, ok := config[key]
	mu.RUnlock()
	if !ok {
		return defaultValue
	}
	if val == "" {
		return 0
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultValue
	}
	return d
}

// Set overrides key for the rest of the process, above every other source.
// The value goes through the key's validator.
func Set(key, value string) {
	mu.RLock()
	loaded := config != nil
	mu.RUnlock()
	if !loaded {
		Load()
	}

	mu.Lock()
	defer mu.Unlock()
	key = strings.ToLower(key)
	if overrides == nil {
		overrides = make(map[string]string)
	}
	overrides[key] = value
	if v := getValidator(key); v != nil {
		if normalized, err := v(key, value, defaults[key]); err == nil {
			value = normalized
		}
	}
	config[key] = value
}

// Path returns the config file used by the last Load, if any.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return loadedAt
}

// Keys returns every known key, sorted.
func Keys() []string {
	mu.RLock()
	defer mu.RUnlock()
	keys := make([]string, 0, len(config))
	for k := range config {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// valueToInterface converts a string value to the type written to TOML.
func valueToInterface(val string) any {
	if n, err := strconv.Atoi(val); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return val
}

// WriteSample writes the defaults as a TOML config file at path. It refuses
// to overwrite an existing file.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("write sample config: %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), FileModeDir); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}

	mu.RLock()
	typed := make(map[string]any, len(defaults))
	for k, v := range defaults {
		if v == "" {
			continue
		}
		typed[k] = valueToInterface(v)
	}
	mu.RUnlock()

	data, err := toml.Marshal(typed)
	if err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	header := "# msgstack configuration\n# This file is in TOML format.\n# Environment variables named MSGSTACK_<KEY> override these values.\n\n"
	if err := os.WriteFile(path, append([]byte(header), data...), FileModeFile); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
