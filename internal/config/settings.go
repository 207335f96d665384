package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/watchfire-io/exlogs/internal/models"
)

// Options select where settings are read from. Empty fields use the defaults
// (~/.exlogs/settings.yaml and ./.env).
type Options struct {
	ConfigFile string
	EnvFile    string
}

// Loader resolves settings from defaults, the settings file, a dotenv file,
// environment variables, and bound command-line flags, in increasing priority.
type Loader struct {
	v        *viper.Viper
	explicit bool
	file     string
	mu       sync.Mutex
}

// NewLoader reads the settings file (if present) and prepares overrides.
// A missing default settings file is not an error; a missing explicit one is.
func NewLoader(opts Options) (*Loader, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = EnvFileName
	}
	if FileExists(envFile) {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only reaches keys viper already knows about.
	if err := v.BindEnv("headers"); err != nil {
		return nil, err
	}
	v.SetConfigType("yaml")

	l := &Loader{v: v, explicit: opts.ConfigFile != ""}

	path := opts.ConfigFile
	if path == "" {
		p, err := GlobalSettingsFile()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if !l.explicit && !FileExists(path) {
		return l, nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings from %s: %w", path, err)
	}
	l.file = path
	return l, nil
}

func setDefaults(v *viper.Viper) {
	d := models.NewSettings()
	v.SetDefault("version", d.Version)
	v.SetDefault("endpoint", d.Endpoint)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("page_size", d.PageSize)
	v.SetDefault("time_format", d.TimeFormat)
	v.SetDefault("timezone", d.Timezone)
	v.SetDefault("appearance.theme", d.Appearance.Theme)
}

// BindPFlag lets a command-line flag override a settings key.
func (l *Loader) BindPFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag to bind for %q", key)
	}
	return l.v.BindPFlag(key, flag)
}

// ConfigFile returns the settings file in use, or "" if none was read.
func (l *Loader) ConfigFile() string {
	return l.file
}

// Settings decodes the current settings.
func (l *Loader) Settings() (*models.Settings, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var s models.Settings
	if err := l.v.Unmarshal(&s, viper.DecodeHook(decodeHooks)); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

var decodeHooks = mapstructure.ComposeDecodeHookFunc(
	mapstructure.StringToTimeDurationHookFunc(),
	mapstructure.StringToSliceHookFunc(","),
	stringToHeadersHook,
)

// stringToHeadersHook decodes EXLOGS_HEADERS="Name=Value,Other=Value" into the
// headers map.
func stringToHeadersHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(map[string]string{}) {
		return data, nil
	}
	return ParseHeaders(data.(string))
}

// ParseHeaders parses comma separated Name=Value pairs.
func ParseHeaders(raw string) (map[string]string, error) {
	headers := map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q, expected Name=Value", pair)
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers, nil
}

// Validate checks settings values the viewer cannot work without.
func Validate(s *models.Settings) error {
	if s.Endpoint == "" {
		return errors.New("endpoint must not be empty")
	}
	if s.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", s.PageSize)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", s.Timeout)
	}
	return nil
}

// Watch calls onChange with freshly decoded settings every time the settings
// file is written. It does nothing when no settings file was read.
func (l *Loader) Watch(onChange func(*models.Settings, error)) {
	if l.ConfigFile() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		log.Debug().Str("component", "config").Str("operation", "Watch").Str("file", e.Name).Msg("settings changed")
		onChange(l.Settings())
	})
	l.v.WatchConfig()
}

// Save writes settings to path as YAML.
func Save(path string, s *models.Settings) error {
	if err := Validate(s); err != nil {
		return err
	}
	return SaveYAML(path, s)
}
