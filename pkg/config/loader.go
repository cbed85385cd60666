package config

import (
	"path/filepath"
	"reflect"
	"strings"

	"github.com/akeeba/buildfiles/pkg/errors"
	"github.com/akeeba/buildfiles/pkg/filesystem"
	"github.com/akeeba/buildfiles/pkg/logging"
	"github.com/akeeba/buildfiles/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "RELINK_"

// FileNames are the repository configuration files, first found wins
var FileNames = []string{".relink.toml", "relink.toml"}

// Default returns the embedded configuration
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	return unmarshal(k, nil)
}

// Load builds the effective configuration for a repository. An empty repoRoot
// skips the repository file.
func Load(repoRoot string) (*Config, error) {
	return LoadWithOverrides(repoRoot, nil)
}

// LoadWithOverrides is Load with a final layer of dotted keys
// (e.g. "relink.fail_fast": true), used for command-line flags.
func LoadWithOverrides(repoRoot string, overrides map[string]interface{}) (*Config, error) {
	return load(nil, repoRoot, overrides)
}

// LoadFS is LoadWithOverrides reading the repository file from fsys
func LoadFS(fsys filesystem.FS, repoRoot string, overrides map[string]interface{}) (*Config, error) {
	return load(fsys, repoRoot, overrides)
}

// load reads the repository file with koanf's file provider when fsys is nil
func load(fsys filesystem.FS, repoRoot string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Repository file
	lookup := fsys
	if lookup == nil {
		lookup = filesystem.NewOS()
	}
	var files []string
	if path := FindFile(lookup, repoRoot); path != "" {
		var provider koanf.Provider = file.Provider(path)
		if fsys != nil {
			data, err := fsys.ReadFile(path)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config from %s", path).
					WithDetail("path", path)
			}
			provider = &rawBytesProvider{bytes: data}
		}
		if err := k.Load(provider, toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("loaded repository config")
		files = append(files, path)
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	// 4. Caller overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	return unmarshal(k, files)
}

// FindFile returns the repository configuration file, or "" when there is none
func FindFile(fsys filesystem.FS, repoRoot string) string {
	if repoRoot == "" {
		return ""
	}
	for _, name := range FileNames {
		path := filepath.Join(repoRoot, name)
		if filesystem.Exists(fsys, path) && !filesystem.IsDir(fsys, path) {
			return path
		}
	}
	return ""
}

// envKey maps RELINK_SECTION_KEY_NAME to section.key_name
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func unmarshal(k *koanf.Koanf, files []string) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				stringToLinkKindHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid configuration")
	}
	cfg.Files = files
	return &cfg, nil
}

// stringToLinkKindHookFunc accepts every spelling ParseLinkKind does
func stringToLinkKindHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(types.LinkKind("")) {
			return data, nil
		}
		return types.ParseLinkKind(data.(string))
	}
}
