package config

import (
	"fmt"

	"github.com/akeeba/buildfiles/pkg/types"
)

// Config is the effective configuration of a run
type Config struct {
	Layout    Layout          `koanf:"layout" toml:"layout"`
	Relink    RelinkConfig    `koanf:"relink" toml:"relink"`
	Languages LanguagesConfig `koanf:"languages" toml:"languages"`

	// Files lists the configuration files that were merged, in load order
	Files []string `koanf:"-" toml:"-"`
}

// Layout describes the repository conventions of every extension type
type Layout struct {
	LanguageDir string   `koanf:"language_dir" toml:"language_dir"`
	Media       []string `koanf:"media" toml:"media"`

	Component TypeLayout `koanf:"component" toml:"component"`
	Library   TypeLayout `koanf:"library" toml:"library"`
	Module    TypeLayout `koanf:"module" toml:"module"`
	Plugin    TypeLayout `koanf:"plugin" toml:"plugin"`
	Template  TypeLayout `koanf:"template" toml:"template"`
}

// TypeLayout is the convention of one extension type
type TypeLayout struct {
	Prefix         string   `koanf:"prefix" toml:"prefix"`
	RequirePrefix  bool     `koanf:"require_prefix" toml:"require_prefix"`
	TargetPrefixed bool     `koanf:"target_prefixed" toml:"target_prefixed"`
	Site           []string `koanf:"site" toml:"site"`
	Admin          []string `koanf:"admin" toml:"admin"`
	SiteTarget     string   `koanf:"site_target" toml:"site_target"`
	AdminTarget    string   `koanf:"admin_target" toml:"admin_target"`
}

// RelinkConfig holds the relink run settings
type RelinkConfig struct {
	LinkLanguages    bool           `koanf:"link_languages" toml:"link_languages"`
	LanguageLinkKind types.LinkKind `koanf:"language_link_kind" toml:"language_link_kind"`
	FailFast         bool           `koanf:"fail_fast" toml:"fail_fast"`
}

// LanguagesConfig holds the move-back-languages settings
type LanguagesConfig struct {
	Tag          string   `koanf:"tag" toml:"tag"`
	Translations []string `koanf:"translations" toml:"translations"`
}

// For returns the layout of an extension type
func (l Layout) For(t types.ExtensionType) TypeLayout {
	switch t {
	case types.ExtensionComponent:
		return l.Component
	case types.ExtensionLibrary:
		return l.Library
	case types.ExtensionModule:
		return l.Module
	case types.ExtensionPlugin:
		return l.Plugin
	case types.ExtensionTemplate:
		return l.Template
	}
	return TypeLayout{}
}

// Validate checks the values a scan or run cannot do without
func (c *Config) Validate() error {
	if c.Layout.LanguageDir == "" {
		return fmt.Errorf("layout.language_dir must not be empty")
	}
	for _, t := range types.ExtensionTypes {
		tl := c.Layout.For(t)
		if tl.Prefix == "" {
			return fmt.Errorf("layout.%s.prefix must not be empty", t)
		}
		if len(tl.Site) > 0 && tl.SiteTarget == "" {
			return fmt.Errorf("layout.%s.site_target must be set when site candidates exist", t)
		}
		if len(tl.Admin) > 0 && tl.AdminTarget == "" {
			return fmt.Errorf("layout.%s.admin_target must be set when admin candidates exist", t)
		}
	}
	if _, err := types.ParseLinkKind(string(c.Relink.LanguageLinkKind)); err != nil {
		return fmt.Errorf("relink.language_link_kind: %w", err)
	}
	if c.Languages.Tag == "" {
		return fmt.Errorf("languages.tag must not be empty")
	}
	if len(c.Languages.Translations) == 0 {
		return fmt.Errorf("languages.translations must list at least one directory")
	}
	return nil
}
