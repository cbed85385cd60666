package types

import (
	"fmt"
	"strings"
)

// ExtensionType is the logical kind of an extension
type ExtensionType string

const (
	// ExtensionComponent is a component (com_*)
	ExtensionComponent ExtensionType = "component"
	// ExtensionLibrary is a library (lib_*)
	ExtensionLibrary ExtensionType = "library"
	// ExtensionModule is a module (mod_*)
	ExtensionModule ExtensionType = "module"
	// ExtensionPlugin is a plugin (plg_<group>_*)
	ExtensionPlugin ExtensionType = "plugin"
	// ExtensionTemplate is a template (tpl_*)
	ExtensionTemplate ExtensionType = "template"
)

// ExtensionTypes lists every extension type in scan order
var ExtensionTypes = []ExtensionType{
	ExtensionComponent,
	ExtensionLibrary,
	ExtensionModule,
	ExtensionPlugin,
	ExtensionTemplate,
}

// Valid reports whether t is one of the known extension types
func (t ExtensionType) Valid() bool {
	for _, known := range ExtensionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseExtensionType parses a type name, accepting the plural form too
func ParseExtensionType(s string) (ExtensionType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "libraries" {
		name = string(ExtensionLibrary)
	}
	t := ExtensionType(strings.TrimSuffix(name, "s"))
	if !t.Valid() {
		return "", fmt.Errorf("unknown extension type: %s", s)
	}
	return t, nil
}

// Side is the application side a piece of extension code belongs to
type Side string

const (
	// SideSite is the frontend
	SideSite Side = "site"
	// SideAdmin is the backend (administrator)
	SideAdmin Side = "admin"
)

// TranslationFolder returns the name the translations tree uses for the side
func (s Side) TranslationFolder() string {
	if s == SideAdmin {
		return "backend"
	}
	return "frontend"
}

// LanguageFiles maps a language tag (en-GB) to the ordered list of its files
type LanguageFiles map[string][]string

// ExtensionDescriptor describes one extension found in the repository and
// where its parts belong inside a site.
//
// Source paths are absolute repository paths and are empty when that part does
// not exist. Target paths are relative to the site root.
type ExtensionDescriptor struct {
	Type ExtensionType `json:"extensionType" yaml:"extensionType"`

	// Name is the bare identifier, without the type prefix
	Name string `json:"name" yaml:"name"`

	// JoomlaName is the canonical name: com_foo, lib_foo, mod_foo, plg_system_foo, tpl_foo
	JoomlaName string `json:"joomlaExtensionName" yaml:"joomlaExtensionName"`

	// Group is the plugin folder (system, content, ...); empty for other types
	Group string `json:"group,omitempty" yaml:"group,omitempty"`

	SiteSource  string `json:"siteSourcePath,omitempty" yaml:"siteSourcePath,omitempty"`
	SiteTarget  string `json:"siteTargetPath,omitempty" yaml:"siteTargetPath,omitempty"`
	AdminSource string `json:"adminSourcePath,omitempty" yaml:"adminSourcePath,omitempty"`
	AdminTarget string `json:"adminTargetPath,omitempty" yaml:"adminTargetPath,omitempty"`

	SiteLangFiles  LanguageFiles `json:"siteLangFiles,omitempty" yaml:"siteLangFiles,omitempty"`
	AdminLangFiles LanguageFiles `json:"adminLangFiles,omitempty" yaml:"adminLangFiles,omitempty"`

	MediaSource string `json:"mediaPath,omitempty" yaml:"mediaPath,omitempty"`
	MediaTarget string `json:"mediaTargetPath,omitempty" yaml:"mediaTargetPath,omitempty"`
}

// HasSource reports whether the descriptor has any code to link
func (d ExtensionDescriptor) HasSource() bool {
	return d.SiteSource != "" || d.AdminSource != ""
}

// LangFiles returns the language files of the given side
func (d ExtensionDescriptor) LangFiles(side Side) LanguageFiles {
	if side == SideAdmin {
		return d.AdminLangFiles
	}
	return d.SiteLangFiles
}

// Site-relative folders holding the global language files
const (
	SiteLanguageDir  = "language"
	AdminLanguageDir = "administrator/language"
)
