package relink

import (
	"path/filepath"
	"sort"

	"github.com/akeeba/buildfiles/pkg/config"
	"github.com/akeeba/buildfiles/pkg/types"
)

// BuildMappings derives the link mappings of the descriptors, in descriptor
// order. When two mappings share a target the first one wins.
func BuildMappings(descriptors []types.ExtensionDescriptor, siteRoot string, cfg config.RelinkConfig) []types.LinkMapping {
	var (
		mappings []types.LinkMapping
		seen     = make(map[string]bool)
	)

	add := func(d types.ExtensionDescriptor, source, target string, kind types.LinkKind, role types.LinkRole) {
		if source == "" || target == "" {
			return
		}
		abs := filepath.Join(siteRoot, filepath.FromSlash(target))
		if seen[abs] {
			return
		}
		seen[abs] = true
		mappings = append(mappings, types.LinkMapping{
			Source:    source,
			Target:    abs,
			Kind:      kind,
			Extension: d.JoomlaName,
			Role:      role,
		})
	}

	for _, d := range descriptors {
		add(d, d.SiteSource, d.SiteTarget, types.LinkSymbolic, types.RoleSite)
		add(d, d.AdminSource, d.AdminTarget, types.LinkSymbolic, types.RoleAdmin)
		add(d, d.MediaSource, d.MediaTarget, types.LinkSymbolic, types.RoleMedia)

		if !cfg.LinkLanguages {
			continue
		}
		for _, lang := range []struct {
			files types.LanguageFiles
			dir   string
		}{
			{d.SiteLangFiles, types.SiteLanguageDir},
			{d.AdminLangFiles, types.AdminLanguageDir},
		} {
			for _, tag := range sortedTags(lang.files) {
				for _, file := range lang.files[tag] {
					target := lang.dir + "/" + tag + "/" + filepath.Base(file)
					add(d, file, target, cfg.LanguageLinkKind, types.RoleLanguage)
				}
			}
		}
	}

	return mappings
}

func sortedTags(files types.LanguageFiles) []string {
	tags := make([]string, 0, len(files))
	for tag := range files {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
