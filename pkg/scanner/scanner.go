package scanner

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/akeeba/buildfiles/pkg/config"
	"github.com/akeeba/buildfiles/pkg/errors"
	"github.com/akeeba/buildfiles/pkg/filesystem"
	"github.com/akeeba/buildfiles/pkg/logging"
	"github.com/akeeba/buildfiles/pkg/types"
	"github.com/rs/zerolog"
)

// Scanner detects extensions on a filesystem using a layout
type Scanner struct {
	fs     filesystem.FS
	layout config.Layout
	logger zerolog.Logger
}

// New creates a scanner
func New(fsys filesystem.FS, layout config.Layout) *Scanner {
	return &Scanner{
		fs:     fsys,
		layout: layout,
		logger: logging.GetLogger("scanner"),
	}
}

// Detect returns the extensions of one type found below repoRoot
func Detect(fsys filesystem.FS, layout config.Layout, t types.ExtensionType, repoRoot string) ([]types.ExtensionDescriptor, error) {
	return New(fsys, layout).Detect(t, repoRoot)
}

// DetectAll runs every extension type in scan order and concatenates the results
func (s *Scanner) DetectAll(repoRoot string) []types.ExtensionDescriptor {
	var all []types.ExtensionDescriptor
	for _, t := range types.ExtensionTypes {
		found, _ := s.Detect(t, repoRoot)
		all = append(all, found...)
	}
	return all
}

// Detect returns the extensions of type t found below repoRoot, in a
// deterministic order. The only error is an unknown type.
func (s *Scanner) Detect(t types.ExtensionType, repoRoot string) ([]types.ExtensionDescriptor, error) {
	if !t.Valid() {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown extension type: %s", t)
	}

	s.logger.Debug().Str("type", string(t)).Str("root", repoRoot).Msg("scanning")

	var found []types.ExtensionDescriptor
	switch t {
	case types.ExtensionPlugin:
		found = s.detectPlugins(repoRoot)
	case types.ExtensionComponent:
		found = s.detectSided(t, repoRoot, true)
	default:
		// Modules and templates are separate extensions per side; libraries
		// only have a site side.
		found = s.detectSided(t, repoRoot, false)
	}

	result := found[:0]
	for _, d := range found {
		if !d.HasSource() {
			continue
		}
		s.attachMedia(repoRoot, &d)
		result = append(result, d)
	}

	s.logger.Debug().Str("type", string(t)).Int("count", len(result)).Msg("scan complete")
	return result, nil
}

// detectSided walks the site then the admin candidates of a type. With merge
// set, both sides of the same name share one descriptor.
func (s *Scanner) detectSided(t types.ExtensionType, root string, merge bool) []types.ExtensionDescriptor {
	tl := s.layout.For(t)
	var (
		order []string
		byKey = make(map[string]*types.ExtensionDescriptor)
	)

	sides := []struct {
		side       types.Side
		candidates []string
		target     string
	}{
		{types.SideSite, tl.Site, tl.SiteTarget},
		{types.SideAdmin, tl.Admin, tl.AdminTarget},
	}

	for _, sd := range sides {
		for _, candidate := range sd.candidates {
			parent := joinRel(root, candidate)
			for _, dir := range s.listDirs(parent) {
				name, ok := bareName(dir, tl.Prefix, tl.RequirePrefix)
				if !ok {
					continue
				}
				joomlaName := tl.Prefix + name

				key := joomlaName
				if !merge {
					key = string(sd.side) + ":" + joomlaName
				}

				d, seen := byKey[key]
				if !seen {
					d = &types.ExtensionDescriptor{Type: t, Name: name, JoomlaName: joomlaName}
					byKey[key] = d
					order = append(order, key)
				}

				src := filepath.Join(parent, dir)
				targetName := name
				if tl.TargetPrefixed {
					targetName = joomlaName
				}
				target := path.Join(sd.target, targetName)

				// first candidate wins
				if sd.side == types.SideAdmin {
					if d.AdminSource == "" {
						d.AdminSource, d.AdminTarget = src, target
						d.AdminLangFiles = s.languageFiles(src)
					}
				} else if d.SiteSource == "" {
					d.SiteSource, d.SiteTarget = src, target
					d.SiteLangFiles = s.languageFiles(src)
				}
			}
		}
	}

	result := make([]types.ExtensionDescriptor, 0, len(order))
	for _, key := range order {
		result = append(result, *byKey[key])
	}
	return result
}

// detectPlugins walks <candidate>/<group>/<dir>. Plugin code is site-side and
// its language files belong to the backend.
func (s *Scanner) detectPlugins(root string) []types.ExtensionDescriptor {
	tl := s.layout.Plugin
	var (
		result []types.ExtensionDescriptor
		seen   = make(map[string]bool)
	)

	for _, candidate := range tl.Site {
		parent := joinRel(root, candidate)
		for _, group := range s.listDirs(parent) {
			groupDir := filepath.Join(parent, group)
			for _, dir := range s.listDirs(groupDir) {
				name, ok := bareName(dir, tl.Prefix+group+"_", false)
				if !ok {
					continue
				}
				joomlaName := tl.Prefix + group + "_" + name
				if seen[joomlaName] {
					continue
				}
				seen[joomlaName] = true

				src := filepath.Join(groupDir, dir)
				result = append(result, types.ExtensionDescriptor{
					Type:           types.ExtensionPlugin,
					Name:           name,
					JoomlaName:     joomlaName,
					Group:          group,
					SiteSource:     src,
					SiteTarget:     path.Join(tl.SiteTarget, group, name),
					AdminLangFiles: s.languageFiles(src),
				})
			}
		}
	}

	return result
}

// attachMedia sets the media folder: the first of media/<joomlaName> and
// media/<name> that exists below any configured media parent
func (s *Scanner) attachMedia(root string, d *types.ExtensionDescriptor) {
	for _, parent := range s.layout.Media {
		for _, dir := range []string{d.JoomlaName, d.Name} {
			if dir == "" {
				continue
			}
			candidate := filepath.Join(joinRel(root, parent), dir)
			if filesystem.IsDir(s.fs, candidate) {
				d.MediaSource = candidate
				d.MediaTarget = path.Join("media", dir)
				return
			}
		}
	}
}

// bareName strips prefix from a directory name. With required set, names
// without the prefix are not extensions.
func bareName(dir, prefix string, required bool) (string, bool) {
	if strings.HasPrefix(dir, prefix) {
		name := strings.TrimPrefix(dir, prefix)
		return name, name != ""
	}
	if required {
		return "", false
	}
	return dir, true
}

// joinRel joins a '/'-separated layout path to root
func joinRel(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
