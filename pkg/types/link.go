package types

import (
	"fmt"
	"strings"
)

// LinkKind selects between symbolic and hard links
type LinkKind string

const (
	// LinkSymbolic is a symbolic link
	LinkSymbolic LinkKind = "symlink"
	// LinkHard is a hard link; only regular files can be hard linked
	LinkHard LinkKind = "hardlink"
)

// ParseLinkKind accepts the spellings used by build scripts: symlink, symbolic,
// hardlink, hard and link
func ParseLinkKind(s string) (LinkKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "symlink", "symbolic":
		return LinkSymbolic, nil
	case "hardlink", "hard", "link":
		return LinkHard, nil
	default:
		return "", fmt.Errorf("unknown link type: %s", s)
	}
}

// LinkRole says which part of an extension a mapping links
type LinkRole string

const (
	RoleSite     LinkRole = "site"
	RoleAdmin    LinkRole = "admin"
	RoleMedia    LinkRole = "media"
	RoleLanguage LinkRole = "language"
	RoleManual   LinkRole = "manual"
)

// LinkMapping is one (source, target, kind) triple computed for a run
type LinkMapping struct {
	Source string   `json:"source" yaml:"source"`
	Target string   `json:"target" yaml:"target"`
	Kind   LinkKind `json:"kind" yaml:"kind"`

	// Extension is the canonical name of the extension the mapping belongs to
	Extension string   `json:"extension,omitempty" yaml:"extension,omitempty"`
	Role      LinkRole `json:"role,omitempty" yaml:"role,omitempty"`
}

// String returns a one-line description of the mapping
func (m LinkMapping) String() string {
	return fmt.Sprintf("%s -> %s (%s)", m.Target, m.Source, m.Kind)
}
