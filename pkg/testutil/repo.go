package testutil

import (
	"path/filepath"
	"testing"

	"github.com/akeeba/buildfiles/pkg/filesystem"
	"github.com/akeeba/buildfiles/pkg/types"
	"github.com/stretchr/testify/require"
)

// Repo builds an extension repository using the default layout
type Repo struct {
	t    *testing.T
	fs   filesystem.FS
	Root string
}

// NewRepo returns a builder writing to the real filesystem below root
func NewRepo(t *testing.T, root string) *Repo {
	t.Helper()
	r := &Repo{t: t, fs: filesystem.NewOS(), Root: root}
	r.Dir(".")
	return r
}

// NewMemoryRepo returns a builder writing to a fresh in-memory filesystem
func NewMemoryRepo(t *testing.T, root string) *Repo {
	t.Helper()
	r := &Repo{t: t, fs: filesystem.NewMemory(), Root: root}
	r.Dir(".")
	return r
}

// FS returns the filesystem the repository lives on
func (r *Repo) FS() filesystem.FS {
	return r.fs
}

// Path returns the absolute path of a repository-relative path
func (r *Repo) Path(rel string) string {
	return filepath.Join(r.Root, filepath.FromSlash(rel))
}

// Dir creates a directory and returns its absolute path
func (r *Repo) Dir(rel string) string {
	r.t.Helper()
	path := r.Path(rel)
	require.NoError(r.t, r.fs.MkdirAll(path, 0755), "create %s", path)
	return path
}

// File creates a file, with its parents, and returns its absolute path
func (r *Repo) File(rel, content string) string {
	r.t.Helper()
	path := r.Path(rel)
	require.NoError(r.t, r.fs.MkdirAll(filepath.Dir(path), 0755), "create parent of %s", path)
	require.NoError(r.t, r.fs.WriteFile(path, []byte(content), 0644), "create %s", path)
	return path
}

// Language creates <ext>/language/<tag>/<file> for every file and returns
// their absolute paths in the given order
func (r *Repo) Language(extDir, tag string, files ...string) []string {
	r.t.Helper()
	var created []string
	for _, name := range files {
		rel := filepath.ToSlash(filepath.Join(extDir, "language", tag, name))
		created = append(created, r.File(rel, "KEY=\""+name+"\"\n"))
	}
	return created
}

// extension creates an extension directory holding a single code file
func (r *Repo) extension(rel, entry string) string {
	r.t.Helper()
	r.File(rel+"/"+entry, "<?php\n")
	return r.Path(rel)
}

// Component creates the site or admin part of com_<name>
func (r *Repo) Component(side types.Side, name string) string {
	if side == types.SideAdmin {
		return r.extension("administrator/components/com_"+name, name+".php")
	}
	return r.extension("component/com_"+name, name+".php")
}

// Library creates libraries/<name>
func (r *Repo) Library(name string) string {
	return r.extension("libraries/"+name, "library.php")
}

// Module creates modules/<site|admin>/mod_<name>
func (r *Repo) Module(side types.Side, name string) string {
	return r.extension("modules/"+string(side)+"/mod_"+name, "mod_"+name+".php")
}

// Plugin creates plugins/<group>/<name>
func (r *Repo) Plugin(group, name string) string {
	return r.extension("plugins/"+group+"/"+name, name+".php")
}

// Template creates templates/<site|admin>/<name>
func (r *Repo) Template(side types.Side, name string) string {
	return r.extension("templates/"+string(side)+"/"+name, "index.php")
}

// Media creates media/<dir>
func (r *Repo) Media(dir string) string {
	return r.extension("media/"+dir, "css/style.css")
}
