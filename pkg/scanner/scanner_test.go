package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/akeeba/buildfiles/pkg/config"
	"github.com/akeeba/buildfiles/pkg/errors"
	"github.com/akeeba/buildfiles/pkg/scanner"
	"github.com/akeeba/buildfiles/pkg/testutil"
	"github.com/akeeba/buildfiles/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultLayout(t *testing.T) config.Layout {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	return cfg.Layout
}

func detect(t *testing.T, repo *testutil.Repo, et types.ExtensionType) []types.ExtensionDescriptor {
	t.Helper()
	found, err := scanner.Detect(repo.FS(), defaultLayout(t), et, repo.Root)
	require.NoError(t, err)
	return found
}

func TestComponentAdminOnly(t *testing.T) {
	repo := testutil.NewMemoryRepo(t, "/repo")
	admin := repo.Component(types.SideAdmin, "example")
	langs := repo.Language("administrator/components/com_example", "en-GB", "com_example.ini")

	found := detect(t, repo, types.ExtensionComponent)

	require.Len(t, found, 1)
	d := found[0]
	assert.Equal(t, types.ExtensionComponent, d.Type)
	assert.Equal(t, "example", d.Name)
	assert.Equal(t, "com_example", d.JoomlaName)
	assert.Equal(t, admin, d.AdminSource)
	assert.Equal(t, "administrator/components/com_example", d.AdminTarget)
	assert.Empty(t, d.SiteSource)
	assert.Empty(t, d.SiteTarget)
	assert.Equal(t, types.LanguageFiles{"en-GB": langs}, d.AdminLangFiles)
	assert.Nil(t, d.SiteLangFiles)
}

func TestComponentMergesSides(t *testing.T) {
	repo := testutil.NewMemoryRepo(t, "/repo")
	site := repo.Component(types.SideSite, "shop")
	admin := repo.Component(types.SideAdmin, "shop")
	repo.Language("component/com_shop", "en-GB", "com_shop.ini")
	repo.Language("component/com_shop", "de-DE", "com_shop.ini")
	repo.Dir("component/com_shop/language/fr-FR")
	repo.Component(types.SideAdmin, "alpha")
	media := repo.Media("com_shop")

	found := detect(t, repo, types.ExtensionComponent)

	require.Len(t, found, 2)
	// site candidates are walked first
	assert.Equal(t, "com_shop", found[0].JoomlaName)
	assert.Equal(t, "com_alpha", found[1].JoomlaName)

	d := found[0]
	assert.Equal(t, site, d.SiteSource)
	assert.Equal(t, "components/com_shop", d.SiteTarget)
	assert.Equal(t, admin, d.AdminSource)
	assert.Len(t, d.SiteLangFiles, 2, "fr-FR has no files")
	assert.Contains(t, d.SiteLangFiles, "de-DE")
	assert.Equal(t, media, d.MediaSource)
	assert.Equal(t, "media/com_shop", d.MediaTarget)
}

func TestComponentFirstCandidateWins(t *testing.T) {
	repo := testutil.NewMemoryRepo(t, "/repo")
	first := repo.Component(types.SideSite, "dup")
	repo.Dir("components/com_dup")

	found := detect(t, repo, types.ExtensionComponent)
	require.Len(t, found, 1)
	assert.Equal(t, first, found[0].SiteSource)
}

func TestComponentRequiresPrefix(t *testing.T) {
	repo := testutil.NewMemoryRepo(t, "/repo")
	repo.Dir("administrator/components/notacomponent")
	repo.Dir("administrator/components/com_")

	assert.Empty(t, detect(t, repo, types.ExtensionComponent))
}

func TestLibrary(t *testing.T) {
	repo := testutil.NewMemoryRepo(t, "/repo")
	fof := repo.Library("fof")
	repo.Library("lib_extra")
	repo.Dir("libraries/.git")
	repo.File("libraries/README.md", "not a library")

	found := detect(t, repo, types.ExtensionLibrary)

	require.Len(t, found, 2)
	assert.Equal(t, "fof", found[0].Name)
	assert.Equal(t, "lib_fof", found[0].JoomlaName)
	assert.Equal(t, fof, found[0].SiteSource)
	assert.Equal(t, "libraries/fof", found[0].SiteTarget)
	assert.Empty(t, found[0].AdminSource)

	assert.Equal(t, "extra", found[1].Name)
	assert.Equal(t, "lib_extra", found[1].JoomlaName)
}

func TestModulePerSide(t *testing.T) {
	repo := testutil.NewMemoryRepo(t, "/repo")
	siteMod := repo.Module(types.SideSite, "latest")
	adminMod := repo.Module(types.SideAdmin, "latest")
	repo.Dir("administrator/modules/mod_latest")
	legacy := repo.Dir("modules/mod_legacy")
	repo.Language("modules/admin/mod_latest", "en-GB", "mod_latest.ini", "mod_latest.sys.ini")

	found := detect(t, repo, types.ExtensionModule)

	require.Len(t, found, 3)
	assert.Equal(t, "mod_latest", found[0].JoomlaName)
	assert.Equal(t, siteMod, found[0].SiteSource)
	assert.Equal(t, "modules/mod_latest", found[0].SiteTarget)
	assert.Empty(t, found[0].AdminSource)

	assert.Equal(t, "mod_legacy", found[1].JoomlaName)
	assert.Equal(t, legacy, found[1].SiteSource)

	assert.Equal(t, "mod_latest", found[2].JoomlaName)
	assert.Equal(t, adminMod, found[2].AdminSource)
	assert.Equal(t, "administrator/modules/mod_latest", found[2].AdminTarget)
	assert.Equal(t, []string{
		filepath.Join(adminMod, "language", "en-GB", "mod_latest.ini"),
		filepath.Join(adminMod, "language", "en-GB", "mod_latest.sys.ini"),
	}, found[2].AdminLangFiles["en-GB"])
}

func TestPlugin(t *testing.T) {
	repo := testutil.NewMemoryRepo(t, "/repo")
	foo := repo.Plugin("system", "foo")
	baz := repo.Dir("plugins/system/plg_system_baz")
	bar := repo.Dir("plugins/content/bar")
	repo.Dir("plugins/content/plg_content_bar")
	repo.Language("plugins/system/foo", "en-GB", "en-GB.plg_system_foo.ini")

	found := detect(t, repo, types.ExtensionPlugin)

	require.Len(t, found, 3)
	// groups are walked in name order; the bare folder sorts first and wins
	assert.Equal(t, "plg_content_bar", found[0].JoomlaName)
	assert.Equal(t, "bar", found[0].Name)
	assert.Equal(t, "content", found[0].Group)
	assert.Equal(t, bar, found[0].SiteSource)
	assert.Equal(t, "plugins/content/bar", found[0].SiteTarget)

	assert.Equal(t, "plg_system_foo", found[1].JoomlaName)
	assert.Equal(t, foo, found[1].SiteSource)
	assert.Nil(t, found[1].SiteLangFiles)
	assert.Equal(t, []string{filepath.Join(foo, "language", "en-GB", "en-GB.plg_system_foo.ini")},
		found[1].AdminLangFiles["en-GB"])

	assert.Equal(t, "plg_system_baz", found[2].JoomlaName)
	assert.Equal(t, "baz", found[2].Name)
	assert.Equal(t, baz, found[2].SiteSource)
	assert.Equal(t, "plugins/system/baz", found[2].SiteTarget)
}

func TestTemplate(t *testing.T) {
	repo := testutil.NewMemoryRepo(t, "/repo")
	site := repo.Template(types.SideSite, "tpl_shiny")
	admin := repo.Dir("administrator/templates/dark")
	media := repo.Media("tpl_shiny")

	found := detect(t, repo, types.ExtensionTemplate)

	require.Len(t, found, 2)
	assert.Equal(t, "shiny", found[0].Name)
	assert.Equal(t, "tpl_shiny", found[0].JoomlaName)
	assert.Equal(t, site, found[0].SiteSource)
	assert.Equal(t, "templates/shiny", found[0].SiteTarget)
	assert.Equal(t, media, found[0].MediaSource)

	assert.Equal(t, "tpl_dark", found[1].JoomlaName)
	assert.Equal(t, admin, found[1].AdminSource)
	assert.Equal(t, "administrator/templates/dark", found[1].AdminTarget)
	assert.Empty(t, found[1].MediaSource)
}

func TestMediaFallsBackToBareName(t *testing.T) {
	repo := testutil.NewMemoryRepo(t, "/repo")
	repo.Library("fof")
	media := repo.Media("fof")

	found := detect(t, repo, types.ExtensionLibrary)
	require.Len(t, found, 1)
	assert.Equal(t, media, found[0].MediaSource)
	assert.Equal(t, "media/fof", found[0].MediaTarget)
}

func TestDepthIsFixed(t *testing.T) {
	repo := testutil.NewMemoryRepo(t, "/repo")
	repo.Component(types.SideAdmin, "deep")
	// language files below a nested folder are not part of the extension's pack
	repo.File("administrator/components/com_deep/views/language/en-GB/x.ini", "X=1")
	repo.File("administrator/components/com_deep/language/en-GB/nested/y.ini", "Y=1")
	repo.File("administrator/components/com_deep/language/en-GB/readme.txt", "")

	found := detect(t, repo, types.ExtensionComponent)
	require.Len(t, found, 1)
	assert.Nil(t, found[0].AdminLangFiles)
}

func TestEmptyRepository(t *testing.T) {
	repo := testutil.NewMemoryRepo(t, "/repo")
	for _, et := range types.ExtensionTypes {
		assert.Empty(t, detect(t, repo, et), et)
	}
}

func TestUnknownType(t *testing.T) {
	repo := testutil.NewMemoryRepo(t, "/repo")
	_, err := scanner.Detect(repo.FS(), defaultLayout(t), types.ExtensionType("widget"), repo.Root)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestDetectAllOrder(t *testing.T) {
	repo := testutil.NewMemoryRepo(t, "/repo")
	repo.Template(types.SideSite, "shiny")
	repo.Plugin("system", "foo")
	repo.Module(types.SideSite, "latest")
	repo.Library("fof")
	repo.Component(types.SideAdmin, "example")

	all := scanner.New(repo.FS(), defaultLayout(t)).DetectAll(repo.Root)

	var order []types.ExtensionType
	for _, d := range all {
		order = append(order, d.Type)
	}
	assert.Equal(t, types.ExtensionTypes, order)
}

func TestCustomLayout(t *testing.T) {
	layout := defaultLayout(t)
	layout.Library.Site = []string{"vendor/libs"}
	layout.LanguageDir = "lang"

	repo := testutil.NewMemoryRepo(t, "/repo")
	repo.Dir("vendor/libs/awesome")
	repo.File("vendor/libs/awesome/lang/en-GB/lib_awesome.ini", "A=1")
	repo.Library("ignored")

	found, err := scanner.Detect(repo.FS(), layout, types.ExtensionLibrary, repo.Root)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "awesome", found[0].Name)
	assert.Len(t, found[0].SiteLangFiles["en-GB"], 1)
}

func TestUnreadableCandidateDoesNotStopSiblings(t *testing.T) {
	testutil.SkipOnWindows(t)
	testutil.SkipAsRoot(t)

	root := t.TempDir()
	repo := testutil.NewRepo(t, root)
	repo.Module(types.SideSite, "hidden")
	admin := repo.Module(types.SideAdmin, "visible")
	testutil.Chmod(t, repo.Path("modules/site"), 0)

	found := detect(t, repo, types.ExtensionModule)

	require.Len(t, found, 1)
	assert.Equal(t, admin, found[0].AdminSource)
}

func TestLinkedExtensionDirectory(t *testing.T) {
	testutil.SkipOnWindows(t)

	root := t.TempDir()
	repo := testutil.NewRepo(t, root)
	vendor := repo.Dir("vendor/fof")
	repo.Dir("libraries")
	require.NoError(t, os.Symlink(vendor, repo.Path("libraries/fof")))

	found := detect(t, repo, types.ExtensionLibrary)
	require.Len(t, found, 1)
	assert.Equal(t, repo.Path("libraries/fof"), found[0].SiteSource)
}
