package page

import (
	"io/fs"
	"testing"

	"github.com/jakoblorz/go-projectpage/internal/filesystem"
	"github.com/stretchr/testify/require"
)

func TestLoadTemplate_Default(t *testing.T) {
	tpl, err := LoadTemplate(filesystem.NewMockFileSystem(), "")
	require.NoError(t, err)
	require.Equal(t, DefaultTemplate(), tpl)
}

func TestLoadTemplate_FromFile(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile("/srv/page.html", []byte(`<html><body><div id="content"></div></body></html>`))

	tpl, err := LoadTemplate(mfs, "/srv/page.html")
	require.NoError(t, err)
	require.Contains(t, string(tpl), `id="content"`)
}

func TestLoadTemplate_Missing(t *testing.T) {
	_, err := LoadTemplate(filesystem.NewMockFileSystem(), "/srv/page.html")
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.EqualError(t, err, "page template /srv/page.html: "+fs.ErrNotExist.Error())
}

func TestLoadTemplate_NoContentContainer(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile("/srv/page.html", []byte(`<html><body><div id="main"></div></body></html>`))

	_, err := LoadTemplate(mfs, "/srv/page.html")
	require.ErrorIs(t, err, ErrNoContentContainer)
}
