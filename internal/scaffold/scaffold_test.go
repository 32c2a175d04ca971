package scaffold

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"folio/internal/builder"
	"folio/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	assert.Equal(t, "hello-world", Slug("Hello, World!"))
	assert.Equal(t, "über-café", Slug("  Über Café "))
	assert.Equal(t, "", Slug("!!!"))
}

func TestCreateNewSiteBuilds(t *testing.T) {
	root := filepath.Join(t.TempDir(), "notes")
	var out bytes.Buffer
	require.NoError(t, CreateNewSite(root, &out))
	assert.Contains(t, out.String(), "folio serve")

	cfg, err := config.LoadSiteConfig(filepath.Join(root, "site.yaml"))
	require.NoError(t, err)
	tmpl, err := builder.LoadTemplates(filepath.Join(root, "templates"), cfg.Template)
	require.NoError(t, err)

	public := filepath.Join(root, "public")
	count, err := builder.BuildSite(context.Background(), public, filepath.Join(root, "content"), filepath.Join(root, "static"), cfg, tmpl, builder.BuildOptions{CleanDestination: true})
	require.NoError(t, err)
	// five content files plus /guide/, /guide/basics/ and /zh/guide/
	assert.Equal(t, 8, count)

	guide, err := os.ReadFile(filepath.Join(public, "guide", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(guide), ">Getting Started</a>")
	assert.Contains(t, string(guide), `data-icon="rocket"`)

	zh, err := os.ReadFile(filepath.Join(public, "zh", "guide", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(zh), `content="目录"`)

	assert.Error(t, CreateNewSite(root, &out), "refuses to overwrite an existing site")
}

func TestCreateNewContent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "site")
	require.NoError(t, CreateNewSite(root, &bytes.Buffer{}))

	path, err := CreateNewContent("posts", "First Post", filepath.Join(root, "site.yaml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "content", "posts", "first-post.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `title: "First Post"`)
	assert.Contains(t, string(data), `author: "Your Name"`)

	_, err = CreateNewContent("posts", "First Post", filepath.Join(root, "site.yaml"))
	assert.ErrorContains(t, err, "already exists")
}
