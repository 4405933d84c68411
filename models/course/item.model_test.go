package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItemKind(t *testing.T) {
	for _, name := range []string{"text", "file", "image", "video", " Video "} {
		kind, err := ParseItemKind(name)
		require.NoError(t, err, name)

		item, err := NewItem(kind)
		require.NoError(t, err)
		assert.Equal(t, kind, item.Kind())
	}

	for _, name := range []string{"", "course", "module", "content", "texts"} {
		_, err := ParseItemKind(name)
		assert.ErrorIs(t, err, ErrUnknownItemKind, name)
	}
}

func TestStoredFile(t *testing.T) {
	assert.Equal(t, "/media/files/a.pdf", (&File{File: "/media/files/a.pdf"}).StoredFile())
	assert.Equal(t, "/media/images/b.png", (&Image{File: "/media/images/b.png"}).StoredFile())
	assert.Empty(t, (&Text{Content: "x"}).StoredFile())
	assert.Empty(t, (&Video{URL: "https://example.com"}).StoredFile())

	_, err := NewItem("quiz")
	assert.ErrorIs(t, err, ErrUnknownItemKind)
}
