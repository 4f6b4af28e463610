package imagestore

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndRemove(t *testing.T) {
	s := New(t.TempDir(), 1024)

	st, err := s.Save("property_images", "house.jpg", strings.NewReader("JPEGDATA"))
	require.NoError(t, err)
	assert.Equal(t, "property_images/house.jpg", st.StorePath)
	assert.Equal(t, "public/property_images/house.jpg", st.URL)

	data, err := os.ReadFile(filepath.Join(s.BaseDir, "property_images", "house.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "JPEGDATA", string(data))

	s.Remove(st.StorePath)
	_, err = os.Stat(filepath.Join(s.BaseDir, st.StorePath))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveDeduplicatesNames(t *testing.T) {
	s := New(t.TempDir(), 1024)
	first, err := s.Save("p", "a.png", strings.NewReader("one"))
	require.NoError(t, err)
	second, err := s.Save("p", "a.png", strings.NewReader("two"))
	require.NoError(t, err)
	assert.NotEqual(t, first.StorePath, second.StorePath)
	assert.Equal(t, "p/a_1.png", second.StorePath)
}

func TestSaveRejectsEmpty(t *testing.T) {
	s := New(t.TempDir(), 1024)
	_, err := s.Save("p", "empty.png", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)
	// nothing left behind
	entries, _ := os.ReadDir(filepath.Join(s.BaseDir, "p"))
	assert.Empty(t, entries)
}

func TestSaveRejectsOversize(t *testing.T) {
	s := New(t.TempDir(), 8)
	_, err := s.Save("p", "big.png", strings.NewReader("way more than eight bytes"))
	assert.ErrorIs(t, err, ErrTooLarge)
	entries, _ := os.ReadDir(filepath.Join(s.BaseDir, "p"))
	assert.Empty(t, entries)
}

func TestSaveStripsPathComponents(t *testing.T) {
	s := New(t.TempDir(), 1024)
	st, err := s.Save("p", "../../etc/passwd.png", strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, "p/passwd.png", st.StorePath)
}

func TestUniqueNameStopsOnUnreadableDir(t *testing.T) {
	// A path whose parent is a regular file makes every Stat fail with
	// ENOTDIR, never not-exist; the probe must return instead of spinning.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	done := make(chan string, 1)
	go func() { done <- uniqueName(blocker, "a.png") }()
	select {
	case got := <-done:
		assert.Equal(t, "a.png", got)
	case <-time.After(2 * time.Second):
		t.Fatal("uniqueName did not return on persistent Stat errors")
	}
}

func TestThumbRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.jpg")
	img := imaging.New(640, 480, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	require.NoError(t, imaging.Save(img, src))

	require.False(t, HasThumb(src))
	require.NoError(t, CreateThumb(src))
	require.True(t, HasThumb(src))

	thumb, err := imaging.Open(ThumbPath(src))
	require.NoError(t, err)
	b := thumb.Bounds()
	assert.LessOrEqual(t, b.Dx(), 320)
	assert.LessOrEqual(t, b.Dy(), 240)
}

func TestThumbNaming(t *testing.T) {
	assert.Equal(t, "a/b/house.thumb.jpg", ThumbPath("a/b/house.jpg"))
	assert.True(t, IsThumb("house.thumb.jpg"))
	assert.False(t, IsThumb("house.jpg"))
}

func TestSupportedImageExt(t *testing.T) {
	assert.True(t, SupportedImageExt("x.JPG"))
	assert.True(t, SupportedImageExt("x.png"))
	assert.False(t, SupportedImageExt("x.txt"))
	assert.False(t, SupportedImageExt("x"))
}

func TestCreateThumbRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "junk.png")
	require.NoError(t, os.WriteFile(src, []byte("not an image"), 0644))
	assert.Error(t, CreateThumb(src))
}

// imaging.Decode works on anything image.Decode understands; sanity-check the
// stdlib round trip the store relies on.
func TestDecodeCompat(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, imaging.Encode(buf, imaging.New(4, 4, color.NRGBA{A: 255}), imaging.PNG))
	decoded, _, err := image.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 4, decoded.Bounds().Dx())
}
