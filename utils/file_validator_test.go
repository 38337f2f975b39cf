package utils

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/petiverse/petiversebackend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var png = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// fileHeader builds a real multipart.FileHeader the way gin hands them out.
func fileHeader(t *testing.T, name string, data []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("images", name)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["images"][0]
}

func imageValidator() *FileValidator {
	return NewImageValidator(config.UploadConfig{
		MaxSizeMB:         1,
		MaxProductImages:  2,
		AllowedExtensions: []string{".PNG", ".jpg"},
		AllowedMimeTypes:  []string{"image/png", "image/jpeg"},
	})
}

func TestValidateFileAcceptsImages(t *testing.T) {
	v := imageValidator()

	mime, err := v.ValidateFile(fileHeader(t, "Bella.png", png))
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, 2, v.MaxFiles())
}

func TestValidateFileRejects(t *testing.T) {
	v := imageValidator()

	_, err := v.ValidateFile(fileHeader(t, "bella.gif", png))
	assert.EqualError(t, err, "invalid file extension")

	_, err = v.ValidateFile(fileHeader(t, "bella.jpg", []byte("<html><body>hi</body></html>")))
	assert.EqualError(t, err, "invalid file type")

	big := append(append([]byte(nil), png...), make([]byte, 1<<20)...)
	_, err = v.ValidateFile(fileHeader(t, "big.png", big))
	assert.EqualError(t, err, "file too large (max 1 MB)")
}

func TestReadFile(t *testing.T) {
	data, err := ReadFile(fileHeader(t, "bella.png", png))
	require.NoError(t, err)
	assert.Equal(t, png, data)
}
