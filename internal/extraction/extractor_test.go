package extraction

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFExtractor_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-file.pdf")

	_, err := PDFExtractor{}.Extract(missing)
	require.Error(t, err)

	var extractErr *Error
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, missing, extractErr.Path)
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("corrupt xref table")
	err := &Error{Path: "/pdf/bad.pdf", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "/pdf/bad.pdf")
}
