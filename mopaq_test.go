package mopaq_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mopaq"
	"github.com/arloliu/mopaq/errs"
)

func TestOpen_RejectsGarbage(t *testing.T) {
	_, err := mopaq.Open(bytes.NewReader([]byte("not an archive")))
	require.ErrorIs(t, err, errs.ErrMalformedArchive)
}

func TestOpenFile_Missing(t *testing.T) {
	_, err := mopaq.OpenFile("testdata/does-not-exist.mpq")
	require.Error(t, err)
}
