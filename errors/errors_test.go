package errors_test

import (
	"errors"
	"io/fs"
	"testing"

	minierrors "github.com/KimNorgaard/go-mini/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	err := minierrors.New(minierrors.KeyAlreadyPresent, "x").At(7)
	require.EqualError(t, err, "mini: line 7: key already present: x")

	err = minierrors.New(minierrors.ValueEmpty, "")
	require.EqualError(t, err, "mini: value is empty")
}

func TestErrorsIs(t *testing.T) {
	var err error = minierrors.New(minierrors.SectionAlreadyPresent, "a").At(3)
	require.ErrorIs(t, err, minierrors.SectionAlreadyPresent)
	require.NotErrorIs(t, err, minierrors.KeyAlreadyPresent)

	k, ok := minierrors.KindOf(err)
	require.True(t, ok)
	require.Equal(t, minierrors.SectionAlreadyPresent, k)
	require.Equal(t, 3, minierrors.LineOf(err))

	_, ok = minierrors.KindOf(errors.New("plain"))
	require.False(t, ok)
	require.Zero(t, minierrors.LineOf(errors.New("plain")))
}

func TestWrapKeepsCause(t *testing.T) {
	err := minierrors.Wrap(minierrors.FileIOError, "conf.mini", fs.ErrNotExist)
	require.ErrorIs(t, err, minierrors.FileIOError)
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.EqualError(t, err, "mini: file i/o error: conf.mini: file does not exist")
}

func TestAtDoesNotMutate(t *testing.T) {
	base := minierrors.New(minierrors.KeyEmpty, "")
	positioned := base.At(2)
	require.Zero(t, base.Line)
	require.Equal(t, 2, positioned.Line)
}

func TestUnknownKind(t *testing.T) {
	require.Equal(t, "unknown error kind 999", minierrors.Kind(999).Error())
}
