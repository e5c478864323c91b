// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, code lookup and stage mapping

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/customs/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "manifest_not_found",
			code:    errors.ErrManifestNotFound,
			message: "manifest.toml not found",
			wantStr: "[MANIFEST_NOT_FOUND] manifest.toml not found",
		},
		{
			name:    "repo_dirty",
			code:    errors.ErrRepoDirty,
			message: "uncommitted changes",
			wantStr: "[REPO_DIRTY] uncommitted changes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrManifestFieldMissing, "missing required field %q", "version")
	assert.Equal(t, `missing required field "version"`, err.Message)
}

func TestWrap(t *testing.T) {
	base := stderrors.New("permission denied")

	err := errors.Wrap(base, errors.ErrIO, "failed to create target directory")
	require.NotNil(t, err)
	assert.Equal(t, "[IO] failed to create target directory: permission denied", err.Error())
	assert.Equal(t, base, stderrors.Unwrap(err))

	t.Run("nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrIO, "ignored"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrIO, "ignored %d", 1))
	})
}

func TestWithDetails(t *testing.T) {
	err := errors.New(errors.ErrArchiveWrite, "write failed").
		WithDetail(errors.DetailPath, "src/main.lua").
		WithDetails(map[string]interface{}{"entries": 3})

	details := errors.GetErrorDetails(err)
	assert.Equal(t, "src/main.lua", details[errors.DetailPath])
	assert.Equal(t, 3, details["entries"])
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrRepoDirty, "error 1")
	err2 := errors.New(errors.ErrRepoDirty, "error 2")
	err3 := errors.New(errors.ErrRepoNotFound, "error 3")

	assert.True(t, stderrors.Is(err1, err2), "same code should match")
	assert.False(t, stderrors.Is(err1, err3), "different codes should not match")
}

func TestIsErrorCode(t *testing.T) {
	wrapped := fmt.Errorf("stage failed: %w",
		errors.New(errors.ErrManifestFieldInvalid, "bad version").WithDetail(errors.DetailField, "version"))

	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrManifestFieldInvalid))
	assert.False(t, errors.IsErrorCode(wrapped, errors.ErrManifestParse))
	assert.False(t, errors.IsErrorCode(stderrors.New("plain"), errors.ErrManifestParse))
	assert.False(t, errors.IsErrorCode(nil, errors.ErrManifestParse))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrIO, errors.GetErrorCode(errors.New(errors.ErrIO, "x")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("disk full")
	writeErr := errors.Wrap(rootCause, errors.ErrArchiveWrite, "cannot write entry")
	top := errors.Wrap(writeErr, errors.ErrIO, "build failed")

	assert.True(t, errors.IsErrorCode(top, errors.ErrIO))
	assert.True(t, stderrors.Is(top, rootCause))

	var inner *errors.CustomsError
	require.True(t, stderrors.As(top.Unwrap(), &inner))
	assert.Equal(t, errors.ErrArchiveWrite, inner.Code)
}

func TestStage(t *testing.T) {
	tests := map[errors.ErrorCode]string{
		errors.ErrManifestNotFound:     "manifest",
		errors.ErrManifestFieldInvalid: "manifest",
		errors.ErrRepoDirty:            "repository",
		errors.ErrRepoNotFound:         "repository",
		errors.ErrArchiveWrite:         "archive",
		errors.ErrConfigParse:          "config",
		errors.ErrBuildCanceled:        "collision",
		errors.ErrInternal:             "build",
	}
	for code, want := range tests {
		assert.Equal(t, want, errors.Stage(code), "code %s", code)
	}
}

func TestAs(t *testing.T) {
	ce, ok := errors.As(fmt.Errorf("context: %w", errors.New(errors.ErrIO, "disk")))
	require.True(t, ok)
	assert.Equal(t, errors.ErrIO, ce.Code)

	_, ok = errors.As(stderrors.New("plain"))
	assert.False(t, ok)
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}
