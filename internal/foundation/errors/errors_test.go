package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "uibuild.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())

		file, ok := err.Context().GetString("file")
		require.True(t, ok)
		assert.Equal(t, "uibuild.yaml", file)
	})

	t.Run("path context is rendered", func(t *testing.T) {
		cause := errors.New("unexpected token")
		err := TransformError(cause, "script", "es/button/index.js").Build()

		assert.Equal(t, "[transform:error] script transform failed (es/button/index.js): unexpected token", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("detection through wrapping", func(t *testing.T) {
		inner := FileSystemError(errors.New("permission denied"), "remove", "/tmp/x").Build()
		wrapped := fmt.Errorf("compile dir: %w", inner)

		assert.True(t, IsClassified(wrapped))
		assert.True(t, HasCategory(wrapped, CategoryFileSystem))
		assert.Equal(t, CategoryFileSystem, GetCategory(wrapped))
		assert.Equal(t, SeverityError, GetSeverity(wrapped))
	})

	t.Run("unclassified defaults", func(t *testing.T) {
		err := errors.New("plain")
		assert.False(t, IsClassified(err))
		assert.Equal(t, CategoryInternal, GetCategory(err))
		assert.Equal(t, SeverityError, GetSeverity(err))
	})
}

func TestClassifiedError_WithContextDoesNotMutate(t *testing.T) {
	base := BuildError("phase failed").Build()
	extended := base.WithContext("phase", "Build esmodule outputs")

	_, ok := base.Context().Get("phase")
	assert.False(t, ok)
	phase, ok := extended.Context().GetString("phase")
	require.True(t, ok)
	assert.Equal(t, "Build esmodule outputs", phase)
}

func TestClassifiedError_Is(t *testing.T) {
	a := NewError(CategoryBundle, "bundle failed").Build()
	b := NewError(CategoryBundle, "bundle failed").WithContext("minify", true).Build()
	c := NewError(CategoryBuild, "bundle failed").Build()

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestErrorContext_Merge(t *testing.T) {
	var empty ErrorContext
	other := ErrorContext{"a": 1}
	assert.Equal(t, other, empty.Merge(other))

	merged := ErrorContext{"a": 1, "b": 2}.Merge(ErrorContext{"b": 3})
	assert.Equal(t, ErrorContext{"a": 1, "b": 3}, merged)
}
