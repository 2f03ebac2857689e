package tapio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vsalmi/tapio"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := tapio.Errorf(tapio.ENOTFOUND, "site %q not found", "migri")

	assert.Equal(t, tapio.ENOTFOUND, tapio.ErrorCode(err))
	assert.Equal(t, "site \"migri\" not found", tapio.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, tapio.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, tapio.ErrorMessage(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, tapio.EINTERNAL, tapio.ErrorCode(assert.AnError))
}
