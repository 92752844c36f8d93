package shopcrawl_test

import (
	"testing"

	"github.com/shopcrawl/shopcrawl"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := shopcrawl.Errorf(shopcrawl.EFORBIDDEN, "access forbidden for %q", "https://example.com")

	assert.Equal(t, shopcrawl.EFORBIDDEN, shopcrawl.ErrorCode(err))
	assert.Equal(t, "access forbidden for \"https://example.com\"", shopcrawl.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, shopcrawl.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, shopcrawl.EINTERNAL, shopcrawl.ErrorCode(assert.AnError))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, shopcrawl.ErrorMessage(nil))
}
