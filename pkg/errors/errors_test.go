package errors

import (
	stderr "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	e1 := New("cause1")
	e2 := New("cause2").Wrap(e1)
	e := New("dummy").Wrap(e2)
	e3 := e.Unwrap()
	assert.True(t, Is(e, e1))
	assert.True(t, Is(e, e2))
	assert.True(t, e3 == e2)
}

func TestErrorWrapMessage(t *testing.T) {
	cause := New("cause")
	e := New("probe failed").WrapMessage(cause, "on volume %q", "usbkey")
	assert.Equal(t, `probe failed: on volume "usbkey"`, e.Error())
	assert.True(t, Is(e, cause))
	assert.True(t, stderr.Is(e, cause))
}
