package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New("test")
	assert.Equal(t, "test", err.Error())
	AssertCode(t, err, DefaultCode)
}

func TestWithCode(t *testing.T) {
	err := New("nope", BadRequest())
	AssertCode(t, err, http.StatusBadRequest)

	err = New("who are you", Unauthorized())
	AssertCode(t, err, http.StatusUnauthorized)

	err = New("not yours", Forbidden())
	AssertCode(t, err, http.StatusForbidden)

	err = New("where is it", NotFound())
	AssertCode(t, err, http.StatusNotFound)
}

func TestWithCause(t *testing.T) {
	cause := fmt.Errorf("some root failure")
	err := New("wrapped", WithCause(cause))
	assert.Equal(t, "wrapped: some root failure", err.Error())

	myErr, ok := err.(Error)
	assert.True(t, ok)
	assert.Equal(t, "some root failure", myErr.Cause().Error())
}

func TestConstraint(t *testing.T) {
	err := New("email already registered", Constraint())
	assert.True(t, IsConstraint(err))
	AssertCode(t, err, http.StatusBadRequest)

	assert.False(t, IsConstraint(New("plain")))
	assert.False(t, IsConstraint(fmt.Errorf("not even an Error")))
	assert.False(t, IsConstraint(nil))
}
