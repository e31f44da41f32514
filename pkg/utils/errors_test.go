package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldErrorsAdd(t *testing.T) {
	fe := FieldErrors{}
	fe.Add("title", "title is required")
	fe.Add("title", "title may not be greater than 255 characters")
	fe.Add("email", "email must be a valid email address")

	assert.Len(t, fe["title"], 2)
	assert.Len(t, fe["email"], 1)
}

func TestFieldErrorsMessage(t *testing.T) {
	fe := FieldErrors{}
	fe.Add("email", "email already in use")

	msg := fe.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "email already in use")
}
