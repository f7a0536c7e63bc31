package aamp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashName_KnownVectors(t *testing.T) {
	assert.Equal(t, uint32(0), HashName(""))
	assert.Equal(t, uint32(0x41AFA934), HashName("The Abolition of Man"))
	assert.Equal(t, uint32(0xE9A3C6E0), HashName("param_root"))
}

func TestParamRootName(t *testing.T) {
	assert.Equal(t, Name(0xE9A3C6E0), ParamRootName)
}

func TestNewName(t *testing.T) {
	assert.Equal(t, Name(HashName("foo")), NewName("foo"))
}

func TestName_Hash(t *testing.T) {
	n := NewName("bar")
	assert.Equal(t, HashName("bar"), n.Hash())
}

func TestName_String(t *testing.T) {
	n := Name(0xE9A3C6E0)
	assert.Equal(t, "0xe9a3c6e0", n.String())
}
