package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStateCode(t *testing.T) {
	assert.True(t, IsValidStateCode("IL"))
	assert.True(t, IsValidStateCode("il")) // 大文字小文字は無視
	assert.True(t, IsValidStateCode("DC"))
	assert.False(t, IsValidStateCode("XX"))
	assert.False(t, IsValidStateCode(""))
}

func TestGetStateName(t *testing.T) {
	assert.Equal(t, "Illinois", GetStateName("IL"))
	assert.Equal(t, "Illinois", GetStateName("il"))
	assert.Equal(t, "", GetStateName("ZZ"))
}
