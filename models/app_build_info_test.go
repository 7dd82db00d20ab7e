package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppBuildInfo(t *testing.T) {
	info := NewAppBuildInfo("v0.4.0", " ", "")

	assert.Equal(t, "v0.4.0", info.BuildVersion())
	assert.Equal(t, "N/A", info.BuildDate())
	assert.Equal(t, "N/A", info.BuildCommit())
	assert.Equal(t, "Build version: v0.4.0\nBuild date: N/A\nBuild commit: N/A\n", info.String())

	var zero AppBuildInfo
	assert.Equal(t, "N/A", zero.BuildVersion())
}
