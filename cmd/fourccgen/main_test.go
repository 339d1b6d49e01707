package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindUserConfig(t *testing.T) {
	t.Setenv("FOURCCGEN_CONFIG", "")

	assert.Equal(t, "a.toml", findUserConfig([]string{"generate", "--config=a.toml"}))
	assert.Equal(t, "b.yaml", findUserConfig([]string{"--config", "b.yaml", "generate"}))
	assert.Equal(t, "", findUserConfig([]string{"generate", "--config"}))

	t.Setenv("FOURCCGEN_CONFIG", "env.json")
	assert.Equal(t, "env.json", findUserConfig([]string{"generate"}))
}
