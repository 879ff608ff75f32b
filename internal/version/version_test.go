package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateVersionedKey(t *testing.T) {
	assert.Equal(t, "session:clinic:tv1.0_pv1.0:abc", GenerateVersionedKey("session", "clinic", "abc"))

	old := ComponentVersions.Prompts
	ComponentVersions.Prompts = "2.0"
	defer func() { ComponentVersions.Prompts = old }()

	assert.Equal(t, "session:clinic:tv1.0_pv2.0:abc", GenerateVersionedKey("session", "clinic", "abc"))
}
