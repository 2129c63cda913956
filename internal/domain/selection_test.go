package domain_test

import (
	"testing"

	"github.com/nikolayk812/hgshop/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolveSelection(t *testing.T) {
	options := []string{"black", "white"}

	assert.Equal(t, "black", domain.ResolveSelection("", options))
	assert.Equal(t, "white", domain.ResolveSelection("white", options))
	assert.Equal(t, "black", domain.ResolveSelection("purple", options))
	assert.Equal(t, "", domain.ResolveSelection("white", nil))

	assert.Equal(t, domain.SizeS, domain.ResolveSelection(domain.Size(""), domain.Sizes))
	assert.Equal(t, domain.SizeXL, domain.ResolveSelection(domain.SizeXL, domain.Sizes))
}
