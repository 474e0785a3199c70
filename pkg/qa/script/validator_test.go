package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidScript(t *testing.T) {
	res := Validate(sampleScript)

	assert.True(t, res.Valid)
	assert.Empty(t, res.Error)
}

func TestValidate_SyntaxErrorReportsLine(t *testing.T) {
	broken := "package main\n\nfunc TestBroken(t *testing.T) {\n\tif {\n}\n"

	res := Validate(broken)

	require.False(t, res.Valid)
	assert.Contains(t, res.Error, "line 4")
}

func TestValidate_CleanedBareBodyParses(t *testing.T) {
	out := Clean("```go\nfunc TestDiscount(t *testing.T) {\n\t_ = t\n}\n```")

	res := Validate(out)

	assert.True(t, res.Valid, res.Error)
}
