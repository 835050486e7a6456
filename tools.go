//go:build tools

// Package tools pins the code generators run by go generate (mockgen for the
// repository mocks) so that go.mod and go.sum track them.
package persona_lab

import (
	_ "go.uber.org/mock/mockgen"
)
