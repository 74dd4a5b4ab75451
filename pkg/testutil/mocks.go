package testutil

import (
	"context"

	"github.com/arthur-debert/whatif/pkg/types"
	"github.com/stretchr/testify/mock"
)

// MockRunner is a testify mock of types.CommandRunner
type MockRunner struct {
	mock.Mock
}

var _ types.CommandRunner = (*MockRunner)(nil)

func (m *MockRunner) RunCommand(ctx context.Context, cmd types.Command) (types.CommandResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(types.CommandResult), args.Error(1)
}

func (m *MockRunner) Popen4(ctx context.Context, cmd types.Command, fn types.StreamHandler) (types.ExitStatus, error) {
	args := m.Called(ctx, cmd, fn)
	return args.Get(0).(types.ExitStatus), args.Error(1)
}
