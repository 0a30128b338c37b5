package mocks

import (
	"github.com/brettbedarf/vfstree/filesystem"
	"github.com/stretchr/testify/mock"
)

// MockNotifier implements filesystem.Notifier for testing across packages
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Deleted(n filesystem.Notice) {
	m.Called(n)
}

// Lines returns the notice lines received so far, in order
func (m *MockNotifier) Lines() []string {
	var lines []string
	for _, call := range m.Calls {
		if call.Method != "Deleted" {
			continue
		}
		lines = append(lines, call.Arguments.Get(0).(filesystem.Notice).String())
	}
	return lines
}

var _ filesystem.Notifier = (*MockNotifier)(nil)
