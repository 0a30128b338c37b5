package filesystem_test

import (
	"bytes"
	"testing"

	"github.com/brettbedarf/vfstree"
	"github.com/brettbedarf/vfstree/config"
	"github.com/brettbedarf/vfstree/filesystem"
	"github.com/brettbedarf/vfstree/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotice_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		notice filesystem.Notice
		exp    string
	}{
		{"file", filesystem.Notice{Kind: vfstree.FileKind, Name: "file1"}, "deleted file file1"},
		{"folder", filesystem.Notice{Kind: vfstree.FolderKind, Name: "folder2/"}, "deleted folder folder2/"},
		{"link", filesystem.Notice{Kind: vfstree.LinkKind, Name: "l", Target: "file1"}, "deleted link l -> file1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.exp, tt.notice.String())
		})
	}
}

func TestMockNotifier_ReceivesCascade(t *testing.T) {
	t.Parallel()

	notifier := &mocks.MockNotifier{}
	notifier.On("Deleted", mock.AnythingOfType("filesystem.Notice")).Return()

	root := filesystem.NewFolder("/", 1)
	root.SetNotifier(notifier)
	sub := filesystem.NewFolder("sub", 2)
	require.NoError(t, sub.Add(filesystem.NewFile("a", 3)))
	require.NoError(t, sub.Add(filesystem.NewFile("b", 4)))
	require.NoError(t, root.Add(sub))

	_, err := root.DeleteID(2)
	require.NoError(t, err)

	notifier.AssertNumberOfCalls(t, "Deleted", 3)
	assert.Equal(t, []string{"deleted file b", "deleted file a", "deleted folder sub"}, notifier.Lines())
	notifier.AssertCalled(t, "Deleted", mock.MatchedBy(func(n filesystem.Notice) bool {
		return n.ID == 2 && n.Kind == vfstree.FolderKind
	}))
}

func TestMultiNotifier(t *testing.T) {
	t.Parallel()

	first := &mocks.MockNotifier{}
	first.On("Deleted", mock.Anything).Return()
	var buf bytes.Buffer

	file := filesystem.NewFile("file", 1)
	file.SetNotifier(filesystem.MultiNotifier{first, filesystem.NewWriterNotifier(&buf)})
	file.Delete()

	first.AssertNumberOfCalls(t, "Deleted", 1)
	assert.Equal(t, "deleted file file\n", buf.String())
}

func TestFileSystem_NoticesReachOutput(t *testing.T) {
	t.Parallel()

	notifier := &mocks.MockNotifier{}
	notifier.On("Deleted", mock.Anything).Return()

	fs := filesystem.NewFS(config.NewDefaultConfig())
	fs.SetOutput(notifier)
	_, err := fs.AddFolder(1, "dir", 2)
	require.NoError(t, err)
	_, err = fs.AddFile(2, "leaf", 3)
	require.NoError(t, err)

	fs.Root().Delete()

	assert.Equal(t, []string{"deleted file leaf", "deleted folder dir", "deleted folder /"}, notifier.Lines())
	assert.Equal(t, 0, fs.Len())
}
