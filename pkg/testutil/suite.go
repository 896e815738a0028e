package testutil

import (
	"os"
	"path/filepath"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// FileSuite gives a testify suite a scratch directory.
type FileSuite struct {
	suite.Suite
	tempDir string
}

// SetupSuite runs before all tests in the suite
func (s *FileSuite) SetupSuite() {
	tempDir, err := os.MkdirTemp("", "stockpile-test-*")
	require.NoError(s.T(), err)
	s.tempDir = tempDir
}

// TearDownSuite runs after all tests in the suite
func (s *FileSuite) TearDownSuite() {
	if s.tempDir != "" {
		_ = os.RemoveAll(s.tempDir)
	}
}

// TempDir returns the suite's scratch directory
func (s *FileSuite) TempDir() string {
	return s.tempDir
}

// CreateTempFile writes content to name inside the scratch directory and
// returns the full path.
func (s *FileSuite) CreateTempFile(name string, content []byte) string {
	path := filepath.Join(s.tempDir, name)
	require.NoError(s.T(), os.WriteFile(path, content, 0o600))
	return path
}
