package config

import (
	"os"
	"path/filepath"
)

// resolvePaths anchors relative data paths to baseDir, normally the
// directory holding the config file they were read from.
func (c *Config) resolvePaths(baseDir string) {
	for _, p := range []*string{
		&c.Dataset.ReturnsFile,
		&c.Explorer.PricesFile,
		&c.Explorer.EventsFile,
		&c.Explorer.PlotFile,
		&c.Explorer.ReportFile,
		&c.Logging.FilePath,
	} {
		*p = ResolvePath(baseDir, *p)
	}
}

// ResolvePath joins a relative path onto baseDir. Empty and absolute paths
// are returned unchanged.
func ResolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" || baseDir == "." {
		return path
	}
	return filepath.Join(baseDir, path)
}

// FileExists reports whether path names an existing regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
