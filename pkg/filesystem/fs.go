package filesystem

import "io/fs"

// FS is the filesystem surface argument processors depend on.
type FS interface {
	// Stat returns file info for the named path
	Stat(name string) (fs.FileInfo, error)

	// ReadFile reads the named file
	ReadFile(name string) ([]byte, error)

	// WriteFile writes data to the named file
	WriteFile(name string, data []byte, perm fs.FileMode) error
}

// DirExists reports whether path exists and is a directory.
func DirExists(fsys FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

// FileExists reports whether path exists and is a regular file.
func FileExists(fsys FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}
