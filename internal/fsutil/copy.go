package fsutil

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Permissions for created directories and files.
const (
	DirPerm  fs.FileMode = 0o755
	FilePerm fs.FileMode = 0o644
	ExecPerm fs.FileMode = 0o755
)

// CopyDir copies the tree rooted at src into dest, creating dest as needed.
// Existing files in dest are overwritten; existing directories are merged.
func CopyDir(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("copy %s: not a directory", src)
	}
	return CopyFS(os.DirFS(src), ".", dest)
}

// CopyFS copies the subtree root of fsys into dest. File modes are kept for
// regular files so executable scripts such as gradlew stay executable.
// Symlinks are skipped.
func CopyFS(fsys fs.FS, root, dest string) error {
	return fs.WalkDir(fsys, root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(filepath.FromSlash(root), filepath.FromSlash(path))
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}
		target := filepath.Join(dest, rel)

		if entry.IsDir() {
			if err := os.MkdirAll(target, DirPerm); err != nil {
				return fmt.Errorf("mkdir %s: %w", target, err)
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		return copyFile(fsys, path, target, entry)
	})
}

func copyFile(fsys fs.FS, path, target string, entry fs.DirEntry) error {
	mode := FilePerm
	if info, err := entry.Info(); err == nil && info.Mode().Perm()&0o111 != 0 {
		mode = ExecPerm
	}

	in, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(target), DirPerm); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(target), err)
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s: %w", target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", target, err)
	}
	return nil
}
