// Package fsutil holds the filesystem helpers used while materializing a
// project: tree listing, the text-file heuristic and tree copies.
package fsutil

import (
	"os"
	"path/filepath"
	"strings"
)

// binaryExtensions lists extensions whose files are never rewritten.
// Anything else is treated as text.
var binaryExtensions = map[string]struct{}{
	".png":      {},
	".jpg":      {},
	".jpeg":     {},
	".gif":      {},
	".webp":     {},
	".jar":      {},
	".aar":      {},
	".so":       {},
	".dylib":    {},
	".dll":      {},
	".zip":      {},
	".tar":      {},
	".gz":       {},
	".mp3":      {},
	".mp4":      {},
	".pdf":      {},
	".keystore": {},
}

// IsTextFile reports whether path should be treated as a text file.
func IsTextFile(path string) bool {
	_, binary := binaryExtensions[strings.ToLower(filepath.Ext(path))]
	return !binary
}

// ListFiles returns every non-directory path below root.
// Subdirectories that cannot be read are skipped.
func ListFiles(root string) []string {
	var files []string
	walk(root, func(path string, isDir bool) {
		if !isDir {
			files = append(files, path)
		}
	})
	return files
}

// ListEntries returns every file and directory path below root, parents
// before their children. Subdirectories that cannot be read are skipped.
func ListEntries(root string) []string {
	var entries []string
	walk(root, func(path string, _ bool) {
		entries = append(entries, path)
	})
	return entries
}

func walk(dir string, visit func(path string, isDir bool)) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, item := range items {
		full := filepath.Join(dir, item.Name())
		visit(full, item.IsDir())
		if item.IsDir() {
			walk(full, visit)
		}
	}
}

// Exists reports whether path exists. Lstat is used so dangling symlinks count.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
