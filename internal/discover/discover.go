// Package discover enumerates Hyper files on disk.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nicolelily/hyper-files-inspector/internal/catalog"
)

// File is one discovered Hyper file. Modified is epoch seconds.
type File struct {
	Path     string  `json:"path"`
	Name     string  `json:"name"`
	Size     int64   `json:"size"`
	Modified float64 `json:"modified"`
}

// Result is the discover command payload.
type Result struct {
	Success    bool   `json:"success"`
	Directory  string `json:"directory"`
	FilesFound int    `json:"files_found"`
	Files      []File `json:"files"`
}

// Walk recursively finds every .hyper file under dir. The directory must
// exist and be a directory; both checks happen before the walk.
func Walk(dir string) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("directory %w: %s", catalog.ErrNotFound, dir)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", catalog.ErrInvalidInput, dir)
	}

	result := &Result{Success: true, Directory: dir, Files: []File{}}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), catalog.HyperExt) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		result.Files = append(result.Files, File{
			Path:     abs,
			Name:     d.Name(),
			Size:     fi.Size(),
			Modified: float64(fi.ModTime().UnixNano()) / 1e9,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error discovering files: %w", err)
	}

	result.FilesFound = len(result.Files)
	return result, nil
}
