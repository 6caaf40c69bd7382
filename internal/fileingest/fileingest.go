package fileingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileMeta holds metadata about a file to be imported.
type FileMeta struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

/*
DiscoverCSVFiles returns the .csv files to import from root.

A file root is returned as-is whatever its extension. A directory is walked
recursively and only *.csv files (case-insensitive) are kept, sorted by path.
*/
func DiscoverCSVFiles(ctx context.Context, root string) ([]FileMeta, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []FileMeta{metaFromInfo(root, info)}, nil
	}

	var files []FileMeta
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".csv") {
			return nil
		}
		meta, metaErr := ExtractFileMeta(path)
		if metaErr != nil {
			// Skip files we can't stat, but continue
			return nil
		}
		files = append(files, meta)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// ExtractFileMeta extracts metadata from a given file path.
func ExtractFileMeta(path string) (FileMeta, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileMeta{}, err
	}
	return metaFromInfo(path, info), nil
}

func metaFromInfo(path string, info os.FileInfo) FileMeta {
	return FileMeta{
		Path:    path,
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}
