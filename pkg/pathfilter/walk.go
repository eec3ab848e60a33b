package pathfilter

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// Entry is a visited file.
type Entry struct {
	// Rel is the slash-separated path relative to the walk root.
	Rel  string
	Path string
	Info fs.FileInfo
}

// Walk visits every regular file under root that the filter keeps, using an
// explicit queue of directories instead of recursion. Unreadable directories
// and files are skipped. Returning an error from visit stops the walk.
func Walk(ctx context.Context, root string, filter *Filter, visit func(Entry) error) error {
	queue := []string{"."}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		dir := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(dir)))
		if err != nil {
			continue
		}

		for _, entry := range entries {
			rel := path.Join(dir, entry.Name())

			if filter != nil && filter.Skip(rel, entry.IsDir()) {
				continue
			}

			if entry.IsDir() {
				queue = append(queue, rel)

				continue
			}

			if !entry.Type().IsRegular() {
				continue
			}

			info, infoErr := entry.Info()
			if infoErr != nil {
				continue
			}

			visitErr := visit(Entry{Rel: rel, Path: filepath.Join(root, filepath.FromSlash(rel)), Info: info})
			if visitErr != nil {
				return visitErr
			}
		}
	}

	return nil
}
