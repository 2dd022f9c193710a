// Package scanner walks a directory tree for project files.
package scanner

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Scan walks the subtree under root. Hidden directories are skipped
// entirely. For each remaining file the skip predicate is consulted, and if
// it returns false the file is read and callback(path, contents) invoked.
// Unreadable files are logged and dropped; one bad file never fails the
// walk. Scan returns once all callbacks have completed.
func Scan(
	root string,
	skip func(path string, info fs.FileInfo) bool,
	callback func(path string, document []byte),
) error {
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fs.ErrNotExist
	}

	fileCh := make(chan string, 100)
	var wg sync.WaitGroup

	// worker goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		for path := range fileCh {
			data, err := os.ReadFile(path)
			if err != nil {
				log.Println("scanner: read error:", path, err)
				continue
			}
			callback(path, data)
		}
	}()

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Println("scanner: walk error:", err)
			return nil
		}

		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if skip(path, info) {
			return nil
		}

		fileCh <- path
		return nil
	})
	if err != nil {
		log.Println("scanner: WalkDir finished with error:", err)
	}

	close(fileCh)
	wg.Wait()
	return nil
}
