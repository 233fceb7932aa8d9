package content

import (
	"time"

	"github.com/Dicklesworthstone/hexview/pkg/watcher"
)

// Watch starts watching the files behind docs. onChange receives the index
// of a changed document; it runs off the caller's goroutine, so the caller
// decides where Reload happens. The returned watcher must be run and closed
// by the caller.
func Watch(docs []*Document, debounce time.Duration, onChange func(index int)) (*watcher.Watcher, error) {
	index := make(map[string]int, len(docs))
	paths := make([]string, 0, len(docs))
	for i, d := range docs {
		if d.path == "" {
			continue
		}
		abs, err := absPath(d.path)
		if err != nil {
			return nil, err
		}
		index[abs] = i
		paths = append(paths, d.path)
	}
	return watcher.New(paths, debounce, func(path string) {
		if i, ok := index[path]; ok {
			onChange(i)
		}
	})
}
