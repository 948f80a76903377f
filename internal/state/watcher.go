package state

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/Paintersrp/eagle/internal/handler"
)

// VaultNoteChangedMsg reports a created, written, removed or renamed note.
// Path is absolute.
type VaultNoteChangedMsg struct {
	Path string
}

type VaultWatcherErrMsg struct {
	Err error
}

type VaultWatcher struct {
	watcher  *fsnotify.Watcher
	vault    string
	done     chan struct{}
	once     sync.Once
	onChange func(string)
}

func NewVaultWatcher(vault string) (*VaultWatcher, error) {
	normalizedVault := handler.NormalizePath(vault)
	if normalizedVault == "" {
		return nil, errors.New("vault directory cannot be empty")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &VaultWatcher{
		watcher: w,
		vault:   normalizedVault,
		done:    make(chan struct{}),
	}

	if err := watcher.addRecursive(normalizedVault); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return watcher, nil
}

// Start returns a command that blocks until the next relevant event. The
// receiver of the message must call Start again to keep listening.
func (w *VaultWatcher) Start() tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		for {
			select {
			case <-w.done:
				return nil
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}

				if event.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = w.addRecursive(event.Name)
						continue
					}
				}

				if !w.isRelevant(event) {
					continue
				}

				path := handler.NormalizePath(event.Name)
				if w.onChange != nil {
					w.onChange(path)
				}
				return VaultNoteChangedMsg{Path: path}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					return VaultWatcherErrMsg{Err: err}
				}
			}
		}
	}
}

func (w *VaultWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
	})

	return closeErr
}

// OnChange registers a callback that receives note paths whenever the
// watcher detects a relevant change.
func (w *VaultWatcher) OnChange(fn func(string)) {
	if w == nil {
		return
	}
	w.onChange = fn
}

func (w *VaultWatcher) addRecursive(root string) error {
	normalized := handler.NormalizePath(root)
	return filepath.WalkDir(normalized, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return filepath.SkipDir
			}
			return err
		}

		if !d.IsDir() {
			return nil
		}
		if path != normalized && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}

		return w.watcher.Add(path)
	})
}

func (w *VaultWatcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	rel, err := handler.VaultRelative(w.vault, event.Name)
	if err != nil || rel == "." || rel == "" || strings.HasPrefix(rel, "..") {
		return false
	}

	return strings.EqualFold(filepath.Ext(rel), ".md")
}
