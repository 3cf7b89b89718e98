// Package inbox turns files dropped into a directory into queue messages.
//
// Each *.toml, *.yaml or *.yml file is one message keyed by its file name.
// Writing the file enqueues it, rewriting it replaces it and removing it
// dismisses it.
//
// Writes that leave the content unchanged are ignored, since editors emit
// several events per save. The watcher is not told about dismissals made in
// the host, so a message dismissed there comes back only when its file
// content changes or the file is removed and written again.
package inbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cristianoliveira/msgstack/internal/banner"
	"github.com/cristianoliveira/msgstack/internal/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrNotMessageFile is returned for files the inbox does not handle.
var ErrNotMessageFile = errors.New("not a message file")

// ErrMissingTitle is returned for message files without a title.
var ErrMissingTitle = errors.New("message file has no title")

// Sink receives the requests derived from the directory.
type Sink interface {
	Enqueue(key string, opts banner.Options)
	Dismiss(key string)
}

type messageFile struct {
	Title       string `toml:"title" yaml:"title"`
	Description string `toml:"description" yaml:"description"`
	Level       string `toml:"level" yaml:"level"`
	AutoDismiss string `toml:"autodismiss" yaml:"autodismiss"`
}

// Key returns the message key of path.
func Key(path string) string {
	return filepath.Base(path)
}

// IsMessageFile reports whether path has a handled extension. Hidden and
// editor temporary files are ignored.
func IsMessageFile(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml", ".yaml", ".yml":
		return true
	}
	return false
}

// ParseFile reads the banner options stored in path.
func ParseFile(path string) (banner.Options, error) {
	if !IsMessageFile(path) {
		return banner.Options{}, fmt.Errorf("%w: %s", ErrNotMessageFile, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return banner.Options{}, err
	}
	return parse(data, filepath.Ext(path))
}

func parse(data []byte, ext string) (banner.Options, error) {
	var mf messageFile
	var err error
	if strings.EqualFold(ext, ".toml") {
		err = toml.Unmarshal(data, &mf)
	} else {
		err = yaml.Unmarshal(data, &mf)
	}
	if err != nil {
		return banner.Options{}, fmt.Errorf("decode message: %w", err)
	}
	if strings.TrimSpace(mf.Title) == "" {
		return banner.Options{}, ErrMissingTitle
	}

	level, err := banner.ParseLevel(mf.Level)
	if err != nil {
		return banner.Options{}, err
	}
	opts := banner.Options{Title: mf.Title, Description: mf.Description, Level: level}
	if mf.AutoDismiss != "" {
		d, err := time.ParseDuration(mf.AutoDismiss)
		if err != nil || d < 0 {
			return banner.Options{}, fmt.Errorf("invalid autodismiss %q", mf.AutoDismiss)
		}
		opts.AutoDismiss = d
	}
	return opts, nil
}

// Watcher forwards changes of one directory to a Sink.
type Watcher struct {
	dir  string
	sink Sink
	log  logging.Logger

	// live maps keys to the content they were enqueued with.
	live map[string]string
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger. Defaults to the global logger.
func WithLogger(l logging.Logger) Option {
	return func(w *Watcher) {
		w.log = l
	}
}

// New creates a watcher for dir, creating the directory if needed.
func New(dir string, sink Sink, opts ...Option) (*Watcher, error) {
	if sink == nil {
		panic("inbox.New: sink dependency cannot be nil")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create inbox %s: %w", dir, err)
	}
	w := &Watcher{dir: dir, sink: sink, log: logging.GetGlobal(), live: make(map[string]string)}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run enqueues the files already present and then follows the directory until
// ctx is canceled. ready, if not nil, is closed once the watch is in place.
func (w *Watcher) Run(ctx context.Context, ready chan<- struct{}) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	if err := w.scan(); err != nil {
		return err
	}
	if ready != nil {
		close(ready)
	}
	w.log.Info("watching inbox", "dir", w.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("inbox watcher error", "error", err)
		}
	}
}

func (w *Watcher) scan() error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("read inbox %s: %w", w.dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		w.update(filepath.Join(w.dir, e.Name()))
	}
	return nil
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !IsMessageFile(ev.Name) {
		return
	}
	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		w.remove(ev.Name)
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		w.update(ev.Name)
	}
}

// update enqueues path, replacing the live message when its content changed.
// Files that do not parse yet are skipped; a later write retries them.
func (w *Watcher) update(path string) {
	if !IsMessageFile(path) {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			w.log.Warn("read inbox file", "path", path, "error", err)
		}
		return
	}
	key := Key(path)
	content := string(data)
	if prev, ok := w.live[key]; ok && prev == content {
		return
	}
	opts, err := parse(data, filepath.Ext(path))
	if err != nil {
		w.log.Debug("skipping inbox file", "path", path, "error", err)
		return
	}

	if _, ok := w.live[key]; ok {
		w.sink.Dismiss(key)
	}
	w.live[key] = content
	w.sink.Enqueue(key, opts)
	w.log.Debug("inbox message", "key", key, "title", opts.Title)
}

func (w *Watcher) remove(path string) {
	key := Key(path)
	if _, ok := w.live[key]; !ok {
		return
	}
	delete(w.live, key)
	w.sink.Dismiss(key)
}
