package pie

import (
	"context"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/zoobzio/capitan"
)

// Source observes a dataset origin for changes and emits raw bytes on a
// channel. Implementations must emit the current value immediately upon
// Watch being called so a Feed can populate the chart on startup.
type Source interface {
	// Watch begins observing the source and returns a channel that emits
	// raw bytes when changes occur. The channel is closed when the context
	// is canceled or an unrecoverable error occurs.
	Watch(ctx context.Context) (<-chan []byte, error)
}

// FileSource watches a dataset file and emits its contents on every write.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for the given file path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Watch reads the current contents up front, then emits them plus every
// subsequent write of the file. An unreadable file fails Watch immediately
// rather than producing a silently empty feed; read failures after a change
// event are surfaced through the SourceReadFailed signal and watching
// continues, since a writer may simply be mid-replace.
func (s *FileSource) Watch(ctx context.Context) (<-chan []byte, error) {
	initial, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file %s: %w", s.path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(s.path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch file %s: %w", s.path, err)
	}

	// Buffered so the initial contents are available to the first receive
	// without the goroutine having run.
	out := make(chan []byte, 1)
	out <- initial

	go func() {
		defer close(out)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}

				data, err := os.ReadFile(s.path)
				if err != nil {
					capitan.Emit(ctx, SourceReadFailed,
						KeyPath.Field(s.path),
						KeyError.Field(err.Error()),
					)
					continue
				}

				select {
				case out <- data:
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				capitan.Emit(ctx, SourceReadFailed,
					KeyPath.Field(s.path),
					KeyError.Field(err.Error()),
				)
			}
		}
	}()

	return out, nil
}

// ChannelSource wraps an existing byte channel as a Source. Useful for
// testing and custom origins that already produce bytes.
type ChannelSource struct {
	ch   <-chan []byte
	sync bool
}

// NewChannelSource creates a ChannelSource that forwards values from the
// given channel through an internal goroutine.
func NewChannelSource(ch <-chan []byte) *ChannelSource {
	return &ChannelSource{ch: ch, sync: false}
}

// NewSyncChannelSource creates a ChannelSource that returns the source
// channel directly without an intermediate goroutine.
// Use with Feed.SyncMode for deterministic testing.
func NewSyncChannelSource(ch <-chan []byte) *ChannelSource {
	return &ChannelSource{ch: ch, sync: true}
}

// Watch returns a channel that emits values from the wrapped channel.
func (s *ChannelSource) Watch(ctx context.Context) (<-chan []byte, error) {
	if s.sync {
		return s.ch, nil
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-s.ch:
				if !ok {
					return
				}
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
