package store

import (
	"io"
	"sync"

	"go.uber.org/zap"

	"shoebox.dev/cli/internal/core/domain/plugin"
)

// Opener hands out one JSONFileStore per namespace and keeps returning the
// same instance for the rest of the process.
type Opener struct {
	appDir  string
	dryRun  DryRunFlag
	notices io.Writer
	logger  *zap.Logger

	mu     sync.Mutex
	stores map[string]*JSONFileStore
}

// NewOpener creates an opener rooted at appDir. notices may be nil to use stdout.
func NewOpener(appDir string, dryRun DryRunFlag, notices io.Writer, logger *zap.Logger) *Opener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Opener{
		appDir:  appDir,
		dryRun:  dryRun,
		notices: notices,
		logger:  logger,
		stores:  make(map[string]*JSONFileStore),
	}
}

// Open implements ports.StoreOpener.
func (o *Opener) Open(namespace string) (plugin.Store, error) {
	return o.OpenFile(namespace)
}

// OpenFile is Open returning the concrete type
func (o *Opener) OpenFile(namespace string) (*JSONFileStore, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	// Namespaces differing only in case share a backing file
	key := FilePath(o.appDir, namespace)
	if s, ok := o.stores[key]; ok {
		return s, nil
	}

	opts := []Option{WithDryRun(o.dryRun), WithLogger(o.logger)}
	if o.notices != nil {
		opts = append(opts, WithNotices(o.notices))
	}
	s, err := Open(o.appDir, namespace, opts...)
	if err != nil {
		return nil, err
	}
	o.stores[key] = s
	return s, nil
}
