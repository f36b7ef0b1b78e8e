package proofs

import (
	"os"

	"github.com/pkg/errors"
	"github.com/tus/tusd/v2/pkg/filelocker"
	"github.com/tus/tusd/v2/pkg/filestore"
	tusd "github.com/tus/tusd/v2/pkg/handler"
	"github.com/tus/tusd/v2/pkg/hooks"
)

// DefaultMaxSize caps a single proof file.
const DefaultMaxSize = 25 * 1024 * 1024

// NewHandler builds the tus handler storing uploads under dir. basePath is the
// URL prefix the handler is mounted at.
func NewHandler(dir, basePath string, maxSize int64, hookHandler *ProofHookHandler) (*tusd.Handler, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "unable to create proofs dir %s", dir)
	}

	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	composer := tusd.NewStoreComposer()
	filestore.New(dir).UseIn(composer)
	filelocker.New(dir).UseIn(composer)

	handler, err := hooks.NewHandlerWithHooks(
		&tusd.Config{
			BasePath:      basePath,
			StoreComposer: composer,
			MaxSize:       maxSize,
		},
		hookHandler,
		[]hooks.HookType{hooks.HookPreCreate, hooks.HookPostFinish})
	if err != nil {
		return nil, errors.Wrap(err, "unable to create proofs upload handler")
	}

	return handler, nil
}
