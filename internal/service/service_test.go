package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/vs-portfolio/portfolio/internal/model"
	"github.com/vs-portfolio/portfolio/internal/repository/memory"
)

// =========================================================================
// TEST DOUBLES
// =========================================================================

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var errStoreDown = errors.New("store is down")

// failingStore is a memory store whose writes can be made to fail.
type failingStore struct {
	*memory.Store
	failWrites bool
	failReads  bool
}

func newFailingStore() *failingStore { return &failingStore{Store: memory.New()} }

func (f *failingStore) CreateEducation(ctx context.Context, e *model.Education) error {
	if f.failWrites {
		return errStoreDown
	}
	return f.Store.CreateEducation(ctx, e)
}

func (f *failingStore) DeleteProject(ctx context.Context, id string) error {
	if f.failWrites {
		return errStoreDown
	}
	return f.Store.DeleteProject(ctx, id)
}

func (f *failingStore) CreateContact(ctx context.Context, c *model.Contact) error {
	if f.failWrites {
		return errStoreDown
	}
	return f.Store.CreateContact(ctx, c)
}

func (f *failingStore) ReplaceResume(ctx context.Context, r *model.ResumeFile) error {
	if f.failWrites {
		return errStoreDown
	}
	return f.Store.ReplaceResume(ctx, r)
}

func (f *failingStore) GetResume(ctx context.Context) (*model.ResumeFile, error) {
	if f.failReads {
		return nil, errStoreDown
	}
	return f.Store.GetResume(ctx)
}

func (f *failingStore) GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	if f.failReads {
		return nil, errStoreDown
	}
	return f.Store.GetAdminByUsername(ctx, username)
}

func (f *failingStore) ListContacts(ctx context.Context) ([]model.Contact, error) {
	if f.failReads {
		return nil, errStoreDown
	}
	return f.Store.ListContacts(ctx)
}

// recordingNotifier remembers every contact it was told about.
type recordingNotifier struct {
	mu       sync.Mutex
	contacts []model.Contact
	err      error
}

func (n *recordingNotifier) NotifyContact(_ context.Context, c model.Contact) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.contacts = append(n.contacts, c)
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.contacts)
}
