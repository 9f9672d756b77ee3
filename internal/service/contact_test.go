package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vs-portfolio/portfolio/internal/apperror"
	"github.com/vs-portfolio/portfolio/internal/model"
	"github.com/vs-portfolio/portfolio/internal/validate"
)

func newTestContactService(notifier ContactNotifier) (*ContactService, *failingStore) {
	store := newFailingStore()
	svc := NewContactService(store, notifier, validate.New(), discardLogger())
	return svc, store
}

func TestSubmit_Valid(t *testing.T) {
	svc, store := newTestContactService(nil)
	fixed := time.Date(2025, time.February, 3, 4, 5, 6, 0, time.FixedZone("X", 3600))
	svc.now = func() time.Time { return fixed }

	c, err := svc.Submit(context.Background(), model.ContactInput{
		Name: " Ann ", Email: "ann@example.com", Message: "Hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann", c.Name)
	assert.Equal(t, time.UTC, c.SubmittedAt.Location())
	assert.True(t, c.SubmittedAt.Equal(fixed))

	list, err := store.ListContacts(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Subject)
}

func TestSubmit_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   model.ContactInput
		want []string
	}{
		{"all missing", model.ContactInput{}, []string{"Name is required.", "Email is required.", "Message is required."}},
		{"bad email", model.ContactInput{Name: "A", Email: "not-an-email", Message: "m"}, []string{"Invalid Email Address."}},
		{"whitespace only", model.ContactInput{Name: "  ", Email: "a@example.com", Message: "\t"}, []string{"Name is required.", "Message is required."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &recordingNotifier{}
			svc, store := newTestContactService(notifier)

			_, err := svc.Submit(context.Background(), tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperror.ErrValidation))
			assert.Equal(t, tt.want, apperror.MessagesOf(err))

			list, _ := store.ListContacts(context.Background())
			assert.Empty(t, list)
			assert.Zero(t, notifier.count())
		})
	}
}

func TestSubmit_NotifiesOnce(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, _ := newTestContactService(notifier)

	c, err := svc.Submit(context.Background(), model.ContactInput{Name: "A", Email: "a@example.com", Message: "m"})
	require.NoError(t, err)
	require.Equal(t, 1, notifier.count())
	assert.Equal(t, c.ID, notifier.contacts[0].ID)
}

func TestSubmit_NotifierFailureStillSucceeds(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp refused")}
	svc, store := newTestContactService(notifier)

	_, err := svc.Submit(context.Background(), model.ContactInput{Name: "A", Email: "a@example.com", Message: "m"})
	require.NoError(t, err)
	assert.Equal(t, 1, notifier.count())

	list, _ := store.ListContacts(context.Background())
	assert.Len(t, list, 1)
}

func TestSubmit_StoreFailure(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, store := newTestContactService(notifier)
	store.failWrites = true

	_, err := svc.Submit(context.Background(), model.ContactInput{Name: "A", Email: "a@example.com", Message: "m"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errStoreDown))
	assert.Zero(t, notifier.count(), "no notification without a stored contact")
}
