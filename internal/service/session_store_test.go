package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reachsuite/emailbuilder/internal/domain"
	"github.com/reachsuite/emailbuilder/pkg/emailblocks"
	"github.com/reachsuite/emailbuilder/pkg/logger"
)

func TestSessionStore(t *testing.T) {
	store := NewSessionStore(time.Hour, logger.NewTestLogger(t))
	t.Cleanup(store.Stop)

	first := store.Create("tmpl-1", emailblocks.NewSession(emailblocks.Document{}))
	second := store.Create("", emailblocks.NewSession(emailblocks.Document{}))
	assert.NotEqual(t, first.id, second.id)
	assert.Equal(t, 2, store.Len())

	got, err := store.Get(first.id)
	require.NoError(t, err)
	assert.Same(t, first, got)
	assert.Equal(t, "tmpl-1", got.templateID)

	require.NoError(t, store.Delete(first.id))
	_, err = store.Get(first.id)
	var notFound *domain.ErrSessionNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, first.id, notFound.SessionID)

	assert.ErrorAs(t, store.Delete(first.id), &notFound)
}

func TestSessionStoreExpiry(t *testing.T) {
	store := NewSessionStore(10*time.Millisecond, logger.NewTestLogger(t))
	t.Cleanup(store.Stop)

	bs := store.Create("", emailblocks.NewSession(emailblocks.Document{}))
	time.Sleep(30 * time.Millisecond)

	_, err := store.Get(bs.id)
	var notFound *domain.ErrSessionNotFound
	assert.ErrorAs(t, err, &notFound)
}
