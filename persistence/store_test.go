package persistence

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowboatlabs/workflowkit/types"
)

func sampleWorkflow(name string) types.Workflow {
	return types.Workflow{
		ID:         "wf-" + name,
		Name:       name,
		StartAgent: "Front",
		Agents: []types.Agent{
			types.NewAgent(types.AgentPatch{Name: types.Ptr("Front")}),
		},
	}
}

// runStoreSuite exercises the WorkflowStore contract against any backend.
func runStoreSuite(t *testing.T, store WorkflowStore) {
	ctx := context.Background()

	t.Run("DraftRoundTrip", func(t *testing.T) {
		w := sampleWorkflow("draft-rt")
		require.NoError(t, store.SaveDraft(ctx, "p1", w))

		got, err := store.LoadDraft(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, w, got)
	})

	t.Run("LoadMissingReturnsNotFound", func(t *testing.T) {
		_, err := store.LoadDraft(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = store.LoadLive(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("PublishPromotesDraft", func(t *testing.T) {
		w := sampleWorkflow("pub")
		require.NoError(t, store.SaveDraft(ctx, "p2", w))
		require.NoError(t, store.Publish(ctx, "p2"))

		live, err := store.LoadLive(ctx, "p2")
		require.NoError(t, err)
		assert.Equal(t, w, live)

		// Later draft edits do not leak into the published copy.
		w2 := w.Clone()
		w2.Name = "edited"
		require.NoError(t, store.SaveDraft(ctx, "p2", w2))
		live, err = store.LoadLive(ctx, "p2")
		require.NoError(t, err)
		assert.Equal(t, w.Name, live.Name)
	})

	t.Run("PublishWithoutDraftFails", func(t *testing.T) {
		err := store.Publish(ctx, "never-saved")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("SaveOverwrites", func(t *testing.T) {
		require.NoError(t, store.SaveDraft(ctx, "p3", sampleWorkflow("v1")))
		require.NoError(t, store.SaveDraft(ctx, "p3", sampleWorkflow("v2")))
		got, err := store.LoadDraft(ctx, "p3")
		require.NoError(t, err)
		assert.Equal(t, "v2", got.Name)
	})

	t.Run("DeleteRemovesBothVariants", func(t *testing.T) {
		require.NoError(t, store.SaveDraft(ctx, "p4", sampleWorkflow("del")))
		require.NoError(t, store.Publish(ctx, "p4"))
		require.NoError(t, store.Delete(ctx, "p4"))

		_, err := store.LoadDraft(ctx, "p4")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = store.LoadLive(ctx, "p4")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("EmptyProjectIDRejected", func(t *testing.T) {
		err := store.SaveDraft(ctx, "", sampleWorkflow("x"))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, store.Ping(ctx))
	})
}

func TestMemoryWorkflowStore(t *testing.T) {
	store := NewMemoryWorkflowStore()
	defer store.Close()
	runStoreSuite(t, store)

	t.Run("ClosedStoreRejectsOperations", func(t *testing.T) {
		s := NewMemoryWorkflowStore()
		require.NoError(t, s.Close())
		err := s.SaveDraft(context.Background(), "p", sampleWorkflow("x"))
		assert.ErrorIs(t, err, ErrStoreClosed)
		assert.ErrorIs(t, s.Ping(context.Background()), ErrStoreClosed)
	})

	t.Run("StoredCopyIsIsolated", func(t *testing.T) {
		s := NewMemoryWorkflowStore()
		defer s.Close()
		w := sampleWorkflow("iso")
		require.NoError(t, s.SaveDraft(context.Background(), "p", w))

		w.Agents[0].Name = "Mutated"
		got, err := s.LoadDraft(context.Background(), "p")
		require.NoError(t, err)
		assert.Equal(t, "Front", got.Agents[0].Name)
	})
}

func TestFileWorkflowStore(t *testing.T) {
	store, err := NewFileWorkflowStore(StoreConfig{BaseDir: t.TempDir()})
	require.NoError(t, err)
	defer store.Close()
	runStoreSuite(t, store)
}

func TestFileWorkflowStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewFileWorkflowStore(StoreConfig{BaseDir: dir})
	require.NoError(t, err)
	w := sampleWorkflow("persist")
	require.NoError(t, store.SaveDraft(ctx, "p1", w))
	require.NoError(t, store.Close())

	reopened, err := NewFileWorkflowStore(StoreConfig{BaseDir: dir})
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.LoadDraft(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, w, got)
}

func TestRedisWorkflowStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisWorkflowStoreWithClient(client, "test:")
	defer store.Close()

	runStoreSuite(t, store)
}

func TestFactory(t *testing.T) {
	t.Run("Memory", func(t *testing.T) {
		store, err := NewWorkflowStore(StoreConfig{Type: StoreTypeMemory})
		require.NoError(t, err)
		assert.IsType(t, &MemoryWorkflowStore{}, store)
		store.Close()
	})

	t.Run("File", func(t *testing.T) {
		store, err := NewWorkflowStore(StoreConfig{Type: StoreTypeFile, BaseDir: t.TempDir()})
		require.NoError(t, err)
		assert.IsType(t, &FileWorkflowStore{}, store)
		store.Close()
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := NewWorkflowStore(StoreConfig{Type: "carrier-pigeon"})
		assert.Error(t, err)
	})
}
