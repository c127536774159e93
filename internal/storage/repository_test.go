package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"guild/pkg/action"
	"guild/pkg/requestcontext"
)

// note is a minimal soft-deletable entity for exercising the repository.
type note struct {
	Record
	Title string
	Slug  string
}

func (n *note) Clone() *note {
	clone := *n
	return &clone
}

func newNote(title, slug string) *note {
	return &note{Record: NewRecord(time.Now()), Title: title, Slug: slug}
}

type RepositorySuite struct {
	suite.Suite
	backend *Memory[*note]
	repo    *Repository[*note]
	ctx     context.Context
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	s.backend = NewMemory(WithUniqueKey("slug", func(n *note) string { return n.Slug }))
	s.repo = NewRepository[*note](s.backend)
	s.ctx = context.Background()
}

func (s *RepositorySuite) TestGetDefaults() {
	n := newNote("first", "first")
	s.Require().True(s.repo.Add(s.ctx, n).Successful)

	s.Run("by-id read includes inactive records by default", func() {
		s.Require().True(s.repo.Delete(s.ctx, n.ID).Successful)

		resp := s.repo.Get(s.ctx, n.ID)
		s.Require().True(resp.Successful)
		s.False(resp.Result.IsActive())
	})

	s.Run("active-only read excludes soft-deleted records", func() {
		resp := s.repo.GetActive(s.ctx, n.ID)
		s.Require().False(resp.Successful)
		s.Equal(action.CodeNotFound, resp.Code)
	})

	s.Run("restore makes both reads succeed", func() {
		s.Require().True(s.repo.Restore(s.ctx, n.ID).Successful)

		s.True(s.repo.Get(s.ctx, n.ID).Successful)
		active := s.repo.GetActive(s.ctx, n.ID)
		s.Require().True(active.Successful)
		s.True(active.Result.IsActive())
	})

	s.Run("unknown id is not found", func() {
		resp := s.repo.Get(s.ctx, uuid.New())
		s.Equal(action.CodeNotFound, resp.Code)
	})
}

func (s *RepositorySuite) TestListDefaults() {
	kept := newNote("kept", "kept")
	dropped := newNote("dropped", "dropped")
	s.Require().True(s.repo.Add(s.ctx, kept).Successful)
	s.Require().True(s.repo.Add(s.ctx, dropped).Successful)
	s.Require().True(s.repo.Delete(s.ctx, dropped.ID).Successful)

	s.Run("collection read excludes inactive by default", func() {
		resp := s.repo.List(s.ctx)
		s.Require().True(resp.Successful)
		s.Require().Len(resp.Result, 1)
		s.Equal(kept.ID, resp.Result[0].ID)
	})

	s.Run("list-all includes inactive", func() {
		resp := s.repo.ListAll(s.ctx)
		s.Require().True(resp.Successful)
		s.Len(resp.Result, 2)
	})

	s.Run("empty result is success, not failure", func() {
		s.Require().True(s.repo.Delete(s.ctx, kept.ID).Successful)
		resp := s.repo.List(s.ctx)
		s.Require().True(resp.Successful)
		s.Empty(resp.Result)
	})
}

func (s *RepositorySuite) TestPredicate() {
	target := newNote("needle", "needle")
	s.Require().True(s.repo.Add(s.ctx, newNote("hay", "hay")).Successful)
	s.Require().True(s.repo.Add(s.ctx, target).Successful)

	s.Run("first match", func() {
		resp := s.repo.First(s.ctx, func(n *note) bool { return n.Title == "needle" })
		s.Require().True(resp.Successful)
		s.Equal(target.ID, resp.Result.ID)
	})

	s.Run("no match is not found", func() {
		resp := s.repo.First(s.ctx, func(n *note) bool { return n.Title == "absent" })
		s.Equal(action.CodeNotFound, resp.Code)
	})

	s.Run("predicate sees inactive records", func() {
		s.Require().True(s.repo.Delete(s.ctx, target.ID).Successful)
		resp := s.repo.First(s.ctx, func(n *note) bool { return n.Title == "needle" })
		s.Require().True(resp.Successful)
		s.False(resp.Result.IsActive())
	})
}

func (s *RepositorySuite) TestMutationFailures() {
	s.Run("constraint violation yields a generic database error", func() {
		s.Require().True(s.repo.Add(s.ctx, newNote("a", "same")).Successful)

		resp := s.repo.Add(s.ctx, newNote("b", "same"))
		s.Require().False(resp.Successful)
		s.Equal(action.CodeDatabaseError, resp.Code)
		s.Equal("could not save record", resp.Message)
	})

	s.Run("updating a missing record is not found", func() {
		resp := s.repo.Update(s.ctx, newNote("ghost", "ghost"))
		s.Equal(action.CodeNotFound, resp.Code)
	})

	s.Run("failed update leaves the caller's entity untouched", func() {
		ghost := newNote("ghost", "ghost-2")
		stamp := ghost.UpdatedAt
		resp := s.repo.Update(s.ctx, ghost)
		s.Require().False(resp.Successful)
		s.True(ghost.UpdatedAt.Equal(stamp))
	})

	s.Run("deleting a missing record is not found", func() {
		resp := s.repo.Delete(s.ctx, uuid.New())
		s.Equal(action.CodeNotFound, resp.Code)
	})

	s.Run("delete is repeatable", func() {
		n := newNote("twice", "twice")
		s.Require().True(s.repo.Add(s.ctx, n).Successful)
		s.Require().True(s.repo.Delete(s.ctx, n.ID).Successful)

		again := s.repo.Delete(s.ctx, n.ID)
		s.Require().True(again.Successful)
		s.False(again.Result.IsActive())
	})
}

func (s *RepositorySuite) TestUpdateTouchesCopy() {
	n := newNote("draft", "draft")
	s.Require().True(s.repo.Add(s.ctx, n).Successful)
	stamp := n.UpdatedAt

	later := time.Now().Add(time.Minute)
	resp := s.repo.Update(requestcontext.WithTime(s.ctx, later), n)
	s.Require().True(resp.Successful)
	s.True(resp.Result.UpdatedAt.Equal(later))
	s.True(n.UpdatedAt.Equal(stamp))
}

func (s *RepositorySuite) TestCopySemantics() {
	n := newNote("original", "original")
	s.Require().True(s.repo.Add(s.ctx, n).Successful)

	// Mutating the returned value must not mutate stored state.
	got := s.repo.Get(s.ctx, n.ID)
	got.Result.Title = "mutated"

	fresh := s.repo.Get(s.ctx, n.ID)
	s.Equal("original", fresh.Result.Title)
}

func TestMemoryTxRollback(t *testing.T) {
	backend := NewMemory[*note]()
	repo := NewRepository[*note](backend)
	runner := NewMemoryTx(backend)
	ctx := context.Background()

	err := runner.RunInTx(ctx, func(txCtx context.Context) error {
		if resp := repo.Add(txCtx, newNote("doomed", "doomed")); !resp.Successful {
			t.Fatalf("add failed: %s", resp.Message)
		}
		return context.Canceled
	})
	if err == nil {
		t.Fatal("expected error from RunInTx")
	}

	if resp := repo.List(ctx); len(resp.Result) != 0 {
		t.Fatalf("rollback left %d records behind", len(resp.Result))
	}
}
