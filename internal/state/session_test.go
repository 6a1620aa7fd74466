package state

import (
	"sync"
	"testing"
	"time"

	"github.com/cookanything/pantry/internal/recipe"
)

func TestSession_SetRecipesAndSnapshotClone(t *testing.T) {
	s := NewSession(3)

	before := time.Now()
	s.SetRecipes([]recipe.Recipe{{Name: "a", Tags: []string{"x"}}, {Name: "b"}})

	snap := s.Snapshot()
	if !snap.Loaded || snap.LoadedAt.Before(before) {
		t.Fatalf("Loaded/LoadedAt = %v/%v", snap.Loaded, snap.LoadedAt)
	}
	if snap.Page != 3 {
		t.Fatalf("Page = %d, want 3", snap.Page)
	}
	if len(snap.Recipes) != 2 {
		t.Fatalf("Recipes = %#v, want 2", snap.Recipes)
	}

	snap.Recipes[0].Tags[0] = "changed"
	if s.Snapshot().Recipes[0].Tags[0] != "x" {
		t.Fatalf("Snapshot should deep-copy recipes")
	}
}

func TestSession_SetRecipesCopiesInput(t *testing.T) {
	s := NewSession(1)
	in := []recipe.Recipe{{Name: "a"}}
	s.SetRecipes(in)
	in[0].Name = "changed"
	if s.Recipes()[0].Name != "a" {
		t.Fatalf("SetRecipes kept a reference to the caller's slice")
	}
}

func TestSession_EmptyListIsLoaded(t *testing.T) {
	s := NewSession(1)
	if s.Snapshot().Loaded {
		t.Fatalf("new session reports Loaded")
	}
	s.SetRecipes(nil)
	snap := s.Snapshot()
	if !snap.Loaded || snap.Recipes == nil {
		t.Fatalf("SetRecipes(nil) = %#v, want loaded with empty list", snap)
	}
}

func TestSession_ConcurrentAccess(t *testing.T) {
	s := NewSession(1)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			s.SetPage(n)
			s.SetRecipes([]recipe.Recipe{{Name: "x"}})
		}(i)
		go func() {
			defer wg.Done()
			_ = s.Page()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()
}
