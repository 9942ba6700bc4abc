package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
)

// =========================================================================
// FAKES
// =========================================================================
//
// Hand-written in-memory repositories. Each one copies on the way in and on
// the way out, like a real store would, and can be told to fail.

var (
	_ repository.UserRepository      = (*fakeUserRepo)(nil)
	_ repository.FavoriteRepository  = (*fakeFavoriteRepo)(nil)
	_ repository.CharacterRepository = (*fakeCatalogRepo)(nil)
	_ repository.PlanetRepository    = (*fakeCatalogRepo)(nil)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUserRepo struct {
	mu     sync.Mutex
	users  []model.User
	nextID int

	createErr error // returned by Create when set
	getErr    error // returned by GetByEmail when set
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperror.Conflict("user", user.Email)
		}
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	user.CreatedAt = time.Now()
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.User{}, f.users...), nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, apperror.NotFound("user", id)
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

type fakeFavoriteRepo struct {
	mu     sync.Mutex
	favs   []model.Favorite
	nextID int
	calls  int // every method call, to assert the store was not touched
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{}
}

func (f *fakeFavoriteRepo) CreateFavorite(_ context.Context, fav *model.Favorite) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.nextID++
	fav.ID = fmt.Sprintf("fav-%d", f.nextID)
	fav.CreatedAt = time.Now()
	f.favs = append(f.favs, *fav)
	return nil
}

func (f *fakeFavoriteRepo) ListFavorites(_ context.Context) ([]model.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return append([]model.Favorite{}, f.favs...), nil
}

func (f *fakeFavoriteRepo) ListFavoritesByUser(_ context.Context, userID string) ([]model.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	out := []model.Favorite{}
	for _, fav := range f.favs {
		if fav.UserID == userID {
			out = append(out, fav)
		}
	}
	return out, nil
}

func (f *fakeFavoriteRepo) DeleteFavoritesByName(_ context.Context, userID, name string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	kept := f.favs[:0]
	var n int64
	for _, fav := range f.favs {
		if fav.UserID == userID && fav.Name == name {
			n++
			continue
		}
		kept = append(kept, fav)
	}
	f.favs = kept
	return n, nil
}

type fakeCatalogRepo struct {
	characters []model.Character
	planets    []model.Planet
	err        error
}

func (f *fakeCatalogRepo) CreateCharacter(_ context.Context, c *model.Character) error {
	if f.err != nil {
		return f.err
	}
	c.ID = fmt.Sprintf("char-%d", len(f.characters)+1)
	f.characters = append(f.characters, *c)
	return nil
}

func (f *fakeCatalogRepo) ListCharacters(_ context.Context) ([]model.Character, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Character{}, f.characters...), nil
}

func (f *fakeCatalogRepo) GetCharacter(_ context.Context, id string) (*model.Character, error) {
	for _, c := range f.characters {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, apperror.NotFound("character", id)
}

func (f *fakeCatalogRepo) CreatePlanet(_ context.Context, p *model.Planet) error {
	if f.err != nil {
		return f.err
	}
	p.ID = fmt.Sprintf("planet-%d", len(f.planets)+1)
	f.planets = append(f.planets, *p)
	return nil
}

func (f *fakeCatalogRepo) ListPlanets(_ context.Context) ([]model.Planet, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Planet{}, f.planets...), nil
}

func (f *fakeCatalogRepo) GetPlanet(_ context.Context, id string) (*model.Planet, error) {
	for _, p := range f.planets {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, apperror.NotFound("planet", id)
}
