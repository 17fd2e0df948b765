package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/user/films/internal/model"
	"github.com/user/films/internal/repository"
	"github.com/user/films/internal/testsupport"
)

func TestEntityCreateAndDuplicate(t *testing.T) {
	svc, _ := testsupport.NewServices(t)
	ctx := context.Background()
	actors := svc.Entities[model.KindActor]

	created, err := actors.Create(ctx, model.EntitySpec{Name: "Jessica Adams"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected id to be assigned")
	}

	_, err = actors.Create(ctx, model.EntitySpec{Name: "Jessica Adams"})
	if !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if got := repository.Detail(err); got != "Actor name must be unique" {
		t.Fatalf("unexpected detail %q", got)
	}
}

func TestStandaloneEntityIsReusedByFilm(t *testing.T) {
	svc, repos := testsupport.NewServices(t)
	ctx := context.Background()

	genre, err := svc.Entities[model.KindGenre].Create(ctx, model.EntitySpec{Name: "Drama"})
	if err != nil {
		t.Fatalf("create genre: %v", err)
	}
	film, err := svc.Films.Create(ctx, testsupport.FilmRequest("Infinite Journey", nil, nil, testsupport.Names("Drama")))
	if err != nil {
		t.Fatalf("create film: %v", err)
	}
	if film.Genres[0].ID != genre.ID {
		t.Fatalf("expected film to reuse genre %d, got %d", genre.ID, film.Genres[0].ID)
	}
	if n := testsupport.CountRows(t, repos.DB, "genres"); n != 1 {
		t.Fatalf("expected one genre row, got %d", n)
	}
}

func TestEntityListEmptyIsNotFound(t *testing.T) {
	svc, _ := testsupport.NewServices(t)

	_, err := svc.Entities[model.KindProducer].List(context.Background(), 0, 10)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if got := repository.Detail(err); got != "Producers not Found" {
		t.Fatalf("unexpected detail %q", got)
	}
}

func TestEntityRenameShowsInFilm(t *testing.T) {
	svc, _ := testsupport.NewServices(t)
	ctx := context.Background()

	film, err := svc.Films.Create(ctx, testsupport.FilmRequest("Infinite Journey", testsupport.Names("Emily Smith"), nil, nil))
	if err != nil {
		t.Fatalf("create film: %v", err)
	}
	// cache the film detail before renaming
	if _, err := svc.Films.Get(ctx, film.ID); err != nil {
		t.Fatalf("get film: %v", err)
	}

	name := "Emily Smith-Jones"
	updated, err := svc.Entities[model.KindProducer].Update(ctx, film.Producers[0].ID, &model.EntityUpdate{Name: &name})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != name || len(updated.Films) != 1 {
		t.Fatalf("unexpected producer: %#v", updated)
	}

	fetched, err := svc.Films.Get(ctx, film.ID)
	if err != nil {
		t.Fatalf("get film: %v", err)
	}
	if fetched.Producers[0].Name != name {
		t.Fatalf("film detail still shows %q", fetched.Producers[0].Name)
	}
}

func TestEntityEmptyUpdateChangesNothing(t *testing.T) {
	svc, _ := testsupport.NewServices(t)
	ctx := context.Background()
	genres := svc.Entities[model.KindGenre]

	created, err := genres.Create(ctx, model.EntitySpec{Name: "Drama"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := genres.Update(ctx, created.ID, &model.EntityUpdate{})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.EntityPublic != created {
		t.Fatalf("empty update changed entity: %#v -> %#v", created, updated.EntityPublic)
	}
}

func TestEntityDeleteRemovesAssociations(t *testing.T) {
	svc, repos := testsupport.NewServices(t)
	ctx := context.Background()

	first, err := svc.Films.Create(ctx, testsupport.FilmRequest("Infinite Journey", testsupport.Names("Emily Smith"), nil, nil))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Films.Create(ctx, testsupport.FilmRequest("Second Journey", testsupport.Names("Emily Smith"), nil, nil)); err != nil {
		t.Fatalf("create: %v", err)
	}

	producers := svc.Entities[model.KindProducer]
	if err := producers.Delete(ctx, first.Producers[0].ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n := testsupport.CountRows(t, repos.DB, "film_producers"); n != 0 {
		t.Fatalf("expected association rows removed, got %d", n)
	}
	if n := testsupport.CountRows(t, repos.DB, "films"); n != 2 {
		t.Fatalf("films must survive producer deletion, got %d", n)
	}

	film, err := svc.Films.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("get film: %v", err)
	}
	if len(film.Producers) != 0 {
		t.Fatalf("expected no producers left, got %d", len(film.Producers))
	}
	if err := producers.Delete(ctx, first.Producers[0].ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestEntityGetMissing(t *testing.T) {
	svc, _ := testsupport.NewServices(t)

	_, err := svc.Entities[model.KindGenre].Get(context.Background(), 123)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if got := repository.Detail(err); got != "Genre not Found" {
		t.Fatalf("unexpected detail %q", got)
	}
}
