package assembler

import (
	"context"
	"errors"
	"testing"

	"moodlist/models"
)

type fakePlaylister struct {
	userErr   error
	createErr error
	addErr    error

	created     bool
	createdName string
	addedTracks []string
}

func (f *fakePlaylister) CurrentUserID(_ context.Context) (string, error) {
	if f.userErr != nil {
		return "", f.userErr
	}
	return "user-1", nil
}

func (f *fakePlaylister) CreatePlaylist(_ context.Context, userID, name string) (string, string, error) {
	if f.createErr != nil {
		return "", "", f.createErr
	}
	f.created = true
	f.createdName = name
	return "pl-1", "https://open.spotify.com/playlist/pl-1", nil
}

func (f *fakePlaylister) AddTracks(_ context.Context, playlistID string, trackIDs []string) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.addedTracks = trackIDs
	return nil
}

func someResolved() []models.ResolvedTrack {
	return []models.ResolvedTrack{
		{Candidate: models.SongCandidate{Track: "Song A", Artist: "Artist X"}, Track: models.Track{ID: "t1"}, Tier: models.TierExact},
		{Candidate: models.SongCandidate{Track: "Song B", Artist: "Artist Y"}, Track: models.Track{ID: "t2"}, Tier: models.TierFallback},
	}
}

func TestAssembleSuccess(t *testing.T) {
	fake := &fakePlaylister{}
	a := New(fake)

	unresolved := []models.UnresolvedCandidate{
		{Candidate: models.SongCandidate{Track: "Ghost", Artist: "Nobody"}, Reason: models.ReasonNoMatch},
	}
	result, err := a.Assemble(context.Background(), someResolved(), unresolved, "Happy vibes")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if result == nil {
		t.Fatal("Assemble() = nil result; want PlaylistResult")
	}
	if result.PlaylistID != "pl-1" || result.TracksAdded != 2 {
		t.Errorf("result = %+v; want pl-1 with 2 tracks", result)
	}
	if len(result.Unresolved) != 1 {
		t.Errorf("unresolved = %v; want carried through", result.Unresolved)
	}
	if fake.createdName != "Happy vibes" {
		t.Errorf("created name = %q; want %q", fake.createdName, "Happy vibes")
	}
	if len(fake.addedTracks) != 2 || fake.addedTracks[0] != "t1" || fake.addedTracks[1] != "t2" {
		t.Errorf("added tracks = %v; want [t1 t2] in order", fake.addedTracks)
	}
}

func TestAssembleEmptyName(t *testing.T) {
	fake := &fakePlaylister{}
	a := New(fake)

	_, err := a.Assemble(context.Background(), someResolved(), nil, "")
	if err == nil {
		t.Fatal("Assemble() error = nil; want empty-name rejection")
	}
	if fake.created {
		t.Error("playlist was created despite empty name")
	}
}

func TestAssembleNoResolvedTracks(t *testing.T) {
	fake := &fakePlaylister{}
	a := New(fake)

	result, err := a.Assemble(context.Background(), nil, nil, "Empty vibes")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if result != nil {
		t.Errorf("Assemble() = %+v; want no result when zero tracks resolved", result)
	}
	// Creation still happened; the empty playlist persists remotely.
	if !fake.created {
		t.Error("playlist was not created")
	}
	if fake.addedTracks != nil {
		t.Errorf("AddTracks called with %v; want no call", fake.addedTracks)
	}
}

func TestAssembleCreationFailure(t *testing.T) {
	fake := &fakePlaylister{createErr: errors.New("forbidden")}
	a := New(fake)

	_, err := a.Assemble(context.Background(), someResolved(), nil, "Happy vibes")
	var createErr *models.PlaylistCreationError
	if !errors.As(err, &createErr) {
		t.Fatalf("Assemble() error = %v; want PlaylistCreationError", err)
	}
}

func TestAssembleUserLookupFailure(t *testing.T) {
	fake := &fakePlaylister{userErr: errors.New("unauthorized")}
	a := New(fake)

	_, err := a.Assemble(context.Background(), someResolved(), nil, "Happy vibes")
	var createErr *models.PlaylistCreationError
	if !errors.As(err, &createErr) {
		t.Fatalf("Assemble() error = %v; want PlaylistCreationError", err)
	}
	if fake.created {
		t.Error("playlist was created despite user lookup failure")
	}
}

func TestAssembleAdditionFailure(t *testing.T) {
	fake := &fakePlaylister{addErr: errors.New("rate limited")}
	a := New(fake)

	result, err := a.Assemble(context.Background(), someResolved(), nil, "Happy vibes")
	var addErr *models.TrackAdditionError
	if !errors.As(err, &addErr) {
		t.Fatalf("Assemble() error = %v; want TrackAdditionError", err)
	}
	if addErr.PlaylistID != "pl-1" {
		t.Errorf("PlaylistID = %q; want pl-1 (playlist persists without tracks)", addErr.PlaylistID)
	}
	if result != nil {
		t.Errorf("result = %+v; want nil on addition failure", result)
	}
}
