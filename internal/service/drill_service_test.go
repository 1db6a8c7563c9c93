package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"drillhub/workout-app/internal/domain"
	"drillhub/workout-app/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newDrillService(t *testing.T) (DrillService, *memory.DrillRepository) {
	t.Helper()
	repo := memory.NewDrillRepository()
	return NewDrillService(repo, nil), repo
}

func validDrillInput() CreateDrillInput {
	return CreateDrillInput{
		Name:        "Burpee ladder",
		Description: "Full body conditioning drill",
		Category:    domain.CategoryUpperBody,
		Difficulty:  domain.DifficultyIntermediate,
	}
}

func TestCreateDrillRoundTrip(t *testing.T) {
	svc, _ := newDrillService(t)

	created, err := svc.CreateDrill(context.Background(), validDrillInput())
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := svc.GetDrill(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, fetched.Name)
	assert.Equal(t, created.Category, fetched.Category)
}

func TestCreateDrillTrimsWhitespace(t *testing.T) {
	svc, _ := newDrillService(t)

	input := validDrillInput()
	input.Name = "  Burpee ladder  "
	input.Description = " Full body conditioning drill "

	created, err := svc.CreateDrill(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "Burpee ladder", created.Name)
	assert.Equal(t, "Full body conditioning drill", created.Description)
}

func TestCreateDrillValidation(t *testing.T) {
	svc, repo := newDrillService(t)

	tests := []struct {
		name    string
		mutate  func(in *CreateDrillInput)
		field   string
		message string
	}{
		{"missing name", func(in *CreateDrillInput) { in.Name = "" }, "name", "name is required"},
		{"name too long", func(in *CreateDrillInput) { in.Name = strings.Repeat("x", 101) }, "name", "name cannot be more than 100 characters"},
		{"missing description", func(in *CreateDrillInput) { in.Description = "" }, "description", "description is required"},
		{"description too long", func(in *CreateDrillInput) { in.Description = strings.Repeat("x", 1001) }, "description", "description cannot be more than 1000 characters"},
		{"missing category", func(in *CreateDrillInput) { in.Category = "" }, "category", "category is required"},
		{"unknown category", func(in *CreateDrillInput) { in.Category = "Yoga" }, "category", ""},
		{"missing difficulty", func(in *CreateDrillInput) { in.Difficulty = "" }, "difficulty", "difficulty is required"},
		{"unknown difficulty", func(in *CreateDrillInput) { in.Difficulty = "Impossible" }, "difficulty", ""},
		{"unknown intensity", func(in *CreateDrillInput) { in.Intensity = "Extreme" }, "intensity", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validDrillInput()
			tc.mutate(&input)

			_, err := svc.CreateDrill(context.Background(), input)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Contains(t, verr.Fields, tc.field)
			if tc.message != "" {
				assert.Contains(t, verr.Fields[tc.field], tc.message)
			}
		})
	}

	assert.Zero(t, repo.Len(), "invalid drills must not be stored")
}

func TestCreateDrillCollectsAllFieldErrors(t *testing.T) {
	svc, _ := newDrillService(t)

	_, err := svc.CreateDrill(context.Background(), CreateDrillInput{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 4)
	assert.Equal(t, "validation failed", verr.Error())
}

func TestCreateDrillMapsLegacyDifficulties(t *testing.T) {
	svc, _ := newDrillService(t)

	legacy := map[string]string{
		"Easy":   domain.DifficultyBeginner,
		"Medium": domain.DifficultyIntermediate,
		"Hard":   domain.DifficultyAdvanced,
	}
	for input, want := range legacy {
		in := validDrillInput()
		in.Name = "drill " + input
		in.Difficulty = input

		created, err := svc.CreateDrill(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, want, created.Difficulty)
	}
}

func TestUpdateDrillPartialPatch(t *testing.T) {
	svc, _ := newDrillService(t)

	created, err := svc.CreateDrill(context.Background(), validDrillInput())
	require.NoError(t, err)

	newName := "Pike push-up"
	updated, err := svc.UpdateDrill(context.Background(), created.ID, UpdateDrillInput{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Pike push-up", updated.Name)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.Category, updated.Category)
}

func TestUpdateDrillRejectsInvalidPatch(t *testing.T) {
	svc, _ := newDrillService(t)

	created, err := svc.CreateDrill(context.Background(), validDrillInput())
	require.NoError(t, err)

	bad := "Yoga"
	_, err = svc.UpdateDrill(context.Background(), created.ID, UpdateDrillInput{Category: &bad})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "category")

	// Stored record is untouched.
	fetched, err := svc.GetDrill(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryUpperBody, fetched.Category)
}

func TestUpdateDrillNotFound(t *testing.T) {
	svc, _ := newDrillService(t)

	name := "anything"
	_, err := svc.UpdateDrill(context.Background(), primitive.NewObjectID(), UpdateDrillInput{Name: &name})
	assert.ErrorIs(t, err, ErrDrillNotFound)
}

func TestDeleteDrillReturnsDeletedRecord(t *testing.T) {
	svc, repo := newDrillService(t)

	created, err := svc.CreateDrill(context.Background(), validDrillInput())
	require.NoError(t, err)

	deleted, err := svc.DeleteDrill(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, deleted.Name)
	assert.Zero(t, repo.Len())

	_, err = svc.DeleteDrill(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrDrillNotFound)
}

func TestGetDrillNotFound(t *testing.T) {
	svc, _ := newDrillService(t)

	_, err := svc.GetDrill(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrDrillNotFound)
}

func TestVideoOperationsWithoutStorage(t *testing.T) {
	svc, _ := newDrillService(t)

	created, err := svc.CreateDrill(context.Background(), validDrillInput())
	require.NoError(t, err)

	_, err = svc.RequestVideoUpload(context.Background(), created.ID, "video/mp4")
	assert.ErrorIs(t, err, ErrNoDrillVideo)

	_, err = svc.GetVideoDownloadURL(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrNoDrillVideo)
}

type fakeFileStorage struct {
	uploads   []string
	downloads []string
}

func (f *fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	f.uploads = append(f.uploads, objectKey)
	return "https://storage.local/upload/" + objectKey, nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	f.downloads = append(f.downloads, objectKey)
	return "https://storage.local/download/" + objectKey, nil
}

func (f *fakeFileStorage) DeleteObject(_ context.Context, _ string) error { return nil }

func TestVideoUploadAssignsObjectKey(t *testing.T) {
	repo := memory.NewDrillRepository()
	store := &fakeFileStorage{}
	svc := NewDrillService(repo, store)

	created, err := svc.CreateDrill(context.Background(), validDrillInput())
	require.NoError(t, err)

	// No video attached yet.
	_, err = svc.GetVideoDownloadURL(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrNoDrillVideo)

	uploadURL, err := svc.RequestVideoUpload(context.Background(), created.ID, "video/mp4")
	require.NoError(t, err)
	require.Len(t, store.uploads, 1)
	assert.Contains(t, uploadURL, store.uploads[0])
	assert.True(t, strings.HasPrefix(store.uploads[0], "drills/"+created.ID.Hex()+"/video/"))

	downloadURL, err := svc.GetVideoDownloadURL(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Contains(t, downloadURL, store.uploads[0])
}
