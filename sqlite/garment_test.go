package sqlite_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fwojciec/wardrobe"
	"github.com/fwojciec/wardrobe/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string, v wardrobe.Variant) *wardrobe.Record {
	t.Helper()
	rec, err := wardrobe.DecodeRecordJSON([]byte(raw), v)
	require.NoError(t, err)
	return rec
}

func createGarment(t *testing.T, svc *sqlite.GarmentService, source string, rec *wardrobe.Record) *wardrobe.Garment {
	t.Helper()
	g := &wardrobe.Garment{Variant: rec.Variant, Source: source, Record: rec}
	require.NoError(t, svc.CreateGarment(context.Background(), g, []byte(source)))
	return g
}

func TestGarmentService_CreateGarment(t *testing.T) {
	t.Parallel()

	t.Run("sets ID, hash and timestamp", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewGarmentService(setupTestDB(t))
		g := &wardrobe.Garment{
			Variant: wardrobe.VariantImage,
			Source:  "tee.jpg",
			Record:  decode(t, `{"isClothing": true, "name": "Tee", "fit": "Slim Fit"}`, wardrobe.VariantImage),
		}

		err := svc.CreateGarment(context.Background(), g, []byte("image bytes"))

		require.NoError(t, err)
		assert.NotEmpty(t, g.ID)
		assert.Len(t, g.SourceHash, 16)
		assert.False(t, g.CreatedAt.IsZero())
	})

	t.Run("same payload gives the same hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewGarmentService(setupTestDB(t))
		rec := decode(t, `{"isClothing": false}`, wardrobe.VariantImage)
		a := &wardrobe.Garment{Variant: wardrobe.VariantImage, Source: "a.jpg", Record: rec}
		b := &wardrobe.Garment{Variant: wardrobe.VariantImage, Source: "b.jpg", Record: rec}

		require.NoError(t, svc.CreateGarment(context.Background(), a, []byte("same")))
		require.NoError(t, svc.CreateGarment(context.Background(), b, []byte("same")))

		assert.Equal(t, a.SourceHash, b.SourceHash)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("rejects invalid garments", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewGarmentService(setupTestDB(t))

		err := svc.CreateGarment(context.Background(), &wardrobe.Garment{Variant: wardrobe.VariantPage}, nil)

		require.Error(t, err)
		assert.Equal(t, wardrobe.EINVALID, wardrobe.ErrorCode(err))
	})
}

func TestGarmentService_FindGarmentByID(t *testing.T) {
	t.Parallel()

	t.Run("round trips the record", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewGarmentService(setupTestDB(t))
		raw := `{"isClothing":true,"name":"Cool Tee","brand":"Nike","type":"T-shirt","price":19.99,"occasion":"Casual","style":"Streetwear","fit":"regular","color":"Black","material":"cotton","season":"summer","sourceUrl":"https://shop.example.com/tee"}`
		created := createGarment(t, svc, "https://shop.example.com/tee", decode(t, raw, wardrobe.VariantPage))

		got, err := svc.FindGarmentByID(context.Background(), created.ID)

		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, wardrobe.VariantPage, got.Variant)
		assert.Equal(t, created.SourceHash, got.SourceHash)
		assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

		data, err := json.Marshal(got.Record)
		require.NoError(t, err)
		assert.JSONEq(t, raw, string(data))
	})

	t.Run("keeps the fallback record shape", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewGarmentService(setupTestDB(t))
		created := createGarment(t, svc, "https://shop.example.com/mug", wardrobe.NewFallbackRecord())

		got, err := svc.FindGarmentByID(context.Background(), created.ID)
		require.NoError(t, err)

		want, err := json.Marshal(wardrobe.NewFallbackRecord())
		require.NoError(t, err)
		data, err := json.Marshal(got.Record)
		require.NoError(t, err)
		assert.Equal(t, string(want), string(data))
	})

	t.Run("returns ENOTFOUND for missing garment", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewGarmentService(setupTestDB(t))

		_, err := svc.FindGarmentByID(context.Background(), "nonexistent")

		require.Error(t, err)
		assert.Equal(t, wardrobe.ENOTFOUND, wardrobe.ErrorCode(err))
	})
}

func TestGarmentService_FindGarments(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewGarmentService(db)
	tee := createGarment(t, svc, "https://shop.example.com/tee",
		decode(t, `{"isClothing": true, "name": "Tee"}`, wardrobe.VariantPage))
	mug := createGarment(t, svc, "https://shop.example.com/mug", wardrobe.NewFallbackRecord())
	photo := createGarment(t, svc, "hoodie.jpg",
		decode(t, `{"isClothing": true, "name": "Hoodie"}`, wardrobe.VariantImage))

	ids := func(gs []*wardrobe.Garment) []string {
		out := make([]string, len(gs))
		for i, g := range gs {
			out[i] = g.ID
		}
		return out
	}

	t.Run("newest first", func(t *testing.T) {
		t.Parallel()

		got, err := svc.FindGarments(context.Background(), wardrobe.GarmentFilter{})

		require.NoError(t, err)
		assert.Equal(t, []string{photo.ID, mug.ID, tee.ID}, ids(got))
	})

	t.Run("by variant", func(t *testing.T) {
		t.Parallel()

		v := wardrobe.VariantImage
		got, err := svc.FindGarments(context.Background(), wardrobe.GarmentFilter{Variant: &v})

		require.NoError(t, err)
		assert.Equal(t, []string{photo.ID}, ids(got))
	})

	t.Run("by source", func(t *testing.T) {
		t.Parallel()

		src := "https://shop.example.com/mug"
		got, err := svc.FindGarments(context.Background(), wardrobe.GarmentFilter{Source: &src})

		require.NoError(t, err)
		assert.Equal(t, []string{mug.ID}, ids(got))
	})

	t.Run("clothing only", func(t *testing.T) {
		t.Parallel()

		yes := true
		got, err := svc.FindGarments(context.Background(), wardrobe.GarmentFilter{IsClothing: &yes})

		require.NoError(t, err)
		assert.Equal(t, []string{photo.ID, tee.ID}, ids(got))
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		got, err := svc.FindGarments(context.Background(), wardrobe.GarmentFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{mug.ID}, ids(got))

		got, err = svc.FindGarments(context.Background(), wardrobe.GarmentFilter{Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{tee.ID}, ids(got))
	})
}

func TestGarmentService_DeleteGarment(t *testing.T) {
	t.Parallel()

	t.Run("removes the garment", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewGarmentService(setupTestDB(t))
		g := createGarment(t, svc, "tee.jpg", decode(t, `{"isClothing": false}`, wardrobe.VariantImage))

		require.NoError(t, svc.DeleteGarment(context.Background(), g.ID))

		_, err := svc.FindGarmentByID(context.Background(), g.ID)
		assert.Equal(t, wardrobe.ENOTFOUND, wardrobe.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for missing garment", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewGarmentService(setupTestDB(t))

		err := svc.DeleteGarment(context.Background(), "nonexistent")

		assert.Equal(t, wardrobe.ENOTFOUND, wardrobe.ErrorCode(err))
	})
}
