// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesuc_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/momeni/dealer-web/internal/test/memrepo"
	"github.com/momeni/dealer-web/pkg/core/cerr"
	"github.com/momeni/dealer-web/pkg/core/imgstore"
	"github.com/momeni/dealer-web/pkg/core/model"
	"github.com/momeni/dealer-web/pkg/core/usecase/vehiclesuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore records saved uploads without touching the filesystem.
type memStore struct {
	saved []string
}

func (s *memStore) Save(
	ctx context.Context, up imgstore.Upload,
) (string, error) {
	p := fmt.Sprintf("stored-%d-%s", len(s.saved), up.Name)
	s.saved = append(s.saved, p)
	return p, nil
}

func newUseCase(t *testing.T) (*vehiclesuc.UseCase, *memStore) {
	_, pool, _, vrp, _ := memrepo.New()
	store := &memStore{}
	uc, err := vehiclesuc.New(pool, vrp, store)
	require.NoError(t, err, "failed to create vehicles use case")
	return uc, store
}

func upload(name, contentType string, size int64) imgstore.Upload {
	return imgstore.Upload{
		Name:        name,
		ContentType: contentType,
		Size:        size,
	}
}

func assertStatusCode(t *testing.T, err error, code int) {
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce, "expected a status coded error")
	assert.Equal(t, code, ce.HTTPStatusCode, "wrong status code")
}

func create(
	t *testing.T, uc *vehiclesuc.UseCase, make_, model_, class string,
) *model.Vehicle {
	v, err := uc.Create(context.Background(), vehiclesuc.NewVehicle{
		Make:   make_,
		Model:  model_,
		Class:  class,
		Year:   2020,
		Price:  20000,
		Status: model.VehicleStatusForSale,
	}, nil)
	require.NoError(t, err, "failed to create test vehicle")
	return v
}

func TestListPagination(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	for i := 0; i < 15; i++ {
		create(t, uc, "Make", fmt.Sprintf("Model-%02d", i), "sedan")
	}

	// absent page/pageSize values fall back to 1/10
	vp, err := uc.List(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, vp.Vehicles, 10)
	assert.Equal(t, 1, vp.Page)
	assert.Equal(t, 2, vp.Pages)
	assert.Equal(t, int64(15), vp.Count)
	assert.Equal(
		t, "Model-14", vp.Vehicles[0].Model,
		"newest vehicles are listed first",
	)

	vp, err = uc.List(ctx, "", 2, 10)
	require.NoError(t, err)
	assert.Len(t, vp.Vehicles, 5)
	assert.Equal(t, 2, vp.Page)
	assert.Equal(t, 2, vp.Pages)
	assert.Equal(t, int64(15), vp.Count)
}

func TestListKeyword(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	create(t, uc, "Toyota", "Corolla", "sedan")
	create(t, uc, "Honda", "Civic", "compact car")
	create(t, uc, "Ford", "Fiesta", "toyotaish") // class matches too

	vp, err := uc.List(ctx, "toyota", 1, 10)
	require.NoError(t, err)
	assert.Len(t, vp.Vehicles, 2)
	assert.Equal(t, int64(2), vp.Count)

	vp, err = uc.List(ctx, "civic", 1, 10)
	require.NoError(t, err)
	require.Len(t, vp.Vehicles, 1)
	assert.Equal(t, "Honda", vp.Vehicles[0].Make)
}

func TestCreateAvailabilityDefault(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	v, err := uc.Create(ctx, vehiclesuc.NewVehicle{
		Make:   "Honda",
		Model:  "Civic",
		Year:   2021,
		Status: model.VehicleStatusForSale,
	}, nil)
	require.NoError(t, err)
	assert.True(t, v.Available, "availability defaults to true")

	f := false
	v, err = uc.Create(ctx, vehiclesuc.NewVehicle{
		Make:      "Honda",
		Model:     "Civic",
		Year:      2021,
		Status:    model.VehicleStatusForSale,
		Available: &f,
	}, nil)
	require.NoError(t, err)
	assert.False(t, v.Available, "an explicit false is honored")
}

func TestCreateWithInvalidStatus(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.Create(
		context.Background(),
		vehiclesuc.NewVehicle{Make: "Honda", Model: "Civic"},
		nil,
	)
	assertStatusCode(t, err, http.StatusBadRequest)
}

func TestUploadValidation(t *testing.T) {
	for _, tc := range []struct {
		name    string
		uploads []imgstore.Upload
	}{
		{
			name: "too many images",
			uploads: func() []imgstore.Upload {
				ups := make([]imgstore.Upload, 11)
				for i := range ups {
					ups[i] = upload("a.png", "image/png", 10)
				}
				return ups
			}(),
		},
		{
			name: "oversized image",
			uploads: []imgstore.Upload{
				upload("a.png", "image/png", 5<<20+1),
			},
		},
		{
			name: "bad extension",
			uploads: []imgstore.Upload{
				upload("a.bmp", "image/png", 10),
			},
		},
		{
			name: "bad content type",
			uploads: []imgstore.Upload{
				upload("a.png", "application/octet-stream", 10),
			},
		},
		{
			name: "extension spoofing",
			uploads: []imgstore.Upload{
				upload("a.png.exe", "image/png", 10),
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			uc, store := newUseCase(t)
			_, err := uc.Create(
				context.Background(), vehiclesuc.NewVehicle{
					Make:   "Honda",
					Model:  "Civic",
					Status: model.VehicleStatusForSale,
				}, tc.uploads,
			)
			assertStatusCode(t, err, http.StatusBadRequest)
			assert.Empty(
				t, store.saved,
				"no file is stored when validation fails",
			)
		})
	}
}

func TestCreateStoresAcceptedUploads(t *testing.T) {
	uc, store := newUseCase(t)
	v, err := uc.Create(
		context.Background(), vehiclesuc.NewVehicle{
			Make:   "Honda",
			Model:  "Civic",
			Status: model.VehicleStatusForSale,
		}, []imgstore.Upload{
			upload("front.JPG", "image/jpeg", 100),
			upload("rear.png", "image/png", 100),
			upload("side.gif", "image/gif", 100),
			upload("dash.jpeg", "image/jpg", 100),
		},
	)
	require.NoError(t, err)
	assert.Equal(t, store.saved, v.Images)
	assert.Len(t, v.Images, 4)
}

func TestUpdateImagesUnion(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	v, err := uc.Create(ctx, vehiclesuc.NewVehicle{
		Make:   "Honda",
		Model:  "Civic",
		Status: model.VehicleStatusForSale,
	}, []imgstore.Upload{
		upload("a.png", "image/png", 10),
		upload("b.png", "image/png", 10),
	})
	require.NoError(t, err)
	require.Len(t, v.Images, 2)

	price := 19000.0
	v2, err := uc.Update(
		ctx, v.ID,
		model.VehiclePatch{Price: &price},
		[]string{v.Images[1]},
		[]imgstore.Upload{upload("c.png", "image/png", 10)},
	)
	require.NoError(t, err)
	assert.Equal(t, 19000.0, v2.Price)
	require.Len(t, v2.Images, 2)
	assert.Equal(
		t, v.Images[1], v2.Images[0],
		"kept images precede fresh uploads",
	)
	assert.NotContains(t, v2.Images, v.Images[0])
	assert.Equal(
		t, "Civic", v2.Model, "absent fields are unchanged",
	)
}

func TestUpdateMissingVehicle(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.Update(
		context.Background(), uuid.New(), model.VehiclePatch{},
		nil, nil,
	)
	assert.True(t, cerr.IsNotFound(err), "expected a not-found error")
}

func TestDelete(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	v := create(t, uc, "Honda", "Civic", "compact car")
	require.NoError(t, uc.Delete(ctx, v.ID))
	_, err := uc.GetByID(ctx, v.ID)
	assert.True(t, cerr.IsNotFound(err), "expected a not-found error")
}
