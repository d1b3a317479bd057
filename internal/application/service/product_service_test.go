package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevderk/lavash-bakery-supabase/internal/domain/entity"
	"github.com/sevderk/lavash-bakery-supabase/pkg/apperror"
)

func TestCreateProductValidation(t *testing.T) {
	svc := NewProductService(&mockProductRepo{})
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, &CreateProductInput{Name: "  "})
	assert.Error(t, err, "empty name rejected")

	_, err = svc.CreateProduct(ctx, &CreateProductInput{Name: "Lavaş", Price: -1})
	assert.Error(t, err, "negative price rejected")

	product, err := svc.CreateProduct(ctx, &CreateProductInput{Name: "  Lavaş  ", Price: 5})
	require.NoError(t, err)
	assert.Equal(t, "Lavaş", product.Name, "name is trimmed")
}

func TestCreateProductRejectsDuplicateName(t *testing.T) {
	repo := &mockProductRepo{Products: []entity.Product{
		{ID: uuid.New(), Name: "Lavaş", Price: 5},
	}}
	svc := NewProductService(repo)

	_, err := svc.CreateProduct(context.Background(), &CreateProductInput{Name: "Lavaş", Price: 6})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestUpdateProductKeepsNameUniqueness(t *testing.T) {
	lavasID := uuid.New()
	repo := &mockProductRepo{Products: []entity.Product{
		{ID: lavasID, Name: "Lavaş", Price: 5},
		{ID: uuid.New(), Name: "Simit", Price: 3},
	}}
	svc := NewProductService(repo)
	ctx := context.Background()

	rename := "Simit"
	_, err := svc.UpdateProduct(ctx, &UpdateProductInput{ID: lavasID, Name: &rename})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	// Updating without changing the name does not trip the duplicate check
	newPrice := 6.0
	product, err := svc.UpdateProduct(ctx, &UpdateProductInput{ID: lavasID, Price: &newPrice})
	require.NoError(t, err)
	assert.InDelta(t, 6.0, product.Price, 1e-9)
}

func TestGetProductNotFound(t *testing.T) {
	svc := NewProductService(&mockProductRepo{})

	_, err := svc.GetProduct(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
