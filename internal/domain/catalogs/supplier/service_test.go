package supplier

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"dukapos/internal/core/apperror"
	"dukapos/internal/core/id"
	"dukapos/internal/core/tx"
	"dukapos/internal/domain"
)

type memRepo struct {
	suppliers []*Supplier
	createErr error
}

func (r *memRepo) Create(ctx context.Context, s *Supplier) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.suppliers = append(r.suppliers, s)
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, supplierID id.ID) (*Supplier, error) {
	for _, s := range r.suppliers {
		if s.ID == supplierID {
			return s, nil
		}
	}
	return nil, apperror.NewNotFound("supplier", supplierID.String())
}

func (r *memRepo) FindByName(ctx context.Context, name string) (*Supplier, error) {
	for _, s := range r.suppliers {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return nil, apperror.NewNotFound("supplier", name)
}

func (r *memRepo) Update(ctx context.Context, s *Supplier) error { return nil }

func (r *memRepo) Delete(ctx context.Context, supplierID id.ID) error { return nil }

func (r *memRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Supplier], error) {
	return domain.ListResult[*Supplier]{Items: r.suppliers, TotalCount: len(r.suppliers)}, nil
}

func TestResolveByName_CreatesWhenMissing(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, &tx.MockManager{})
	ctx := context.Background()

	sup, err := svc.ResolveByName(ctx, "Acme Distributors")
	require.NoError(t, err)
	require.Equal(t, "Acme Distributors", sup.Name)
	require.False(t, id.IsNil(sup.ID))
	require.Len(t, repo.suppliers, 1)
}

func TestResolveByName_CaseInsensitiveMatch(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, &tx.MockManager{})
	ctx := context.Background()

	first, err := svc.ResolveByName(ctx, "Acme")
	require.NoError(t, err)

	// Capitalization drift must not spawn a second record
	second, err := svc.ResolveByName(ctx, "ACME")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Len(t, repo.suppliers, 1)
}

func TestResolveByName_TrimsWhitespace(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, &tx.MockManager{})

	sup, err := svc.ResolveByName(context.Background(), "  Acme  ")
	require.NoError(t, err)
	require.Equal(t, "Acme", sup.Name)
}

func TestResolveByName_EmptyVendor(t *testing.T) {
	svc := NewService(&memRepo{}, &tx.MockManager{})

	_, err := svc.ResolveByName(context.Background(), "   ")
	require.Error(t, err)
	require.True(t, apperror.IsValidation(err))
}

func TestCreate_DuplicateName(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, &tx.MockManager{})
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, New("Acme")))

	err := svc.Create(ctx, New("acme"))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperror.CodeDuplicate, appErr.Code)
}
