package auth

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/domain"
	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/pkg/jwt"
)

type memUsers struct{ byEmail map[string]*entity.User }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.byEmail[u.Email] = u
	return nil
}
func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.byEmail[email], nil
}
func (m *memUsers) Count(context.Context) (int, error)          { return len(m.byEmail), nil }
func (m *memUsers) Update(context.Context, *entity.User) error { return nil }
func (m *memUsers) List(_ context.Context, limit, offset int) ([]*entity.User, int, error) {
	all := make([]*entity.User, 0, len(m.byEmail))
	for _, u := range m.byEmail {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	if offset >= len(all) {
		return []*entity.User{}, len(all), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], len(all), nil
}

func newAuth() (*AuthUseCase, *memUsers) {
	users := &memUsers{byEmail: map[string]*entity.User{}}
	return NewAuthUseCase(users, JWTConfig{Secret: "s3cret", ExpMinutes: 5, Issuer: "labops-test"}), users
}

func TestRegister_PrimerUsuarioEsAdmin(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, "", dto.RegisterRequest{Email: "Jefe@Lab.co", Password: "password1", Role: entity.RoleTechnician})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.Equal(t, "jefe@lab.co", u.Email)

	_, err = uc.RegisterUser(ctx, "", dto.RegisterRequest{Email: "b@lab.co", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.RegisterUser(ctx, entity.RoleTechnician, dto.RegisterRequest{Email: "b@lab.co", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	tech, err := uc.RegisterUser(ctx, entity.RoleAdmin, dto.RegisterRequest{Email: "b@lab.co", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleTechnician, tech.Role)

	_, err = uc.RegisterUser(ctx, entity.RoleAdmin, dto.RegisterRequest{Email: "b@lab.co", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	_, err = uc.RegisterUser(ctx, entity.RoleAdmin, dto.RegisterRequest{Email: "c@lab.co", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	uc, users := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, "", dto.RegisterRequest{Email: "a@lab.co", Password: "password1"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "A@lab.co", Password: "password1"})
	require.NoError(t, err)
	id, err := jwt.Parse("s3cret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, id.UserID)
	assert.Equal(t, entity.RoleAdmin, id.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@lab.co", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "x@lab.co", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	users.byEmail["a@lab.co"].Status = "inactive"
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@lab.co", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListUsers_Paginado(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, "", dto.RegisterRequest{Email: "a@lab.co", Password: "password1"})
	require.NoError(t, err)
	for _, e := range []string{"b@lab.co", "c@lab.co"} {
		_, err := uc.RegisterUser(ctx, entity.RoleAdmin, dto.RegisterRequest{Email: e, Password: "password1"})
		require.NoError(t, err)
	}

	out, err := uc.ListUsers(ctx, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 3, out.Page.Total)
	assert.Equal(t, 2, out.Page.Pages)
	assert.Equal(t, "a@lab.co", out.Items[0].Email)
}
