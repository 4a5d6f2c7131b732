package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"storedash/internal/domain"
	"storedash/internal/querycache"
	"storedash/internal/repos"
	"storedash/internal/validate"
)

var (
	ErrBadEmail = &validate.Error{Msg: "Please enter a valid email address"}
	ErrBadRole  = &validate.Error{Msg: "Unknown role"}
)

// UserService manages dashboard operator accounts in the local store.
type UserService struct {
	Users *repos.UserRepo
	Cache *querycache.Cache
	Cost  int
}

func NewUserService(users *repos.UserRepo, cache *querycache.Cache) *UserService {
	return &UserService{Users: users, Cache: cache, Cost: bcrypt.DefaultCost}
}

type UserForm struct {
	Name     string
	Email    string
	Role     string
	Password string
	Confirm  string
}

func UserFormFrom(u domain.User) UserForm {
	return UserForm{Name: u.Name, Email: u.Email, Role: u.Role}
}

func (f *UserForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	if f.Role == "" {
		f.Role = "Staff"
	}
}

func (f UserForm) check(creating bool) error {
	if creating {
		if err := validate.Required(f.Name, f.Email, f.Password); err != nil {
			return err
		}
	} else if err := validate.Required(f.Name, f.Email); err != nil {
		return err
	}
	if err := validate.PasswordConfirmed(f.Password, f.Confirm, !creating); err != nil {
		return err
	}
	if _, ok := validate.Email(f.Email); !ok {
		return ErrBadEmail
	}
	if !validate.OneOf(f.Role, domain.UserRoles) {
		return ErrBadRole
	}
	return nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return querycache.Fetch(ctx, s.Cache, KeyUsers, func(context.Context) ([]domain.User, error) {
		return s.Users.List()
	})
}

func (s *UserService) Reload(ctx context.Context) ([]domain.User, error) {
	s.Cache.Invalidate(KeyUsers)
	return s.List(ctx)
}

func (s *UserService) Get(id string) (domain.User, error) {
	u, err := s.Users.ByID(id)
	if err != nil {
		return domain.User{}, err
	}
	return *u, nil
}

func (s *UserService) Create(ctx context.Context, f UserForm) (domain.User, error) {
	f.normalize()
	if err := f.check(true); err != nil {
		return domain.User{}, err
	}
	h, err := bcrypt.GenerateFromPassword([]byte(f.Password), s.Cost)
	if err != nil {
		return domain.User{}, err
	}
	u := domain.User{
		ID:     "user_" + uuid.NewString()[:8],
		Name:   f.Name,
		Email:  f.Email,
		Role:   f.Role,
		Status: "Active",
		Hash:   string(h),
	}
	if err := s.Users.Create(u); err != nil {
		return domain.User{}, err
	}
	s.Cache.Invalidate(KeyUsers)
	return u, nil
}

// Update keeps the current password unless a new one is given.
func (s *UserService) Update(ctx context.Context, id string, f UserForm) error {
	f.normalize()
	if err := f.check(false); err != nil {
		return err
	}
	var newHash string
	if f.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(f.Password), s.Cost)
		if err != nil {
			return err
		}
		newHash = string(h)
	}
	u := domain.User{ID: id, Name: f.Name, Email: f.Email, Role: f.Role}
	if err := s.Users.Update(u, newHash); err != nil {
		return err
	}
	s.Cache.Invalidate(KeyUsers)
	return nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.Users.Delete(id); err != nil {
		return err
	}
	s.Cache.Invalidate(KeyUsers)
	return nil
}
