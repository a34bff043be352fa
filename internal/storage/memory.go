package storage

import (
	"context"
	"sync"

	"github.com/claytonfaria/userapi/internal/apperrors"
	usermodel "github.com/claytonfaria/userapi/internal/models/user"
)

// MemoryStore is an in-process UserStore for tests and local runs.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[int64]*usermodel.User
	nextID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[int64]*usermodel.User),
		nextID: 1,
	}
}

func (s *MemoryStore) List(ctx context.Context) ([]*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*usermodel.User, 0, len(s.users))
	for _, u := range s.users {
		copied := *u
		users = append(users, &copied)
	}

	return users, nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id int64) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, exists := s.users[id]
	if !exists {
		return nil, apperrors.ErrNotFound
	}

	copied := *u
	return &copied, nil
}

func (s *MemoryStore) Create(ctx context.Context, req *usermodel.CreateUserRequest) (*usermodel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := &usermodel.User{
		ID:        s.nextID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Gender:    req.Gender,
		Age:       req.Age,
	}
	s.users[u.ID] = u
	s.nextID++

	copied := *u
	return &copied, nil
}

func (s *MemoryStore) Update(ctx context.Context, id int64, req *usermodel.UpdateUserRequest) (*usermodel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[id]
	if !exists {
		return nil, apperrors.ErrNotFound
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Email != nil {
		u.Email = req.Email
	}
	if req.Gender != nil {
		u.Gender = *req.Gender
	}
	if req.Age != nil {
		u.Age = req.Age
	}

	copied := *u
	return &copied, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[id]; !exists {
		return apperrors.ErrNotFound
	}

	delete(s.users, id)
	return nil
}

var _ UserStore = (*MemoryStore)(nil)
