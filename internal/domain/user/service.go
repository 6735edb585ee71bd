package user

import "errors"

var (
	// ErrUsernameExists is returned when signing up with a taken username
	ErrUsernameExists = errors.New("username already exists")
	// ErrEmailExists is returned when signing up with a taken email
	ErrEmailExists = errors.New("email already exists")
	// ErrNotFound is returned when no user matches the lookup
	ErrNotFound = errors.New("user not found")
)

// SignUpRequest represents the input for user registration
type SignUpRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName"`
	LastName   string `json:"lastName"`
	Role       string `json:"role"`
}

// UpdateRequest represents a partial user update; nil fields are left untouched
type UpdateRequest struct {
	Email      *string `json:"email"`
	FirstName  *string `json:"firstName"`
	MiddleName *string `json:"middleName"`
	LastName   *string `json:"lastName"`
	Role       *string `json:"role"`
	IsActive   *bool   `json:"isActive"`
}

// Service interface for user operations
type Service interface {
	SignUp(req SignUpRequest) (*Response, error)
	GetByID(id uint) (*Response, error)
	GetByUsername(username string) (*Response, error)
	GetAll() ([]Response, error)
	GetActive() ([]Response, error)
	GetByRole(role Role) ([]Response, error)
	Update(id uint, req UpdateRequest) (*Response, error)
	Deactivate(id uint) error
}

type service struct {
	repo Repository
}

// NewService creates a new user service
func NewService(repo Repository) Service {
	return &service{repo}
}

// SignUp registers a new staff account
func (s *service) SignUp(req SignUpRequest) (*Response, error) {
	role, err := ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameExists
	}

	taken, err = s.repo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailExists
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Username:   req.Username,
		Email:      req.Email,
		Password:   hashed,
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		Role:       role,
		IsActive:   true,
	}

	if err := s.repo.Create(u); err != nil {
		return nil, err
	}

	return u.ToResponse(), nil
}

func (s *service) GetByID(id uint) (*Response, error) {
	u, err := s.repo.FindByID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return u.ToResponse(), nil
}

func (s *service) GetByUsername(username string) (*Response, error) {
	u, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, ErrNotFound
	}
	return u.ToResponse(), nil
}

func (s *service) GetAll() ([]Response, error) {
	users, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	return toResponses(users), nil
}

func (s *service) GetActive() ([]Response, error) {
	users, err := s.repo.FindActive()
	if err != nil {
		return nil, err
	}
	return toResponses(users), nil
}

func (s *service) GetByRole(role Role) ([]Response, error) {
	users, err := s.repo.FindByRole(role)
	if err != nil {
		return nil, err
	}
	return toResponses(users), nil
}

// Update applies the non-nil fields of req to the user
func (s *service) Update(id uint, req UpdateRequest) (*Response, error) {
	u, err := s.repo.FindByID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.Email != nil {
		existing, err := s.repo.FindByEmail(*req.Email)
		if err == nil && existing.UserID != id {
			return nil, ErrEmailExists
		}
		u.Email = *req.Email
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.MiddleName != nil {
		u.MiddleName = *req.MiddleName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Role != nil {
		role, err := ParseRole(*req.Role)
		if err != nil {
			return nil, err
		}
		u.Role = role
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := s.repo.Update(u); err != nil {
		return nil, err
	}

	return u.ToResponse(), nil
}

// Deactivate soft-deletes a user account
func (s *service) Deactivate(id uint) error {
	u, err := s.repo.FindByID(id)
	if err != nil {
		return ErrNotFound
	}

	u.IsActive = false
	return s.repo.Update(u)
}

func toResponses(users []User) []Response {
	out := make([]Response, 0, len(users))
	for i := range users {
		out = append(out, *users[i].ToResponse())
	}
	return out
}
