package services

import (
	"taskhub/internal/database"
	"taskhub/internal/errs"
	"taskhub/internal/models"
	"taskhub/internal/repositories"
)

// UserService handles business logic related to user accounts.
type UserService struct {
	repo   repositories.UserRepository
	hasher *Hasher
	events *Events
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository, hasher *Hasher, events *Events) *UserService {
	return &UserService{repo: repo, hasher: hasher, events: events}
}

// Create registers a new user. The password is hashed and never stored or returned
// in plaintext. Username and email must both be unused.
func (s *UserService) Create(sess *database.Session, in models.UserCreate) (*models.UserPublic, error) {
	if err := s.ensureUnique(sess, &in.Username, &in.Email, 0); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:       in.Username,
		Email:          in.Email,
		IsActive:       true,
		HashedPassword: hashed,
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if err := s.repo.Create(sess.DB, user); err != nil {
		return nil, err
	}

	out := user.Public()
	s.events.emit(sess, "user.created", user.ID, out)
	return &out, nil
}

// List returns one page of users in insertion order.
func (s *UserService) List(sess *database.Session, page Page) ([]models.UserPublic, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	users, err := s.repo.List(sess.DB, page.Offset, page.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserPublic, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out, nil
}

// Get retrieves a single user by ID.
func (s *UserService) Get(sess *database.Session, id uint) (*models.UserPublic, error) {
	user, err := s.repo.GetByID(sess.DB, id)
	if err != nil {
		return nil, err
	}
	out := user.Public()
	return &out, nil
}

// Update applies the fields present in patch. A new password is hashed first; a new
// username or email must not belong to another user.
func (s *UserService) Update(sess *database.Session, id uint, patch models.UserUpdate) (*models.UserPublic, error) {
	user, err := s.repo.GetByID(sess.DB, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(sess, patch.Username, patch.Email, user.ID); err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if patch.Username != nil {
		changes["username"] = *patch.Username
	}
	if patch.Email != nil {
		changes["email"] = *patch.Email
	}
	if patch.IsActive != nil {
		changes["is_active"] = *patch.IsActive
	}
	if patch.Password != nil {
		hashed, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		changes["hashed_password"] = hashed
	}

	if len(changes) > 0 {
		if err := s.repo.Update(sess.DB, user, changes); err != nil {
			return nil, err
		}
		s.events.emit(sess, "user.updated", user.ID, user.Public())
	}

	out := user.Public()
	return &out, nil
}

// Delete removes a user permanently. Items that reference the user keep their owner_id.
func (s *UserService) Delete(sess *database.Session, id uint) error {
	if err := s.repo.Delete(sess.DB, id); err != nil {
		return err
	}
	s.events.emit(sess, "user.deleted", id, nil)
	return nil
}

// ensureUnique rejects a username or email already held by a user other than excludeID.
// Nil values are not checked.
func (s *UserService) ensureUnique(sess *database.Session, username, email *string, excludeID uint) error {
	if username != nil {
		taken, err := s.repo.ExistsByUsername(sess.DB, *username, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return errs.Conflict("Username already registered")
		}
	}
	if email != nil {
		taken, err := s.repo.ExistsByEmail(sess.DB, *email, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return errs.Conflict("Email already registered")
		}
	}
	return nil
}
