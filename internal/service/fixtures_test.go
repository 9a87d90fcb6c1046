package service

import (
	"time"

	"github.com/prohmpiriya/healthcare-portal/internal/access"
	"github.com/prohmpiriya/healthcare-portal/internal/domain"
)

func seedUser(repo *mockUserRepository, id, email string, role domain.Role) *domain.User {
	now := time.Now()
	return repo.add(&domain.User{
		ID:           id,
		Email:        email,
		PasswordHash: "$2a$04$placeholder",
		Name:         "User " + id,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func principalOf(u *domain.User) access.Principal {
	return access.Principal{ID: u.ID, Email: u.Email, Role: u.Role}
}
