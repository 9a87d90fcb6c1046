package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/prohmpiriya/healthcare-portal/internal/domain"
	"github.com/prohmpiriya/healthcare-portal/internal/repository"
	"github.com/prohmpiriya/healthcare-portal/pkg/logger"
	"github.com/prohmpiriya/healthcare-portal/pkg/retry"
	"github.com/prohmpiriya/healthcare-portal/pkg/telemetry"
)

// SeedUser is one identity in the seed file
type SeedUser struct {
	Name        string `yaml:"name"`
	Email       string `yaml:"email"`
	Password    string `yaml:"password"`
	Age         *int   `yaml:"age,omitempty"`
	BloodType   string `yaml:"bloodType,omitempty"`
	Disease     string `yaml:"disease,omitempty"`
	Phone       string `yaml:"phone,omitempty"`
	DateOfBirth string `yaml:"dateOfBirth,omitempty"`
	Address     string `yaml:"address,omitempty"`
}

// SeedFile lists the identities provisioning reconciles
type SeedFile struct {
	Providers []SeedUser `yaml:"providers"`
	Patients  []SeedUser `yaml:"patients,omitempty"`
}

// LoadSeedFile reads and parses a YAML seed file; unknown keys are rejected
func LoadSeedFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeedFile(data)
}

// ParseSeedFile parses YAML seed data
func ParseSeedFile(data []byte) (*SeedFile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	seeds := &SeedFile{}
	if err := dec.Decode(seeds); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return seeds, nil
}

// ProvisionResult reports what a reconciliation changed
type ProvisionResult struct {
	Created []string
	Skipped []string
}

// Provisioner creates missing seed identities. Running it twice creates nothing the second time.
type Provisioner struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	retry    *retry.Config
	log      *logger.Logger
}

// NewProvisioner creates a new Provisioner
func NewProvisioner(userRepo repository.UserRepository, hasher PasswordHasher, retryCfg *retry.Config, log *logger.Logger) *Provisioner {
	if log == nil {
		log = logger.NewNop()
	}
	return &Provisioner{userRepo: userRepo, hasher: hasher, retry: retryCfg, log: log}
}

// Reconcile creates every seed whose email is not registered yet.
// Patients are only considered when includePatients is set.
func (p *Provisioner) Reconcile(ctx context.Context, seeds *SeedFile, includePatients bool) (*ProvisionResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.provisioner.reconcile")
	defer span.End()

	result := &ProvisionResult{Created: []string{}, Skipped: []string{}}
	for _, seed := range seeds.Providers {
		if err := p.ensure(ctx, seed, domain.RoleProvider, result); err != nil {
			telemetry.RecordError(span, err)
			return result, err
		}
	}
	if includePatients {
		for _, seed := range seeds.Patients {
			if err := p.ensure(ctx, seed, domain.RolePatient, result); err != nil {
				telemetry.RecordError(span, err)
				return result, err
			}
		}
	}

	p.log.Info("provisioning finished",
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

func (p *Provisioner) ensure(ctx context.Context, seed SeedUser, role domain.Role, result *ProvisionResult) error {
	email := strings.TrimSpace(seed.Email)
	if email == "" || strings.TrimSpace(seed.Name) == "" {
		return fmt.Errorf("seed %q: name and email are required", seed.Name)
	}
	if len(seed.Password) < domain.MinPasswordLength {
		return fmt.Errorf("seed %s: password must be at least %d characters", email, domain.MinPasswordLength)
	}

	var existing *domain.User
	err := retry.Do(ctx, p.retry, func(ctx context.Context) error {
		var err error
		existing, err = p.userRepo.GetByEmail(ctx, email)
		return transientOnly(err)
	}, p.notify(email))
	if err != nil {
		return fmt.Errorf("seed %s: lookup: %w", email, err)
	}
	if existing != nil {
		if existing.Role != role {
			p.log.Warn("seed email registered under another role", zap.String("email", email), zap.String("role", string(existing.Role)))
		}
		result.Skipped = append(result.Skipped, email)
		return nil
	}

	hash, err := p.hasher.Hash(seed.Password)
	if err != nil {
		return fmt.Errorf("seed %s: %w", email, err)
	}
	user, err := domain.NewUser(seed.Name, email, hash, role)
	if err != nil {
		return fmt.Errorf("seed %s: %w", email, err)
	}
	user.Age = seed.Age
	user.BloodType = seed.BloodType
	user.Disease = seed.Disease
	user.Phone = seed.Phone
	user.DateOfBirth = seed.DateOfBirth
	user.Address = seed.Address

	err = retry.Do(ctx, p.retry, func(ctx context.Context) error {
		return transientOnly(p.userRepo.Create(ctx, user))
	}, p.notify(email))
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		// another provisioner or a registration won the race
		result.Skipped = append(result.Skipped, email)
		return nil
	case err != nil:
		return fmt.Errorf("seed %s: create: %w", email, err)
	}

	p.log.Info("provisioned user", zap.String("email", email), zap.String("role", string(role)))
	result.Created = append(result.Created, email)
	return nil
}

func (p *Provisioner) notify(email string) retry.Notify {
	return func(attempt int, err error, wait time.Duration) {
		p.log.Warn("provisioning store unavailable, retrying",
			zap.String("email", email),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}
}

// transientOnly retries unavailability and stops on everything else
func transientOnly(err error) error {
	if err == nil || domain.IsUnavailableError(err) {
		return err
	}
	return retry.Permanent(err)
}
