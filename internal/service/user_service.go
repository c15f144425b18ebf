package service

import (
	"context"
	"fmt"

	"promptly-be/internal/dto"
	"promptly-be/internal/entity"
	"promptly-be/internal/pkg/logger"
	"promptly-be/internal/repository/specification"
	"promptly-be/internal/repository/unitofwork"
	"promptly-be/pkg/events"

	"github.com/google/uuid"
)

type IUserService interface {
	GetOrCreateProfile(ctx context.Context, externalId, email string) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, externalId, email string, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
}

type userService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, eventPublisher events.Publisher, log logger.ILogger) IUserService {
	return &userService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// GetOrCreateProfile returns the caller's profile row, creating an empty one
// on first access.
func (s *userService) GetOrCreateProfile(ctx context.Context, externalId, email string) (*dto.UserProfileResponse, error) {
	user, err := s.findOrCreate(ctx, s.uowFactory.NewUnitOfWork(ctx), externalId, email)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(user), nil
}

func (s *userService) findOrCreate(ctx context.Context, uow unitofwork.UnitOfWork, externalId, email string) (*entity.User, error) {
	repo := uow.UserRepository()
	user, err := repo.FindOne(ctx, specification.ByExternalID{ExternalID: externalId})
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user = &entity.User{
		Id:               uuid.New(),
		ExternalId:       externalId,
		ProfileCompleted: false,
	}
	if email != "" {
		user.Email = &email
	}
	if err := repo.Create(ctx, user); err != nil {
		// A concurrent first request may have created the row already.
		existing, findErr := repo.FindOne(ctx, specification.ByExternalID{ExternalID: externalId})
		if findErr == nil && existing != nil {
			return existing, nil
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("USER", "Created profile on first access", map[string]interface{}{"external_id": externalId})
	return user, nil
}

// UpdateProfile applies only the fields present in req.
func (s *userService) UpdateProfile(ctx context.Context, externalId, email string, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := s.findOrCreate(ctx, uow, externalId, email)
	if err != nil {
		return nil, err
	}

	wasCompleted := user.ProfileCompleted
	applyProfileUpdate(user, req)

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if !wasCompleted && user.ProfileCompleted {
		s.publish(ctx, events.New(events.ProfileCompleted, map[string]interface{}{
			"user_id":     user.Id.String(),
			"external_id": externalId,
		}))
	}

	return toProfileResponse(user), nil
}

func (s *userService) publish(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("USER", "Failed to publish event", map[string]interface{}{"event": evt.EventType(), "error": err.Error()})
	}
}

func applyProfileUpdate(user *entity.User, req *dto.UpdateProfileRequest) {
	if req.Name != nil {
		user.Name = req.Name
	}
	if req.Age != nil {
		user.Age = req.Age
	}
	if req.Gender != nil {
		user.Gender = req.Gender
	}
	if req.Orientation != nil {
		user.Orientation = req.Orientation
	}
	if req.SelectedVibes != nil {
		user.SelectedVibes = req.SelectedVibes
	}
	if req.Interests != nil {
		user.Interests = req.Interests
	}
	if req.UniqueInterest != nil {
		user.UniqueInterest = req.UniqueInterest
	}
	if req.ProfileCompleted != nil {
		user.ProfileCompleted = *req.ProfileCompleted
	}
}

func toProfileResponse(u *entity.User) *dto.UserProfileResponse {
	return &dto.UserProfileResponse{
		Id:               u.Id,
		ExternalId:       u.ExternalId,
		Email:            u.Email,
		Name:             u.Name,
		Age:              u.Age,
		Gender:           u.Gender,
		Orientation:      u.Orientation,
		SelectedVibes:    u.SelectedVibes,
		Interests:        u.Interests,
		UniqueInterest:   u.UniqueInterest,
		ProfileCompleted: u.ProfileCompleted,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
