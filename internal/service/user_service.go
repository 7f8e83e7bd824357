package service

import (
	"context"
	"strings"
	"time"

	"skill-quest/internal/config"
	"skill-quest/internal/domain"
	"skill-quest/internal/dto"
	"skill-quest/internal/logger"
	"skill-quest/internal/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// sampleUser is a development fixture.
type sampleUser struct {
	Email         string
	Name          string
	TotalScore    int64
	CurrentStreak int
	LongestStreak int
}

var sampleUsers = []sampleUser{
	{Email: "alex.chen@example.com", Name: "Alex Chen", TotalScore: 2450, CurrentStreak: 5, LongestStreak: 12},
	{Email: "priya.natarajan@example.com", Name: "Priya Natarajan", TotalScore: 3820, CurrentStreak: 14, LongestStreak: 14},
	{Email: "samuel.okafor@example.com", Name: "Samuel Okafor", TotalScore: 1275, CurrentStreak: 2, LongestStreak: 6},
	{Email: "maria.garcia@example.com", Name: "Maria Garcia", TotalScore: 990, CurrentStreak: 1, LongestStreak: 3},
	{Email: "jordan.lee@example.com", Name: "Jordan Lee", TotalScore: 4610, CurrentStreak: 21, LongestStreak: 30},
}

// UserService defines the user record operations, including XP and streak updates.
type UserService interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.IDResponse, error)
	GetUser(ctx context.Context, email string) (*dto.UserResponse, error)
	GetUserByID(ctx context.Context, userID string) (*dto.UserResponse, error)
	GetLeaderboard(ctx context.Context) ([]dto.UserResponse, error)
	RefreshLeaderboard(ctx context.Context) error
	UpdateUserProgress(ctx context.Context, userID string, req dto.UpdateUserProgressRequest) error
	CreateSampleUsers(ctx context.Context) ([]string, error)
	GetSampleUser(ctx context.Context) (*dto.UserResponse, error)
}

type userServiceImpl struct {
	userRepo     domain.UserRepository
	achievements AchievementService
	txManager    domain.TransactionManager
	leaderboard  *Leaderboard
	loc          *time.Location
	now          func() time.Time
}

// NewUserService creates a new instance of UserService. A nil leaderboard gets an
// uncached one.
func NewUserService(
	userRepo domain.UserRepository,
	achievements AchievementService,
	txManager domain.TransactionManager,
	leaderboard *Leaderboard,
	appConfig *config.Config,
) UserService {
	if leaderboard == nil {
		leaderboard = NewLeaderboard(userRepo, nil, appConfig)
	}
	return &userServiceImpl{
		userRepo:     userRepo,
		achievements: achievements,
		txManager:    txManager,
		leaderboard:  leaderboard,
		loc:          appConfig.Location(),
		now:          time.Now,
	}
}

func (s *userServiceImpl) today() string {
	return domain.FormatActiveDate(s.now(), s.loc)
}

// CreateUser inserts a user, or returns the id of the user already registered with the email.
func (s *userServiceImpl) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.IDResponse, error) {
	user := domain.NewUser(strings.TrimSpace(req.Email), strings.TrimSpace(req.Name), s.today())
	if err := user.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up user", err)
	}
	if existing != nil {
		return &dto.IDResponse{ID: existing.ID}, nil
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, domain.NewInternalError("failed to create user", err)
	}
	s.leaderboard.invalidate(ctx)

	logger.Get().Info("User created", zap.String("userID", user.ID))
	return &dto.IDResponse{ID: user.ID}, nil
}

// GetUser returns the user registered with email, or nil.
func (s *userServiceImpl) GetUser(ctx context.Context, email string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, domain.NewInternalError("failed to get user", err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *userServiceImpl) GetUserByID(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get user", err)
	}
	return dto.NewUserResponse(user), nil
}

// GetLeaderboard returns at most domain.LeaderboardSize users by total score, highest first.
func (s *userServiceImpl) GetLeaderboard(ctx context.Context) ([]dto.UserResponse, error) {
	return s.leaderboard.get(ctx)
}

// RefreshLeaderboard reloads the cached leaderboard from the store.
func (s *userServiceImpl) RefreshLeaderboard(ctx context.Context) error {
	_, err := s.leaderboard.load(ctx)
	return err
}

// UpdateUserProgress applies an XP delta and an optional streak increment.
func (s *userServiceImpl) UpdateUserProgress(ctx context.Context, userID string, req dto.UpdateUserProgressRequest) (err error) {
	ctx, span := tracing.StartSpan(ctx, "UserService.UpdateUserProgress",
		attribute.String("user.id", userID),
		attribute.Int64("xp.gained", req.XPGained),
		attribute.Bool("streak.update", req.StreakUpdate),
	)
	defer func() { tracing.End(span, err) }()

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		user, err := s.userRepo.GetUserByID(txCtx, userID)
		if err != nil {
			return domain.NewInternalError("failed to get user", err)
		}
		if user == nil {
			return domain.NewUserNotFoundError(userID)
		}

		oldLevel := user.Level
		user.AddXP(req.XPGained)
		if req.StreakUpdate {
			user.IncrementStreak(s.today())
		}
		user.UpdatedAt = s.now()

		if err := s.userRepo.UpdateUserStats(txCtx, user); err != nil {
			return internalUnlessDomain("failed to update user", err)
		}
		if err := awardLevelUp(txCtx, s.achievements, user.ID, oldLevel, user.Level); err != nil {
			return err
		}
		if req.StreakUpdate {
			if err := awardStreakMilestone(txCtx, s.achievements, user.ID, user.CurrentStreak); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if req.XPGained != 0 {
		s.leaderboard.invalidate(ctx)
	}
	return nil
}

// CreateSampleUsers inserts the development fixture users that are not present yet
// and returns the ids of all fixture users.
func (s *userServiceImpl) CreateSampleUsers(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(sampleUsers))
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, fixture := range sampleUsers {
			existing, err := s.userRepo.GetUserByEmail(txCtx, fixture.Email)
			if err != nil {
				return domain.NewInternalError("failed to look up sample user", err)
			}
			if existing != nil {
				ids = append(ids, existing.ID)
				continue
			}

			user := domain.NewUser(fixture.Email, fixture.Name, s.today())
			user.AddXP(fixture.TotalScore)
			user.CurrentStreak = fixture.CurrentStreak
			user.LongestStreak = fixture.LongestStreak
			if err := s.userRepo.CreateUser(txCtx, user); err != nil {
				return domain.NewInternalError("failed to create sample user", err)
			}
			ids = append(ids, user.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.leaderboard.invalidate(ctx)
	return ids, nil
}

// GetSampleUser returns the first fixture user, or nil when fixtures were not created.
func (s *userServiceImpl) GetSampleUser(ctx context.Context) (*dto.UserResponse, error) {
	return s.GetUser(ctx, sampleUsers[0].Email)
}
