package service

import (
	authV4 "firebase.google.com/go/v4/auth"
	"github.com/answerhub/backend/internal/client"
	"github.com/answerhub/backend/internal/dto"
	"github.com/answerhub/backend/internal/repository"
)

type Services interface {
	Vote() VoteService
	Reputation() ReputationService
	RateLimit() RateLimitService
	Notification() NotificationService
	BestAnswer() BestAnswerService
	Bookmark() BookmarkService
	Auth() AuthService
}

type services struct {
	voteService         VoteService
	reputationService   ReputationService
	rateLimitService    RateLimitService
	notificationService NotificationService
	bestAnswerService   BestAnswerService
	bookmarkService     BookmarkService
	authService         AuthService
}

func NewServices(repositories repository.Repositories, config dto.Config, clients client.Clients) Services {
	notificationService := newNotificationService(clients.RabbitMQClient())
	reputationService := newReputationService(repositories.User())
	return &services{
		voteService:         newVoteService(repositories, reputationService, notificationService),
		reputationService:   reputationService,
		rateLimitService:    newRateLimitService(config.ActionCooldown),
		notificationService: notificationService,
		bestAnswerService:   newBestAnswerService(repositories, reputationService, notificationService),
		bookmarkService:     newBookmarkService(repositories),
		authService:         newAuthService(repositories.User(), clients.AuthClient(), authV4.IsIDTokenExpired),
	}
}

func (s services) Vote() VoteService {
	return s.voteService
}

func (s services) Reputation() ReputationService {
	return s.reputationService
}

func (s services) RateLimit() RateLimitService {
	return s.rateLimitService
}

func (s services) Notification() NotificationService {
	return s.notificationService
}

func (s services) BestAnswer() BestAnswerService {
	return s.bestAnswerService
}

func (s services) Bookmark() BookmarkService {
	return s.bookmarkService
}

func (s services) Auth() AuthService {
	return s.authService
}
