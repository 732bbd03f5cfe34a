package chatRepository

import (
	"VoiceBot/internal/entity"
	"VoiceBot/pkg/redis"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const keyPrefix = "voicebot:history:"

// Repository mirrors session turns outside the process so history survives
// restarts. The in-memory dialog history stays authoritative.
type Repository interface {
	SaveTurn(ctx context.Context, sessionID string, turn entity.ConversationTurn) error
	GetTurns(ctx context.Context, sessionID string) ([]entity.ConversationTurn, error)
	DeleteSession(ctx context.Context, sessionID string) error
	Enabled() bool
}

type Options struct {
	MaxTurns int64
	TTL      time.Duration
}

func New(client redis.IRedis, log *logrus.Logger, opts Options) Repository {
	if client == nil {
		return noopRepository{}
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = 10
	}

	return &historyRepository{
		client: client,
		log:    log,
		opts:   opts,
	}
}

type historyRepository struct {
	client redis.IRedis
	log    *logrus.Logger
	opts   Options
}

func sessionKey(sessionID string) string {
	return keyPrefix + sessionID
}

type noopRepository struct{}

func (noopRepository) SaveTurn(context.Context, string, entity.ConversationTurn) error {
	return nil
}

func (noopRepository) GetTurns(context.Context, string) ([]entity.ConversationTurn, error) {
	return []entity.ConversationTurn{}, nil
}

func (noopRepository) DeleteSession(context.Context, string) error {
	return nil
}

func (noopRepository) Enabled() bool {
	return false
}
