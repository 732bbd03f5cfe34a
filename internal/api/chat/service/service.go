package chatService

import (
	"VoiceBot/internal/api/chat"
	chatRepository "VoiceBot/internal/api/chat/repository"
	"VoiceBot/internal/dialog"
	"VoiceBot/internal/entity"
	"VoiceBot/pkg/audio"
	"VoiceBot/pkg/langdetect"
	"VoiceBot/pkg/utils"
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type IChatService interface {
	CreateSession(ctx context.Context, channel entity.Channel) (*chat.CreateSessionResponse, error)
	ProcessMessage(ctx context.Context, req chat.MessageRequest, channel entity.Channel) (*chat.MessageResponse, error)
	ProcessVoice(ctx context.Context, req chat.VoiceRequest) (*chat.VoiceResponse, error)

	SessionExists(ctx context.Context, sessionID string) bool
	GetHistory(ctx context.Context, sessionID string) (*chat.HistoryResponse, error)
	ClearHistory(ctx context.Context, sessionID string) error
	DeleteSession(ctx context.Context, sessionID string) error

	TestNLPProcessing(ctx context.Context, req chat.NLPTestRequest) (*chat.NLPTestResponse, error)
	Intents(ctx context.Context) *chat.IntentsResponse

	GetStats(ctx context.Context) (*chat.StatsResponse, error)
	ClearCaches(ctx context.Context) (*chat.ClearCachesResponse, error)
	EvictIdleSessions(ctx context.Context) int

	Close()
}

type Config struct {
	MaxSessions int
	IdleTimeout time.Duration
	Cache       dialog.CacheConfig
	Now         func() time.Time
}

type chatService struct {
	log         *logrus.Logger
	engine      *dialog.Engine
	repo        chatRepository.Repository
	detector    langdetect.IDetector
	transcriber audio.ITranscriber
	synthesizer audio.ISynthesizer
	utils       utils.IUtils
	config      Config

	mu       sync.RWMutex
	sessions map[string]*session

	stop     chan struct{}
	stopOnce sync.Once
}

func NewChatService(
	log *logrus.Logger,
	engine *dialog.Engine,
	repo chatRepository.Repository,
	detector langdetect.IDetector,
	transcriber audio.ITranscriber,
	synthesizer audio.ISynthesizer,
	utils utils.IUtils,
	config Config,
) IChatService {
	if config.MaxSessions <= 0 {
		config.MaxSessions = 1000
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	s := &chatService{
		log:         log,
		engine:      engine,
		repo:        repo,
		detector:    detector,
		transcriber: transcriber,
		synthesizer: synthesizer,
		utils:       utils,
		config:      config,
		sessions:    make(map[string]*session),
		stop:        make(chan struct{}),
	}

	if config.IdleTimeout > 0 {
		go s.janitor(config.IdleTimeout / 2)
	}

	return s
}

func (s *chatService) janitor(every time.Duration) {
	if every < time.Second {
		every = time.Second
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if n := s.EvictIdleSessions(context.Background()); n > 0 {
				s.log.WithField("evicted", n).Info("Evicted idle chat sessions")
			}
		}
	}
}

func (s *chatService) Close() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}
