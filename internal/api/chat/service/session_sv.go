package chatService

import (
	"VoiceBot/internal/api/chat"
	"VoiceBot/internal/dialog"
	"VoiceBot/internal/entity"
	contextPkg "VoiceBot/pkg/context"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type session struct {
	mu      sync.Mutex
	info    entity.ChatSession
	manager *dialog.Manager
}

func (s *session) touch(now time.Time) {
	s.mu.Lock()
	s.info.LastActivity = now
	s.mu.Unlock()
}

func (s *session) countTurn(now time.Time) {
	s.mu.Lock()
	s.info.LastActivity = now
	s.info.Turns++
	s.mu.Unlock()
}

func (s *session) snapshot() entity.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info
}

func (s *session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.info.LastActivity)
}

func (s *chatService) CreateSession(ctx context.Context, channel entity.Channel) (*chat.CreateSessionResponse, error) {
	sess, err := s.newSession(ctx, channel)
	if err != nil {
		return nil, err
	}

	info := sess.snapshot()
	return &chat.CreateSessionResponse{
		SessionID: info.ID,
		CreatedAt: info.CreatedAt,
	}, nil
}

func (s *chatService) newSession(ctx context.Context, channel entity.Channel) (*session, error) {
	requestID := contextPkg.GetRequestID(ctx)
	now := s.config.Now()

	manager, err := s.engine.NewManager(s.log, s.config.Cache)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build dialog manager")
		return nil, err
	}

	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate session ID")
		return nil, err
	}

	sess := &session{
		info: entity.ChatSession{
			ID:           id,
			Channel:      channel,
			CreatedAt:    now,
			LastActivity: now,
		},
		manager: manager,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.config.MaxSessions {
		s.evictIdleLocked(now)
	}
	if len(s.sessions) >= s.config.MaxSessions {
		s.log.WithFields(logrus.Fields{
			"request_id":   requestID,
			"max_sessions": s.config.MaxSessions,
		}).Warn("Session limit reached")
		return nil, chat.ErrSessionLimitReached
	}

	s.sessions[id] = sess

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": id,
		"channel":    channel.String(),
	}).Info("Chat session created")

	return sess, nil
}

func (s *chatService) getSession(sessionID string) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	return sess, ok
}

// SessionExists reports whether sessionID is a live session. Mirrored history
// of an evicted session does not count.
func (s *chatService) SessionExists(_ context.Context, sessionID string) bool {
	_, ok := s.getSession(sessionID)
	return ok
}

// resolveSession returns the named session or opens a new one when sessionID
// is empty.
func (s *chatService) resolveSession(ctx context.Context, sessionID string, channel entity.Channel) (*session, error) {
	if sessionID == "" {
		return s.newSession(ctx, channel)
	}

	sess, ok := s.getSession(sessionID)
	if !ok {
		return nil, chat.ErrSessionNotFound
	}
	return sess, nil
}

func (s *chatService) GetHistory(ctx context.Context, sessionID string) (*chat.HistoryResponse, error) {
	if sess, ok := s.getSession(sessionID); ok {
		turns := sess.manager.History()
		return &chat.HistoryResponse{
			SessionID: sessionID,
			Turns:     turns,
			Count:     len(turns),
		}, nil
	}

	if !s.repo.Enabled() {
		return nil, chat.ErrSessionNotFound
	}

	turns, err := s.repo.GetTurns(ctx, sessionID)
	if err != nil || len(turns) == 0 {
		return nil, chat.ErrSessionNotFound
	}

	return &chat.HistoryResponse{
		SessionID: sessionID,
		Turns:     turns,
		Count:     len(turns),
	}, nil
}

func (s *chatService) ClearHistory(ctx context.Context, sessionID string) error {
	sess, ok := s.getSession(sessionID)
	if !ok {
		return chat.ErrSessionNotFound
	}

	sess.manager.ClearHistory()
	sess.touch(s.config.Now())
	s.forget(ctx, sessionID)

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"session_id": sessionID,
	}).Info("Conversation history cleared")

	return nil
}

func (s *chatService) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	_, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if !ok {
		return chat.ErrSessionNotFound
	}

	s.forget(ctx, sessionID)

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"session_id": sessionID,
	}).Info("Chat session deleted")

	return nil
}

// forget drops the mirrored history. Mirror failures never fail the caller.
func (s *chatService) forget(ctx context.Context, sessionID string) {
	if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("Failed to delete mirrored history")
	}
}

func (s *chatService) EvictIdleSessions(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictIdleLocked(s.config.Now())
}

// evictIdleLocked removes sessions idle longer than the configured timeout.
// Mirrored history is kept so it can still be read after eviction.
func (s *chatService) evictIdleLocked(now time.Time) int {
	if s.config.IdleTimeout <= 0 {
		return 0
	}

	evicted := 0
	for id, sess := range s.sessions {
		if sess.idleSince(now) > s.config.IdleTimeout {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (s *chatService) sessionSnapshots() ([]entity.ChatSession, []*dialog.Manager) {
	s.mu.RLock()
	infos := make([]entity.ChatSession, 0, len(s.sessions))
	managers := make([]*dialog.Manager, 0, len(s.sessions))
	for _, sess := range s.sessions {
		infos = append(infos, sess.snapshot())
		managers = append(managers, sess.manager)
	}
	s.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos, managers
}
