package chatService

import (
	"VoiceBot/internal/api/chat"
	"VoiceBot/internal/dialog"
	contextPkg "VoiceBot/pkg/context"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *chatService) GetStats(ctx context.Context) (*chat.StatsResponse, error) {
	infos, managers := s.sessionSnapshots()

	var processing dialog.ProcessingStats
	var samples int
	var sum time.Duration
	var cache chat.CacheTotals

	for _, m := range managers {
		st := m.Stats()
		if st.Count > 0 {
			if samples == 0 || st.Min < processing.Min {
				processing.Min = st.Min
			}
			processing.Max = max(processing.Max, st.Max)
			sum += st.Average * time.Duration(st.Count)
			samples += st.Count
		}
		processing.Total += st.Total

		cs := m.CacheStats()
		if cs.Recognizer != nil {
			cache.RecognizerHits += cs.Recognizer.Hits
			cache.RecognizerMisses += cs.Recognizer.Misses
		}
		if cs.Generator != nil {
			cache.GeneratorHits += cs.Generator.Hits
			cache.GeneratorMisses += cs.Generator.Misses
		}
	}

	processing.Count = samples
	if samples > 0 {
		processing.Average = sum / time.Duration(samples)
	}

	return &chat.StatsResponse{
		ActiveSessions: len(infos),
		MaxSessions:    s.config.MaxSessions,
		Processing:     processing,
		Cache:          cache,
		Sessions:       infos,
	}, nil
}

func (s *chatService) ClearCaches(ctx context.Context) (*chat.ClearCachesResponse, error) {
	_, managers := s.sessionSnapshots()
	for _, m := range managers {
		m.ClearCaches()
	}

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"sessions":   len(managers),
	}).Info("Dialog caches cleared")

	return &chat.ClearCachesResponse{Sessions: len(managers)}, nil
}
