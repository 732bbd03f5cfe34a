package chatRepository

import (
	"VoiceBot/internal/entity"
	contextPkg "VoiceBot/pkg/context"
	"context"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (r *historyRepository) SaveTurn(ctx context.Context, sessionID string, turn entity.ConversationTurn) error {
	requestID := contextPkg.GetRequestID(ctx)

	payload, err := json.MarshalToString(turn)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to marshal conversation turn")
		return err
	}

	if err := r.client.PushCapped(ctx, sessionKey(sessionID), payload, r.opts.MaxTurns, r.opts.TTL); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Redis error when saving conversation turn")
		return err
	}

	return nil
}

func (r *historyRepository) GetTurns(ctx context.Context, sessionID string) ([]entity.ConversationTurn, error) {
	requestID := contextPkg.GetRequestID(ctx)

	values, err := r.client.Range(ctx, sessionKey(sessionID))
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Redis error when reading conversation turns")
		return nil, err
	}

	turns := make([]entity.ConversationTurn, 0, len(values))
	for _, v := range values {
		var turn entity.ConversationTurn
		if err := json.UnmarshalFromString(v, &turn); err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"session_id": sessionID,
				"error":      err.Error(),
			}).Warn("Skipping malformed conversation turn")
			continue
		}
		turns = append(turns, turn)
	}

	return turns, nil
}

func (r *historyRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if err := r.client.Delete(ctx, sessionKey(sessionID)); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Redis error when deleting session history")
		return err
	}
	return nil
}

func (r *historyRepository) Enabled() bool {
	return true
}
