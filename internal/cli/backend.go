package cli

import (
	"VoiceBot/internal/dialog"
	"VoiceBot/internal/entity"
	websocketPkg "VoiceBot/pkg/websocket"
	"context"
	"errors"
	"fmt"
)

type turnReply struct {
	Response   string
	Intent     string
	Confidence float64
	Language   string
}

// backend is where chat lines go: an in-process dialog manager or a remote
// server session.
type backend interface {
	Send(text, language string) (turnReply, error)
	History() ([]entity.ConversationTurn, error)
	Clear() error
	Status() []string
	Close() error
}

type localBackend struct {
	manager *dialog.Manager
}

func newLocalBackend(a *app) (*localBackend, error) {
	engine, err := a.dialogEngine()
	if err != nil {
		return nil, err
	}
	manager, err := engine.NewManager(a.logger, dialog.DefaultCacheConfig())
	if err != nil {
		return nil, err
	}
	return &localBackend{manager: manager}, nil
}

func (b *localBackend) Send(text, language string) (turnReply, error) {
	reply := b.manager.Process(text, language)
	return turnReply{
		Response:   reply.Response,
		Intent:     reply.Intent.String(),
		Confidence: reply.Confidence,
		Language:   reply.Language,
	}, nil
}

func (b *localBackend) History() ([]entity.ConversationTurn, error) {
	return b.manager.History(), nil
}

func (b *localBackend) Clear() error {
	b.manager.ClearHistory()
	return nil
}

func (b *localBackend) Status() []string {
	stats := b.manager.Stats()
	cache := b.manager.CacheStats()

	lines := []string{
		"mode: local",
		fmt.Sprintf("supported intents: %d", len(b.manager.SupportedIntents())),
		fmt.Sprintf("turns processed: %d", stats.Total),
		fmt.Sprintf("latency (last %d): avg %v, min %v, max %v", stats.Count, stats.Average, stats.Min, stats.Max),
	}
	if cache.Recognizer != nil {
		lines = append(lines, fmt.Sprintf("recognizer cache: %d hits, %d misses, %d/%d entries",
			cache.Recognizer.Hits, cache.Recognizer.Misses, cache.Recognizer.Size, cache.Recognizer.Capacity))
	}
	if cache.Generator != nil {
		lines = append(lines, fmt.Sprintf("generator cache: %d hits, %d misses, %d/%d entries",
			cache.Generator.Hits, cache.Generator.Misses, cache.Generator.Size, cache.Generator.Capacity))
	}
	return lines
}

func (b *localBackend) Close() error {
	return nil
}

type remoteBackend struct {
	client websocketPkg.IChatClient
	server string
}

func newRemoteBackend(ctx context.Context, a *app, server string) (*remoteBackend, error) {
	client := websocketPkg.NewChatClient(server, websocketPkg.WithLogger(a.logger))
	if _, err := client.Connect(ctx); err != nil {
		return nil, err
	}
	return &remoteBackend{client: client, server: server}, nil
}

func replyError(reply *websocketPkg.Reply) error {
	if reply.Type == "error" {
		return errors.New(reply.Error)
	}
	return nil
}

func (b *remoteBackend) Send(text, language string) (turnReply, error) {
	reply, err := b.client.Send(text, language)
	if err != nil {
		return turnReply{}, err
	}
	if err := replyError(reply); err != nil {
		return turnReply{}, err
	}
	if reply.Message == nil {
		return turnReply{}, fmt.Errorf("unexpected %q reply", reply.Type)
	}

	return turnReply{
		Response:   reply.Message.Response,
		Intent:     reply.Message.Intent,
		Confidence: reply.Message.Confidence,
		Language:   reply.Message.Language,
	}, nil
}

func (b *remoteBackend) History() ([]entity.ConversationTurn, error) {
	reply, err := b.client.Command("history")
	if err != nil {
		return nil, err
	}
	if err := replyError(reply); err != nil {
		return nil, err
	}
	if reply.History == nil {
		return nil, nil
	}

	turns := make([]entity.ConversationTurn, 0, len(reply.History.Turns))
	for _, t := range reply.History.Turns {
		turns = append(turns, entity.ConversationTurn{
			UserInput:   t.UserInput,
			BotResponse: t.BotResponse,
			Intent:      t.Intent,
			Timestamp:   t.Timestamp,
		})
	}
	return turns, nil
}

func (b *remoteBackend) Clear() error {
	reply, err := b.client.Command("clear")
	if err != nil {
		return err
	}
	return replyError(reply)
}

func (b *remoteBackend) Status() []string {
	return []string{
		"mode: server",
		"server: " + b.server,
		"session: " + b.client.SessionID(),
		fmt.Sprintf("connected: %t", b.client.IsConnected()),
	}
}

func (b *remoteBackend) Close() error {
	return b.client.Close()
}
