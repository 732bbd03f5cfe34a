package chatService

import (
	"VoiceBot/internal/api/chat"
	"VoiceBot/internal/entity"
	"VoiceBot/pkg/audio"
	contextPkg "VoiceBot/pkg/context"
	"VoiceBot/pkg/langdetect"
	"VoiceBot/pkg/nlp"
	"context"
	"encoding/base64"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

func (s *chatService) ProcessMessage(ctx context.Context, req chat.MessageRequest, channel entity.Channel) (*chat.MessageResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	sess, err := s.resolveSession(ctx, req.SessionID, channel)
	if err != nil {
		return nil, err
	}
	sessionID := sess.snapshot().ID

	lang, langConfidence, detected := s.resolveLanguage(req.Text, req.Language)
	reply := sess.manager.Process(req.Text, lang)
	sess.countTurn(s.config.Now())

	s.mirror(ctx, sessionID, reply.Turn)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": sessionID,
		"intent":     reply.Intent,
		"confidence": reply.Confidence,
		"language":   lang,
		"detected":   detected,
	}).Debug("Chat message processed")

	return &chat.MessageResponse{
		SessionID:          sessionID,
		Response:           reply.Response,
		Intent:             reply.Intent,
		Confidence:         reply.Confidence,
		Entities:           reply.Entities,
		Language:           lang,
		LanguageConfidence: langConfidence,
		LanguageDetected:   detected,
	}, nil
}

// mirror copies the turn a call recorded to the repository. Failures are
// logged only.
func (s *chatService) mirror(ctx context.Context, sessionID string, turn entity.ConversationTurn) {
	if !s.repo.Enabled() {
		return
	}

	if err := s.repo.SaveTurn(ctx, sessionID, turn); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("Failed to mirror conversation turn")
	}
}

// resolveLanguage honours an explicit language (reduced to its base code) and
// otherwise detects it, falling back to English below the detector threshold.
func (s *chatService) resolveLanguage(text, requested string) (string, float64, bool) {
	if requested != "" {
		return baseLanguage(requested), 1.0, false
	}

	code, confidence := s.detector.Detect(text)
	if confidence < s.detector.Threshold() {
		code = nlp.LanguageEnglish
	}
	return code, confidence, true
}

func baseLanguage(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(code))
	}
	base, _ := tag.Base()
	return base.String()
}

func (s *chatService) ProcessVoice(ctx context.Context, req chat.VoiceRequest) (*chat.VoiceResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if s.transcriber == nil {
		return nil, chat.ErrSpeechNotConfigured
	}

	if err := s.utils.ValidateAudioFile(req.AudioFile); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Rejected audio upload")
		return nil, chat.ErrInvalidAudioFile
	}

	payload, err := readUpload(req)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to read audio upload")
		return nil, chat.ErrInvalidAudioFile
	}

	hint := ""
	if req.Language != "" {
		hint = baseLanguage(req.Language)
	}

	start := time.Now()
	transcript, err := s.transcriber.Transcribe(ctx, req.AudioFile.Filename, payload, hint)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Transcription failed")
		return nil, chat.ErrTranscriptionFailed
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, chat.ErrEmptyTranscript
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"transcript":  transcript,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Voice transcript received")

	message, err := s.ProcessMessage(ctx, chat.MessageRequest{
		SessionID: req.SessionID,
		Text:      transcript,
		Language:  req.Language,
	}, entity.ChannelVoice)
	if err != nil {
		return nil, err
	}

	resp := &chat.VoiceResponse{
		MessageResponse: *message,
		Transcript:      transcript,
	}

	if req.Speak && s.synthesizer != nil {
		speech, err := s.synthesizer.Synthesize(ctx, message.Response)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Speech synthesis failed, returning text only")
		} else {
			resp.AudioBase64 = base64.StdEncoding.EncodeToString(speech)
			resp.AudioFormat = audio.AudioFormatMPEG
		}
	}

	return resp, nil
}

func readUpload(req chat.VoiceRequest) ([]byte, error) {
	file, err := req.AudioFile.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

func (s *chatService) TestNLPProcessing(ctx context.Context, req chat.NLPTestRequest) (*chat.NLPTestResponse, error) {
	start := time.Now()

	lang, langConfidence, _ := s.resolveLanguage(req.Text, req.Language)
	match := s.engine.Recognizer().Recognize(req.Text)
	candidates := s.engine.Generator().Candidates(match, lang)

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"intent":     match.Intent,
		"confidence": match.Confidence,
	}).Debug("NLP test processed")

	return &chat.NLPTestResponse{
		Match:              match,
		Candidates:         candidates,
		Language:           lang,
		LanguageConfidence: langConfidence,
		ProcessingTime:     time.Since(start).String(),
	}, nil
}

func (s *chatService) Intents(ctx context.Context) *chat.IntentsResponse {
	intents := nlp.AllIntents()
	names := make([]string, 0, len(intents))
	for _, intent := range intents {
		names = append(names, intent.String())
	}

	return &chat.IntentsResponse{
		Intents:   names,
		Languages: langdetect.SupportedLanguages(),
	}
}
