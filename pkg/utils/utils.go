package utils

import (
	"crypto/rand"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateAudioFile(file *multipart.FileHeader) error
}

type utils struct {
	maxFileSize int64
}

func New() IUtils {
	return &utils{
		maxFileSize: 25 * 1024 * 1024,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

var audioExtensions = []string{".mp3", ".mp4", ".mpeg", ".mpga", ".m4a", ".wav", ".webm", ".ogg", ".flac"}

// ValidateAudioFile accepts the formats the transcription backend understands.
func (u *utils) ValidateAudioFile(file *multipart.FileHeader) error {
	if file == nil {
		return errors.New("no file uploaded")
	}

	if file.Size > u.maxFileSize {
		return errors.New("file size exceeds limit")
	}

	contentType := file.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "audio/") || strings.HasPrefix(contentType, "video/webm") {
		return nil
	}

	name := strings.ToLower(file.Filename)
	for _, ext := range audioExtensions {
		if strings.HasSuffix(name, ext) {
			return nil
		}
	}

	return errors.New("uploaded file is not an audio file")
}
