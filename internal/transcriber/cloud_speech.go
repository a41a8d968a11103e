package transcriber

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	speech "cloud.google.com/go/speech/apiv2"
	"cloud.google.com/go/speech/apiv2/speechpb"
	"google.golang.org/api/option"
)

const speechAPIEndpointPort = 443

type CloudSpeechConfig struct {
	ProjectID       string
	CredentialsJSON string
	Language        string
	Location        string
	Model           string
}

// CloudSpeechTranscriber 以 Google Cloud Speech-to-Text v2 實作 Transcriber
type CloudSpeechTranscriber struct {
	projectID       string
	credentialsJSON string
	language        string
	location        string
	model           string
}

func NewCloudSpeechTranscriber(cfg CloudSpeechConfig) *CloudSpeechTranscriber {
	location := strings.TrimSpace(cfg.Location)
	if location == "" {
		location = "global"
	}

	return &CloudSpeechTranscriber{
		projectID:       cfg.ProjectID,
		credentialsJSON: cfg.CredentialsJSON,
		language:        cfg.Language,
		location:        location,
		model:           strings.TrimSpace(cfg.Model),
	}
}

func (t *CloudSpeechTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string, onProgress ProgressFunc) (Result, error) {
	slog.Info("starting cloud speech recognition", "location", t.location, "language", t.language, "model", t.model, "audio_bytes", len(audio), "mime_type", mimeType)

	opts := []option.ClientOption{}
	if t.credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(t.credentialsJSON)))
	}
	if t.location != "global" {
		opts = append(opts, option.WithEndpoint(fmt.Sprintf("%s-speech.googleapis.com:%d", t.location, speechAPIEndpointPort)))
	}

	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return Result{}, fmt.Errorf("create speech client: %w", err)
	}
	defer client.Close()

	recognizer := fmt.Sprintf("projects/%s/locations/%s/recognizers/_", t.projectID, t.location)
	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Recognizer: recognizer,
		Config: &speechpb.RecognitionConfig{
			Model:         t.model,
			LanguageCodes: []string{t.language},
			DecodingConfig: &speechpb.RecognitionConfig_AutoDecodingConfig{
				AutoDecodingConfig: &speechpb.AutoDetectDecodingConfig{},
			},
		},
		AudioSource: &speechpb.RecognizeRequest_Content{Content: audio},
	})
	if err != nil {
		return Result{}, fmt.Errorf("recognize: %w", err)
	}

	var (
		parts      []string
		confidence float64
	)
	for _, result := range resp.GetResults() {
		alts := result.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		best := alts[0]
		parts = append(parts, best.GetTranscript())

		// 回報的信心值（0-100）單調不降
		if c := float64(best.GetConfidence()) * 100; c > confidence {
			confidence = c
		}
		if onProgress != nil {
			onProgress(strings.Join(parts, " "), confidence)
		}
	}

	final := Result{
		Text:       strings.Join(parts, " "),
		Confidence: confidence,
	}
	slog.Info("cloud speech recognition finished", "segments", len(parts), "confidence", final.Confidence)
	return final, nil
}
