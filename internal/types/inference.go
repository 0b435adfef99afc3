// Package types defines the request and response shapes of the inference API.
package types

import "fmt"

// Task names accepted by the remote workers.
const (
	TaskTranslate  = "translate"
	TaskTranscribe = "transcribe"
	TaskSynthesize = "tts"
)

// TranslateRequest asks for a text translation between two languages.
type TranslateRequest struct {
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
	Text           string `json:"text"`
}

// Validate checks the request fields.
func (r *TranslateRequest) Validate() error {
	if r.SourceLanguage == "" {
		return fmt.Errorf("source_language is required")
	}
	if r.TargetLanguage == "" {
		return fmt.Errorf("target_language is required")
	}
	if r.Text == "" {
		return fmt.Errorf("text is required")
	}
	return nil
}

// TranslateResponse carries the translated text.
type TranslateResponse struct {
	RequestID      string `json:"request_id"`
	TranslatedText string `json:"translated_text"`
	Status         string `json:"status"`
}

// TranscribeRequest asks for a speech-to-text transcription of stored audio.
type TranscribeRequest struct {
	AudioURL string `json:"audio_url"`
	Language string `json:"language"`
	Adapter  string `json:"adapter,omitempty"`
}

// Validate checks the request fields.
func (r *TranscribeRequest) Validate() error {
	if r.AudioURL == "" {
		return fmt.Errorf("audio_url is required")
	}
	if r.Language == "" {
		return fmt.Errorf("language is required")
	}
	return nil
}

// TranscribeResponse carries the transcription.
type TranscribeResponse struct {
	RequestID          string `json:"request_id"`
	AudioTranscription string `json:"audio_transcription"`
	Status             string `json:"status"`
}

// SynthesizeRequest asks for text-to-speech audio.
type SynthesizeRequest struct {
	Text      string `json:"text"`
	SpeakerID string `json:"speaker_id,omitempty"`
}

// Validate checks the request fields.
func (r *SynthesizeRequest) Validate() error {
	if r.Text == "" {
		return fmt.Errorf("text is required")
	}
	return nil
}

// SynthesizeResponse carries a reference to the stored audio artifact.
type SynthesizeResponse struct {
	RequestID string `json:"request_id"`
	AudioKey  string `json:"audio_key"`
	Status    string `json:"status"`
}

// Worker output shapes. The service decodes normalized outputs into these and
// rejects anything that does not fit.

// TranslateOutput is the worker payload for translation jobs.
type TranslateOutput struct {
	TranslatedText string `json:"translated_text"`
}

// TranscribeOutput is the worker payload for speech-to-text jobs.
type TranscribeOutput struct {
	AudioTranscription string `json:"audio_transcription"`
}

// SynthesizeOutput is the worker payload for text-to-speech jobs.
type SynthesizeOutput struct {
	AudioBase64 string `json:"audio_base64"`
}
