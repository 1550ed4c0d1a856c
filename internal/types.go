package internal

import "time"

type TransliterationRequest struct {
	ID               string    `json:"id"`
	SourceText       string    `json:"source_text"`
	DetectedLanguage string    `json:"detected_language"`
	TargetLanguage   string    `json:"target_language,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}
