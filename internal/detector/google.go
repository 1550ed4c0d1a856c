package detector

import (
	"context"
	"strings"
	"time"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// minGoogleConfidence rejects detections the API itself is unsure about;
// below this the orchestrator's Latin default is more trustworthy than a
// low-confidence guess.
const minGoogleConfidence = 0.5

// Google detects languages through the Cloud Translation API. Useful where
// the local statistical model misfires on very short OCR fragments.
type Google struct {
	credentials string
	timeout     time.Duration
}

// NewGoogle constructs the detector. credentials may be empty when ambient
// application-default credentials are configured.
func NewGoogle(credentials string) *Google {
	return &Google{credentials: credentials, timeout: 15 * time.Second}
}

func (g *Google) DetectISO(ctx context.Context, text string) (string, bool) {
	if text == "" {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	opts := []option.ClientOption{}
	if g.credentials != "" {
		opts = append(opts, option.WithCredentialsFile(g.credentials))
	}

	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return "", false
	}
	defer client.Close()

	detections, err := client.DetectLanguage(ctx, []string{text})
	if err != nil || len(detections) == 0 || len(detections[0]) == 0 {
		return "", false
	}

	best := detections[0][0]
	if best.Confidence < minGoogleConfidence || best.Language == language.Und {
		return "", false
	}

	base, conf := best.Language.Base()
	if conf == language.No {
		return "", false
	}
	return strings.ToLower(base.String()), true
}
