package transcriber

import (
	"context"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

type googleEngine struct {
	client *speech.Client
}

// NewGoogleEngine dials Cloud Speech-to-Text. An empty credentialsFile falls
// back to application default credentials.
func NewGoogleEngine(ctx context.Context, credentialsFile string) (Engine, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}
	return &googleEngine{client: client}, nil
}

func (e *googleEngine) Transcribe(ctx context.Context, req Request) (*Result, error) {
	resp, err := e.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   googleEncoding(req.Encoding),
			SampleRateHertz:            int32(req.SampleRate),
			LanguageCode:               req.LanguageCode,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: req.Audio},
		},
	})
	if err != nil {
		return nil, err
	}
	return resultFromResponse(resp, req.LanguageCode), nil
}

func (e *googleEngine) Close() error {
	return e.client.Close()
}

func googleEncoding(name string) speechpb.RecognitionConfig_AudioEncoding {
	switch strings.ToUpper(name) {
	case EncodingLinear16:
		return speechpb.RecognitionConfig_LINEAR16
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}

// resultFromResponse joins the top alternative of every result. Confidence
// comes from the first result only.
func resultFromResponse(resp *speechpb.RecognizeResponse, language string) *Result {
	if resp == nil || len(resp.GetResults()) == 0 {
		return nil
	}

	var parts []string
	for _, r := range resp.GetResults() {
		if alts := r.GetAlternatives(); len(alts) > 0 {
			parts = append(parts, alts[0].GetTranscript())
		}
	}

	res := &Result{
		Text:     strings.Join(parts, " "),
		Language: language,
	}

	first := resp.GetResults()[0]
	if alts := first.GetAlternatives(); len(alts) > 0 {
		res.Confidence = float64(alts[0].GetConfidence())
	}
	if lc := first.GetLanguageCode(); lc != "" {
		res.Language = lc
	}

	last := resp.GetResults()[len(resp.GetResults())-1]
	if end := last.GetResultEndTime(); end != nil {
		res.Duration = end.AsDuration().Seconds()
	}

	return res
}
