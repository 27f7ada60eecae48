package skill

import "github.com/seu-repo/alexa-gemini-skill/internal/domain"

const (
	envelopeVersion = "1.0"
	speechTypePlain = "PlainText"
	cardTypeSimple  = "Simple"
)

// BuildResponse serializes a speech payload into the Alexa response
// envelope. The mapping is total and lossless: every payload maps to
// exactly one well-formed envelope, and empty optional blocks are omitted
// rather than emitted as null.
func BuildResponse(p *domain.SpeechPayload) *domain.ResponseEnvelope {
	resp := domain.Response{ShouldEndSession: p.EndSession}

	if p.Text != "" {
		resp.OutputSpeech = &domain.OutputSpeech{
			Type: speechTypePlain,
			Text: p.Text,
		}
	}

	if p.CardTitle != "" || p.CardContent != "" {
		resp.Card = &domain.Card{
			Type:    cardTypeSimple,
			Title:   p.CardTitle,
			Content: p.CardContent,
		}
	}

	return &domain.ResponseEnvelope{
		Version:  envelopeVersion,
		Response: resp,
	}
}
