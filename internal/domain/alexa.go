package domain

// Request types defined by the Alexa Skills Kit.
const (
	RequestTypeLaunch       = "LaunchRequest"
	RequestTypeIntent       = "IntentRequest"
	RequestTypeSessionEnded = "SessionEndedRequest"
)

// Intent names recognized by the skill.
const (
	IntentGeminiQuery = "GeminiQueryIntent"
	IntentHelp        = "AMAZON.HelpIntent"
	IntentCancel      = "AMAZON.CancelIntent"
	IntentStop        = "AMAZON.StopIntent"
)

// SlotQuestion is the slot carrying the user's spoken question.
const SlotQuestion = "question"

// RequestEnvelope is the inbound Alexa request. It is decoded once per
// request and never mutated.
type RequestEnvelope struct {
	Version string  `json:"version"`
	Session Session `json:"session"`
	Request Request `json:"request"`
}

type Session struct {
	New       bool   `json:"new,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

type Request struct {
	Type      string  `json:"type"`
	RequestID string  `json:"requestId,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
	Locale    string  `json:"locale,omitempty"`
	Intent    *Intent `json:"intent,omitempty"`
}

type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots,omitempty"`
}

type Slot struct {
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
}

// IntentName returns the intent name for IntentRequest envelopes and ""
// for every other request type.
func (e *RequestEnvelope) IntentName() string {
	if e.Request.Type != RequestTypeIntent || e.Request.Intent == nil {
		return ""
	}
	return e.Request.Intent.Name
}

// SlotValue returns the value of the named slot, or "" when the slot is
// absent.
func (e *RequestEnvelope) SlotValue(name string) string {
	if e.Request.Intent == nil {
		return ""
	}
	return e.Request.Intent.Slots[name].Value
}

// ResponseEnvelope is the outbound Alexa response. Optional blocks are
// omitted entirely rather than emitted as null.
type ResponseEnvelope struct {
	Version  string   `json:"version"`
	Response Response `json:"response"`
}

type Response struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Card             *Card         `json:"card,omitempty"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Card struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SpeechPayload is what a handler wants said and shown, prior to envelope
// serialization. Each handler invocation produces exactly one payload.
type SpeechPayload struct {
	Text        string
	CardTitle   string
	CardContent string
	EndSession  bool
}
