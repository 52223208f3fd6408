package eval

// TTSRequest is the payload for POST /tts.
type TTSRequest struct {
	Text  string `json:"text" validate:"required"`
	Voice string `json:"voice,omitempty"`
}
