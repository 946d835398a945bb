package live

// Wire frames for the bidirectional realtime endpoint. Field names follow the
// remote JSON contract, so everything here stays lowerCamelCase.

type clientMessage struct {
	Setup         *setupPayload  `json:"setup,omitempty"`
	ClientContent *clientContent `json:"clientContent,omitempty"`
}

type setupPayload struct {
	Model string `json:"model"`
}

type clientContent struct {
	Turns        []contentTurn `json:"turns,omitempty"`
	TurnComplete bool          `json:"turnComplete"`
}

type contentTurn struct {
	Role  string        `json:"role,omitempty"`
	Parts []contentPart `json:"parts,omitempty"`
}

type contentPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type serverMessage struct {
	SetupComplete *struct{}      `json:"setupComplete,omitempty"`
	ServerContent *serverContent `json:"serverContent,omitempty"`
}

type serverContent struct {
	ModelTurn    *contentTurn `json:"modelTurn,omitempty"`
	TurnComplete bool         `json:"turnComplete,omitempty"`
}
