package http

// ErrorResponse is the flat error body. Error is a stable code; the other
// members carry diagnostics and are omitted when empty.
type ErrorResponse struct {
	Error  string `json:"error"`
	Hint   string `json:"hint,omitempty"`
	Detail string `json:"detail,omitempty"`
	Raw    string `json:"raw,omitempty"`
}

const (
	codeInvalidJSON      = "invalid_json"
	codeInvalidForm      = "invalid_form"
	codeMissingSign      = `missing "sign"`
	codeInvalidDate      = `invalid "date"`
	codeMethodNotAllowed = "method_not_allowed"
	codeNotFound         = "not_found"
	codePayloadTooLarge  = "payload_too_large"
	codeUpstream         = "openai_error"
	codeInvalidModelJSON = "invalid_json_from_model"
	codeFailed           = "failed_to_generate"
)

const (
	hintInvalidJSON = `Use Content-Type: application/json e um corpo como {"sign":"aries","sign_label":"Áries"}`
	hintInvalidForm = "Use pares chave=valor com percent-encoding válido"
	hintMissingSign = `Envie {"sign":"aries"} em JSON`
	hintInvalidDate = `Use "date" no formato AAAA-MM-DD, ex.: "2024-01-01"`
)
