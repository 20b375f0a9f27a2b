package model

// GenerateRequest represents a batch password generation request on the wire.
// Pointer fields allow distinguishing between missing (nil -> configured default)
// and an explicit value, which is validated rather than replaced.
type GenerateRequest struct {
	Count      *int            `json:"count"`
	Length     *int            `json:"length"`
	CostFactor *int            `json:"costFactor"`
	Options    GenerateOptions `json:"options"`
}

// GenerateOptions selects character classes and easy-to-read filtering.
type GenerateOptions struct {
	Uppercase  *bool `json:"uppercase"`
	Lowercase  *bool `json:"lowercase"`
	Numbers    *bool `json:"numbers"`
	Special    *bool `json:"special"`
	EasyToRead *bool `json:"easyToRead"`
}

// GenerationRequest is a fully resolved batch request. Field names in
// validation errors follow the json tags.
type GenerationRequest struct {
	Count      int  `json:"count" validate:"min=1,max=100"`
	Length     int  `json:"length" validate:"min=8,max=32"`
	CostFactor int  `json:"costFactor" validate:"min=10,max=14"`
	Uppercase  bool `json:"uppercase"`
	Lowercase  bool `json:"lowercase"`
	Numbers    bool `json:"numbers"`
	Special    bool `json:"special"`
	EasyToRead bool `json:"easyToRead"`
}

// GeneratedPassword is one plaintext password and its bcrypt hash.
type GeneratedPassword struct {
	Password string `json:"password"`
	Hash     string `json:"hash"`
}

// Notice tells the caller about a substitution made on its behalf.
// It is informational and never an error.
type Notice struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BatchResult is the outcome of a successful batch.
type BatchResult struct {
	BatchID   string
	Passwords []GeneratedPassword
	Notices   []Notice
}

// GenerateResponse represents a batch password generation response.
type GenerateResponse struct {
	BatchID            string              `json:"batchId,omitempty"`
	GeneratedPasswords []GeneratedPassword `json:"generatedPasswords"`
	Notices            []Notice            `json:"notices,omitempty"`
}
