package dto

// Envelope wraps every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// OK builds a success envelope. data may be nil.
func OK(message string, data interface{}) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Fail builds a failure envelope carrying machine-readable codes.
func Fail(message string, data interface{}, codes ...string) Envelope {
	return Envelope{Success: false, Message: message, Data: data, Errors: codes}
}
