package util

type Envelope map[string]any

func Error(message string) Envelope {
	return Envelope{"error": message}
}

// ErrorWithDetails carries a field-level detail map alongside the message,
// used for validation failures.
func ErrorWithDetails(message string, details map[string]string) Envelope {
	return Envelope{"error": message, "details": details}
}

func Data(key string, value any) Envelope {
	return Envelope{key: value}
}
