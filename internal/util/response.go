// Package util holds small helpers shared across the HTTP layer.
package util

// Envelope is the JSON object shape every handler responds with.
type Envelope map[string]any

func Error(message string) Envelope {
	return Envelope{"error": message}
}

func Data(key string, value any) Envelope {
	return Envelope{key: value}
}

func Success() Envelope {
	return Envelope{"success": true}
}
