package driven

import "context"

// ModelDriver sends queries to a language model.
//
// Implementations may include:
//   - OpenAI (GPT-4, GPT-3.5)
//   - Anthropic (Claude)
//   - Ollama (local models)
type ModelDriver interface {
	Driver

	// Query sends input to the model and returns its response.
	Query(ctx context.Context, input string) (string, error)
}
