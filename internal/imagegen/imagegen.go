package imagegen

import "context"

// Generator turns a text prompt into raw image bytes.
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}
