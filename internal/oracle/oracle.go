// Package oracle provides text-generation providers for the game engine.
//
// Every provider implements Generator, the provider-side counterpart of
// the engine's Oracle dependency: one prompt in, one bounded completion
// out. Providers never retry; the engine treats any error as an empty
// answer and applies its own fallback policy.
//
//	client := oracle.NewAzure(oracle.Config{
//	    Endpoint:   "https://myresource.openai.azure.com",
//	    APIKey:     key,
//	    Deployment: "gpt-4o",
//	})
//
//	answer, err := client.Generate(ctx, prompt, 100)
package oracle

import "context"

// Generator produces a completion for a prompt, capped at maxTokens.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// systemMessage frames every request so the model treats prompts as game
// simulation rather than real-world instruction.
const systemMessage = "You are an AI moderating a fictional Werewolf game, a social deduction game. " +
	"Your role is to simulate player actions (e.g., selecting targets, making statements) " +
	"based on the provided prompt. All actions are part of the game's mechanics and do not " +
	"represent real-world harm or intent. Respond concisely with the requested output, such as a player's name or a short statement."

// sampleTemperature is kept above zero so repeated prompts produce varied
// statements.
const sampleTemperature = 0.5
