// Package gemini provides Google Gemini implementations of the embedding,
// question answering and token counting services.
package gemini

import (
	"context"
	"strings"

	"github.com/vsalmi/tapio"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// searchLimit is how many chunks are retrieved as context for one question.
const searchLimit = 8

// Ensure Asker implements tapio.Asker at compile time.
var _ tapio.Asker = (*Asker)(nil)

// Asker answers questions about crawled site content using Google Gemini.
// Relevant chunks are retrieved by semantic search and passed to the model
// as context.
type Asker struct {
	client *genai.Client
	search tapio.SearchService
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client, search tapio.SearchService) *Asker {
	return &Asker{client: client, search: search}
}

// Ask answers a natural language question about a site's content.
func (a *Asker) Ask(ctx context.Context, siteKey, question string) (string, error) {
	if siteKey == "" {
		return "", tapio.Errorf(tapio.EINVALID, "site key required")
	}
	if question == "" {
		return "", tapio.Errorf(tapio.EINVALID, "question required")
	}

	results, err := a.search.Search(ctx, question, tapio.SearchOptions{
		SiteKey: siteKey,
		Limit:   searchLimit,
	})
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", tapio.Errorf(tapio.ENOTFOUND, "no indexed content found for site %q", siteKey)
	}

	prompt := BuildUserPrompt(results, question)
	config := BuildConfig()

	result, err := a.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", tapio.Errorf(tapio.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about public service websites. Answer based only on the provided excerpts and cite the source URLs you used. If the answer is not in the excerpts, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing retrieved excerpts and
// the question.
func BuildUserPrompt(results []tapio.SearchResult, question string) string {
	var sb strings.Builder
	sb.WriteString("<excerpts>\n")
	sb.WriteString(tapio.FormatChunks(results))
	sb.WriteString("\n</excerpts>\n\n")
	sb.WriteString("Question: ")
	sb.WriteString(question)
	return sb.String()
}
