package assistant

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/MrJamesThe3rd/cedar/internal/transaction"
)

// Mode selects the model and tools used for a chat reply.
type Mode string

const (
	ModeFast   Mode = "fast"
	ModeSmart  Mode = "smart"
	ModeGenius Mode = "genius"
	ModeSearch Mode = "search"
)

const geniusThinkingBudget int32 = 32768

func Modes() []Mode {
	return []Mode{ModeFast, ModeSmart, ModeGenius, ModeSearch}
}

// ParseMode returns ModeFast for an empty string.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return ModeFast, nil
	}

	switch m {
	case ModeFast, ModeSmart, ModeGenius, ModeSearch:
		return m, nil
	}

	return "", fmt.Errorf("%w: chat mode %q", ErrInvalidOption, s)
}

// Source is a web page a search-grounded reply was based on.
type Source struct {
	Title string
	URI   string
}

// Reply is the assistant's answer. Proposal is set when the answer is a
// structured transaction rather than prose.
type Reply struct {
	Text     string
	Proposal *Proposal
	Sources  []Source
}

func (c *Client) modelFor(m Mode) string {
	switch m {
	case ModeSmart, ModeGenius:
		return c.cfg.SmartModel
	case ModeSearch:
		return c.cfg.SearchModel
	}

	return c.cfg.FastModel
}

// Chat answers prompt in the context of the user's transaction history.
func (c *Client) Chat(ctx context.Context, prompt string, txs []*transaction.Transaction, mode Mode) (*Reply, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	mode, err := ParseMode(string(mode))
	if err != nil {
		return nil, err
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction(txs), genai.RoleUser),
	}

	switch mode {
	case ModeGenius:
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(geniusThinkingBudget)}
	case ModeSearch:
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	model := c.modelFor(mode)
	c.log.Debug().Str("model", model).Str("mode", string(mode)).Int("history", len(txs)).Msg("chat request")

	resp, err := c.models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, upstream("chat", err)
	}

	return toReply(resp), nil
}

// AnalyzeReceipt reads a receipt image and usually returns a Proposal.
func (c *Client) AnalyzeReceipt(ctx context.Context, mimeType string, data []byte) (*Reply, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMedia, mimeType)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrUnsupportedMedia)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
				{Text: receiptPrompt()},
			},
		},
	}

	c.log.Debug().Str("model", c.cfg.ReceiptModel).Str("mime", mimeType).Int("bytes", len(data)).Msg("receipt request")

	resp, err := c.models.GenerateContent(ctx, c.cfg.ReceiptModel, contents, nil)
	if err != nil {
		return nil, upstream("analyze receipt", err)
	}

	return toReply(resp), nil
}

func toReply(resp *genai.GenerateContentResponse) *Reply {
	text := strings.TrimSpace(resp.Text())
	r := &Reply{Text: text, Sources: sources(resp)}

	if p, ok := ParseProposal(text); ok {
		r.Proposal = p
	}

	return r
}

func sources(resp *genai.GenerateContentResponse) []Source {
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}

	var out []Source

	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}

		out = append(out, Source{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}

	return out
}
