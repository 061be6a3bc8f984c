package assistant

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/cedar/internal/currency"
	"github.com/MrJamesThe3rd/cedar/internal/transaction"
)

// Proposal is a transaction extracted by the model. It is untrusted until a
// person confirms it and it passes admission.
type Proposal struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Type     string  `json:"type"`
	Category string  `json:"category"`
}

// Candidate converts the proposal into admission input. Every field is
// checked later by transaction.Service.Admit.
func (p Proposal) Candidate() transaction.Candidate {
	return transaction.NewCandidate(p.Amount, p.Currency, p.Type, p.Category)
}

// ConfirmationMessage is shown once a confirmed proposal is admitted.
func ConfirmationMessage(c transaction.Category) string {
	return fmt.Sprintf("Great! I've added the transaction for %s.", c)
}

type proposalEnvelope struct {
	ParsedTransaction *struct {
		Amount   flexAmount `json:"amount"`
		Currency string     `json:"currency"`
		Type     string     `json:"type"`
		Category string     `json:"category"`
	} `json:"parsedTransaction"`
}

// flexAmount accepts 895000 as well as "895,000".
type flexAmount float64

func (a *flexAmount) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		v, err := currency.ParseAmount(s)
		if err != nil {
			return err
		}

		*a = flexAmount(v)

		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}

	*a = flexAmount(f)

	return nil
}

// ParseProposal detects a {"parsedTransaction": {...}} reply. Markdown code
// fences around the object are tolerated; any other surrounding text is not.
func ParseProposal(text string) (*Proposal, bool) {
	s := stripFences(text)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return nil, false
	}

	var env proposalEnvelope
	if err := json.Unmarshal([]byte(s), &env); err != nil || env.ParsedTransaction == nil {
		return nil, false
	}

	pt := env.ParsedTransaction

	return &Proposal{
		Amount:   float64(pt.Amount),
		Currency: pt.Currency,
		Type:     pt.Type,
		Category: pt.Category,
	}, true
}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		idx := strings.Index(s, "\n")
		if idx == -1 {
			return s
		}

		s = s[idx+1:]

		if end := strings.LastIndex(s, "```"); end != -1 {
			s = s[:end]
		}
	}

	return strings.TrimSpace(s)
}
