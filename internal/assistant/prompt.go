package assistant

import (
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/cedar/internal/currency"
	"github.com/MrJamesThe3rd/cedar/internal/transaction"
)

const personaTemplate = `You are "Cedar," a friendly AI financial assistant focused on helping users in Lebanon manage their personal budget, track transactions, and get practical savings advice.

## 1. IDENTITY AND EXCHANGE RATE
* Your tone is professional, practical and empathetic, and you know the Lebanese economic environment well.
* Always use the FIXED EXCHANGE RATE of 1 USD = %s LBP.
* Present budget figures in USD first and include the LBP value alongside.

## 2. TRANSACTION TRACKING
When the user describes a transaction, extract it and present it back for confirmation.
* Required fields: amount, currency (%s), type (INCOME or EXPENSE) and category.
* EXPENSE categories: %s.
* INCOME categories: %s.
* When you identify a transaction respond ONLY with a JSON object with the key "parsedTransaction" and no other text.
  Example input: "I bought groceries for 895,000 LBP"
  Required response:
  {"parsedTransaction": {"amount": 895000, "currency": "LBP", "type": "EXPENSE", "category": "Groceries"}}
If the message is conversational and not a transaction, answer naturally.

## 3. BUDGET AND SAVINGS
* For a budget summary, report total income, total expenses, the top 3 spending categories and the remaining budget, all in USD.
* For savings questions, offer specific what-if scenarios for the Lebanese context such as reducing generator usage or cutting imported groceries.
* Suggest re-allocating between categories rather than telling the user they overspent.`

const receiptTemplate = `You are an expert receipt reader for Lebanese users. Analyze this receipt image.
Identify the total amount spent and pick the closest expense category from: %s.
If you identify a transaction, respond ONLY with a JSON object with the key "parsedTransaction", for example:
{"parsedTransaction": {"amount": 150000, "currency": "LBP", "type": "EXPENSE", "category": "Groceries"}}
The currency is usually LBP or USD.
If the image is not a receipt or cannot be read, reply with a short conversational error message.`

const noHistory = "The user has not logged any transactions yet."

// SystemInstruction returns the persona followed by the user's transaction history.
func SystemInstruction(txs []*transaction.Transaction) string {
	return persona() + "\n\n" + historyContext(txs)
}

func persona() string {
	currencies := make([]string, 0, 3)
	for _, c := range currency.All() {
		currencies = append(currencies, string(c))
	}

	return fmt.Sprintf(personaTemplate,
		strings.TrimPrefix(currency.FormatLBP(currency.LBPPerUSD), "LBP "),
		strings.Join(currencies, ", "),
		joinCategories(transaction.TypeExpense),
		joinCategories(transaction.TypeIncome),
	)
}

func receiptPrompt() string {
	return fmt.Sprintf(receiptTemplate, joinCategories(transaction.TypeExpense))
}

func historyContext(txs []*transaction.Transaction) string {
	if len(txs) == 0 {
		return noHistory
	}

	var sb strings.Builder

	sb.WriteString("Here is the user's transaction history:")

	for _, tx := range txs {
		fmt.Fprintf(&sb, "\n- %s: %s - %s ($%.2f USD) on %s",
			tx.Type,
			tx.Category,
			currency.FormatAmount(tx.Amount, tx.Currency),
			tx.USD(),
			tx.Date.Format("2006-01-02"),
		)
	}

	return sb.String()
}

func joinCategories(t transaction.Type) string {
	cs := transaction.Categories(t)

	labels := make([]string, len(cs))
	for i, c := range cs {
		labels[i] = string(c)
	}

	return strings.Join(labels, ", ")
}
