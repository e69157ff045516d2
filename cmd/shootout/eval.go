package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sjoves/poker-shootout/internal/tui"
	"github.com/sjoves/poker-shootout/poker"
)

var categoryStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FFD700"))

type EvalCmd struct {
	Cards []string `kong:"arg,help='Cards to score, compact (\"Ah Kh Qh Jh 10h\") or ID form (\"A-hearts\")'"`
}

func (c *EvalCmd) Run() error {
	cards, err := parseCards(c.Cards)
	if err != nil {
		return err
	}

	fmt.Println(renderEvaluation(poker.Evaluate(cards)))
	return nil
}

// parseCards parses card strings and rejects duplicates, since no deck
// holds the same physical card twice
func parseCards(raw []string) ([]poker.Card, error) {
	seen := make(map[string]bool)
	cards := make([]poker.Card, 0, len(raw))
	for _, s := range raw {
		card, err := poker.ParseCard(s)
		if err != nil {
			return nil, err
		}
		if seen[card.ID] {
			return nil, fmt.Errorf("duplicate card: %s", card.ID)
		}
		seen[card.ID] = true
		cards = append(cards, card)
	}
	return cards, nil
}

func renderEvaluation(hr poker.HandResult) string {
	cells := make([]string, 0, len(hr.Cards))
	for _, card := range hr.Cards {
		label := fmt.Sprintf("%-3s", card)
		if card.IsRed() {
			cells = append(cells, tui.RedCardStyle.Render(label))
		} else {
			cells = append(cells, tui.BlackCardStyle.Render(label))
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(cells, " "))
	b.WriteString("\n")
	b.WriteString(categoryStyle.Render(hr.Category.String()))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Base points: %d\n", hr.Category.BasePoints())
	fmt.Fprintf(&b, "Value bonus: %d\n", hr.ValueBonus)
	fmt.Fprintf(&b, "Total:       %d", hr.TotalPoints)
	return b.String()
}
