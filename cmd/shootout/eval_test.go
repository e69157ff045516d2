package main

import (
	"strings"
	"testing"

	"github.com/sjoves/poker-shootout/poker"
)

func TestParseCardsAcceptsBothForms(t *testing.T) {
	cards, err := parseCards([]string{"Ah", "K-spades", "10d"})
	if err != nil {
		t.Fatalf("parseCards: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	if cards[0].ID != "A-hearts" || cards[1].ID != "K-spades" || cards[2].ID != "10-diamonds" {
		t.Fatalf("unexpected IDs: %v %v %v", cards[0].ID, cards[1].ID, cards[2].ID)
	}
}

func TestParseCardsRejectsDuplicates(t *testing.T) {
	_, err := parseCards([]string{"Ah", "A-hearts"})
	if err == nil {
		t.Fatal("expected duplicate card error")
	}
	if !strings.Contains(err.Error(), "duplicate card") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseCardsRejectsGarbage(t *testing.T) {
	_, err := parseCards([]string{"Ah", "banana"})
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRenderEvaluationRoyalFlush(t *testing.T) {
	cards, err := parseCards([]string{"Ah", "Kh", "Qh", "Jh", "10h"})
	if err != nil {
		t.Fatalf("parseCards: %v", err)
	}

	out := renderEvaluation(poker.Evaluate(cards))
	for _, want := range []string{"Royal Flush", "Base points: 4000", "Value bonus: 60", "Total:       4060"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEvaluationShortHand(t *testing.T) {
	cards, err := parseCards([]string{"2c", "7d"})
	if err != nil {
		t.Fatalf("parseCards: %v", err)
	}

	out := renderEvaluation(poker.Evaluate(cards))
	if !strings.Contains(out, "High Card") {
		t.Errorf("short hands degrade to high card, got:\n%s", out)
	}
	if !strings.Contains(out, "Total:       29") {
		t.Errorf("expected 20 base + 9 values, got:\n%s", out)
	}
}
