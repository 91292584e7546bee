package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jwebster45206/chronicler/pkg/game"
)

// validate checks a captured model payload against the story contract
// and previews how it would reconcile against fresh player stats. Handy
// when tuning prompts: pipe a raw generateContent response text in and
// see exactly what the engine would make of it.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <payload.json|->\n", os.Args[0])
		os.Exit(1)
	}

	raw, err := readPayload(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read payload: %v\n", err)
		os.Exit(1)
	}

	part, err := game.DecodeStoryPart(string(raw))
	if err != nil {
		if errors.Is(err, game.ErrMalformedResponse) {
			fmt.Fprintf(os.Stderr, "Payload rejected: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Decode failed: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Println("Payload is valid.")
	printPart(part)

	stats := game.Reconcile(game.NewPlayerStats(), part)
	fmt.Println("\nReconciled against fresh stats:")
	fmt.Printf("  HP: %d/%d  Gold: %d\n", stats.HP, stats.MaxHP, stats.Gold)
	fmt.Printf("  Inventory: %d item(s), Organizations: %d\n", len(stats.Inventory), len(stats.Entities))
}

func readPayload(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(arg)
}

func printPart(part *game.RawStoryPart) {
	fmt.Printf("  Scene: %.60s...\n", part.SceneDescription)
	fmt.Printf("  Choices: %d\n", len(part.Choices))
	for _, c := range part.Choices {
		fmt.Printf("    - %s\n", c.Text)
	}
	if part.IsGameOver {
		fmt.Printf("  Game over: %s\n", part.GameOverReason)
	}
	if part.Enemy != nil {
		fmt.Printf("  Enemy: %s (HP %d)\n", part.Enemy.Name, part.Enemy.HP)
	}
	fmt.Printf("  Stats change: HP %+d, Gold %+d\n", part.PlayerStatsChange.HP, part.PlayerStatsChange.Gold)
	fmt.Printf("  Inventory: +%d/-%d, Organizations: ~%d/-%d\n",
		len(part.InventoryChanges.Added), len(part.InventoryChanges.Removed),
		len(part.EntityChanges.Updated), len(part.EntityChanges.Removed))
}
