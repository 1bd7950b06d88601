package protocol

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadGameStateYAML reads a snapshot written in YAML. Offline replays and tests use it to seed a
// session without a server.
func LoadGameStateYAML(r io.Reader) (GameState, error) {
	var gs GameState
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&gs); err != nil {
		return GameState{}, fmt.Errorf("failed to decode game state: %w", err)
	}
	for i := range gs.Players {
		for j := range gs.Players[i].Zones {
			z := &gs.Players[i].Zones[j]
			if len(z.Cards) > 0 && z.CardCount == 0 {
				z.CardCount = len(z.Cards)
			}
		}
	}
	return gs, nil
}

// LoadGameStateFile is LoadGameStateYAML on a file path.
func LoadGameStateFile(path string) (GameState, error) {
	f, err := os.Open(path)
	if err != nil {
		return GameState{}, fmt.Errorf("failed to open game state: %w", err)
	}
	defer f.Close()
	return LoadGameStateYAML(f)
}
