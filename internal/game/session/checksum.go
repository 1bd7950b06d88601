package session

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/magefree/mage-client-go/internal/game/protocol"
)

// Checksum is a digest of the visible game state. Two clients that applied the same messages
// compute the same checksum, which makes divergence from the server easy to spot.
func Checksum(gs protocol.GameState) string {
	sum := sha256.Sum256([]byte(canonicalState(gs)))
	return hex.EncodeToString(sum[:])
}

// Checksum digests the session's current state.
func (s *Session) Checksum() string {
	return Checksum(s.GameState())
}

// canonicalState writes the state in a fixed textual form. Players keep the session order (by id)
// and cards keep zone order, which is meaningful; counters and arrows are already sorted by id.
func canonicalState(gs protocol.GameState) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "GAME:%d\n", gs.GameID)
	for _, p := range gs.Players {
		fmt.Fprintf(&buf, "PLAYER:%d|%s|%t\n", p.ID, p.Name, p.Conceded)
		for _, z := range p.Zones {
			fmt.Fprintf(&buf, "  ZONE:%s|%d\n", z.Name, z.CardCount)
			for _, c := range z.Cards {
				fmt.Fprintf(&buf, "    CARD:%d|%s|%d|%d|%t|%t|%t|%t|%s|%s|%s\n",
					c.ID, c.Name, c.X, c.Y,
					c.Tapped, c.Attacking, c.FaceDown, c.DoesntUntap,
					c.Color, c.PT, c.Annotation,
				)
				for _, cc := range c.Counters {
					fmt.Fprintf(&buf, "      COUNTER:%d=%d\n", cc.ID, cc.Value)
				}
				if a := c.Attached; a != nil {
					fmt.Fprintf(&buf, "      ATTACHED:%d|%s|%d\n", a.PlayerID, a.Zone, a.CardID)
				}
			}
		}
		for _, c := range p.Counters {
			fmt.Fprintf(&buf, "  COUNTER:%d|%s|%d\n", c.ID, c.Name, c.Count)
		}
		for _, a := range p.Arrows {
			fmt.Fprintf(&buf, "  ARROW:%d|%d|%s|%d|%d|%s|%d\n",
				a.ID, a.StartPlayerID, a.StartZone, a.StartCardID,
				a.TargetPlayerID, a.TargetZone, a.TargetCardID,
			)
		}
	}
	return buf.String()
}
