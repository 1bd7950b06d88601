package protocol

// Color is an RGB color as sent by the server for counters and arrows.
type Color struct {
	R int `yaml:"r"`
	G int `yaml:"g"`
	B int `yaml:"b"`
}

// AttachInfo points at the card a snapshot card is attached to.
type AttachInfo struct {
	PlayerID int    `yaml:"player"`
	Zone     string `yaml:"zone"`
	CardID   int    `yaml:"card"`
}

type CardCounterInfo struct {
	ID    int `yaml:"id"`
	Value int `yaml:"value"`
}

// CardInfo is the server's full description of one card.
type CardInfo struct {
	ID                  int               `yaml:"id"`
	Name                string            `yaml:"name"`
	X                   int               `yaml:"x"`
	Y                   int               `yaml:"y"`
	Counters            []CardCounterInfo `yaml:"counters,omitempty"`
	Tapped              bool              `yaml:"tapped,omitempty"`
	Attacking           bool              `yaml:"attacking,omitempty"`
	Color               string            `yaml:"color,omitempty"`
	PT                  string            `yaml:"pt,omitempty"`
	Annotation          string            `yaml:"annotation,omitempty"`
	FaceDown            bool              `yaml:"face_down,omitempty"`
	DestroyOnZoneChange bool              `yaml:"destroy_on_zone_change,omitempty"`
	DoesntUntap         bool              `yaml:"doesnt_untap,omitempty"`
	Attached            *AttachInfo       `yaml:"attached,omitempty"`
}

type CounterInfo struct {
	ID     int    `yaml:"id"`
	Name   string `yaml:"name"`
	Color  Color  `yaml:"color"`
	Radius int    `yaml:"radius"`
	Count  int    `yaml:"count"`
}

// ArrowInfo describes an arrow. An empty TargetZone means the arrow points at the target player.
type ArrowInfo struct {
	ID             int    `yaml:"id"`
	StartPlayerID  int    `yaml:"start_player"`
	StartZone      string `yaml:"start_zone"`
	StartCardID    int    `yaml:"start_card"`
	TargetPlayerID int    `yaml:"target_player"`
	TargetZone     string `yaml:"target_zone,omitempty"`
	TargetCardID   int    `yaml:"target_card,omitempty"`
	Color          Color  `yaml:"color"`
}

// ZoneInfo lists either a blind card count (Cards empty) or the full card list of a zone.
type ZoneInfo struct {
	Name      string     `yaml:"name"`
	CardCount int        `yaml:"card_count"`
	Cards     []CardInfo `yaml:"cards,omitempty"`
}

// PlayerInfo is the full-state snapshot of one player.
type PlayerInfo struct {
	ID       int           `yaml:"id"`
	Name     string        `yaml:"name"`
	Conceded bool          `yaml:"conceded,omitempty"`
	Zones    []ZoneInfo    `yaml:"zones"`
	Counters []CounterInfo `yaml:"counters,omitempty"`
	Arrows   []ArrowInfo   `yaml:"arrows,omitempty"`
}

// GameState is the snapshot sent on join and on resynchronisation.
type GameState struct {
	GameID        int          `yaml:"game_id"`
	LocalPlayerID int          `yaml:"local_player"`
	Players       []PlayerInfo `yaml:"players"`
}
