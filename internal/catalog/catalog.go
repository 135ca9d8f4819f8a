// Package catalog loads the static reference decks (evidence cards, method
// cards and clue tiles) from an embedded YAML file and exposes shuffle/draw
// accessors. The catalog itself is immutable after loading; every accessor
// returns fresh copies.
package catalog

import (
	_ "embed"
	"fmt"
	"math/rand"

	"gopkg.in/yaml.v3"

	"whodunit/internal/game"
)

//go:embed decks.yaml
var decksYAML []byte

type tileDef struct {
	Name    string   `yaml:"name"`
	Options []string `yaml:"options"`
}

type deckFile struct {
	Evidence     []string  `yaml:"evidence"`
	Methods      []string  `yaml:"methods"`
	SceneTiles   []tileDef `yaml:"sceneTiles"`
	CauseOfDeath tileDef   `yaml:"causeOfDeath"`
	Location     tileDef   `yaml:"location"`
}

// Catalog holds the parsed decks. It implements game.Catalog.
type Catalog struct {
	evidence []game.Card
	methods  []game.Card
	scenes   []game.Tile
	cause    game.Tile
	location game.Tile
}

// New loads the embedded decks. It fails fast on malformed or undersized
// data so a broken build never reaches the table.
func New() (*Catalog, error) {
	return Load(decksYAML)
}

// Load parses and validates deck data. Exposed separately so tests can feed
// in small fixtures.
func Load(data []byte) (*Catalog, error) {
	var file deckFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing decks: %w", err)
	}

	// A full table of 12 players consumes 4 cards per deck each.
	minDeck := game.MaxParticipants * game.HandSize
	if len(file.Evidence) < minDeck {
		return nil, fmt.Errorf("evidence deck has %d cards, need at least %d", len(file.Evidence), minDeck)
	}
	if len(file.Methods) < minDeck {
		return nil, fmt.Errorf("method deck has %d cards, need at least %d", len(file.Methods), minDeck)
	}
	// Enough scene tiles for the opening draw plus one replacement per
	// later round.
	minScenes := game.SceneTileCount + game.MaxRounds - 1
	if len(file.SceneTiles) < minScenes {
		return nil, fmt.Errorf("catalog has %d scene tiles, need at least %d", len(file.SceneTiles), minScenes)
	}

	c := &Catalog{
		evidence: buildDeck("E", file.Evidence),
		methods:  buildDeck("M", file.Methods),
	}
	for i, def := range file.SceneTiles {
		tile, err := buildTile(fmt.Sprintf("T%d", i+1), game.TileScene, def)
		if err != nil {
			return nil, err
		}
		c.scenes = append(c.scenes, tile)
	}
	var err error
	if c.cause, err = buildTile("cause", game.TileCauseOfDeath, file.CauseOfDeath); err != nil {
		return nil, err
	}
	if c.location, err = buildTile("location", game.TileLocation, file.Location); err != nil {
		return nil, err
	}
	return c, nil
}

func buildDeck(prefix string, names []string) []game.Card {
	cards := make([]game.Card, len(names))
	for i, name := range names {
		cards[i] = game.Card{ID: fmt.Sprintf("%s%d", prefix, i+1), Name: name}
	}
	return cards
}

func buildTile(id string, kind game.TileKind, def tileDef) (game.Tile, error) {
	if def.Name == "" || len(def.Options) < 2 {
		return game.Tile{}, fmt.Errorf("tile %q needs a name and at least two options", id)
	}
	return game.Tile{
		ID:      id,
		Name:    def.Name,
		Kind:    kind,
		Options: append([]string(nil), def.Options...),
	}, nil
}

// ShuffledEvidenceDeck returns a fresh, uniformly shuffled copy of the
// evidence deck.
func (c *Catalog) ShuffledEvidenceDeck() []game.Card {
	return shuffledCards(c.evidence)
}

// ShuffledMethodDeck returns a fresh, uniformly shuffled copy of the method
// deck.
func (c *Catalog) ShuffledMethodDeck() []game.Card {
	return shuffledCards(c.methods)
}

// RandomSceneTiles draws up to n distinct scene tiles, skipping any whose id
// appears in excludeIDs.
func (c *Catalog) RandomSceneTiles(n int, excludeIDs []string) []game.Tile {
	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	var pool []game.Tile
	for _, t := range c.scenes {
		if !excluded[t.ID] {
			pool = append(pool, copyTile(t))
		}
	}
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if n >= 0 && n < len(pool) {
		pool = pool[:n]
	}
	return pool
}

// CauseOfDeathTile returns the fixed cause-of-death tile.
func (c *Catalog) CauseOfDeathTile() game.Tile {
	return copyTile(c.cause)
}

// LocationTile returns the fixed location tile.
func (c *Catalog) LocationTile() game.Tile {
	return copyTile(c.location)
}

// AllTiles returns every tile in the catalog: all scene tiles plus the two
// fixed ones.
func (c *Catalog) AllTiles() []game.Tile {
	out := make([]game.Tile, 0, len(c.scenes)+2)
	for _, t := range c.scenes {
		out = append(out, copyTile(t))
	}
	out = append(out, copyTile(c.cause), copyTile(c.location))
	return out
}

func shuffledCards(deck []game.Card) []game.Card {
	out := append([]game.Card(nil), deck...)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func copyTile(t game.Tile) game.Tile {
	t.Options = append([]string(nil), t.Options...)
	return t
}
