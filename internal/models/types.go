package models

// ========================= Upstream Models =========================
// Shapes mirror the creature-data API so records can be passed through
// untouched. Nested descriptors are kept as the API sends them.

type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type TypeSlot struct {
	Slot int           `json:"slot,omitempty"`
	Type NamedResource `json:"type"`
}

type Stat struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort,omitempty"`
	Stat     NamedResource `json:"stat"`
}

type AbilitySlot struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden,omitempty"`
	Slot     int           `json:"slot,omitempty"`
}

type Artwork struct {
	FrontDefault string `json:"front_default,omitempty"`
}

type Sprites struct {
	FrontDefault string `json:"front_default,omitempty"`
	Other        *struct {
		OfficialArtwork *Artwork `json:"official-artwork,omitempty"`
	} `json:"other,omitempty"`
}

type Pokemon struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	Height         int           `json:"height,omitempty"`
	Weight         int           `json:"weight,omitempty"`
	BaseExperience int           `json:"base_experience,omitempty"`
	Sprites        Sprites       `json:"sprites"`
	Types          []TypeSlot    `json:"types"`
	Stats          []Stat        `json:"stats"`
	Abilities      []AbilitySlot `json:"abilities,omitempty"`
	// Computed server-side, not part of the upstream record.
	BST           int    `json:"bst,omitempty"`
	StrongestStat string `json:"strongest_stat,omitempty"`
}

// TypeNames flattens the type slots in slot order.
func (p *Pokemon) TypeNames() []string {
	if p == nil {
		return nil
	}
	out := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		if t.Type.Name != "" {
			out = append(out, t.Type.Name)
		}
	}
	return out
}

// BaseStat returns the named base stat and whether it was present.
func (p *Pokemon) BaseStat(name string) (int, bool) {
	if p == nil {
		return 0, false
	}
	for _, s := range p.Stats {
		if s.Stat.Name == name {
			return s.BaseStat, true
		}
	}
	return 0, false
}

// ImageURL prefers the official artwork over the small sprite.
func (p *Pokemon) ImageURL() string {
	if p == nil {
		return ""
	}
	if o := p.Sprites.Other; o != nil && o.OfficialArtwork != nil && o.OfficialArtwork.FrontDefault != "" {
		return o.OfficialArtwork.FrontDefault
	}
	return p.Sprites.FrontDefault
}

type PokemonList struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}

// ========================= Favorites =========================

type Favorite struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	ImageURL string   `json:"imageUrl"`
	Types    []string `json:"types"`
	AddedAt  int64    `json:"addedAt"` // unix millis
}

// WebSocket message structure
type WsMsg struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}
