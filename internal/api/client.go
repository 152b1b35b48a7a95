package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pefman/pokedex-duel/internal/models"
)

const DefaultBaseURL = "https://pokeapi.co/api/v2"

// StatusError is returned when the upstream answers with a non-200 status.
type StatusError struct {
	Code int
	Path string
}

func (e *StatusError) Error() string { return fmt.Sprintf("api status %d for %s", e.Code, e.Path) }

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// Config holds API configuration
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type cacheEntry struct {
	at   time.Time
	list []models.NamedResource
}

// Client talks to the creature-data API. Static lists (types, abilities)
// are cached for CacheTTL to cut redundant calls.
type Client struct {
	config Config
	http   *http.Client

	cacheMu sync.RWMutex
	cache   map[string]cacheEntry
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &Client{
		config: cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		cache:  map[string]cacheEntry{},
	}
}

func (c *Client) apiGet(ctx context.Context, path string, out interface{}) error {
	base := strings.TrimRight(c.config.BaseURL, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, Path: path}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// ListPokemon returns one page of the species index.
func (c *Client) ListPokemon(ctx context.Context, limit, offset int) (*models.PokemonList, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	var out models.PokemonList
	if err := c.apiGet(ctx, "/pokemon?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPokemon fetches a full record by name or numeric id.
func (c *Client) GetPokemon(ctx context.Context, nameOrID string) (*models.Pokemon, error) {
	key := strings.ToLower(strings.TrimSpace(nameOrID))
	if key == "" {
		return nil, errors.New("empty pokemon name")
	}
	var out models.Pokemon
	if err := c.apiGet(ctx, "/pokemon/"+url.PathEscape(key), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTypes returns the battle types, without the "unknown" and "shadow"
// placeholders the API also lists.
func (c *Client) ListTypes(ctx context.Context) ([]models.NamedResource, error) {
	all, err := c.cachedList(ctx, "/type")
	if err != nil {
		return nil, err
	}
	out := make([]models.NamedResource, 0, len(all))
	for _, t := range all {
		if t.Name == "unknown" || t.Name == "shadow" {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// ListAbilities returns the first limit abilities.
func (c *Client) ListAbilities(ctx context.Context, limit int) ([]models.NamedResource, error) {
	if limit <= 0 {
		limit = 100
	}
	return c.cachedList(ctx, "/ability?limit="+strconv.Itoa(limit))
}

func (c *Client) cachedList(ctx context.Context, path string) ([]models.NamedResource, error) {
	// Check cache first
	c.cacheMu.RLock()
	if e, ok := c.cache[path]; ok && time.Since(e.at) < c.config.CacheTTL {
		result := make([]models.NamedResource, len(e.list))
		copy(result, e.list)
		c.cacheMu.RUnlock()
		return result, nil
	}
	c.cacheMu.RUnlock()

	var page models.PokemonList
	if err := c.apiGet(ctx, path, &page); err != nil {
		return nil, err
	}

	c.cacheMu.Lock()
	stored := make([]models.NamedResource, len(page.Results))
	copy(stored, page.Results)
	c.cache[path] = cacheEntry{at: time.Now(), list: stored}
	c.cacheMu.Unlock()

	return page.Results, nil
}
