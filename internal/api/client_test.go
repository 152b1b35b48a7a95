package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func newUpstream(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/pokemon/pikachu", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":25,"name":"pikachu","types":[{"slot":1,"type":{"name":"electric"}}],
			"stats":[{"base_stat":35,"stat":{"name":"hp"}},{"base_stat":90,"stat":{"name":"speed"}}]}`)
	})
	mux.HandleFunc("/pokemon", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		fmt.Fprintf(w, `{"count":1302,"next":null,"previous":null,"results":[{"name":"limit-%s-offset-%s"}]}`, q.Get("limit"), q.Get("offset"))
	})
	mux.HandleFunc("/type", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		fmt.Fprint(w, `{"count":4,"results":[{"name":"normal"},{"name":"fire"},{"name":"unknown"},{"name":"shadow"}]}`)
	})
	mux.HandleFunc("/ability", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"count":1,"results":[{"name":"limit-%s"}]}`, r.URL.Query().Get("limit"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGetPokemonNormalizesName(t *testing.T) {
	var hits int32
	srv := newUpstream(t, &hits)
	c := NewClient(Config{BaseURL: srv.URL})
	p, err := c.GetPokemon(context.Background(), "  PikaChu ")
	if err != nil {
		t.Fatalf("GetPokemon failed: %v", err)
	}
	if p.ID != 25 || len(p.Types) != 1 || p.Types[0].Type.Name != "electric" {
		t.Fatalf("unexpected record: %+v", p)
	}
	if v, ok := p.BaseStat("speed"); !ok || v != 90 {
		t.Fatalf("speed = %d (%v)", v, ok)
	}
}

func TestGetPokemonNotFound(t *testing.T) {
	var hits int32
	srv := newUpstream(t, &hits)
	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.GetPokemon(context.Background(), "missingno")
	if !IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
	if _, err := c.GetPokemon(context.Background(), "   "); err == nil || IsNotFound(err) {
		t.Fatalf("empty name should fail locally, got %v", err)
	}
}

func TestListPokemonDefaults(t *testing.T) {
	var hits int32
	srv := newUpstream(t, &hits)
	c := NewClient(Config{BaseURL: srv.URL})
	page, err := c.ListPokemon(context.Background(), 0, -5)
	if err != nil {
		t.Fatalf("ListPokemon failed: %v", err)
	}
	if page.Count != 1302 || page.Results[0].Name != "limit-20-offset-0" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestListTypesFiltersAndCaches(t *testing.T) {
	var hits int32
	srv := newUpstream(t, &hits)
	c := NewClient(Config{BaseURL: srv.URL})
	for i := 0; i < 3; i++ {
		types, err := c.ListTypes(context.Background())
		if err != nil {
			t.Fatalf("ListTypes failed: %v", err)
		}
		if len(types) != 2 || types[0].Name != "normal" || types[1].Name != "fire" {
			t.Fatalf("unexpected types: %+v", types)
		}
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("expected 1 upstream call, got %d", n)
	}
}

func TestListAbilitiesLimit(t *testing.T) {
	var hits int32
	srv := newUpstream(t, &hits)
	c := NewClient(Config{BaseURL: srv.URL})
	list, err := c.ListAbilities(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListAbilities failed: %v", err)
	}
	if len(list) != 1 || list[0].Name != "limit-100" {
		t.Fatalf("unexpected abilities: %+v", list)
	}
}
