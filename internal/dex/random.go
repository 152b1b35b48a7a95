package dex

import (
	"math/rand"
	"time"
)

// MaxNationalID is the highest species id served by the upstream dex.
const MaxNationalID = 1025

func NewRNG() *rand.Rand { return rand.New(rand.NewSource(time.Now().UnixNano())) }

// RandomID picks a species id in [1, MaxNationalID].
func RandomID(r *rand.Rand) int { return 1 + r.Intn(MaxNationalID) }
