package effects

import (
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
)

// ID names an effect in the gallery.
type ID string

const (
	MosaicID     ID = "mosaic"
	SmokeID      ID = "smoke"
	LightShadeID ID = "lightshade"
	LanternsID   ID = "lanterns"
	SunsetID     ID = "sunset"
	BloomID      ID = "bloom"
	UrbanityID   ID = "urbanity"
	StreetsID    ID = "streets"

	// DefaultID is used whenever an identifier cannot be resolved.
	DefaultID = MosaicID
)

var galleryOrder = []ID{MosaicID, SmokeID, LightShadeID, LanternsID, SunsetID, BloomID, UrbanityID, StreetsID}

// Factory builds an effect bound to a surface.
type Factory func(s Surface, rng *rand.Rand) Effect

var (
	registryMu sync.RWMutex
	registry   = make(map[ID]Factory)
)

func init() {
	Register(MosaicID, func(s Surface, rng *rand.Rand) Effect { return NewMosaic(s, rng) })
	Register(SmokeID, func(s Surface, rng *rand.Rand) Effect { return NewSmoke(s, rng) })
	Register(LightShadeID, func(s Surface, rng *rand.Rand) Effect { return NewLightShade(s, rng) })
	Register(LanternsID, func(s Surface, rng *rand.Rand) Effect { return NewLanterns(s, rng) })
	Register(SunsetID, func(s Surface, rng *rand.Rand) Effect { return NewSunset(s, rng) })
	Register(BloomID, func(s Surface, rng *rand.Rand) Effect { return NewBloom(s, rng) })
	Register(UrbanityID, func(s Surface, rng *rand.Rand) Effect { return NewUrbanity(s, rng) })
	Register(StreetsID, func(s Surface, rng *rand.Rand) Effect { return NewStreets(s, rng) })
}

// Register associates an ID with a factory. It panics on duplicate IDs.
func Register(id ID, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[id]; exists {
		panic("effects: duplicate registration for " + string(id))
	}
	registry[id] = factory
}

// Lookup fetches a factory by ID.
func Lookup(id ID) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[id]
	return f, ok
}

// Create resolves id and builds a new instance on s. Unknown IDs fall back
// to DefaultID.
func Create(id ID, s Surface, rng *rand.Rand) Effect {
	f, ok := Lookup(id)
	if !ok {
		f, _ = Lookup(DefaultID)
	}
	return f(s, rng)
}

// Parse turns user input into an ID, falling back to DefaultID.
func Parse(name string) ID {
	id := ID(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := Lookup(id); ok {
		return id
	}
	return DefaultID
}

// IDs returns the built-in effects in gallery order.
func IDs() []ID {
	return slices.Clone(galleryOrder)
}

// RegisteredIDs returns every registered ID, sorted.
func RegisteredIDs() []ID {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ids := make([]ID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
