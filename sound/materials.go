package sound

import (
	"github.com/df-mc/dragonfly/server/world"
	"github.com/echoray-dev/echoray/voxel"
	"github.com/elliotchance/orderedmap/v2"
)

// defaultAbsorption is the coefficient assumed for any solid block without an
// explicit entry in the material table.
const defaultAbsorption = 0.35

// Materials maps block kinds to acoustic absorption coefficients in [0,1]:
// the fraction of sound energy a single cell of that material soaks up. The
// table keeps insertion order so that dumps and fingerprints of it are
// deterministic.
type Materials struct {
	coeffs *orderedmap.OrderedMap[string, float64]
}

// NewMaterials returns an empty material table.
func NewMaterials() *Materials {
	return &Materials{coeffs: orderedmap.NewOrderedMap[string, float64]()}
}

// DefaultMaterials returns a table with coefficients for the common building
// materials of a scene. Dense mineral blocks reflect most energy, fabrics
// soak it up.
func DefaultMaterials() *Materials {
	m := NewMaterials()
	m.Set("minecraft:stone", 0.15)
	m.Set("minecraft:deepslate", 0.1)
	m.Set("minecraft:glass", 0.25)
	m.Set("minecraft:oak_planks", 0.5)
	m.Set("minecraft:white_wool", 0.9)
	m.Set("minecraft:snow", 0.8)
	m.Set("minecraft:water", 0.6)
	return m
}

// Set assigns an absorption coefficient to the block identifier passed, as
// returned by the block's EncodeBlock.
func (m *Materials) Set(name string, coefficient float64) {
	m.coeffs.Set(name, coefficient)
}

// Coefficient returns the absorption coefficient for the block passed. Air
// and nil blocks absorb nothing; solid blocks without an entry fall back to a
// generic coefficient.
func (m *Materials) Coefficient(b world.Block) float64 {
	if voxel.Empty(b) {
		return 0
	}
	name, _ := b.EncodeBlock()
	if c, ok := m.coeffs.Get(name); ok {
		return c
	}
	return defaultAbsorption
}

// Names returns the block identifiers of the table in insertion order.
func (m *Materials) Names() []string {
	names := make([]string, 0, m.coeffs.Len())
	for el := m.coeffs.Front(); el != nil; el = el.Next() {
		names = append(names, el.Key)
	}
	return names
}
