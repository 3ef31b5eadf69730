package scene

import "math/rand/v2"

// Preset is a builder car image.
type Preset struct {
	Image string
	Alt   string
}

var presets = []Preset{
	{Image: "assets/urus.jpg", Alt: "Lamborghini Urus"},
	{Image: "assets/gtr-r35.jpg", Alt: "Nissan GT‑R"},
	{Image: "assets/ferrari.jpg", Alt: "Ferrari 488"},
	{Image: "assets/supra.jpg", Alt: "Toyota Supra"},
	{Image: "assets/mclaren.jpg", Alt: "McLaren 720S"},
	{Image: "assets/cullinan.jpg", Alt: "Rolls‑Royce Cullinan"},
	{Image: "assets/tesla.jpg", Alt: "Tesla Model S"},
	{Image: "assets/bugatti.jpg", Alt: "Bugatti Chiron"},
	{Image: "assets/porsche.jpg", Alt: "Porsche 911"},
	{Image: "assets/audi.jpg", Alt: "Audi R8"},
}

func Presets() []Preset {
	return append([]Preset(nil), presets...)
}

// PresetFromSlide is the builder preset for a slide or scene card.
func PresetFromSlide(s Slide) Preset {
	return Preset{Image: s.Image, Alt: s.City + " " + s.Car}
}

// Builder is the scene builder dialog state.
type Builder struct {
	current Preset
	open    bool
}

func NewBuilder() *Builder {
	return &Builder{current: presets[0]}
}

// Open shows the builder. A non-nil preset replaces the current car;
// nil keeps whatever was shown last.
func (b *Builder) Open(p *Preset) {
	if p != nil {
		b.current = *p
	}
	b.open = true
}

func (b *Builder) Close()          { b.open = false }
func (b *Builder) IsOpen() bool    { return b.open }
func (b *Builder) Current() Preset { return b.current }

// Randomize picks a random preset.
func (b *Builder) Randomize(rng *rand.Rand) Preset {
	b.current = presets[rng.IntN(len(presets))]
	return b.current
}
