// Package scene holds the presentational parts of the dashboard: the
// auto-advancing slideshow, parallax scene cards and the scene builder.
// Nothing here touches the save record.
package scene

import "fmt"

// Slide is one showcase scene.
type Slide struct {
	City  string
	Car   string
	Image string
}

func (s Slide) Caption() string {
	return fmt.Sprintf("%s — %s at modern house", s.City, s.Car)
}

var slides = []Slide{
	{City: "Dubai", Car: "Lamborghini Urus", Image: "assets/urus.jpg"},
	{City: "Hong Kong", Car: "Nissan GT‑R", Image: "assets/gtr-r35.jpg"},
	{City: "Los Angeles", Car: "Ferrari 488", Image: "assets/ferrari.jpg"},
	{City: "Tokyo", Car: "Toyota Supra", Image: "assets/supra.jpg"},
	{City: "Miami", Car: "McLaren 720S", Image: "assets/mclaren.jpg"},
	{City: "London", Car: "Rolls‑Royce Cullinan", Image: "assets/cullinan.jpg"},
	{City: "New York", Car: "Tesla Model S", Image: "assets/tesla.jpg"},
	{City: "Paris", Car: "Bugatti Chiron", Image: "assets/bugatti.jpg"},
	{City: "Singapore", Car: "Porsche 911", Image: "assets/porsche.jpg"},
	{City: "Toronto", Car: "Audi R8", Image: "assets/audi.jpg"},
}

func Slides() []Slide {
	return append([]Slide(nil), slides...)
}
