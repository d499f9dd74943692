package game

// MapImage describes a background image owned by the presentation layer.
type MapImage struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Valid reports whether the image can be used as a background.
func (m MapImage) Valid() bool {
	return m.Name != "" && m.Width > 0 && m.Height > 0
}

// Observer receives placement and movement notifications from a City.
// Calls are synchronous and made while the city is being mutated;
// implementations must not call back into the city.
type Observer interface {
	BackgroundReady(basic, large MapImage)
	// StopPlaced may reject the stop, in which case it is not registered.
	StopPlaced(stop *Stop) error
	TramStopPlaced(stop *Stop)
	ActorPlaced(actor *Actor)
	ActorMoved(actor *Actor)
	ActorRemoved(actor *Actor)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) BackgroundReady(_, _ MapImage) {}
func (NopObserver) StopPlaced(*Stop) error        { return nil }
func (NopObserver) TramStopPlaced(*Stop)          {}
func (NopObserver) ActorPlaced(*Actor)            {}
func (NopObserver) ActorMoved(*Actor)             {}
func (NopObserver) ActorRemoved(*Actor)           {}
