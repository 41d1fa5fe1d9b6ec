package entity

// Renderer draws simulation entities. Renderers receive copies taken from a
// world snapshot and must not expect their changes to reach the simulation.
type Renderer interface {
	RenderBody(body *Body)
	RenderRing(ring *Ring)
	RenderArena(arena *ArenaRing)
	Clear()
	Present()
}
