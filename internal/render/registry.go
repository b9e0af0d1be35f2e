package render

// Renderer computes the next frame for one effect mode. Render is invoked
// once per tick; it may be a no-op (paused, or not yet due per the pacer) or
// may repaint the whole frame and mark it dirty. Renderers store full-scale
// colors; brightness scaling belongs to the output driver.
type Renderer interface {
	Mode() Mode
	Render(f *Frame, p *Params)
}

// Registry maps modes to renderers.
type Registry struct{ m map[Mode]Renderer }

func NewRegistry() *Registry { return &Registry{m: map[Mode]Renderer{}} }

func (r *Registry) Register(rr Renderer) {
	if rr == nil {
		return
	}
	r.m[rr.Mode()] = rr
}

func (r *Registry) Get(m Mode) (Renderer, bool) { rr, ok := r.m[m]; return rr, ok }

// Default builds a registry with all five effects wired. The sprite effect
// draws from pool and spawns via rnd.
func Default(pool *SpritePool, rnd Rand) *Registry {
	r := NewRegistry()
	r.Register(&ConstantRenderer{})
	r.Register(&GradientRenderer{})
	r.Register(&ChaseRenderer{})
	r.Register(NewSpriteRenderer(pool, rnd))
	r.Register(&SparkleRenderer{})
	return r
}
