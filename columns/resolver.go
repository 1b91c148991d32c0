package columns

// Pending is the option set the next emission will use. It is either
// Persistent or OneShot.
type Pending interface {
	Options() OptionSet
	pending()
}

// Persistent pending options become the new defaults once emitted.
type Persistent struct{ OptionSet }

// OneShot pending options are consumed by one emission and discarded.
type OneShot struct{ OptionSet }

func (p Persistent) Options() OptionSet { return p.OptionSet }
func (p OneShot) Options() OptionSet    { return p.OptionSet }
func (Persistent) pending()             {}
func (OneShot) pending()                {}

// Resolver keeps the persistent default option set and the pending one.
//
// NOTE: Resolver is not safe for concurrent use. Callers sharing it must
// serialize calls that change options.
//
// SetOptions and SetOptionsOnce are intentionally asymmetric: the former
// updates both the defaults and the pending set, the latter only the pending
// set. Mixing them in one sequence is easy to get wrong.
type Resolver struct {
	base     OptionSet
	defaults OptionSet
	pending  Pending
}

// NewResolver creates a resolver whose defaults are the built-in options
// with opts applied. Reset returns to this state.
func NewResolver(opts ...Option) *Resolver {
	base := DefaultOptions().with(opts)
	base.OneShot = false
	return &Resolver{base: base, defaults: base, pending: Persistent{base}}
}

// SetOptions overwrites the persistent defaults with the supplied fields and
// makes the result pending. Options turning OneShot on make it behave as
// SetOptionsOnce.
func (r *Resolver) SetOptions(opts ...Option) {
	next := r.defaults.with(opts)
	if next.OneShot {
		r.SetOptionsOnce(opts...)
		return
	}
	r.defaults = next
	r.pending = Persistent{next}
}

// SetOptionsOnce applies opts to the pending set only, for exactly one
// emission. The persistent defaults are untouched.
func (r *Resolver) SetOptionsOnce(opts ...Option) {
	next := r.pending.Options().with(opts)
	next.OneShot = true
	r.pending = OneShot{next}
}

// Reset restores the defaults the resolver was created with, then applies
// opts. Reset() is idempotent.
func (r *Resolver) Reset(opts ...Option) {
	next := r.base.with(opts)
	next.OneShot = false
	r.defaults = next
	r.pending = Persistent{next}
}

// Current returns the options the next emission uses.
func (r *Resolver) Current() OptionSet {
	return r.pending.Options()
}

// Defaults returns the persistent option set.
func (r *Resolver) Defaults() OptionSet {
	return r.defaults
}

// Pending returns the pending option set with its kind.
func (r *Resolver) Pending() Pending {
	return r.pending
}

// Advance is called after every emission: one-shot options are discarded,
// persistent ones become the defaults.
func (r *Resolver) Advance() {
	switch p := r.pending.(type) {
	case OneShot:
		r.pending = Persistent{r.defaults}
	case Persistent:
		r.defaults = p.OptionSet
	}
}
