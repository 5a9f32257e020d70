package puzzle

// Zone identifies one of the two fragment collections.
type Zone int

const (
	ZoneAvailable Zone = iota
	ZoneArranged
)

// Drag tracks a gesture that picked up a fragment. Position updates are
// purely visual; only EndDrag touches the collections.
type Drag struct {
	source   Zone
	index    int
	fragment string
	pos      int
	active   bool
}

// BeginDrag picks up the fragment at index in zone.
func (p *Puzzle) BeginDrag(zone Zone, index int) (*Drag, bool) {
	if p.locked() {
		return nil, false
	}
	list := p.zone(zone)
	if index < 0 || index >= len(list) {
		return nil, false
	}
	return &Drag{
		source:   zone,
		index:    index,
		fragment: list[index],
		pos:      index,
		active:   true,
	}, true
}

// Move records the pointer's current slot.
func (d *Drag) Move(pos int) {
	if d.active {
		d.pos = pos
	}
}

// Position returns the last slot passed to Move.
func (d *Drag) Position() int { return d.pos }

// Fragment returns the dragged fragment.
func (d *Drag) Fragment() string { return d.fragment }

// Source returns the zone the drag started in.
func (d *Drag) Source() Zone { return d.source }

// Active reports whether the drag has not ended yet.
func (d *Drag) Active() bool { return d.active }

// Cancel ends the drag without effect.
func (d *Drag) Cancel() { d.active = false }

// EndDrag drops d into zone at index and applies the resulting move. A drag
// can be ended only once; a drag whose source slot changed since it began
// is discarded.
func (p *Puzzle) EndDrag(d *Drag, zone Zone, index int) bool {
	if d == nil || !d.active {
		return false
	}
	d.active = false

	list := p.zone(d.source)
	if p.locked() || d.index >= len(list) || list[d.index] != d.fragment {
		return false
	}

	switch {
	case d.source == ZoneAvailable && zone == ZoneArranged:
		if !p.MoveToArranged(d.fragment) {
			return false
		}
		return p.Reorder(len(p.arranged)-1, index)
	case d.source == ZoneArranged && zone == ZoneArranged:
		return p.Reorder(d.index, index)
	case d.source == ZoneArranged && zone == ZoneAvailable:
		return p.removeArrangedAt(d.index)
	}
	return false
}

func (p *Puzzle) zone(z Zone) []string {
	if z == ZoneArranged {
		return p.arranged
	}
	return p.available
}
