package flappy

// collided reports whether the player touches an obstacle or has left the
// playable band. A small slack is allowed above the ceiling; the ground is
// a band at the bottom of the field.
func (e *Engine) collided() bool {
	box := e.playerBox()

	if box.Y < -e.cfg.Bounds.CeilingSlack {
		return true
	}
	if box.Bottom() > e.cfg.GroundY() {
		return true
	}

	return e.world.Collides(box)
}
