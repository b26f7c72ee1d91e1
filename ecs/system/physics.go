package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/lanerunner/common"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePowerup
	collisionTypeEnemy
	collisionTypeSolid
)

// PhysicsSystem owns the two Chipmunk spaces of the corridor. The vertical
// space (world X-Y) holds gravity, the floor and the player box. The track
// space (world X-Z) holds sensors for the player and every obstacle and
// raises collision events.
type PhysicsSystem struct {
	vertical      *cp.Space
	track         *cp.Space
	handlersReady bool
	world         *ecs.World

	entities       map[ecs.Entity]*bodyInfo
	playerShapes   map[*cp.Shape]ecs.Entity
	obstacleShapes map[*cp.Shape]ecs.Entity
	reported       map[contactPair]bool
}

type bodyInfo struct {
	vertical      *cp.Body
	verticalShape *cp.Shape
	track         *cp.Body
	trackShape    *cp.Shape
	static        bool
}

type contactPair struct {
	player   ecs.Entity
	obstacle ecs.Entity
}

func NewPhysicsSystem() *PhysicsSystem {
	ps := &PhysicsSystem{
		entities:       make(map[ecs.Entity]*bodyInfo),
		playerShapes:   make(map[*cp.Shape]ecs.Entity),
		obstacleShapes: make(map[*cp.Shape]ecs.Entity),
		reported:       make(map[contactPair]bool),
	}
	ps.resetSpaces()
	return ps
}

func (ps *PhysicsSystem) resetSpaces() {
	ps.vertical = cp.NewSpace()
	ps.vertical.Iterations = 20
	ps.vertical.SetGravity(cp.Vector{X: 0, Y: common.Gravity * common.PhysicsScale})

	ps.track = cp.NewSpace()
	ps.track.Iterations = 10
	ps.track.SetGravity(cp.Vector{})
	ps.handlersReady = false
}

// VerticalSpace exposes the gravity space for debug drawing and tests.
func (ps *PhysicsSystem) VerticalSpace() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.vertical
}

// TrackSpace exposes the obstacle space.
func (ps *PhysicsSystem) TrackSpace() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.track
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.vertical == nil || ps.track == nil {
		ps.resetSpaces()
	}

	ps.world = w
	defer func() { ps.world = nil }()

	ps.ensureHandlers()
	ps.syncEntities(w)

	ps.vertical.Step(common.FixedStep)
	ps.followPlayers()
	ps.track.Step(common.FixedStep)

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}
	for _, other := range []cp.CollisionType{collisionTypePowerup, collisionTypeEnemy} {
		h := ps.track.NewCollisionHandler(collisionTypePlayer, other)
		h.UserData = ps
		h.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			sys, ok := userData.(*PhysicsSystem)
			if !ok || sys == nil {
				return true
			}
			sys.reportContact(arb)
			return true
		}
		h.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
			sys, ok := userData.(*PhysicsSystem)
			if !ok || sys == nil {
				return
			}
			if pair, ok := sys.pairOf(arb); ok {
				delete(sys.reported, pair)
			}
		}
	}
	ps.handlersReady = true
}

func (ps *PhysicsSystem) pairOf(arb *cp.Arbiter) (contactPair, bool) {
	a, b := arb.Shapes()
	player, ok := ps.playerShapes[a]
	other := b
	if !ok {
		player, ok = ps.playerShapes[b]
		other = a
	}
	if !ok {
		return contactPair{}, false
	}
	obstacle, ok := ps.obstacleShapes[other]
	if !ok {
		return contactPair{}, false
	}
	return contactPair{player: player, obstacle: obstacle}, true
}

// reportContact raises one collision event per overlap. A track contact only
// counts once the vertical extents overlap too, so a player jumping over an
// obstacle is not hit.
func (ps *PhysicsSystem) reportContact(arb *cp.Arbiter) {
	w := ps.world
	if w == nil {
		return
	}
	pair, ok := ps.pairOf(arb)
	if !ok || ps.reported[pair] {
		return
	}

	playerBody, ok := ecs.Get(w, pair.player, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}
	obstacleBody, ok := ecs.Get(w, pair.obstacle, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}
	obs, ok := ecs.Get(w, pair.obstacle, component.ObstacleComponent.Kind())
	if !ok {
		return
	}

	dy := math.Abs(playerBody.Position().Y() - obstacleBody.Position().Y())
	if dy >= playerBody.HalfHeight()+obstacleBody.HalfHeight() {
		return
	}

	ps.reported[pair] = true
	w.Events().PushCollision(ecs.CollisionEvent{
		Player:   pair.player,
		Other:    pair.obstacle,
		Category: obs.Category,
	})
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if info := ps.entities[e]; info != nil {
			bodyComp.Vertical = info.vertical
			bodyComp.VerticalShape = info.verticalShape
			bodyComp.Track = info.track
			bodyComp.TrackShape = info.trackShape
			return
		}

		isPlayer := ecs.Has(w, e, component.PlayerTagComponent.Kind())
		var category component.ObstacleCategory
		if obs, ok := ecs.Get(w, e, component.ObstacleComponent.Kind()); ok {
			category = obs.Category
		}

		info := ps.createBodyInfo(transform, bodyComp, isPlayer, category)
		if info == nil {
			return
		}
		ps.entities[e] = info
		if isPlayer && info.trackShape != nil {
			ps.playerShapes[info.trackShape] = e
		}
		if category != "" && info.trackShape != nil {
			ps.obstacleShapes[info.trackShape] = e
		}

		bodyComp.Vertical = info.vertical
		bodyComp.VerticalShape = info.verticalShape
		bodyComp.Track = info.track
		bodyComp.TrackShape = info.trackShape
		if !bodyComp.Gravity {
			bodyComp.FixedY = transform.Y
		}
	})
}

func scaled(v float64) float64 {
	return v * common.PhysicsScale
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody, isPlayer bool, category component.ObstacleCategory) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	depth := bodyComp.Depth
	radius := bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		return nil
	}
	if radius > 0 {
		width, height, depth = radius*2, radius*2, radius*2
	}
	if depth <= 0 {
		depth = width
	}

	info := &bodyInfo{static: bodyComp.Static}

	if bodyComp.Static {
		// static geometry only exists in the vertical plane
		bb := cp.BB{
			L: scaled(transform.X - width/2),
			B: scaled(transform.Y - height/2),
			R: scaled(transform.X + width/2),
			T: scaled(transform.Y + height/2),
		}
		shape := cp.NewBox2(ps.vertical.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetCollisionType(collisionTypeSolid)
		ps.vertical.AddShape(shape)
		info.vertical = ps.vertical.StaticBody
		info.verticalShape = shape
		return info
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	if bodyComp.Gravity {
		body := cp.NewBody(mass, math.Inf(1))
		body.SetPosition(cp.Vector{X: scaled(transform.X), Y: scaled(transform.Y)})
		shape := cp.NewBox(body, scaled(width), scaled(height), 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetCollisionType(collisionTypeSolid)
		if isPlayer {
			shape.SetCollisionType(collisionTypePlayer)
		}
		ps.vertical.AddBody(body)
		ps.vertical.AddShape(shape)
		info.vertical = body
		info.verticalShape = shape
	}

	track := cp.NewBody(mass, math.Inf(1))
	track.SetPosition(cp.Vector{X: scaled(transform.X), Y: scaled(transform.Z)})
	track.SetAngle(transform.Yaw)
	var shape *cp.Shape
	if bodyComp.Radius > 0 {
		shape = cp.NewCircle(track, scaled(radius), cp.Vector{})
	} else {
		shape = cp.NewBox(track, scaled(width), scaled(depth), 0)
	}
	shape.SetSensor(true)
	switch {
	case isPlayer:
		shape.SetCollisionType(collisionTypePlayer)
	case category == component.CategoryPowerup:
		shape.SetCollisionType(collisionTypePowerup)
	case category == component.CategoryEnemy:
		shape.SetCollisionType(collisionTypeEnemy)
	default:
		shape.SetCollisionType(collisionTypeSolid)
	}
	ps.track.AddBody(track)
	ps.track.AddShape(shape)
	info.track = track
	info.trackShape = shape

	return info
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.removeInfo(info)
		delete(ps.entities, e)
		for pair := range ps.reported {
			if pair.player == e || pair.obstacle == e {
				delete(ps.reported, pair)
			}
		}
	}
}

func (ps *PhysicsSystem) removeInfo(info *bodyInfo) {
	if info == nil {
		return
	}
	if info.trackShape != nil {
		delete(ps.playerShapes, info.trackShape)
		delete(ps.obstacleShapes, info.trackShape)
		ps.track.RemoveShape(info.trackShape)
	}
	if info.track != nil {
		ps.track.RemoveBody(info.track)
	}
	if info.verticalShape != nil {
		ps.vertical.RemoveShape(info.verticalShape)
	}
	if info.vertical != nil && !info.static {
		ps.vertical.RemoveBody(info.vertical)
	}
}

// followPlayers moves each track body that has a vertical twin to the twin's
// X. The vertical space owns horizontal motion.
func (ps *PhysicsSystem) followPlayers() {
	for _, info := range ps.entities {
		if info.vertical == nil || info.track == nil || info.static {
			continue
		}
		vp := info.vertical.Position()
		tp := info.track.Position()
		info.track.SetPosition(cp.Vector{X: vp.X, Y: tp.Y})
		tv := info.track.Velocity()
		info.track.SetVelocity(0, tv.Y)
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Static || !bodyComp.Gravity {
			// obstacles are synced by the recycler
			return
		}
		transform.X, transform.Y, transform.Z = bodyComp.Position().Elem()
	})
}
