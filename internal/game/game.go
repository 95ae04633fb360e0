package game

import "fmt"

// Phase is the state of the piece controller.
type Phase int

const (
	// Falling is normal play.
	Falling Phase = iota
	// Locked is held only while a piece that failed to descend is being
	// committed and the next one spawned.
	Locked
	// GameOver is terminal.
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Falling:
		return "falling"
	case Locked:
		return "locked"
	case GameOver:
		return "game_over"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Rules sizes the board and paces the controller.
type Rules struct {
	Width, Height int
	Spawn         Point
	// GravityTicks is how many counter steps pass between gravity steps.
	GravityTicks int
	// LateralEvery gates sampling of held keys to counter multiples.
	LateralEvery int
}

// DefaultRules returns the reference sizing and cadence.
func DefaultRules() Rules {
	return Rules{
		Width:        BoardWidth,
		Height:       BoardHeight,
		Spawn:        Point{SpawnX, SpawnY},
		GravityTicks: GravityTicks,
		LateralEvery: 2,
	}
}

// Input is what the player asked for during one tick. Rotate counts key-down
// edges; the booleans are held-key state.
type Input struct {
	Rotate int
	Left   bool
	Right  bool
	Down   bool
}

// Event reports what a tick did.
type Event struct {
	Moved    bool
	Fell     bool
	Locked   bool
	Cleared  int
	// Spawned is the type drawn for the next piece, even when it could not
	// be placed.
	Spawned  BlockType
	GameOver bool
}

// Game is the board plus the live piece. It is owned by a single loop and is
// not safe for concurrent use; hand other goroutines a Snapshot instead.
type Game struct {
	rules  Rules
	rand   Randomizer
	board  *Board
	status Status
	phase  Phase
	lines  int
	locks  int
}

// New starts a game: an empty bordered board with one piece at the spawn point.
func New(rules Rules, r Randomizer) *Game {
	g := &Game{
		rules: rules,
		rand:  r,
	}
	g.Reset()
	return g
}

// Reset discards the board and spawns a fresh piece.
func (g *Game) Reset() {
	g.board = NewBoard(g.rules.Width, g.rules.Height)
	g.phase = Falling
	g.lines = 0
	g.locks = 0
	var ev Event
	g.spawn(&ev)
}

func (g *Game) Board() *Board  { return g.board }
func (g *Game) Status() Status { return g.status }
func (g *Game) Phase() Phase   { return g.phase }
func (g *Game) Over() bool     { return g.phase == GameOver }
func (g *Game) Lines() int     { return g.lines }
func (g *Game) Locks() int     { return g.locks }
func (g *Game) Rules() Rules   { return g.rules }

// Tick advances one frame. After game over it does nothing.
func (g *Game) Tick(in Input) Event {
	if g.Over() {
		return Event{}
	}
	ev := g.Resolve(g.Candidate(in))
	g.status.Counter++
	return ev
}

// Candidate applies the pending deltas for this tick to a copy of the live
// status. Held keys are only sampled on LateralEvery counter steps, left
// winning over right and right over soft drop. Soft drop zeroes the counter,
// which makes gravity fire on this very tick.
func (g *Game) Candidate(in Input) Status {
	next := g.status
	next.Rotation += in.Rotate
	if g.status.Counter%g.rules.LateralEvery == 0 {
		switch {
		case in.Left:
			next.X--
		case in.Right:
			next.X++
		case in.Down:
			next.Counter = 0
		}
	}
	if next.Counter%g.rules.GravityTicks == 0 {
		next.Y--
	}
	return next
}

// Resolve moves the live piece towards next. A lateral or rotational change
// is tried first with next as a whole; if it collides only the x and rotation
// deltas are dropped. The vertical delta is then tried on its own, and a
// failed fall locks the piece.
func (g *Game) Resolve(next Status) Event {
	var ev Event
	cur := g.status
	if next.X != cur.X || next.Rotation != cur.Rotation {
		g.board.Remove(cur)
		if g.board.Place(next) == nil {
			g.status = next
			ev.Moved = true
		} else {
			g.mustPlace(cur)
			next.X = cur.X
			next.Rotation = cur.Rotation
		}
	}
	if g.status.Y != next.Y {
		g.fall(next, &ev)
	}
	return ev
}

func (g *Game) fall(next Status, ev *Event) {
	prev := g.status
	g.board.Remove(prev)
	if g.board.Place(next) == nil {
		g.status = next
		ev.Fell = true
		return
	}

	g.phase = Locked
	g.mustPlace(prev)
	g.locks++
	ev.Locked = true
	ev.Cleared = g.board.ClearLines()
	g.lines += ev.Cleared
	g.spawn(ev)
}

// spawn draws the next piece and places it. A blocked spawn ends the game
// and leaves the status on the piece that locked last.
func (g *Game) spawn(ev *Event) {
	t := g.rand.Next()
	next := NewStatus(g.rules.Spawn.X, g.rules.Spawn.Y, t, 0)
	ev.Spawned = t
	if g.board.Place(next) != nil {
		g.phase = GameOver
		g.board.Flatten()
		ev.GameOver = true
		return
	}
	g.status = next
	g.phase = Falling
}

// mustPlace restores a status that was valid a moment ago.
func (g *Game) mustPlace(s Status) {
	if err := g.board.Place(s); err != nil {
		panic(fmt.Sprintf("game: restoring %v at (%d,%d): %v", s.Type, s.X, s.Y, err))
	}
}

// Snapshot is a read-only copy of the game for renderers.
type Snapshot struct {
	Board  *Board
	Status Status
	Phase  Phase
	Lines  int
	Locks  int
}

func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Board:  g.board.Clone(),
		Status: g.status,
		Phase:  g.phase,
		Lines:  g.lines,
		Locks:  g.locks,
	}
}
