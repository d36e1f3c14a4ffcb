package swipe

import (
	"context"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"ratemyrep/internal/domain"
)

const (
	CommitThreshold   = 100.0
	HintThreshold     = 30.0
	AnimationDuration = 300 * time.Millisecond
	SnapDuration      = 150 * time.Millisecond
	SubmitTimeout     = 10 * time.Second

	LikeScore    = 80
	DislikeScore = 20
)

type State int

const (
	StateIdle State = iota
	StateDragging
	StateCommitting
	StateAnimating
	StateSnapping
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateCommitting:
		return "committing"
	case StateAnimating:
		return "animating"
	case StateSnapping:
		return "snapping"
	default:
		return "unknown"
	}
}

// Hint es la pista visual durante el arrastre. No compromete nada.
type Hint string

const (
	HintNone Hint = ""
	HintLike Hint = "like"
	HintNope Hint = "nope"
)

// Vote es una calificacion emitida por la tarjeta.
type Vote struct {
	OfficialID string
	BioguideID string
	Rating     int
	Direction  domain.Direction
	Location   *domain.Coordinates
}

// Submitter recibe los votos. Sus errores solo se loguean.
type Submitter interface {
	SubmitVote(ctx context.Context, v Vote) error
}

// Scheduler difiere f. time.AfterFunc en produccion, uno manual en tests.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Stats es el resumen de la sesion de swipe.
type Stats struct {
	RatedCount int `json:"ratedCount"`
	Approval   int `json:"approvalRating"`
}

type Snapshot struct {
	State    State
	Index    int
	Official *domain.Official
	OffsetX  float64
	OffsetY  float64
	Hint     Hint
	Stats    Stats
	LastVote *Vote
}

// Controller es la maquina de estados de la tarjeta. Garantiza a lo sumo un envio
// en vuelo por tarjeta: mientras anima, todo input de voto se ignora.
type Controller struct {
	mu        sync.Mutex
	logger    *zap.Logger
	submitter Submitter
	scheduler Scheduler
	deck      []domain.Official
	location  *domain.Coordinates

	state            State
	index            int
	startX, startY   float64
	offsetX, offsetY float64
	hint             Hint
	stats            Stats
	lastVote         *Vote
	snapGen          int

	inflight sync.WaitGroup
	onChange func(Snapshot)
}

type Option func(*Controller)

func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.scheduler = s }
}

// WithLocation adjunta las coordenadas del usuario a cada voto.
func WithLocation(loc *domain.Coordinates) Option {
	return func(c *Controller) { c.location = loc }
}

// WithOnChange registra un callback invocado fuera del lock en cada transicion.
func WithOnChange(f func(Snapshot)) Option {
	return func(c *Controller) { c.onChange = f }
}

func NewController(logger *zap.Logger, deck []domain.Official, submitter Submitter, opts ...Option) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		logger:    logger,
		submitter: submitter,
		scheduler: timerScheduler{},
		deck:      append([]domain.Official(nil), deck...),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) PointerDown(x, y float64) bool {
	c.mu.Lock()
	if len(c.deck) == 0 || (c.state != StateIdle && c.state != StateSnapping) {
		c.mu.Unlock()
		return false
	}
	c.snapGen++
	c.state = StateDragging
	c.startX, c.startY = x, y
	c.offsetX, c.offsetY = 0, 0
	c.hint = HintNone
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
	return true
}

func (c *Controller) PointerMove(x, y float64) {
	c.mu.Lock()
	if c.state != StateDragging {
		c.mu.Unlock()
		return
	}
	c.offsetX = x - c.startX
	c.offsetY = y - c.startY
	switch {
	case c.offsetX > HintThreshold:
		c.hint = HintLike
	case c.offsetX < -HintThreshold:
		c.hint = HintNope
	default:
		c.hint = HintNone
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// PointerUp suelta la tarjeta: pasado el umbral compromete el voto, si no vuelve al centro.
func (c *Controller) PointerUp() {
	c.mu.Lock()
	if c.state != StateDragging {
		c.mu.Unlock()
		return
	}
	if math.Abs(c.offsetX) > CommitThreshold {
		c.state = StateCommitting
		rating, direction := DislikeScore, domain.DirectionDislike
		if c.offsetX > 0 {
			rating, direction = LikeScore, domain.DirectionLike
		}
		c.commitLocked(rating, direction)
		return
	}

	c.state = StateSnapping
	c.offsetX, c.offsetY = 0, 0
	c.hint = HintNone
	c.snapGen++
	gen := c.snapGen
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	c.scheduler.AfterFunc(SnapDuration, func() {
		c.mu.Lock()
		if c.state != StateSnapping || c.snapGen != gen {
			c.mu.Unlock()
			return
		}
		c.state = StateIdle
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.notify(snap)
	})
}

// Vote es el camino de los botones. Devuelve false si el voto se ignoro.
func (c *Controller) Vote(rating int, direction domain.Direction) bool {
	c.mu.Lock()
	if len(c.deck) == 0 || (c.state != StateIdle && c.state != StateSnapping) {
		c.mu.Unlock()
		return false
	}
	c.snapGen++
	c.state = StateCommitting
	c.commitLocked(rating, direction)
	return true
}

// commitLocked entra con c.mu tomado y lo libera.
func (c *Controller) commitLocked(rating int, direction domain.Direction) {
	official := c.deck[c.index]
	vote := Vote{
		OfficialID: official.OfficialID,
		BioguideID: official.BioguideID,
		Rating:     rating,
		Direction:  direction,
		Location:   c.location,
	}
	c.lastVote = &vote
	n := c.stats.RatedCount
	c.stats.Approval = int(math.Round((float64(c.stats.Approval)*float64(n) + float64(rating)) / float64(n+1)))
	c.stats.RatedCount = n + 1
	c.state = StateAnimating
	c.inflight.Add(1)
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	go c.submit(vote)
	c.scheduler.AfterFunc(AnimationDuration, c.finishAnimation)
}

func (c *Controller) submit(v Vote) {
	defer c.inflight.Done()
	if c.submitter == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), SubmitTimeout)
	defer cancel()
	if err := c.submitter.SubmitVote(ctx, v); err != nil {
		c.logger.Warn("rating submission failed",
			zap.String("official_id", v.OfficialID),
			zap.String("bioguide_id", v.BioguideID),
			zap.Error(err),
		)
	}
}

// finishAnimation siempre avanza, sin importar como termino el envio.
func (c *Controller) finishAnimation() {
	c.mu.Lock()
	if c.state != StateAnimating {
		c.mu.Unlock()
		return
	}
	c.index = (c.index + 1) % len(c.deck)
	c.offsetX, c.offsetY = 0, 0
	c.hint = HintNone
	c.state = StateIdle
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// SetDeck reemplaza las tarjetas y vuelve al inicio. Se ignora mientras anima.
func (c *Controller) SetDeck(deck []domain.Official) bool {
	c.mu.Lock()
	if c.state == StateAnimating || c.state == StateCommitting {
		c.mu.Unlock()
		return false
	}
	c.deck = append([]domain.Official(nil), deck...)
	c.index = 0
	c.state = StateIdle
	c.offsetX, c.offsetY = 0, 0
	c.hint = HintNone
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
	return true
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Wait bloquea hasta que terminen los envios en vuelo.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:   c.state,
		Index:   c.index,
		OffsetX: c.offsetX,
		OffsetY: c.offsetY,
		Hint:    c.hint,
		Stats:   c.stats,
	}
	if len(c.deck) > 0 {
		o := c.deck[c.index]
		snap.Official = &o
	}
	if c.lastVote != nil {
		v := *c.lastVote
		snap.LastVote = &v
	}
	return snap
}

func (c *Controller) notify(s Snapshot) {
	if c.onChange != nil {
		c.onChange(s)
	}
}
