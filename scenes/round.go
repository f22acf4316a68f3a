package scenes

import (
	"context"
	"errors"
	"time"

	"github.com/automoto/arena-mp/combat"
	"github.com/looplab/fsm"
	"go.uber.org/zap"
)

// Round phases.
const (
	PhaseCountdown = "countdown"
	PhaseFighting  = "fighting"
	PhaseOver      = "over"
)

const (
	eventStart  = "start"
	eventFinish = "finish"
	eventReset  = "reset"
)

// MinFighters is how many fighters must be present for the countdown to run.
const MinFighters = 2

// Result is the outcome of a finished round.
type Result struct {
	Winner    combat.FighterID
	HasWinner bool
	Draw      bool
}

// Round is the countdown, fighting and over lifecycle of one match.
type Round struct {
	FSM *fsm.FSM

	countdown time.Duration
	remaining time.Duration
	result    Result
	log       *zap.Logger
}

func NewRound(countdown time.Duration, log *zap.Logger) *Round {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Round{countdown: countdown, remaining: countdown, log: log}
	r.FSM = fsm.NewFSM(
		PhaseCountdown,
		fsm.Events{
			{Name: eventStart, Src: []string{PhaseCountdown}, Dst: PhaseFighting},
			{Name: eventFinish, Src: []string{PhaseFighting}, Dst: PhaseOver},
			{Name: eventReset, Src: []string{PhaseFighting, PhaseOver}, Dst: PhaseCountdown},
		},
		fsm.Callbacks{
			"enter_" + PhaseFighting: func(_ context.Context, _ *fsm.Event) {
				r.log.Info("round started")
			},
			"enter_" + PhaseOver: func(_ context.Context, _ *fsm.Event) {
				r.log.Info("round over",
					zap.Bool("draw", r.result.Draw),
					zap.Uint64("winner", uint64(r.result.Winner)))
			},
			"enter_" + PhaseCountdown: func(_ context.Context, _ *fsm.Event) {
				r.remaining = r.countdown
				r.result = Result{}
			},
		},
	)
	return r
}

func (r *Round) Phase() string {
	return r.FSM.Current()
}

func (r *Round) Fighting() bool {
	return r.FSM.Is(PhaseFighting)
}

// Remaining is the countdown time left. It is zero outside the countdown.
func (r *Round) Remaining() time.Duration {
	if !r.FSM.Is(PhaseCountdown) {
		return 0
	}
	return r.remaining
}

// Result returns the outcome once the round is over.
func (r *Round) Result() (Result, bool) {
	if !r.FSM.Is(PhaseOver) {
		return Result{}, false
	}
	return r.result, true
}

// Update advances the countdown and checks for a victor. alive lists the
// fighters still in the arena. The countdown holds at full length until
// MinFighters are present.
func (r *Round) Update(dt time.Duration, alive []combat.FighterID) {
	switch r.Phase() {
	case PhaseCountdown:
		if len(alive) < MinFighters {
			r.remaining = r.countdown
			return
		}
		r.remaining -= dt
		if r.remaining <= 0 {
			r.remaining = 0
			r.fire(eventStart)
		}
	case PhaseFighting:
		switch len(alive) {
		case 0:
			r.result = Result{Draw: true}
		case 1:
			r.result = Result{Winner: alive[0], HasWinner: true}
		default:
			return
		}
		r.fire(eventFinish)
	}
}

// Reset goes back to a fresh countdown.
func (r *Round) Reset() {
	if r.FSM.Can(eventReset) {
		r.fire(eventReset)
	}
}

func (r *Round) fire(event string) {
	err := r.FSM.Event(context.Background(), event)
	var none fsm.NoTransitionError
	if err != nil && !errors.As(err, &none) {
		r.log.Warn("round transition failed", zap.String("event", event), zap.Error(err))
	}
}
