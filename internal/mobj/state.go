package mobj

// StateNum indexes the static State table. StateNull terminates a
// state chain and marks the owning mobj for removal.
type StateNum int32

const StateNull StateNum = 0

// ActionArity distinguishes the three action-function shapes a State
// can carry:
// none, mobj-only (monster AI/attacks), or player+psprite (weapon fire).
type ActionArity int

const (
	ActionNone ActionArity = iota
	ActionMobj
	ActionPlayerSprite
)

// MobjAction is a state's per-tick behavior hook for non-player mobjs.
type MobjAction func(m *MapObject)

// PlayerSpriteAction is a state's hook for player weapon/muzzle-flash
// states; psprite identifies which of the player's two sprite slots
// (weapon or flash) entered this state.
type PlayerSpriteAction func(m *MapObject, psprite int)

// State is one entry in the static state table: sprite,
// frame (+full-bright bit), duration, an action of exactly one arity,
// and the next state to chain to when tics expire.
type State struct {
	Sprite int32
	Frame int32 // bit 0x8000 set means full-bright
	Tics int32 // -1 means never advance
	Arity ActionArity
	MobjFn MobjAction
	PlayerFn PlayerSpriteAction
	NextState StateNum
}

const FullBright = 0x8000

// maxStateCycle bounds SetState's loop so a malformed or cyclic chain
// of all-zero-tic states can't spin forever; exceeding it logs a
// warning and treats the mobj as having reached StateNull.
const maxStateCycle = 1000

// States is the process-wide static state table, populated through
// RegisterState by info.go's init with the states of the Infos subset.
// Index 0 is always StateNull (an empty state, no sprite drawn).
var States = []State{{Sprite: 0, Frame: 0, Tics: -1, NextState: StateNull}}

// RegisterState appends one entry to the shared state table and
// returns its StateNum, for init-time table construction (mirrors the
// instruction-table registration pattern common to CPU decoders).
func RegisterState(s State) StateNum {
	States = append(States, s)
	return StateNum(len(States) - 1)
}

// SetState runs the state-transition loop used both for the initial
// assignment and for every subsequent zero-tic chain link: set the new
// state, fire its action, and if tics==0 immediately chain to
// next_state without waiting for a tick.
func (m *MapObject) SetState(state StateNum) {
	cycles := 0
	for {
		if state == StateNull {
			m.State = StateNull
			m.MarkRemove()
			return
		}
		st := &States[state]
		m.State = state
		m.Tics = st.Tics
		m.Sprite = st.Sprite
		m.Frame = st.Frame

		switch st.Arity {
		case ActionMobj:
			if st.MobjFn != nil {
				st.MobjFn(m)
			}
		case ActionPlayerSprite:
			if st.PlayerFn != nil && m.Player != nil {
				st.PlayerFn(m, m.pendingPSprite)
			}
		}

		if m.Tics != 0 {
			return
		}
		state = st.NextState
		cycles++
		if cycles > maxStateCycle {
			if m.level != nil {
				m.level.Warnf("mobj state cycle overrun at state %d, forcing removal", state)
			}
			m.State = StateNull
			m.MarkRemove()
			return
		}
	}
}

// stateSpec is one link in an init-time state chain registration: the
// sprite/frame/tics triple every State needs plus an optional mobj
// action, with NextState left for registerChain/registerLoop to fill
// in once the whole chain's StateNums are known.
type stateSpec struct {
	sprite int32
	frame int32
	tics int32
	fn MobjAction
}

// registerChain registers one state per spec, each chaining to the
// next, with the last chaining to loopTo (StateNull is fine when the
// last spec's Tics is -1, since SetState never consults NextState for
// a state that never advances). Returns the chain's first StateNum.
func registerChain(specs []stateSpec, loopTo StateNum) StateNum {
	nums := make([]StateNum, len(specs))
	for i, s := range specs {
		arity := ActionNone
		if s.fn != nil {
			arity = ActionMobj
		}
		nums[i] = RegisterState(State{Sprite: s.sprite, Frame: s.frame, Tics: s.tics, Arity: arity, MobjFn: s.fn, NextState: StateNull})
	}
	for i := 0; i < len(nums)-1; i++ {
		States[nums[i]].NextState = nums[i+1]
	}
	if len(nums) > 0 {
		States[nums[len(nums)-1]].NextState = loopTo
	}
	return nums[0]
}

// registerLoop is registerChain with the last spec chaining back to
// the first, for spawn/see idle-animation cycles that run forever.
func registerLoop(specs []stateSpec) StateNum {
	first := registerChain(specs, StateNull)
	last := StateNum(int(first) + len(specs) - 1)
	States[last].NextState = first
	return first
}

// TickState advances the state timer once per game tic, chaining to
// NextState at zero. Called from the mobj's think function.
func (m *MapObject) TickState() {
	if m.Tics == -1 {
		return
	}
	m.Tics--
	if m.Tics <= 0 {
		m.SetState(States[m.State].NextState)
	}
}
