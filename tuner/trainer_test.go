package tuner

import (
	"math"
	"path/filepath"
	"testing"

	"tile-engine/engine"
	gm "tile-engine/tilemg"
)

// trainBoard has no zero cell, so none of its pattern slots is index 0
// and it cannot alias the all-empty board.
var trainBoard = gm.Board{
	1, 2, 3, 1,
	2, 3, 1, 2,
	3, 1, 2, 3,
	1, 2, 3, 1,
}

// slotCounts tallies how many of the 32 patterns of b land on each
// (group, index) slot. Symmetric patterns can read identical digit
// strings, so a slot may be touched more than once per board.
func slotCounts(net *engine.Network, b *gm.Board) map[[2]int]int {
	counts := make(map[[2]int]int)
	for p := range engine.Patterns {
		key := [2]int{engine.GroupOf(p), net.Feature(b, &engine.Patterns[p])}
		counts[key]++
	}
	return counts
}

func TestReplayEmptyHistory(t *testing.T) {
	net := engine.NewNetwork(4, nil)
	l, err := NewLearner(net, Config{Alpha: 0.1})
	if err != nil {
		t.Fatalf("NewLearner: %v", err)
	}
	l.Replay(nil)
	var b gm.Board
	if got := net.Value(&b); got != 0 {
		t.Fatalf("empty replay changed the network: %v", got)
	}
}

func TestReplayPlainSingleReward(t *testing.T) {
	// Zero network, two transitions, all reward on the final move. The
	// terminal step trains toward 0 with delta 0 and changes nothing;
	// the earlier step sees delta = reward and moves every slot of the
	// earlier afterstate by alpha*delta. A slot touched k times gains
	// k*step and is read k times by Value, so the new value is
	// step * sum(k^2).
	const alpha, reward = 0.1, 4.0
	net := engine.NewNetwork(4, nil)
	l, err := NewLearner(net, Config{Alpha: alpha, Policy: PolicyTD})
	if err != nil {
		t.Fatalf("NewLearner: %v", err)
	}

	var terminal gm.Board
	history := []Transition{
		{After: trainBoard, Reward: 0},
		{After: terminal, Reward: reward},
	}
	l.Replay(history)

	step := float64(float32(alpha * reward))
	want := 0.0
	for _, k := range slotCounts(net, &trainBoard) {
		want += float64(k*k) * step
	}
	if got := net.Value(&trainBoard); math.Abs(got-want) > 1e-4 {
		t.Fatalf("trained value = %v, want %v", got, want)
	}
	if got := net.Value(&terminal); got != 0 {
		t.Fatalf("terminal afterstate moved off zero: %v", got)
	}
}

func TestReplaySingleEntryTerminalOnly(t *testing.T) {
	// A one-move episode runs only the terminal branch: the final
	// afterstate trains toward a target of 0, so delta = -V(final) and
	// each slot moves by alpha*delta exactly once.
	const alpha = 0.1
	net := engine.NewNetwork(4, nil)
	for g := range net.Tables {
		for i := range net.Tables[g] {
			net.Tables[g][i] = 0.5
		}
	}
	l, err := NewLearner(net, Config{Alpha: alpha, Policy: PolicyTD})
	if err != nil {
		t.Fatalf("NewLearner: %v", err)
	}

	v0 := net.Value(&trainBoard)
	l.Replay([]Transition{{After: trainBoard, Reward: 100}})

	step := float64(float32(alpha * -v0))
	want := v0
	for _, k := range slotCounts(net, &trainBoard) {
		want += float64(k*k) * step
	}
	got := net.Value(&trainBoard)
	if math.Abs(got-want) > 1e-3 {
		t.Fatalf("value after terminal-only replay = %v, want %v", got, want)
	}
	if got >= v0 {
		t.Fatalf("terminal update did not pull the value toward 0: %v -> %v", v0, got)
	}
}

func TestReplaySweepsBackward(t *testing.T) {
	// Reward sits on the final move only. The sweep runs newest-first,
	// so mid trains toward the reward before the first afterstate reads
	// it: the first step's delta is V(mid) after mid's own update. With
	// a forward sweep the first afterstate would see a stale zero and
	// never move in this single replay.
	const alpha = 0.05
	net := engine.NewNetwork(4, nil)
	l, err := NewLearner(net, Config{Alpha: alpha, Policy: PolicyTD})
	if err != nil {
		t.Fatalf("NewLearner: %v", err)
	}

	mid := gm.Board{
		2, 1, 2, 1,
		1, 2, 1, 2,
		2, 1, 2, 1,
		1, 2, 1, 2,
	}
	history := []Transition{
		{After: trainBoard, Reward: 0},
		{After: mid, Reward: 0},
		{After: gm.Board{}, Reward: 4},
	}
	l.Replay(history)

	if got := net.Value(&mid); got <= 0 {
		t.Fatalf("rewarded afterstate stayed at %v, want > 0", got)
	}
	if got := net.Value(&trainBoard); got <= 0 {
		t.Fatalf("first afterstate stayed at %v, want > 0 from the fresh mid value", got)
	}
}

func TestStepCarriesCorrection(t *testing.T) {
	net := engine.NewNetwork(4, nil)
	l, err := NewLearner(net, Config{Alpha: 0.1, Lambda: 0.5, Policy: PolicyTD})
	if err != nil {
		t.Fatalf("NewLearner: %v", err)
	}
	b := trainBoard
	hv := l.Step(&b, 2.0, 0.5)
	if want := 0.1*2.0 + 0.5*0.5; hv != want {
		t.Fatalf("carried correction = %v, want %v", hv, want)
	}
}

func TestReplayTCMovesTowardReward(t *testing.T) {
	net := engine.NewNetwork(4, nil)
	l, err := NewLearner(net, Config{Alpha: 0.01, Policy: PolicyTC})
	if err != nil {
		t.Fatalf("NewLearner: %v", err)
	}
	if l.TC == nil {
		t.Fatalf("TC policy allocated no accumulators")
	}

	var terminal gm.Board
	history := []Transition{
		{After: trainBoard, Reward: 0},
		{After: terminal, Reward: 4},
	}
	before := net.Value(&trainBoard)
	l.Replay(history)
	after := net.Value(&trainBoard)
	if !(after > before) {
		t.Fatalf("TC replay did not raise the value: %v -> %v", before, after)
	}
	if after > 4 {
		t.Fatalf("single TC replay overshot the reward: %v", after)
	}

	// First touches with a consistent sign keep the coherence ratio at
	// full speed.
	for key := range slotCounts(net, &trainBoard) {
		if rate := l.TC.Rate(key[0], key[1]); math.Abs(rate-1) > 1e-6 {
			t.Fatalf("slot %v rate = %v after same-sign updates, want 1", key, rate)
		}
	}
}

func TestNewLearnerPolicies(t *testing.T) {
	net := engine.NewNetwork(3, nil)

	l, err := NewLearner(net, Config{Alpha: 0.1})
	if err != nil {
		t.Fatalf("default policy: %v", err)
	}
	if l.Cfg.Policy != PolicyTD || l.TC != nil {
		t.Fatalf("default learner = %q TC=%v, want td without accumulators", l.Cfg.Policy, l.TC)
	}
	if l.Cfg.Lambda != DefaultLambda {
		t.Fatalf("lambda defaulted to %v, want %v", l.Cfg.Lambda, DefaultLambda)
	}

	if _, err := NewLearner(net, Config{Alpha: 0.1, Policy: "sarsa"}); err == nil {
		t.Fatalf("unknown policy accepted")
	}
}

func TestSnapshotRoundTripTC(t *testing.T) {
	net := engine.NewNetwork(3, nil)
	l, err := NewLearner(net, Config{Alpha: 0.2, Policy: PolicyTC})
	if err != nil {
		t.Fatalf("NewLearner: %v", err)
	}

	history := []Transition{
		{After: trainBoard, Reward: 0},
		{After: gm.Board{}, Reward: 16},
	}
	l.Replay(history)

	path := filepath.Join(t.TempDir(), "weights.bin")
	if err := l.SaveSnapshot(path); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	net2 := engine.NewNetwork(3, nil)
	l2, err := NewLearner(net2, Config{Alpha: 0.2, Policy: PolicyTC})
	if err != nil {
		t.Fatalf("NewLearner: %v", err)
	}
	if err := l2.LoadSnapshot(path); err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	if got, want := net2.Value(&trainBoard), net.Value(&trainBoard); got != want {
		t.Fatalf("restored value = %v, want %v", got, want)
	}
	for g := 0; g < engine.TableCount; g++ {
		for i := range l.TC.E[g] {
			if l2.TC.E[g][i] != l.TC.E[g][i] || l2.TC.A[g][i] != l.TC.A[g][i] {
				t.Fatalf("accumulator mismatch at table %d slot %d", g, i)
			}
		}
	}
}

func TestLoadSnapshotPlainIgnoresAccumulators(t *testing.T) {
	net := engine.NewNetwork(3, nil)
	l, err := NewLearner(net, Config{Alpha: 0.2, Policy: PolicyTC})
	if err != nil {
		t.Fatalf("NewLearner: %v", err)
	}
	l.Replay([]Transition{{After: trainBoard, Reward: 0}, {After: gm.Board{}, Reward: 4}})

	path := filepath.Join(t.TempDir(), "weights.bin")
	if err := l.SaveSnapshot(path); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	net2 := engine.NewNetwork(3, nil)
	plain, err := NewLearner(net2, Config{Alpha: 0.2, Policy: PolicyTD})
	if err != nil {
		t.Fatalf("NewLearner: %v", err)
	}
	if err := plain.LoadSnapshot(path); err != nil {
		t.Fatalf("plain learner rejected a TC snapshot: %v", err)
	}
	if got, want := net2.Value(&trainBoard), net.Value(&trainBoard); got != want {
		t.Fatalf("restored value = %v, want %v", got, want)
	}
}
