package resolver

import (
	"log/slog"
	"strings"
	"time"

	"github.com/capitolstream/rollcall/billindex"
	"github.com/capitolstream/rollcall/legis"
	"github.com/capitolstream/rollcall/motion"
	"github.com/capitolstream/rollcall/vote"
)

const (
	// DefaultWindowDays is the exact-roll scan window.
	DefaultWindowDays = 1

	// MotionScoreThreshold is the minimum comparison score the motion
	// similarity strategy accepts.
	MotionScoreThreshold = 0.7
)

// Options configures a Resolver. Zero values take defaults.
type Options struct {
	// WindowDays widens the exact-roll date scan. Default 1.
	WindowDays int

	// Log receives every result. Default is a fresh log owned by the
	// resolver; parallel workers pass their own and merge afterward.
	Log *Log

	// Logger for per-vote debug output. Default slog.Default().
	Logger *slog.Logger
}

// Resolver links votes to bills over one read-only action index.
type Resolver struct {
	index  billindex.Index
	log    *Log
	logger *slog.Logger
	window int
}

// New creates a resolver over the given index.
func New(index billindex.Index, opts Options) *Resolver {
	if opts.WindowDays <= 0 {
		opts.WindowDays = DefaultWindowDays
	}
	if opts.Log == nil {
		opts.Log = NewLog()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Resolver{
		index:  index,
		log:    opts.Log,
		logger: opts.Logger.With("component", "resolver"),
		window: opts.WindowDays,
	}
}

// Log returns the resolver's resolution log.
func (r *Resolver) Log() *Log {
	return r.log
}

// strategy pairs a predicate with a matcher. The table below is the
// resolution algorithm: first applicable strategy whose matcher succeeds
// wins, and order encodes decreasing confidence.
type strategy struct {
	name    Strategy
	applies func(v *vote.NormalizedVote, index billindex.Index) bool
	match   func(r *Resolver, v *vote.NormalizedVote) *Result
}

var strategies = []strategy{
	{StrategyDirectBill, appliesDirectBill, matchDirectBill},
	{StrategyExactRoll, appliesAlways, matchExactRoll},
	{StrategyBillDate, appliesHasBill, matchBillDate},
	{StrategyMotionSimilarity, appliesAlways, matchMotionSimilarity},
	{StrategyAmendment, appliesAmendment, matchAmendment},
}

// Resolve links one vote to a bill. It never fails for a well-formed vote;
// an unmatched vote yields a StrategyNone result with a reason. A vote
// without a key is a programming error and panics. The result is appended
// to the resolution log.
func (r *Resolver) Resolve(v *vote.NormalizedVote) Result {
	if v == nil || v.Key == "" {
		panic("resolver: vote has no key")
	}

	res := r.resolve(v)
	r.log.Append(res)

	r.logger.Debug("vote resolved",
		"vote", v.Key,
		"strategy", res.Strategy,
		"bill", res.BillKey,
		"confidence", res.Confidence)
	return res
}

// ResolveAll resolves a batch in order and returns one result per vote.
func (r *Resolver) ResolveAll(votes []*vote.NormalizedVote) []Result {
	results := make([]Result, 0, len(votes))
	for _, v := range votes {
		results = append(results, r.Resolve(v))
	}
	return results
}

func (r *Resolver) resolve(v *vote.NormalizedVote) Result {
	for _, s := range strategies {
		if !s.applies(v, r.index) {
			continue
		}
		res := s.match(r, v)
		if res == nil {
			continue
		}
		res.VoteKey = v.Key
		res.Strategy = s.name
		res.TextURLs = r.index.BillTextURLs(res.BillKey)
		return *res
	}

	return Result{
		VoteKey:  v.Key,
		Strategy: StrategyNone,
		Reason:   r.unresolvedReason(v),
	}
}

func appliesAlways(*vote.NormalizedVote, billindex.Index) bool {
	return true
}

func appliesHasBill(v *vote.NormalizedVote, _ billindex.Index) bool {
	return v.HasBill()
}

func appliesDirectBill(v *vote.NormalizedVote, index billindex.Index) bool {
	return v.HasBill() && index.BillKeyOnly()
}

func appliesAmendment(v *vote.NormalizedVote, _ billindex.Index) bool {
	return motion.ExtractAmendment(v.Question) != nil
}

func matchDirectBill(r *Resolver, v *vote.NormalizedVote) *Result {
	if !r.index.HasBill(v.BillKey) {
		return nil
	}
	return &Result{BillKey: v.BillKey, Confidence: 1.0}
}

func matchExactRoll(r *Resolver, v *vote.NormalizedVote) *Result {
	a := r.index.FindByExactRoll(v.Chamber, v.Date, v.Roll, r.window)
	if a == nil {
		return nil
	}
	return &Result{
		BillKey:    a.BillKey,
		Confidence: 1.0,
		DateOffset: dayOffset(v.Date, a.Date),
		ActionText: a.Text,
	}
}

func matchBillDate(r *Resolver, v *vote.NormalizedVote) *Result {
	actions := r.index.FindByBillAndDate(v.BillKey, v.Date)
	if len(actions) == 0 {
		return nil
	}
	return &Result{
		BillKey:    v.BillKey,
		Confidence: 0.9,
		ActionText: actions[0].Text,
	}
}

// matchMotionSimilarity compares the vote's question against every
// same-date action whose chamber is the vote's or unknown, keeping the
// single best score at or above the threshold. Ties keep the first-seen
// action; index order is deterministic, so resolution stays idempotent.
func matchMotionSimilarity(r *Resolver, v *vote.NormalizedVote) *Result {
	if v.Question == "" {
		return nil
	}

	var best *billindex.Action
	var bestScore float64
	for _, a := range r.index.FindByDate(v.Date) {
		if a.Chamber != legis.ChamberUnknown && a.Chamber != v.Chamber {
			continue
		}
		cmp := motion.Compare(v.Question, a.Text)
		if !cmp.Match || cmp.Score < MotionScoreThreshold {
			continue
		}
		if cmp.Score > bestScore {
			best = a
			bestScore = cmp.Score
		}
	}
	if best == nil {
		return nil
	}
	return &Result{
		BillKey:     best.BillKey,
		Confidence:  bestScore,
		MotionScore: bestScore,
		ActionText:  best.Text,
	}
}

// matchAmendment tries the vote's own bill on the vote date first, then a
// bill reference re-extracted from the question text.
func matchAmendment(r *Resolver, v *vote.NormalizedVote) *Result {
	amdt := motion.ExtractAmendment(v.Question)
	if amdt == nil {
		return nil
	}

	if v.HasBill() {
		if actions := r.index.FindByBillAndDate(v.BillKey, v.Date); len(actions) > 0 {
			return &Result{
				BillKey:    v.BillKey,
				Confidence: 0.7,
				Amendment:  amdt,
				ActionText: actions[0].Text,
			}
		}
	}

	id := legis.ExtractBillReference(v.Question)
	if id == nil {
		return nil
	}
	id.Congress = v.Congress
	key, err := id.Key()
	if err != nil {
		return nil
	}
	if actions := r.index.FindByBillAndDate(key, v.Date); len(actions) > 0 {
		return &Result{
			BillKey:    key,
			Confidence: 0.7,
			Amendment:  amdt,
			ActionText: actions[0].Text,
		}
	}
	return nil
}

// unresolvedReason collects every condition that blocked resolution. The
// no-actions condition subsumes the same-chamber one, so only one of the
// two appears.
func (r *Resolver) unresolvedReason(v *vote.NormalizedVote) string {
	var parts []string

	if !v.HasBill() {
		parts = append(parts, "no bill reference in vote")
	}

	actions := r.index.FindByDate(v.Date)
	if len(actions) == 0 {
		parts = append(parts, "no indexed actions for vote date")
	} else {
		sameChamber := false
		for _, a := range actions {
			if a.Chamber == legis.ChamberUnknown || a.Chamber == v.Chamber {
				sameChamber = true
				break
			}
		}
		if !sameChamber {
			parts = append(parts, "no same-chamber actions for vote date")
		}
	}

	if strings.TrimSpace(v.Question) == "" {
		parts = append(parts, "no motion text")
	}

	if len(parts) == 0 {
		return "no matching criteria"
	}
	return strings.Join(parts, "; ")
}

// dayOffset returns the whole-day distance from the vote date to the
// matched action date.
func dayOffset(voteDate, actionDate time.Time) int {
	return int(legis.DayOf(actionDate).Sub(legis.DayOf(voteDate)).Hours() / 24)
}
