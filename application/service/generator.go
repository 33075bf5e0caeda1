package service

import (
	"context"
	"runtime"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/typedrill/typedrill/domain/challenge"
	"github.com/typedrill/typedrill/domain/chunk"
	"github.com/typedrill/typedrill/domain/typing"
	"github.com/typedrill/typedrill/infrastructure/tracking"
)

// ChallengeGenerator converts code chunks into typing challenges: one
// challenge per (chunk, applicable difficulty), with bounded difficulties
// split down to their character budget and all content passed through the
// text processor.
type ChallengeGenerator struct {
	splitter ChunkSplitter
	counter  CodeCharacterCounter
}

// NewChallengeGenerator creates a ChallengeGenerator.
func NewChallengeGenerator() *ChallengeGenerator {
	return &ChallengeGenerator{
		splitter: NewChunkSplitter(),
		counter:  NewCodeCharacterCounter(),
	}
}

// Convert fans each valid chunk out across its applicable difficulties.
// Chunks are processed in parallel; the result order is deterministic
// because chunks are sorted by content length before fan-out and each
// chunk's challenges are collected as a unit.
func (g *ChallengeGenerator) Convert(ctx context.Context, chunks []chunk.CodeChunk, reporter tracking.Reporter) []challenge.Challenge {
	if len(chunks) == 0 {
		return nil
	}
	if reporter == nil {
		reporter = tracking.NewNopReporter()
	}

	valid := make([]chunk.CodeChunk, 0, len(chunks))
	for _, ch := range chunks {
		if isConvertible(ch) {
			valid = append(valid, ch)
		}
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return len(valid[i].Content()) > len(valid[j].Content())
	})

	status := tracking.NewStatus(tracking.StepGenerating)
	total := len(valid)
	_ = reporter.OnChange(ctx, status.WithProgress(0, total, ""))

	perChunk := make([][]challenge.Challenge, total)
	var processed atomic.Int64

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(runtime.NumCPU())

	for i, ch := range valid {
		grp.Go(func() error {
			perChunk[i] = g.convertChunk(ch)
			n := int(processed.Add(1))
			_ = reporter.OnChange(gctx, status.WithProgress(n, total, ch.FilePath()))
			return nil
		})
	}
	_ = grp.Wait()

	var challenges []challenge.Challenge
	for _, batch := range perChunk {
		challenges = append(challenges, batch...)
	}

	_ = reporter.OnChange(ctx, status.WithProgress(total, total, "").Finish())
	return challenges
}

func (g *ChallengeGenerator) convertChunk(ch chunk.CodeChunk) []challenge.Challenge {
	codeChars := g.counter.CountChunk(ch)

	var challenges []challenge.Challenge
	for _, difficulty := range challenge.ApplicableDifficulties(ch, codeChars) {
		if c, ok := g.convertForDifficulty(ch, difficulty, codeChars); ok {
			challenges = append(challenges, c)
		}
	}
	return challenges
}

func (g *ChallengeGenerator) convertForDifficulty(
	ch chunk.CodeChunk,
	difficulty challenge.Difficulty,
	codeChars int,
) (challenge.Challenge, bool) {
	_, maxChars := difficulty.CharLimits()

	content := ch.Content()
	commentRanges := ch.CommentRanges()
	endLine := ch.EndLine()

	if difficulty.Bounded() && codeChars > maxChars {
		result, ok := g.splitter.Split(ch, difficulty)
		if !ok {
			return challenge.Challenge{}, false
		}
		content = result.Content
		commentRanges = result.CommentRanges
		endLine = result.EndLine
	}

	// Zen challenges keep blank lines so the file reads as it does on disk.
	preserveEmpty := difficulty == challenge.DifficultyZen
	processedContent, processedRanges := typing.Process(content, commentRanges, preserveEmpty)
	if processedContent == "" {
		return challenge.Challenge{}, false
	}

	return challenge.NewChallenge(
		processedContent,
		ch.FilePath(),
		ch.StartLine(),
		endLine,
		ch.Language(),
		processedRanges,
		difficulty,
	), true
}

func isConvertible(ch chunk.CodeChunk) bool {
	if ch.StartLine() <= 0 || ch.EndLine() <= 0 || ch.StartLine() > ch.EndLine() {
		return false
	}
	for _, r := range ch.Content() {
		switch r {
		case ' ', '\t', '\n', '\r':
		default:
			return true
		}
	}
	return false
}
