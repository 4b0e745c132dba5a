package forge

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/theideaforge/forge/internal/util"
	"github.com/theideaforge/forge/pkg/ai"
	"github.com/theideaforge/forge/pkg/logger"
)

const (
	promptTemperature = 0.7
	promptMaxTokens   = 150
)

// Orchestrator fans out one generation request per agitation category
// and assembles the results in a fixed category order. A category whose
// generation fails falls back to its deterministic template, so the
// returned slice always has one entry per applicable category.
type Orchestrator struct {
	client     ai.ForgeAIClient
	pick       func(n int) int
	maxRetries int
	timeout    time.Duration
}

type NewOrchestratorParams struct {
	Client ai.ForgeAIClient
	// Pick selects a random index in [0,n). Defaults to rand.IntN.
	Pick       func(n int) int
	MaxRetries int
	Timeout    time.Duration
}

func NewOrchestrator(params NewOrchestratorParams) *Orchestrator {
	pick := params.Pick
	if pick == nil {
		pick = rand.IntN
	}
	maxRetries := params.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 1
	}
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 1 * time.Minute
	}

	return &Orchestrator{
		client:     params.Client,
		pick:       pick,
		maxRetries: maxRetries,
		timeout:    timeout,
	}
}

type promptJob struct {
	category string
	system   string
	user     string
	fallback string
}

// GeneratePrompts produces the agitation prompts for one pipeline run.
// terms must be in extraction order; terms[0] is the main term. With no
// terms the result is a single notice. Randomness for domain and
// persona selection is drawn before dispatch so concurrent completion
// order never changes the output.
func (o *Orchestrator) GeneratePrompts(ctx context.Context, terms []string, originalText string) []AgitationPrompt {
	if len(terms) == 0 {
		return []AgitationPrompt{{
			Category: CategoryExploreLink,
			Text:     NoticeNoConcepts,
			Source:   SourceNotice,
		}}
	}

	mainTerm := terms[0]
	domain := unrelatedDomains[o.pick(len(unrelatedDomains))]
	persona := perspectives[o.pick(len(perspectives))]

	jobs := make([]promptJob, 0, 5)

	if len(terms) > 1 {
		secondaryTerm := terms[1]
		system, user := linkInstruction(mainTerm, secondaryTerm)
		jobs = append(jobs, promptJob{
			category: CategoryExploreLink,
			system:   system,
			user:     user,
			fallback: linkFallback(mainTerm, secondaryTerm),
		})
	}

	system, user := deconstructInstruction(mainTerm)
	jobs = append(jobs, promptJob{
		category: CategoryDeconstruct,
		system:   system,
		user:     user,
		fallback: deconstructFallback(mainTerm),
	})

	system, user = crossPollinateInstruction(mainTerm, domain)
	jobs = append(jobs, promptJob{
		category: CategoryCrossPollinate,
		system:   system,
		user:     user,
		fallback: crossPollinateFallback(mainTerm, domain),
	})

	system, user = assumptionsInstruction(mainTerm, originalText)
	jobs = append(jobs, promptJob{
		category: CategoryChallengeAssume,
		system:   system,
		user:     user,
		fallback: assumptionsFallback(mainTerm),
	})

	system, user = perspectiveInstruction(originalText, persona)
	jobs = append(jobs, promptJob{
		category: CategoryShiftPerspective,
		system:   system,
		user:     user,
		fallback: perspectiveFallback(originalText, persona),
	})

	results := make([]AgitationPrompt, len(jobs))
	if len(terms) == 1 {
		// The link slot still appears so every run shows all five
		// categories, just as a notice instead of a question.
		results = make([]AgitationPrompt, len(jobs)+1)
		results[0] = AgitationPrompt{
			Category: CategoryExploreLink,
			Text:     NoticeNoSecondTerm,
			Source:   SourceNotice,
		}
	}
	offset := len(results) - len(jobs)

	group, groupCtx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		group.Go(func() error {
			results[offset+i] = o.generateOne(groupCtx, job)
			return nil
		})
	}
	// Workers never return errors; fallbacks absorb every failure.
	_ = group.Wait()

	return results
}

func (o *Orchestrator) generateOne(ctx context.Context, job promptJob) AgitationPrompt {
	genCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	text, err := util.RetryWithContext(genCtx, o.maxRetries, func(ctx context.Context) (string, error) {
		return o.client.GenerateCompletion(ctx,
			job.user,
			ai.WithSystemPrompt(job.system),
			ai.WithTemperature(promptTemperature),
			ai.WithMaxTokens(promptMaxTokens),
		)
	})
	if err != nil {
		logger.Warn("prompt generation failed, using template",
			"category", job.category, "kind", ai.ErrorKind(err), "error", err)
		return AgitationPrompt{
			Category: job.category,
			Text:     job.fallback,
			Source:   SourceTemplate,
		}
	}

	return AgitationPrompt{
		Category: job.category,
		Text:     text,
		Source:   SourceGenerated,
	}
}
