// Package reconciler computes and applies the mutations needed to converge
// the appliance's rewrite rules on the desired hostname set.
package reconciler

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mark-gargan/adguard-rewrite-sync/internal/adguard"
	"github.com/mark-gargan/adguard-rewrite-sync/internal/domain"
)

// Plan compares the desired hostname set against the appliance's existing
// rules and returns the operations needed to converge them. Hostnames not
// in the desired set are never touched. Plan performs no I/O.
func Plan(desired []string, ip string, existing []domain.RewriteRule) *domain.Plan {
	// Index existing rules by domain. If the appliance ever returns
	// duplicates the last one wins; warn rather than crash.
	index := make(map[string]string, len(existing))
	for _, rule := range existing {
		if prev, ok := index[rule.Domain]; ok {
			log.WithFields(log.Fields{
				"domain":   rule.Domain,
				"previous": prev,
				"kept":     rule.Answer,
			}).Warn("Duplicate rewrite rules on appliance, keeping the last one")
		}
		index[rule.Domain] = rule.Answer
	}

	plan := &domain.Plan{IP: ip}
	for _, hostname := range desired {
		current, ok := index[hostname]
		switch {
		case !ok:
			plan.Steps = append(plan.Steps, domain.Step{
				Kind:     domain.Create,
				Hostname: hostname,
				Answer:   ip,
			})
		case current == ip:
			plan.Steps = append(plan.Steps, domain.Step{
				Kind:     domain.NoOp,
				Hostname: hostname,
				Answer:   ip,
			})
		default:
			plan.Steps = append(plan.Steps, domain.Step{
				Kind:      domain.DeleteThenCreate,
				Hostname:  hostname,
				Answer:    ip,
				OldAnswer: current,
			})
		}
	}
	return plan
}

// Apply executes the plan's mutations against the store. Steps run
// independently: one hostname's failure is recorded and the remaining
// hostnames still proceed.
func Apply(ctx context.Context, store adguard.RewriteStore, plan *domain.Plan) *domain.ApplyResult {
	result := &domain.ApplyResult{}
	for _, step := range plan.Steps {
		switch step.Kind {
		case domain.NoOp:
			result.Unchanged++

		case domain.Create:
			if err := store.Add(ctx, domain.RewriteRule{Domain: step.Hostname, Answer: step.Answer}); err != nil {
				result.Failed = append(result.Failed, domain.StepFailure{Hostname: step.Hostname, Err: err})
				continue
			}
			result.Created++

		case domain.DeleteThenCreate:
			// The stale rule goes first: the appliance has no in-place
			// update and must never hold two entries for one domain.
			if err := store.Delete(ctx, domain.RewriteRule{Domain: step.Hostname, Answer: step.OldAnswer}); err != nil {
				result.Failed = append(result.Failed, domain.StepFailure{
					Hostname: step.Hostname,
					Err:      fmt.Errorf("deleting stale rule: %w", err),
				})
				continue
			}
			if err := store.Add(ctx, domain.RewriteRule{Domain: step.Hostname, Answer: step.Answer}); err != nil {
				result.Failed = append(result.Failed, domain.StepFailure{Hostname: step.Hostname, Err: err})
				continue
			}
			result.Updated++
		}
	}
	return result
}
