// Package service orchestrates a single reconciliation run.
package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mark-gargan/adguard-rewrite-sync/internal/adguard"
	"github.com/mark-gargan/adguard-rewrite-sync/internal/dnscheck"
	"github.com/mark-gargan/adguard-rewrite-sync/internal/domain"
	"github.com/mark-gargan/adguard-rewrite-sync/internal/localip"
	"github.com/mark-gargan/adguard-rewrite-sync/internal/reconciler"
)

// SyncService runs the resolve -> fetch -> plan -> apply sequence for one
// invocation. Each run is self-contained; nothing is carried across runs.
type SyncService struct {
	resolver  localip.Resolver
	store     adguard.RewriteStore
	checker   *dnscheck.Checker
	hostnames []string
}

// NewSyncService creates a new SyncService. checker may be nil to disable
// post-apply verification.
func NewSyncService(resolver localip.Resolver, store adguard.RewriteStore, checker *dnscheck.Checker, hostnames []string) *SyncService {
	return &SyncService{
		resolver:  resolver,
		store:     store,
		checker:   checker,
		hostnames: hostnames,
	}
}

// Run performs one reconciliation. In dry-run mode the plan is computed
// from live reads and reported, but no mutating call is made. A resolution
// or fetch failure aborts the run; per-hostname apply failures are
// collected in the result instead.
func (s *SyncService) Run(ctx context.Context, dryRun bool) (*domain.ApplyResult, error) {
	ip, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving local address: %w", err)
	}
	log.WithField("ip", ip).Info("Resolved local address")

	existing, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching rewrite rules: %w", err)
	}
	log.WithField("rules", len(existing)).Debug("Fetched existing rewrite rules")

	plan := reconciler.Plan(s.hostnames, ip, existing)

	if dryRun {
		s.reportPlan(plan)
		return &domain.ApplyResult{Unchanged: len(plan.Steps) - len(plan.Mutations())}, nil
	}

	result := reconciler.Apply(ctx, s.store, plan)
	s.reportResult(plan, result)

	if s.checker != nil && result.Created+result.Updated > 0 {
		s.verify(ctx, plan, result)
	}

	return result, nil
}

// reportPlan logs what a normal run would do, one line per hostname.
func (s *SyncService) reportPlan(plan *domain.Plan) {
	log.Info("Dry run: no changes will be made")
	for _, step := range plan.Steps {
		entry := log.WithFields(log.Fields{
			"hostname": step.Hostname,
			"action":   step.Kind.String(),
		})
		if step.Kind == domain.DeleteThenCreate {
			entry = entry.WithField("old", step.OldAnswer)
		}
		entry.Infof("Would map %s -> %s", step.Hostname, plan.IP)
	}
	creates, updates, noops := plan.Counts()
	log.Infof("Plan: %d to create, %d to update, %d already current", creates, updates, noops)
}

// reportResult logs each hostname's outcome plus a final aggregate line.
func (s *SyncService) reportResult(plan *domain.Plan, result *domain.ApplyResult) {
	failed := make(map[string]error, len(result.Failed))
	for _, f := range result.Failed {
		failed[f.Hostname] = f.Err
	}

	for _, step := range plan.Steps {
		entry := log.WithField("hostname", step.Hostname)
		if err, ok := failed[step.Hostname]; ok {
			entry.WithError(err).Error("Failed to update rewrite rule")
			continue
		}
		switch step.Kind {
		case domain.Create:
			entry.Infof("Created rewrite: %s -> %s", step.Hostname, plan.IP)
		case domain.DeleteThenCreate:
			entry.Infof("Updated rewrite: %s -> %s (was %s)", step.Hostname, plan.IP, step.OldAnswer)
		default:
			entry.Infof("Rewrite already current: %s -> %s", step.Hostname, plan.IP)
		}
	}

	log.Infof("Sync complete: %d created, %d updated, %d unchanged, %d failed",
		result.Created, result.Updated, result.Unchanged, len(result.Failed))
}

// verify asks the appliance's DNS listener whether the pushed rules are
// being served. Mismatches are warnings only; caches may lag and the next
// scheduled run converges again.
func (s *SyncService) verify(ctx context.Context, plan *domain.Plan, result *domain.ApplyResult) {
	failed := make(map[string]struct{}, len(result.Failed))
	for _, f := range result.Failed {
		failed[f.Hostname] = struct{}{}
	}

	for _, step := range plan.Mutations() {
		if _, ok := failed[step.Hostname]; ok {
			continue
		}
		entry := log.WithField("hostname", step.Hostname)
		ok, err := s.checker.Confirm(ctx, step.Hostname, plan.IP)
		switch {
		case err != nil:
			entry.WithError(err).Warn("DNS verification query failed")
		case !ok:
			entry.Warnf("DNS verification mismatch: %s does not yet resolve to %s", step.Hostname, plan.IP)
		default:
			entry.Debug("DNS verification confirmed")
		}
	}
}
