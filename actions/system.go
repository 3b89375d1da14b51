package actions

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/client"
	"github.com/s0up4200/arrcore/domain"
	"github.com/s0up4200/arrcore/endpoint"
)

// System reads status, health and maintenance information.
type System struct {
	client  client.Requester
	service arr.Service
}

func (s *System) Status(ctx context.Context) (domain.ServiceStatus, error) {
	var st domain.ServiceStatus
	if err := s.client.Get(ctx, endpoint.SystemStatus, nil, &st); err != nil {
		return domain.ServiceStatus{}, fmt.Errorf("failed to get system status: %w", err)
	}
	return st, nil
}

func (s *System) Health(ctx context.Context) (domain.HealthChecks, error) {
	var checks domain.HealthChecks
	if err := s.client.Get(ctx, endpoint.Health, nil, &checks); err != nil {
		return nil, fmt.Errorf("failed to get health: %w", err)
	}
	return checks, nil
}

func (s *System) DiskSpace(ctx context.Context) (domain.DiskSpaces, error) {
	var disks domain.DiskSpaces
	if err := s.client.Get(ctx, endpoint.DiskSpace, nil, &disks); err != nil {
		return nil, fmt.Errorf("failed to get disk space: %w", err)
	}
	return disks, nil
}

func (s *System) Tasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := s.client.Get(ctx, endpoint.SystemTask, nil, &tasks); err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	return tasks, nil
}

func (s *System) Task(ctx context.Context, id int64) (Task, error) {
	var task Task
	if err := s.client.Get(ctx, endpoint.SystemTaskByID, endpoint.Params{"id": id}, &task); err != nil {
		return Task{}, fmt.Errorf("failed to get task %d: %w", id, err)
	}
	return task, nil
}

func (s *System) Backups(ctx context.Context) ([]Backup, error) {
	var backups []Backup
	if err := s.client.Get(ctx, endpoint.SystemBackup, nil, &backups); err != nil {
		return nil, fmt.Errorf("failed to get backups: %w", err)
	}
	return backups, nil
}

// Summary fetches status and health concurrently and maps them into a
// domain.SystemStatus.
func (s *System) Summary(ctx context.Context) (domain.SystemStatus, error) {
	var (
		st     domain.ServiceStatus
		checks domain.HealthChecks
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		st, err = s.Status(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		checks, err = s.Health(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.SystemStatus{}, err
	}

	return domain.MapSystemStatus(s.service, st, checks), nil
}
