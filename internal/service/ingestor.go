package service

import (
	"context"
	"errors"
	"sync"

	"github.com/solerao/campusmetro/internal/domain"
)

// MapWriter is the persistence contract bulk ingestion needs.
type MapWriter interface {
	UpsertStation(ctx context.Context, st domain.Station) error
	ConnectStations(ctx context.Context, fromID, toID string) error
}

// TaskError accumulates multiple errors produced during bulk ingestion.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// BulkIngestor loads a map document into the graph database using a
// bounded worker pool. Stations are written before connections so the
// MATCH side of the connection Cypher always finds both endpoints.
type BulkIngestor struct {
	repo    MapWriter
	workers int
}

// NewBulkIngestor creates an ingestor with the provided concurrency.
func NewBulkIngestor(repo MapWriter, workers int) *BulkIngestor {
	if workers <= 0 {
		workers = 4
	}
	return &BulkIngestor{repo: repo, workers: workers}
}

// IngestMap writes all stations, then every declared edge.
func (bi *BulkIngestor) IngestMap(ctx context.Context, stations []domain.Station) error {
	if err := bi.run(ctx, len(stations), func(idx int) error {
		return bi.repo.UpsertStation(ctx, stations[idx])
	}); err != nil {
		return err
	}

	type connection struct {
		from, to string
	}
	var conns []connection
	for _, st := range stations {
		for _, edge := range st.Edges {
			conns = append(conns, connection{from: st.ID, to: edge})
		}
	}

	return bi.run(ctx, len(conns), func(idx int) error {
		return bi.repo.ConnectStations(ctx, conns[idx].from, conns[idx].to)
	})
}

func (bi *BulkIngestor) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			if err := workerFn(idx); err != nil {
				select {
				case errCh <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}

	for i := 0; i < bi.workers; i++ {
		wg.Add(1)
		go worker()
	}

Loop:
	for i := 0; i < total; i++ {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	var taskErr TaskError
	for err := range errCh {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		taskErr.append(err)
	}
	return taskErr.asError()
}
