package scramble

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/scramble-dev/scramble/internal/core/batch"
)

// Execute performs the renames of a plan's pairs. Per-pair failures are
// routed through onErr. Returns the pairs that were actually renamed.
// History recording is the caller's job via Record, so partial confirmation
// flows can execute a plan in several calls.
func (s *Service) Execute(ctx context.Context, pairs []batch.Pair, onErr OnError) ([]batch.Pair, error) {
	executed := make([]batch.Pair, 0, len(pairs))

	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return executed, err
		}

		for {
			err := s.rename(pair)
			if err == nil {
				s.log.Debug().Str("from", pair.Source).Str("to", pair.Destination).Msg("renamed")
				executed = append(executed, pair)
				break
			}

			switch onErr(pair.Source, err) {
			case RecoverySkip:
				s.log.Debug().Str("path", pair.Source).Err(err).Msg("rename skipped")
			case RecoveryRetry:
				continue
			case RecoveryHalt:
				return executed, fmt.Errorf("rename %s: %w", pair.Source, errors.Join(ErrHalted, err))
			}
			break
		}
	}

	s.log.Info().Int("renamed", len(executed)).Msg("batch executed")
	return executed, nil
}

// rename moves a single file, refusing to overwrite an existing destination.
func (s *Service) rename(pair batch.Pair) error {
	if _, err := os.Lstat(pair.Destination); err == nil {
		return fmt.Errorf("destination %s already exists", pair.Destination)
	} else if !os.IsNotExist(err) {
		return err
	}

	return os.Rename(pair.Source, pair.Destination)
}

// Record persists an executed batch to history. A no-op when history is
// disabled or nothing was renamed.
func (s *Service) Record(ctx context.Context, executed []batch.Pair) (batch.Record, error) {
	if !s.config.HistoryEnabled() || len(executed) == 0 {
		return batch.Record{}, nil
	}

	rec := batch.Record{
		ID:         batch.NewID(),
		Pairs:      executed,
		ExecutedAt: time.Now(),
	}
	if err := s.history.Save(ctx, rec); err != nil {
		return batch.Record{}, fmt.Errorf("record batch: %w", err)
	}

	s.log.Debug().Str("id", rec.ID).Int("pairs", len(rec.Pairs)).Msg("batch recorded")
	return rec, nil
}

// History returns all recorded batches, newest first.
func (s *Service) History(ctx context.Context) ([]batch.Record, error) {
	return s.history.List(ctx)
}

// Undo reverses the most recent non-reverted batch. Pairs whose destination
// no longer exists, or whose source name is occupied again, are skipped.
// Returns the record and the number of files moved back.
func (s *Service) Undo(ctx context.Context) (batch.Record, int, error) {
	rec, err := s.history.LastExecuted(ctx)
	if err != nil {
		return batch.Record{}, 0, err
	}

	restored := 0
	for _, pair := range rec.Pairs {
		if err := ctx.Err(); err != nil {
			return rec, restored, err
		}

		// reverse direction: destination back to source
		back := batch.Pair{Source: pair.Destination, Destination: pair.Source}
		if _, err := os.Lstat(back.Source); err != nil {
			s.log.Warn().Str("path", back.Source).Msg("renamed file no longer exists, skipping")
			continue
		}
		if err := s.rename(back); err != nil {
			s.log.Warn().Str("path", back.Source).Err(err).Msg("cannot restore, skipping")
			continue
		}
		restored++
	}

	rec.MarkReverted()
	if err := s.history.Save(ctx, rec); err != nil {
		return rec, restored, fmt.Errorf("mark batch reverted: %w", err)
	}

	s.log.Info().Str("id", rec.ID).Int("restored", restored).Msg("batch reverted")
	return rec, restored, nil
}
