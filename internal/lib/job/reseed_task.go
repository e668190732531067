package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TaskReseed clears the pokemon tables and reloads the embedded
// bootstrap dataset.
const TaskReseed = "pokedex:reseed"

// reseedTimeout bounds a single reseed run; the dataset is small, so
// anything longer means the database is in trouble.
const reseedTimeout = 2 * time.Minute

// EnqueueReseed queues a reseed task for background processing.
func (j *JobService) EnqueueReseed(ctx context.Context) error {
	task := asynq.NewTask(TaskReseed, nil)

	info, err := j.Client.EnqueueContext(ctx, task, asynq.Queue("low"), asynq.MaxRetry(3))
	if err != nil {
		return fmt.Errorf("enqueueing reseed task: %w", err)
	}

	j.logger.Info().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("enqueued reseed task")

	return nil
}

func (j *JobService) handleReseedTask(ctx context.Context, t *asynq.Task) error {
	if j.seeder == nil {
		return fmt.Errorf("reseed handler not initialized")
	}

	runCtx, cancel := context.WithTimeout(ctx, reseedTimeout)
	defer cancel()

	start := time.Now()
	if err := j.seeder.Reset(runCtx); err != nil {
		j.logger.Error().Err(err).Msg("reseed task failed")
		return err
	}

	j.logger.Info().
		Dur("duration", time.Since(start)).
		Msg("reseed task completed")

	return nil
}
